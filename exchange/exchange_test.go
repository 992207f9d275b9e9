package exchange

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/uyouii/ocean-profiles/common"
)

const bottleFile = `BOTTLE,20240101WHOIABC
# cruise 33RO20240101
# merged by data centre
EXPOCODE,SECT_ID,STNNBR,CASTNO,DATE,TIME,LATITUDE,LONGITUDE,CTDPRS,CTDTMP,SALNTY,SALNTY_FLAG_W,OXYGEN
,,,,,,,,DBAR,ITS-90,PSS-78,,UMOL/KG
 33RO20240101, A16N, 1, 1, 20240101, 1342, 60.5, -20.25, 10.0, 8.5, 35.1, 2, 280.0
 33RO20240101, A16N, 1, 1, 20240101, 1342, 60.5, -20.25, 100.0, 7.9, 35.2, 2, -999
 33RO20240101, A16N, 1, 1, 20240101, 905, 60.5, -20.25, 900.0, 4.1, -9, 9, 250.0
END_DATA
`

const ctdFile = "CTD,20240102ABC\r\n" +
	"NUMBER_HEADERS = 4\r\n" +
	"EXPOCODE = 33RO20240101\r\n" +
	"DATE = 20240102\r\n" +
	"LATITUDE = 61.0\r\n" +
	"CTDPRS,CTDPRS_FLAG_W,CTDTMP,CTDTMP_FLAG_W\r\n" +
	"DBAR,,ITS-90,\r\n" +
	"2.0,2,20.1,2\r\n" +
	"4.0,2,,9\r\n" +
	"END_DATA\r\n"

func TestParse_Bottle(t *testing.T) {
	table, err := Parse(bottleFile)
	require.NoError(t, err)

	require.Equal(t, "BOTTLE", table.FileType)
	require.Equal(t, "20240101WHOIABC", table.Signature)
	require.Equal(t, "# cruise 33RO20240101\n# merged by data centre\n", table.Comments)
	require.Len(t, table.Records, 3)
	require.Equal(t, "PSS-78", table.Units["SALNTY"])

	first := table.Records[0]
	require.Equal(t, "33RO20240101", first.Fields["EXPOCODE"])
	require.Equal(t, "A16N", first.Fields["SECT_ID"])
	require.Equal(t, 35.1, first.Value("SALNTY"))
	require.Equal(t, time.Date(2024, 1, 1, 13, 42, 0, 0, time.UTC), first.Time)
	require.Equal(t, time.Date(2024, 1, 1, 9, 5, 0, 0, time.UTC), table.Records[2].Time)

	// fill values become NaN
	require.True(t, math.IsNaN(table.Records[1].Value("OXYGEN")))
	require.True(t, math.IsNaN(table.Records[2].Value("SALNTY")))

	// depth copied from CTDPRS
	require.Contains(t, table.Columns, DepthColumn)
	require.Equal(t, []float64{10, 100, 900}, table.Column(DepthColumn))
	require.Equal(t, "DBAR", table.Units[DepthColumn])

	p, err := table.Profile(DepthColumn)
	require.NoError(t, err)
	names := []string{}
	for _, v := range p.Variables {
		names = append(names, v.Name)
	}
	require.Equal(t, []string{"CTDPRS", "CTDTMP", "SALNTY", "OXYGEN"}, names)
	require.Equal(t, "20240101WHOIABC", p.Signature)
}

func TestParse_CTD(t *testing.T) {
	table, err := Parse(ctdFile)
	require.NoError(t, err)

	require.Equal(t, "CTD", table.FileType)
	require.Equal(t, "4", table.Metadata["NUMBER_HEADERS"])
	require.Equal(t, "61.0", table.Metadata["LATITUDE"])
	require.Len(t, table.Records, 2)
	require.True(t, math.IsNaN(table.Records[1].Value("CTDTMP")))
	require.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), table.Records[0].Time)
	require.Equal(t, []float64{2, 4}, table.Column(DepthColumn))
}

func TestParse_Malformed(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"empty", "\n\n"},
		{"unknown type", "HEADER,abc\nA,B\n,\n"},
		{"no columns", "BOTTLE,abc\n# only comments\n"},
		{"no units", "BOTTLE,abc\nA,B\n"},
		{"units mismatch", "BOTTLE,abc\nA,B\nX\n"},
		{"row mismatch", "BOTTLE,abc\nA,B\n,\n1,2,3\n"},
		{"bad date", "BOTTLE,abc\nDATE,A\n,\n2024XX01,1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.text)
			require.ErrorIs(t, err, common.ErrMalformedFile)
		})
	}
}

func TestReader_EncodingFallback(t *testing.T) {
	ctx := context.Background()
	latin1 := []byte("BOTTLE,abc\n# R/V H\xe5kon Mosby\nCTDPRS,CTDTMP\nDBAR,ITS-90\n1,2\n3,4\nEND_DATA\n")

	r, err := NewReader(nil)
	require.NoError(t, err)
	require.Equal(t, DefaultEncodings, r.Encodings())

	table, err := r.Read(ctx, latin1)
	require.NoError(t, err)
	require.Equal(t, "# R/V Håkon Mosby\n", table.Comments)

	_, enc, err := r.Decode([]byte("\xef\xbb\xbfBOTTLE,abc"))
	require.NoError(t, err)
	require.Equal(t, EncodingUTF8, enc)

	strict, err := NewReader([]string{"UTF-8"})
	require.NoError(t, err)
	_, err = strict.Read(ctx, latin1)
	require.ErrorIs(t, err, common.ErrUnknownEncoding)

	_, err = NewReader([]string{"utf-8", "ebcdic"})
	require.ErrorIs(t, err, common.ErrUnknownEncoding)
}

func TestReader_ReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "33RO20240101_hy1.csv")
	require.NoError(t, os.WriteFile(path, []byte(bottleFile), 0o644))

	r, err := NewReader([]string{EncodingUTF8, EncodingWindows1252})
	require.NoError(t, err)

	table, err := r.ReadFile(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, table.Records, 3)

	_, err = r.ReadFile(context.Background(), filepath.Join(t.TempDir(), "missing.csv"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
