package profile

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/uyouii/ocean-profiles/model"
)

func TestCollapseDuplicates_AveragesGroups(t *testing.T) {
	x := []float64{30, 10, 20, 10, 30, 30}
	y := []float64{3, 1, 2, 2, 6, 9}

	resX, resY := CollapseDuplicates(x, y)
	require.Equal(t, []float64{10, 20, 30}, resX)
	require.InDeltaSlice(t, []float64{1.5, 2, 6}, resY, 1e-12)

	// inputs are untouched
	require.Equal(t, []float64{30, 10, 20, 10, 30, 30}, x)
}

func TestCollapseDuplicates_MissingValues(t *testing.T) {
	x := []float64{1, math.NaN(), 2, 2, 3}
	y := []float64{5, 7, math.NaN(), 4, math.NaN()}

	resX, resY := CollapseDuplicates(x, y)
	require.Equal(t, []float64{1, 2, 3}, resX)
	require.Equal(t, 5.0, resY[0])
	require.Equal(t, 4.0, resY[1])
	require.True(t, math.IsNaN(resY[2]))
}

func TestCollapseDuplicates_Empty(t *testing.T) {
	resX, resY := CollapseDuplicates(nil, nil)
	require.Empty(t, resX)
	require.Empty(t, resY)
}

func TestCollapseRecords_CopiesFirstRecord(t *testing.T) {
	newRecord := func(depth, salt, oxy float64, bottle string) model.Record {
		r := model.NewRecord()
		r.Values["DEPTH"] = depth
		r.Values["SALNTY"] = salt
		r.Values["OXYGEN"] = oxy
		r.Fields["BOTTLE"] = bottle
		return r
	}
	records := []model.Record{
		newRecord(200, 35.0, 210, "b3"),
		newRecord(100, 34.0, 250, "b1"),
		newRecord(200, 35.2, 190, "b4"),
		newRecord(100, 34.4, 260, "b2"),
		newRecord(math.NaN(), 30, 300, "bad"),
	}

	res := CollapseRecords(records, "DEPTH", "SALNTY")
	require.Len(t, res, 2)

	require.Equal(t, 100.0, res[0].Value("DEPTH"))
	require.InDelta(t, 34.2, res[0].Value("SALNTY"), 1e-12)
	require.Equal(t, 250.0, res[0].Value("OXYGEN"))
	require.Equal(t, "b1", res[0].Fields["BOTTLE"])

	require.Equal(t, 200.0, res[1].Value("DEPTH"))
	require.InDelta(t, 35.1, res[1].Value("SALNTY"), 1e-12)
	require.Equal(t, 210.0, res[1].Value("OXYGEN"))
	require.Equal(t, "b3", res[1].Fields["BOTTLE"])

	// the first record is copied, not shared
	require.Equal(t, 35.0, records[0].Value("SALNTY"))
}
