package exchange

const (
	EncodingUTF8        = "utf-8"
	EncodingISO88591    = "iso-8859-1"
	EncodingWindows1252 = "windows-1252"

	// DepthColumn holds the first available sampling depth column.
	DepthColumn = "EXC_CTDDEPTH"

	endData = "END_DATA"
)

var (
	DefaultEncodings = []string{EncodingUTF8, EncodingISO88591}

	// candidates for DepthColumn, in order of preference
	depthColumns = []string{"CTDDEPTH", "CTDDEP", "CTDPRS"}

	// always kept as text even when they look numeric
	stringColumns = map[string]bool{
		"EXPOCODE": true,
		"SECT_ID":  true,
		"DATE":     true,
		"TIME":     true,
	}

	fillValues = []float64{-9999, -999, -99, -9}
)
