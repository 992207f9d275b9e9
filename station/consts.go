package station

const (
	// columns added by Stats
	OffsetKey   = "offset"
	MeanSuffix  = "_mean"
	StdevSuffix = "_stdev"

	// approximate earth radius used by HaversineDistance
	EarthRadiusKm = 6373.0
)
