package station

import (
	"fmt"
	"math"

	"github.com/uyouii/ocean-profiles/common"
	"github.com/uyouii/ocean-profiles/utils"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// LinearFit returns the least squares line through the pairs where both x and
// y are present.
func LinearFit(x, y []float64) (slope, intercept float64, err error) {
	if len(x) != len(y) {
		return 0, 0, fmt.Errorf("len(x)=%v, len(y)=%v: %w", len(x), len(y), common.ErrShapeMismatch)
	}

	xx, yy := []float64{}, []float64{}
	for i := range x {
		if utils.IsFinite(x[i]) && utils.IsFinite(y[i]) {
			xx = append(xx, x[i])
			yy = append(yy, y[i])
		}
	}
	if len(xx) < 2 {
		return 0, 0, fmt.Errorf("%v valid pairs: %w", len(xx), common.ErrInsufficientData)
	}
	if floats.Min(xx) == floats.Max(xx) {
		return 0, 0, fmt.Errorf("all x equal %v: %w", xx[0], common.ErrDegenerateRange)
	}

	intercept, slope = stat.LinearRegression(xx, yy, nil, false)
	return slope, intercept, nil
}

// HaversineDistance returns the great circle distance in metres.
func HaversineDistance(lon1, lat1, lon2, lat2 float64) float64 {
	toRad := func(deg float64) float64 { return deg * math.Pi / 180 }

	phi1, phi2 := toRad(lat1), toRad(lat2)
	dPhi := phi2 - phi1
	dLambda := toRad(lon2) - toRad(lon1)

	a := math.Pow(math.Sin(dPhi/2), 2) + math.Cos(phi1)*math.Cos(phi2)*math.Pow(math.Sin(dLambda/2), 2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return EarthRadiusKm * c * 1000
}
