package profile

import (
	"fmt"
	"math"

	"github.com/uyouii/ocean-profiles/common"
	"github.com/uyouii/ocean-profiles/utils"
	"gonum.org/v1/gonum/floats"
)

// GenerateGrid returns every integer multiple of step inside [minX, maxX].
// Values are computed as k*step from the absolute index k, so two calls with
// the same step agree exactly wherever their ranges overlap.
func GenerateGrid(minX, maxX, step float64) ([]float64, error) {
	if err := checkStep(step); err != nil {
		return nil, err
	}
	if !utils.IsFinite(minX) || !utils.IsFinite(maxX) {
		return nil, fmt.Errorf("range [%v, %v]: %w", minX, maxX, common.ErrorInvalidValue)
	}

	qLo, qHi := minX/step, maxX/step
	if math.Abs(qLo) > maxGridIndex || math.Abs(qHi) > maxGridIndex {
		return nil, fmt.Errorf("range [%v, %v] with step %v has no exact grid index: %w",
			minX, maxX, step, common.ErrorInvalidValue)
	}
	kLo := quantize(qLo, math.Ceil)
	kHi := quantize(qHi, math.Floor)

	n := kHi - kLo + 1
	if n < 1 {
		return nil, fmt.Errorf("range [%v, %v] with step %v: %w", minX, maxX, step, common.ErrDegenerateRange)
	}
	if n > MaxGridSize {
		return nil, fmt.Errorf("grid of %v points exceeds %v: %w", n, MaxGridSize, common.ErrorInvalidValue)
	}

	grid := make([]float64, 0, n)
	for k := kLo; k <= kHi; k++ {
		grid = append(grid, float64(k)*step)
	}
	return grid, nil
}

// GridFor generates the grid spanning the finite values of x.
func GridFor(x []float64, step float64) ([]float64, error) {
	finite := make([]float64, 0, len(x))
	for _, v := range x {
		if utils.IsFinite(v) {
			finite = append(finite, v)
		}
	}
	if len(finite) == 0 {
		return nil, fmt.Errorf("no finite dimension values: %w", common.ErrInsufficientData)
	}
	return GenerateGrid(floats.Min(finite), floats.Max(finite), step)
}

func quantize(q float64, round func(float64) float64) int64 {
	r := math.Round(q)
	if math.Abs(q-r) <= gridSnapTolerance*math.Max(1, math.Abs(q)) {
		return int64(r)
	}
	return int64(round(q))
}

func checkStep(step float64) error {
	if !(step > 0) || math.IsInf(step, 0) {
		return fmt.Errorf("step %v: %w", step, common.ErrInvalidStep)
	}
	return nil
}
