package profile

import (
	"fmt"
	"math"

	"github.com/uyouii/ocean-profiles/common"
	"github.com/uyouii/ocean-profiles/model"
	"github.com/uyouii/ocean-profiles/utils"
	"gonum.org/v1/gonum/interp"
)

type predictor interface {
	Fit(xs, ys []float64) error
	Predict(x float64) float64
}

func newPredictor(method model.InterpMethod) (predictor, error) {
	switch method {
	case model.InterpPchip, "":
		// monotone between nodes, never overshoots the data
		return &interp.FritschButland{}, nil
	case model.InterpLinear:
		return &interp.PiecewiseLinear{}, nil
	}
	return nil, fmt.Errorf("interpolation method %q: %w", method, common.ErrorInvalidValue)
}

// CleanSeries drops pairs with a non-finite value, sorts by x and averages
// duplicate x so the result is a strictly increasing abscissa.
func CleanSeries(x, y []float64) ([]float64, []float64, error) {
	if len(x) != len(y) {
		return nil, nil, fmt.Errorf("len(x)=%v, len(y)=%v: %w", len(x), len(y), common.ErrShapeMismatch)
	}

	validX, validY := make([]float64, 0, len(x)), make([]float64, 0, len(y))
	for i := range x {
		if utils.IsFinite(x[i]) && utils.IsFinite(y[i]) {
			validX = append(validX, x[i])
			validY = append(validY, y[i])
		}
	}

	xs, ys := CollapseDuplicates(validX, validY)
	if len(xs) < 2 {
		return nil, nil, fmt.Errorf("%v distinct valid points: %w", len(xs), common.ErrInsufficientData)
	}
	return xs, ys, nil
}

// Interpolate evaluates a monotone piecewise cubic through (x, y) at every
// target. Targets outside [min(x), max(x)] give NaN.
func Interpolate(x, y, xTarget []float64) ([]float64, error) {
	return InterpolateWith(model.InterpPchip, x, y, xTarget)
}

func InterpolateWith(method model.InterpMethod, x, y, xTarget []float64) ([]float64, error) {
	xs, ys, err := CleanSeries(x, y)
	if err != nil {
		return nil, err
	}
	return interpolateClean(method, xs, ys, xTarget)
}

// interpolateClean expects the output of CleanSeries.
func interpolateClean(method model.InterpMethod, xs, ys, xTarget []float64) ([]float64, error) {
	p, err := newPredictor(method)
	if err != nil {
		return nil, err
	}
	if err := p.Fit(xs, ys); err != nil {
		return nil, fmt.Errorf("fit %v interpolant: %w", method, err)
	}

	hull := model.Range{Lower: xs[0], Upper: xs[len(xs)-1]}

	res := make([]float64, len(xTarget))
	for i, t := range xTarget {
		if !hull.Contains(t) {
			res[i] = math.NaN()
			continue
		}
		res[i] = p.Predict(t)
	}
	return res, nil
}
