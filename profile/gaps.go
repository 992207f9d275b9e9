package profile

import (
	"fmt"
	"math"

	"github.com/uyouii/ocean-profiles/common"
	"github.com/uyouii/ocean-profiles/model"
)

// FindGaps walks consecutive depths and records every pair further apart than
// the limit of the bucket holding the deeper sample. depths must be ascending.
func FindGaps(depths []float64, thresholds model.Thresholds) ([]model.GapInterval, error) {
	if !isAscending(depths) {
		return nil, fmt.Errorf("original depths: %w", common.ErrUnsorted)
	}

	gaps := []model.GapInterval{}
	for i := 1; i < len(depths); i++ {
		prev, cur := depths[i-1], depths[i]
		if cur-prev > thresholds.Limit(cur) {
			gaps = append(gaps, model.GapInterval{Min: prev, Max: cur})
		}
	}
	return gaps, nil
}

// MaskGaps blanks interpolated values lying strictly inside a sampling gap of
// origDepths. The ends of a gap are original samples and are kept.
func MaskGaps(xTarget, yTarget, origDepths []float64,
	thresholds model.Thresholds) ([]float64, []float64, error) {
	if len(xTarget) != len(yTarget) {
		return nil, nil, fmt.Errorf("len(xTarget)=%v, len(yTarget)=%v: %w",
			len(xTarget), len(yTarget), common.ErrShapeMismatch)
	}
	if !isAscending(xTarget) {
		return nil, nil, fmt.Errorf("target grid: %w", common.ErrUnsorted)
	}

	gaps, err := FindGaps(origDepths, thresholds)
	if err != nil {
		return nil, nil, err
	}

	xOut, yOut, _ := MaskIntervals(xTarget, yTarget, gaps)
	return xOut, yOut, nil
}

// MaskIntervals merges the ascending targets with the ascending gaps using one
// forward cursor and returns copies of the inputs plus the number of points
// that were blanked.
func MaskIntervals(xTarget, yTarget []float64, gaps []model.GapInterval) ([]float64, []float64, int) {
	xOut := make([]float64, len(xTarget))
	yOut := make([]float64, len(yTarget))
	copy(xOut, xTarget)
	copy(yOut, yTarget)

	masked := 0
	j := 0
	for i, x := range xOut {
		for j < len(gaps) && x >= gaps[j].Max {
			j++
		}
		if j == len(gaps) {
			break
		}
		if x > gaps[j].Min && i < len(yOut) {
			yOut[i] = math.NaN()
			masked++
		}
	}
	return xOut, yOut, masked
}

func isAscending(values []float64) bool {
	for i, v := range values {
		if math.IsNaN(v) {
			return false
		}
		if i > 0 && v < values[i-1] {
			return false
		}
	}
	return true
}
