package model

import (
	"fmt"
	"math"

	"github.com/uyouii/ocean-profiles/common"
)

// Threshold is one gap bucket: samples deeper than the previous bucket's
// UpperBound and shallower than this UpperBound may be at most MaxGap apart.
type Threshold struct {
	UpperBound float64 `yaml:"upper_bound" json:"upper_bound" validate:"gt=0"`
	MaxGap     float64 `yaml:"max_gap" json:"max_gap" validate:"gt=0"`
}

// Thresholds must be ordered by ascending UpperBound.
type Thresholds []Threshold

func DefaultThresholds() Thresholds {
	return Thresholds{
		{UpperBound: 500, MaxGap: 300},
		{UpperBound: 1500, MaxGap: 600},
		{UpperBound: 15000, MaxGap: 1100},
	}
}

// Limit returns the maximum allowed gap at depth. Buckets are [lower, upper),
// depths at or below the deepest bound use the deepest bucket.
func (ts Thresholds) Limit(depth float64) float64 {
	if len(ts) == 0 {
		return math.Inf(1)
	}
	prev := math.Inf(-1)
	for _, t := range ts {
		if depth >= prev && depth < t.UpperBound {
			return t.MaxGap
		}
		prev = t.UpperBound
	}
	return ts[len(ts)-1].MaxGap
}

func (ts Thresholds) Validate() error {
	if len(ts) == 0 {
		return fmt.Errorf("empty threshold table: %w", common.ErrorInvalidValue)
	}
	for i, t := range ts {
		if !(t.MaxGap > 0) || math.IsInf(t.MaxGap, 0) {
			return fmt.Errorf("threshold %v: max gap %v: %w", i, t.MaxGap, common.ErrorInvalidValue)
		}
		if math.IsNaN(t.UpperBound) {
			return fmt.Errorf("threshold %v: upper bound is NaN: %w", i, common.ErrorInvalidValue)
		}
		if i > 0 && t.UpperBound <= ts[i-1].UpperBound {
			return fmt.Errorf("threshold %v: upper bound %v after %v: %w",
				i, t.UpperBound, ts[i-1].UpperBound, common.ErrUnsorted)
		}
	}
	return nil
}

func (ts Thresholds) String() string {
	res := ""
	for i, t := range ts {
		if i > 0 {
			res += ","
		}
		res += fmt.Sprintf("%v:%v", t.UpperBound, t.MaxGap)
	}
	return res
}

// GapInterval is the depth span [Min, Max] between two adjacent original
// samples that lie further apart than the threshold allows.
type GapInterval struct {
	Min float64
	Max float64
}
