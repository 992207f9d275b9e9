package profile

import (
	"math"
	"sort"

	"github.com/uyouii/ocean-profiles/model"
)

// CollapseDuplicates replaces every run of equal x with a single sample whose
// y is the mean of the run's non-NaN y values. The result is sorted by x and
// pairs with a NaN x are dropped.
func CollapseDuplicates(x, y []float64) ([]float64, []float64) {
	n := min(len(x), len(y))

	idx := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if !math.IsNaN(x[i]) {
			idx = append(idx, i)
		}
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return x[idx[a]] < x[idx[b]]
	})

	resX, resY := []float64{}, []float64{}
	for start := 0; start < len(idx); {
		end := start
		sum, cnt := 0.0, 0
		for end < len(idx) && x[idx[end]] == x[idx[start]] {
			if v := y[idx[end]]; !math.IsNaN(v) {
				sum += v
				cnt++
			}
			end++
		}
		resX = append(resX, x[idx[start]])
		resY = append(resY, mean(sum, cnt))
		start = end
	}
	return resX, resY
}

// CollapseRecords groups records by their dimension value. Only dependentKey
// is averaged, every other value and field is copied from the first record of
// the group.
func CollapseRecords(records []model.Record, dimensionKey, dependentKey string) []model.Record {
	idx := make([]int, 0, len(records))
	for i, r := range records {
		if !math.IsNaN(r.Value(dimensionKey)) {
			idx = append(idx, i)
		}
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return records[idx[a]].Value(dimensionKey) < records[idx[b]].Value(dimensionKey)
	})

	res := []model.Record{}
	for start := 0; start < len(idx); {
		first := records[idx[start]]
		end := start
		sum, cnt := 0.0, 0
		for end < len(idx) && records[idx[end]].Value(dimensionKey) == first.Value(dimensionKey) {
			if v := records[idx[end]].Value(dependentKey); !math.IsNaN(v) {
				sum += v
				cnt++
			}
			end++
		}
		collapsed := first.Clone()
		collapsed.Values[dependentKey] = mean(sum, cnt)
		res = append(res, collapsed)
		start = end
	}
	return res
}

func mean(sum float64, cnt int) float64 {
	if cnt == 0 {
		return math.NaN()
	}
	return sum / float64(cnt)
}
