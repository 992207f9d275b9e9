package station

import (
	"fmt"
	"math"
	"sort"

	"github.com/montanaflynn/stats"
	"github.com/uyouii/ocean-profiles/common"
	"github.com/uyouii/ocean-profiles/model"
)

// Align keeps the records of each station whose dimension value also occurs
// in the other station. Record order is preserved and NaN never matches.
func Align(a, b []model.Record, dimensionKey string) ([]model.Record, []model.Record) {
	inA, inB := dimensionSet(a, dimensionKey), dimensionSet(b, dimensionKey)
	return filterRecords(a, inB, dimensionKey), filterRecords(b, inA, dimensionKey)
}

// Offset returns a-b when additive, a/b otherwise.
func Offset(a, b []float64, additive bool) ([]float64, error) {
	if len(a) != len(b) {
		return nil, fmt.Errorf("len(a)=%v, len(b)=%v: %w", len(a), len(b), common.ErrShapeMismatch)
	}
	res := make([]float64, len(a))
	for i := range a {
		if additive {
			res[i] = a[i] - b[i]
		} else {
			res[i] = a[i] / b[i]
		}
	}
	return res, nil
}

// Stats compares dependentKey of input against reference on the dimension
// values both stations share. With fewer than 2 shared rows the input slice is
// returned as is. Otherwise the matched input rows, sorted by dimension, are
// returned as copies carrying the offset and the mean and sample standard
// deviation of the dependent column.
func Stats(input, reference []model.Record, dimensionKey, dependentKey string,
	additive bool) ([]model.Record, error) {
	alignedInput, alignedReference := Align(input, reference, dimensionKey)
	if len(alignedInput) < 2 {
		return input, nil
	}
	sortByDimension(alignedInput, dimensionKey)
	sortByDimension(alignedReference, dimensionKey)

	values := column(alignedInput, dependentKey)
	offsets, err := Offset(values, column(alignedReference, dependentKey), additive)
	if err != nil {
		return nil, fmt.Errorf("offset of %v: %w", dependentKey, err)
	}

	mean, err := stats.Mean(values)
	if err != nil {
		return nil, fmt.Errorf("mean of %v: %w", dependentKey, err)
	}
	stdev, err := stats.StandardDeviationSample(values)
	if err != nil {
		return nil, fmt.Errorf("stdev of %v: %w", dependentKey, err)
	}

	res := make([]model.Record, len(alignedInput))
	for i, r := range alignedInput {
		c := r.Clone()
		c.Values[OffsetKey] = offsets[i]
		c.Values[dependentKey+MeanSuffix] = mean
		c.Values[dependentKey+StdevSuffix] = stdev
		res[i] = c
	}
	return res, nil
}

// Pairs returns the dependent values of input and reference on their shared
// dimension values, both ordered by dimension.
func Pairs(input, reference []model.Record, dimensionKey, dependentKey string) ([]float64, []float64) {
	alignedInput, alignedReference := Align(input, reference, dimensionKey)
	sortByDimension(alignedInput, dimensionKey)
	sortByDimension(alignedReference, dimensionKey)
	return column(alignedInput, dependentKey), column(alignedReference, dependentKey)
}

func dimensionSet(records []model.Record, dimensionKey string) map[float64]struct{} {
	res := make(map[float64]struct{}, len(records))
	for _, r := range records {
		if v := r.Value(dimensionKey); !math.IsNaN(v) {
			res[v] = struct{}{}
		}
	}
	return res
}

func filterRecords(records []model.Record, keep map[float64]struct{}, dimensionKey string) []model.Record {
	res := []model.Record{}
	for _, r := range records {
		if _, ok := keep[r.Value(dimensionKey)]; ok {
			res = append(res, r)
		}
	}
	return res
}

func sortByDimension(records []model.Record, dimensionKey string) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Value(dimensionKey) < records[j].Value(dimensionKey)
	})
}

func column(records []model.Record, key string) []float64 {
	res := make([]float64, len(records))
	for i, r := range records {
		res[i] = r.Value(key)
	}
	return res
}
