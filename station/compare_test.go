package station

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/uyouii/ocean-profiles/common"
	"github.com/uyouii/ocean-profiles/model"
)

func records(key string, depths, values []float64) []model.Record {
	res := make([]model.Record, len(depths))
	for i := range depths {
		r := model.NewRecord()
		r.Values["DEPTH"] = depths[i]
		r.Values[key] = values[i]
		r.Fields["ROW"] = string(rune('a' + i))
		res[i] = r
	}
	return res
}

func TestAlign_InnerJoinOnDimension(t *testing.T) {
	a := records("OXYGEN", []float64{10, 20, 30, math.NaN(), 50}, []float64{1, 2, 3, 4, 5})
	b := records("OXYGEN", []float64{50, 30, 40, math.NaN()}, []float64{6, 7, 8, 9})

	alignedA, alignedB := Align(a, b, "DEPTH")
	require.Len(t, alignedA, 2)
	require.Len(t, alignedB, 2)
	require.Equal(t, 30.0, alignedA[0].Value("DEPTH"))
	require.Equal(t, 50.0, alignedA[1].Value("DEPTH"))
	// order of each side is kept
	require.Equal(t, 50.0, alignedB[0].Value("DEPTH"))
	require.Equal(t, 30.0, alignedB[1].Value("DEPTH"))

	alignedA, alignedB = Align(a, nil, "DEPTH")
	require.Empty(t, alignedA)
	require.Empty(t, alignedB)
}

func TestOffset(t *testing.T) {
	res, err := Offset([]float64{4, 9}, []float64{1, 3}, true)
	require.NoError(t, err)
	require.Equal(t, []float64{3, 6}, res)

	res, err = Offset([]float64{4, 9}, []float64{2, 3}, false)
	require.NoError(t, err)
	require.Equal(t, []float64{2, 3}, res)

	_, err = Offset([]float64{1}, []float64{1, 2}, true)
	require.ErrorIs(t, err, common.ErrShapeMismatch)
}

func TestStats(t *testing.T) {
	input := records("SALNTY", []float64{300, 100, 200, 400}, []float64{35.3, 35.1, 35.2, 35.9})
	reference := records("SALNTY", []float64{100, 200, 300, 500}, []float64{35.0, 35.0, 35.0, 35.0})

	res, err := Stats(input, reference, "DEPTH", "SALNTY", true)
	require.NoError(t, err)
	require.Len(t, res, 3)

	expectedOffsets := []float64{0.1, 0.2, 0.3}
	for i, r := range res {
		require.Equal(t, float64(100*(i+1)), r.Value("DEPTH"))
		require.InDelta(t, expectedOffsets[i], r.Value(OffsetKey), 1e-9)
		require.InDelta(t, 35.2, r.Value("SALNTY"+MeanSuffix), 1e-9)
		require.InDelta(t, 0.1, r.Value("SALNTY"+StdevSuffix), 1e-9)
	}

	// the input is not modified
	_, ok := input[0].Values[OffsetKey]
	require.False(t, ok)
	require.Equal(t, 300.0, input[0].Value("DEPTH"))
}

func TestStats_Multiplicative(t *testing.T) {
	input := records("OXYGEN", []float64{1, 2}, []float64{220, 180})
	reference := records("OXYGEN", []float64{1, 2}, []float64{200, 200})

	res, err := Stats(input, reference, "DEPTH", "OXYGEN", false)
	require.NoError(t, err)
	require.InDelta(t, 1.1, res[0].Value(OffsetKey), 1e-12)
	require.InDelta(t, 0.9, res[1].Value(OffsetKey), 1e-12)
}

func TestStats_NoComparisonReturnsInput(t *testing.T) {
	input := records("SALNTY", []float64{100, 200}, []float64{35.1, 35.2})
	reference := records("SALNTY", []float64{100, 300}, []float64{35.0, 35.0})

	res, err := Stats(input, reference, "DEPTH", "SALNTY", true)
	require.NoError(t, err)
	require.Equal(t, input, res)
	require.Same(t, &input[0], &res[0])
}

func TestStats_DuplicateDimensionIsShapeMismatch(t *testing.T) {
	input := records("SALNTY", []float64{100, 100, 200}, []float64{35.1, 35.2, 35.3})
	reference := records("SALNTY", []float64{100, 200}, []float64{35.0, 35.0})

	_, err := Stats(input, reference, "DEPTH", "SALNTY", true)
	require.ErrorIs(t, err, common.ErrShapeMismatch)
}

func TestPairs(t *testing.T) {
	input := records("SALNTY", []float64{300, 100, 200, 400}, []float64{35.3, 35.1, 35.2, 35.9})
	reference := records("SALNTY", []float64{200, 100, 300, 500}, []float64{34.2, 34.1, 34.3, 34.5})

	in, ref := Pairs(input, reference, "DEPTH", "SALNTY")
	require.Equal(t, []float64{35.1, 35.2, 35.3}, in)
	require.Equal(t, []float64{34.1, 34.2, 34.3}, ref)
	require.Equal(t, 300.0, input[0].Value("DEPTH"))
}
