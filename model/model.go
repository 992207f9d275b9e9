package model

import (
	"fmt"
)

type InterpMethod string

const (
	InterpPchip  InterpMethod = "pchip"
	InterpLinear InterpMethod = "linear"
)

func (m InterpMethod) Valid() bool {
	return m == InterpPchip || m == InterpLinear
}

// Range is a closed interval [Lower, Upper].
type Range struct {
	Lower float64
	Upper float64
}

func (r Range) Contains(x float64) bool {
	return x >= r.Lower && x <= r.Upper
}

type Variable struct {
	Name   string
	Unit   string
	Values []float64
}

// Profile is one station cast: a dimension series (depth, pressure or a density
// surrogate) and dependent variables aligned with it by position.
type Profile struct {
	Dimension     string
	DimensionUnit string
	X             []float64
	Variables     []Variable

	Signature string
	FileType  string
	Comments  string
}

func (p *Profile) DebugString() string {
	if p == nil {
		return "<nil profile>"
	}
	names := make([]string, 0, len(p.Variables))
	for _, v := range p.Variables {
		names = append(names, v.Name)
	}
	return fmt.Sprintf("dimension: %v, points: %v, variables: %+v", p.Dimension, len(p.X), names)
}

type VariableFailure struct {
	Name string
	Err  error
}

// ResampledProfile holds gap masked variables on a shared regular grid.
type ResampledProfile struct {
	Dimension     string
	DimensionUnit string
	Grid          []float64
	Variables     []Variable
	Failures      []VariableFailure

	Signature string
	FileType  string
	Comments  string
}

func (p *ResampledProfile) Variable(name string) (Variable, bool) {
	if p == nil {
		return Variable{}, false
	}
	for _, v := range p.Variables {
		if v.Name == name {
			return v, true
		}
	}
	return Variable{}, false
}

// Records turns every grid point into a record keyed by the dimension and
// the variable names.
func (p *ResampledProfile) Records() []Record {
	if p == nil {
		return nil
	}
	res := make([]Record, len(p.Grid))
	for i, x := range p.Grid {
		r := NewRecord()
		r.Values[p.Dimension] = x
		for _, v := range p.Variables {
			if i < len(v.Values) {
				r.Values[v.Name] = v.Values[i]
			}
		}
		res[i] = r
	}
	return res
}

func (p *ResampledProfile) IsEmpty() bool {
	if p == nil {
		return true
	}
	return len(p.Grid) == 0
}

func (p *ResampledProfile) DebugString() string {
	if p == nil {
		return "<nil resampled profile>"
	}
	return fmt.Sprintf("dimension: %v, gridSize: %v, variables: %v, failures: %v",
		p.Dimension, len(p.Grid), len(p.Variables), len(p.Failures))
}
