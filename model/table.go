package model

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/uyouii/ocean-profiles/common"
)

// columns that are numeric but describe the cast rather than the water column
var castColumns = map[string]bool{
	"STNNBR":    true,
	"CASTNO":    true,
	"SAMPNO":    true,
	"BTLNBR":    true,
	"LATITUDE":  true,
	"LONGITUDE": true,
	"DEPTH":     true,
}

// Record is one row of a station table. Numeric columns live in Values with
// NaN for missing data, everything else in Fields.
type Record struct {
	Values map[string]float64
	Fields map[string]string
	Time   time.Time
}

func NewRecord() Record {
	return Record{
		Values: map[string]float64{},
		Fields: map[string]string{},
	}
}

// Value returns NaN when key is absent.
func (r Record) Value(key string) float64 {
	v, ok := r.Values[key]
	if !ok {
		return math.NaN()
	}
	return v
}

func (r Record) Clone() Record {
	res := Record{
		Values: make(map[string]float64, len(r.Values)),
		Fields: make(map[string]string, len(r.Fields)),
		Time:   r.Time,
	}
	for k, v := range r.Values {
		res.Values[k] = v
	}
	for k, v := range r.Fields {
		res.Fields[k] = v
	}
	return res
}

// Table is a parsed station file with its metadata as plain members.
type Table struct {
	FileType  string
	Signature string
	Comments  string
	Metadata  map[string]string
	Columns   []string
	Units     map[string]string
	Records   []Record
}

func (t *Table) IsNumeric(column string) bool {
	for _, r := range t.Records {
		if _, ok := r.Values[column]; ok {
			return true
		}
	}
	return false
}

func (t *Table) NumericColumns() []string {
	res := []string{}
	for _, c := range t.Columns {
		if t.IsNumeric(c) {
			res = append(res, c)
		}
	}
	return res
}

func (t *Table) Column(key string) []float64 {
	res := make([]float64, len(t.Records))
	for i, r := range t.Records {
		res[i] = r.Value(key)
	}
	return res
}

// Profile extracts a profile against dimensionKey. Without names every numeric
// column except the dimension, quality flags and cast descriptors is taken.
func (t *Table) Profile(dimensionKey string, names ...string) (*Profile, error) {
	if t == nil || !t.IsNumeric(dimensionKey) {
		return nil, fmt.Errorf("dimension %q is not a numeric column: %w", dimensionKey, common.ErrorInvalidValue)
	}

	if len(names) == 0 {
		for _, c := range t.NumericColumns() {
			if c == dimensionKey || castColumns[c] || strings.Contains(c, "_FLAG") {
				continue
			}
			names = append(names, c)
		}
	}

	p := &Profile{
		Dimension:     dimensionKey,
		DimensionUnit: t.Units[dimensionKey],
		X:             t.Column(dimensionKey),
		Signature:     t.Signature,
		FileType:      t.FileType,
		Comments:      t.Comments,
	}
	for _, name := range names {
		if !t.IsNumeric(name) {
			return nil, fmt.Errorf("variable %q is not a numeric column: %w", name, common.ErrorInvalidValue)
		}
		p.Variables = append(p.Variables, Variable{
			Name:   name,
			Unit:   t.Units[name],
			Values: t.Column(name),
		})
	}
	return p, nil
}

// Position returns the cast longitude and latitude, taken from the first
// record or, for CTD files, from the header metadata.
func (t *Table) Position() (lon, lat float64, ok bool) {
	lon, lat = math.NaN(), math.NaN()
	if len(t.Records) > 0 {
		lon, lat = t.Records[0].Value("LONGITUDE"), t.Records[0].Value("LATITUDE")
	}
	if math.IsNaN(lon) {
		lon = t.metadataFloat("LONGITUDE")
	}
	if math.IsNaN(lat) {
		lat = t.metadataFloat("LATITUDE")
	}
	return lon, lat, !math.IsNaN(lon) && !math.IsNaN(lat)
}

func (t *Table) metadataFloat(key string) float64 {
	f, err := strconv.ParseFloat(t.Metadata[key], 64)
	if err != nil {
		return math.NaN()
	}
	return f
}
