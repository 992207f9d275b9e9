package vocab

import (
	_ "embed"
	"fmt"
	"sort"

	"github.com/uyouii/ocean-profiles/common"
	"gopkg.in/yaml.v3"
)

//go:embed vocabulary.yaml
var defaultVocabulary []byte

// DataType maps a variable name to its vocabulary identifier. Exchange names
// link to the reference name sharing their identifier, reference names have
// no parent.
type DataType struct {
	Name        string
	Identifier  string
	Parent      *DataType
	IsReference bool
}

func (d *DataType) String() string {
	return d.Name
}

type entry struct {
	Name       string `yaml:"name"`
	Identifier string `yaml:"identifier"`
}

type document struct {
	ReferenceTypes []entry `yaml:"reference_types"`
	ExchangeTypes  []entry `yaml:"exchange_types"`
}

type Dictionary struct {
	types     map[string]*DataType
	reference []entry
}

// Default parses the embedded vocabulary.
func Default() (*Dictionary, error) {
	return Parse(defaultVocabulary)
}

func Parse(data []byte) (*Dictionary, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse vocabulary: %w", err)
	}

	d := &Dictionary{
		types:     map[string]*DataType{},
		reference: doc.ReferenceTypes,
	}
	for _, e := range doc.ReferenceTypes {
		if e.Name == "" || e.Identifier == "" {
			return nil, fmt.Errorf("reference type %+v: %w", e, common.ErrorInvalidValue)
		}
		d.types[e.Name] = &DataType{Name: e.Name, Identifier: e.Identifier, IsReference: true}
	}
	for _, e := range doc.ExchangeTypes {
		if e.Name == "" || e.Identifier == "" {
			return nil, fmt.Errorf("exchange type %+v: %w", e, common.ErrorInvalidValue)
		}
		dt := &DataType{Name: e.Name, Identifier: e.Identifier}
		if ref, ok := d.ReferenceType(e.Identifier); ok {
			dt.Parent = d.types[ref]
		}
		d.types[e.Name] = dt
	}
	return d, nil
}

func (d *Dictionary) Get(name string) (*DataType, bool) {
	dt, ok := d.types[name]
	return dt, ok
}

func (d *Dictionary) Identifier(name string) (string, bool) {
	dt, ok := d.types[name]
	if !ok {
		return "", false
	}
	return dt.Identifier, true
}

// ReferenceType returns the first reference name, in file order, carrying identifier.
func (d *Dictionary) ReferenceType(identifier string) (string, bool) {
	for _, e := range d.reference {
		if e.Identifier == identifier {
			return e.Name, true
		}
	}
	return "", false
}

func (d *Dictionary) Names() []string {
	res := make([]string, 0, len(d.types))
	for name := range d.types {
		res = append(res, name)
	}
	sort.Strings(res)
	return res
}

func (d *Dictionary) Len() int {
	return len(d.types)
}
