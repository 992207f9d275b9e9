package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/uyouii/ocean-profiles/common"
	"github.com/uyouii/ocean-profiles/model"
	"github.com/uyouii/ocean-profiles/utils"
	"github.com/xuri/excelize/v2"
)

const (
	DefaultSheet  = "profile"
	MetadataSheet = "metadata"

	// decimals kept in written values, enough to drop the representation
	// noise of k*step grid values
	DefaultPrecision int32 = 9

	maxSheetNameLen = 31
)

// FormatValue renders v rounded to precision decimals, NaN becomes an empty
// cell.
func FormatValue(v float64, precision int32) string {
	if math.IsNaN(v) {
		return ""
	}
	r := utils.FormatFloat(v, precision)
	if r == 0 {
		r = 0 // no "-0"
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}

func profileHeader(p *model.ResampledProfile) ([]string, []string) {
	header := []string{p.Dimension}
	units := []string{p.DimensionUnit}
	for _, v := range p.Variables {
		header = append(header, v.Name)
		units = append(units, v.Unit)
	}
	return header, units
}

func checkProfile(p *model.ResampledProfile) error {
	if p == nil {
		return fmt.Errorf("nil profile: %w", common.ErrorInvalidValue)
	}
	for _, v := range p.Variables {
		if len(v.Values) != len(p.Grid) {
			return fmt.Errorf("variable %v has %v values on a grid of %v: %w",
				v.Name, len(v.Values), len(p.Grid), common.ErrShapeMismatch)
		}
	}
	return nil
}

// WriteProfileCSV writes a header row, a units row and one row per grid point.
func WriteProfileCSV(w io.Writer, p *model.ResampledProfile, precision int32) error {
	if err := checkProfile(p); err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	header, units := profileHeader(p)
	if err := cw.Write(header); err != nil {
		return err
	}
	if err := cw.Write(units); err != nil {
		return err
	}

	row := make([]string, len(header))
	for i, x := range p.Grid {
		row[0] = FormatValue(x, precision)
		for j, v := range p.Variables {
			row[j+1] = FormatValue(v.Values[i], precision)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteRecordsCSV writes the given columns of records. A column is read from
// the numeric values first and from the string fields otherwise.
func WriteRecordsCSV(w io.Writer, records []model.Record, columns []string, precision int32) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(columns); err != nil {
		return err
	}
	row := make([]string, len(columns))
	for _, r := range records {
		for i, c := range columns {
			if v, ok := r.Values[c]; ok {
				row[i] = FormatValue(v, precision)
			} else {
				row[i] = r.Fields[c]
			}
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// SheetName derives a valid worksheet name from a file signature.
func SheetName(signature string) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return '_'
		}
		return r
	}, strings.Trim(strings.TrimSpace(signature), "'"))
	if len([]rune(name)) > maxSheetNameLen {
		name = string([]rune(name)[:maxSheetNameLen])
	}
	if name == "" || name == MetadataSheet {
		return DefaultSheet
	}
	return name
}

// WriteProfileXLSX writes the profile to a workbook at path: the data on a
// sheet named after the signature and the file metadata plus failed variables
// on a metadata sheet.
func WriteProfileXLSX(path string, p *model.ResampledProfile, precision int32) error {
	if err := checkProfile(p); err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := SheetName(p.Signature)
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}

	// 1. header and units
	header, units := profileHeader(p)
	for i := range header {
		if err := setCell(f, sheet, i+1, 1, header[i]); err != nil {
			return err
		}
		if err := setCell(f, sheet, i+1, 2, units[i]); err != nil {
			return err
		}
	}

	// 2. data rows, masked values stay empty
	for r, x := range p.Grid {
		rowIdx := r + 3
		if err := setCell(f, sheet, 1, rowIdx, utils.FormatFloat(x, precision)); err != nil {
			return err
		}
		for c, v := range p.Variables {
			if math.IsNaN(v.Values[r]) {
				continue
			}
			if err := setCell(f, sheet, c+2, rowIdx, utils.FormatFloat(v.Values[r], precision)); err != nil {
				return err
			}
		}
	}

	// 3. metadata
	if _, err := f.NewSheet(MetadataSheet); err != nil {
		return err
	}
	meta := [][2]string{
		{"signature", p.Signature},
		{"file_type", p.FileType},
		{"comments", p.Comments},
	}
	for _, fail := range p.Failures {
		meta = append(meta, [2]string{"failed:" + fail.Name, fmt.Sprint(fail.Err)})
	}
	for i, kv := range meta {
		if err := setCell(f, MetadataSheet, 1, i+1, kv[0]); err != nil {
			return err
		}
		if err := setCell(f, MetadataSheet, 2, i+1, kv[1]); err != nil {
			return err
		}
	}

	return f.SaveAs(path)
}

func setCell(f *excelize.File, sheet string, col, row int, value interface{}) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	return f.SetCellValue(sheet, cell, value)
}
