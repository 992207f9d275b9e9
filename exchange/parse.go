package exchange

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/uyouii/ocean-profiles/common"
	"github.com/uyouii/ocean-profiles/model"
)

// Parse reads the text of a bottle or CTD exchange file.
func Parse(text string) (*model.Table, error) {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")

	t := &model.Table{
		Metadata: map[string]string{},
		Units:    map[string]string{},
	}

	// 1. file type and signature
	i := nextLine(lines, 0)
	if i == len(lines) {
		return nil, fmt.Errorf("empty file: %w", common.ErrMalformedFile)
	}
	fileType, signature, _ := strings.Cut(strings.TrimSpace(lines[i]), ",")
	if fileType != "BOTTLE" && fileType != "CTD" {
		return nil, fmt.Errorf("line %v: unknown file type %q: %w", i+1, fileType, common.ErrMalformedFile)
	}
	t.FileType, t.Signature = fileType, strings.TrimSpace(signature)

	// 2. comments and KEY = VALUE headers up to the column names
	comments := strings.Builder{}
	for i = i + 1; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "#") {
			comments.WriteString(line + "\n")
			continue
		}
		if key, value, ok := strings.Cut(line, "="); ok && !strings.Contains(line, ",") {
			t.Metadata[strings.TrimSpace(key)] = strings.TrimSpace(value)
			continue
		}
		break
	}
	t.Comments = comments.String()
	if i == len(lines) {
		return nil, fmt.Errorf("no column header: %w", common.ErrMalformedFile)
	}
	t.Columns = splitFields(lines[i])

	// 3. units
	i = nextLine(lines, i+1)
	if i == len(lines) {
		return nil, fmt.Errorf("no units line: %w", common.ErrMalformedFile)
	}
	units := splitFields(lines[i])
	if len(units) != len(t.Columns) {
		return nil, fmt.Errorf("line %v: %v units for %v columns: %w",
			i+1, len(units), len(t.Columns), common.ErrMalformedFile)
	}
	for j, c := range t.Columns {
		t.Units[c] = units[j]
	}

	// 4. data rows
	for i = i + 1; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, endData) {
			break
		}
		fields := splitFields(line)
		if len(fields) != len(t.Columns) {
			return nil, fmt.Errorf("line %v: %v values for %v columns: %w",
				i+1, len(fields), len(t.Columns), common.ErrMalformedFile)
		}
		record, err := parseRecord(t.Columns, fields, t.Metadata)
		if err != nil {
			return nil, fmt.Errorf("line %v: %w", i+1, err)
		}
		t.Records = append(t.Records, record)
	}

	addDepthColumn(t)
	return t, nil
}

func parseRecord(columns, fields []string, metadata map[string]string) (model.Record, error) {
	r := model.NewRecord()
	for j, c := range columns {
		value := fields[j]
		if stringColumns[c] {
			r.Fields[c] = value
			continue
		}
		if value == "" {
			r.Values[c] = math.NaN()
			continue
		}
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			r.Fields[c] = value
			continue
		}
		r.Values[c] = replaceFill(f)
	}

	date, ok := r.Fields["DATE"]
	if !ok {
		date, ok = metadata["DATE"]
	}
	if !ok {
		return r, nil
	}
	clock, ok := r.Fields["TIME"]
	if !ok {
		clock = metadata["TIME"]
	}
	ts, err := parseTime(date, clock)
	if err != nil {
		return r, err
	}
	r.Time = ts
	return r, nil
}

// parseTime reads DATE as YYYYMMDD and TIME as HHMM, a missing TIME is 00:00.
func parseTime(date, clock string) (time.Time, error) {
	if len(clock) < 4 {
		clock = strings.Repeat("0", 4-len(clock)) + clock
	}
	ts, err := time.Parse("200601021504", date+clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("date %q time %q: %w", date, clock, common.ErrMalformedFile)
	}
	return ts.UTC(), nil
}

func addDepthColumn(t *model.Table) {
	for _, name := range depthColumns {
		if !t.IsNumeric(name) {
			continue
		}
		for _, r := range t.Records {
			r.Values[DepthColumn] = r.Value(name)
		}
		t.Columns = append(t.Columns, DepthColumn)
		t.Units[DepthColumn] = t.Units[name]
		return
	}
}

func replaceFill(f float64) float64 {
	for _, fill := range fillValues {
		if f == fill {
			return math.NaN()
		}
	}
	return f
}

func splitFields(line string) []string {
	fields := strings.Split(strings.TrimSpace(line), ",")
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	return fields
}

func nextLine(lines []string, from int) int {
	for i := from; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) != "" {
			return i
		}
	}
	return len(lines)
}
