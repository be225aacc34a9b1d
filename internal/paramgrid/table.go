package paramgrid

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"unicode/utf8"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// DefaultSeparator is the column separator of the parameter table.
const DefaultSeparator = '\t'

// MalformedParameterRowError is returned when a row is requested with a
// non-positive 1-based index.
type MalformedParameterRowError struct {
	Line int
}

func (e *MalformedParameterRowError) Error() string {
	return fmt.Sprintf("parameter row must be 1 or greater, got %d", e.Line)
}

// ParseSeparator turns a flag or config value such as "\t", "tab" or "," into
// a single separator rune.
func ParseSeparator(s string) (rune, error) {
	switch s {
	case "", `\t`, "tab", "\t":
		return '\t', nil
	}
	r, size := utf8.DecodeRuneInString(s)
	if size != len(s) || r == utf8.RuneError || r == '"' || r == '\n' || r == '\r' {
		return 0, fmt.Errorf("invalid separator %q: must be a single character", s)
	}
	return r, nil
}

// Write writes g as a delimited table. The first column is an unnamed 0-based
// row index; the header row names the remaining columns.
func Write(w io.Writer, g Grid, sep rune) error {
	cw := csv.NewWriter(w)
	cw.Comma = sep

	header := append([]string{""}, g.Columns...)
	if err := cw.Write(header); err != nil {
		return err
	}
	for i, row := range g.Rows {
		record := make([]string, 0, len(row)+1)
		record = append(record, strconv.Itoa(i))
		for c, v := range row {
			s, err := FormatValue(v)
			if err != nil {
				return fmt.Errorf("row %d column %q: %w", i, g.Columns[c], err)
			}
			record = append(record, s)
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFile writes g to path, replacing any existing file.
func WriteFile(path string, g Grid, sep rune) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create parameter table %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close parameter table %s: %w", path, cerr)
		}
	}()
	if err := Write(f, g, sep); err != nil {
		return fmt.Errorf("failed to write parameter table %s: %w", path, err)
	}
	return nil
}

// FormatValue renders a primitive cell value. Integers are written in full,
// other numbers in their shortest exact form, bools as true/false.
func FormatValue(v cty.Value) (string, error) {
	if v.IsNull() || !v.IsKnown() {
		return "", errors.New("cannot format a null or unknown value")
	}
	switch v.Type() {
	case cty.Number:
		bf := v.AsBigFloat()
		if bf.IsInt() {
			n, _ := bf.Int(nil)
			return n.String(), nil
		}
		return bf.Text('g', -1), nil
	case cty.Bool:
		return strconv.FormatBool(v.True()), nil
	case cty.String:
		return v.AsString(), nil
	}
	s, err := convert.Convert(v, cty.String)
	if err != nil {
		return "", fmt.Errorf("parameter values must be numbers, bools or strings, got %s", v.Type().FriendlyName())
	}
	return s.AsString(), nil
}

// ParseValue infers a cell's type: a number if it parses as one, then a bool,
// otherwise a string.
func ParseValue(s string) cty.Value {
	if n, err := cty.ParseNumberVal(s); err == nil {
		return n
	}
	switch s {
	case "true", "True":
		return cty.True
	case "false", "False":
		return cty.False
	}
	return cty.StringVal(s)
}

// ExtractRow reads the table at path and returns its line-th data row
// (1-based) keyed by column name. Array-job tasks call this with their task
// index.
func ExtractRow(path string, line int, sep rune) (map[string]cty.Value, error) {
	if line <= 0 {
		return nil, &MalformedParameterRowError{Line: line}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open parameter table %s: %w", path, err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.Comma = sep
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header of parameter table %s: %w", path, err)
	}
	columns := append([]string(nil), header[1:]...)

	for n := 1; ; n++ {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parameter table %s has %d rows, row %d requested", path, n-1, line)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read parameter table %s: %w", path, err)
		}
		if n < line {
			continue
		}
		row := make(map[string]cty.Value, len(columns))
		for c, name := range columns {
			row[name] = ParseValue(record[c+1])
		}
		return row, nil
	}
}
