// Package casetable loads, mutates and persists CSV case tables.
//
// A table is a rectangular grid of string cells. Row 0 is the header.
// Ragged input is rejected at load time rather than padded, so every
// column index that is valid for one row is valid for all of them.
package casetable

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Table is an in-memory case table.
type Table struct {
	rows  [][]string
	width int

	// Source text, so that untouched cells are written back byte for byte.
	bom    bool
	source []record
	tail   string
}

// record is the source form of one row.
type record struct {
	lead   string   // blank lines skipped before the row
	fields []string // field text as written, nil when it could not be split
	eol    string
	edited []bool
}

// Load reads and parses the case table at path.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	t, err := parse(data)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	return t, nil
}

// Parse reads a case table from r.
func Parse(r io.Reader) (*Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &ParseError{Err: err}
	}
	t, err := parse(data)
	if err != nil {
		return nil, &ParseError{Err: err}
	}
	return t, nil
}

func parse(data []byte) (*Table, error) {
	t := &Table{}
	if bytes.HasPrefix(data, utf8BOM) {
		t.bom = true
		data = data[len(utf8BOM):]
	}

	reader := csv.NewReader(bytes.NewReader(data))
	// 0 means every record must match the header's field count.
	reader.FieldsPerRecord = 0
	// Recorded coercion messages carry an unescaped quote.
	reader.LazyQuotes = true

	var offset int64
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		end := reader.InputOffset()
		t.rows = append(t.rows, row)
		t.source = append(t.source, splitRecord(string(data[offset:end]), len(row)))
		offset = end
	}
	if len(t.rows) == 0 {
		return nil, errors.New("missing header row")
	}

	t.tail = string(data[offset:])
	t.width = len(t.rows[0])
	return t, nil
}

// splitRecord cuts the source text of one row into its leading blank lines,
// its fields and its line ending. Fields are split the way the lazy-quoting
// reader reads them; when the count does not match the decoded row the
// fields are left nil and the row is re-encoded on write.
func splitRecord(raw string, want int) record {
	var rec record
	for {
		blank := ""
		if strings.HasPrefix(raw, "\r\n") {
			blank = "\r\n"
		} else if strings.HasPrefix(raw, "\n") {
			blank = "\n"
		}
		if blank == "" {
			break
		}
		rec.lead += blank
		raw = raw[len(blank):]
	}
	switch {
	case strings.HasSuffix(raw, "\r\n"):
		rec.eol = "\r\n"
	case strings.HasSuffix(raw, "\n"):
		rec.eol = "\n"
	}
	line := strings.TrimSuffix(raw, rec.eol)

	var fields []string
	i := 0
	for {
		start := i
		if i < len(line) && line[i] == '"' {
			i++
			for i < len(line) {
				if line[i] == '"' {
					if i+1 < len(line) && line[i+1] == '"' {
						i += 2
						continue
					}
					if i+1 == len(line) || line[i+1] == ',' {
						i++
						break
					}
				}
				i++
			}
		} else {
			for i < len(line) && line[i] != ',' {
				i++
			}
		}
		fields = append(fields, line[start:i])
		if i >= len(line) {
			break
		}
		i++ // comma
	}

	if len(fields) == want {
		rec.fields = fields
	}
	rec.edited = make([]bool, want)
	return rec
}

// Len returns the number of rows, header included.
func (t *Table) Len() int {
	return len(t.rows)
}

// Width returns the number of columns.
func (t *Table) Width() int {
	return t.width
}

// Header returns a copy of row 0.
func (t *Table) Header() []string {
	return append([]string(nil), t.rows[0]...)
}

// Row returns a copy of the given row.
func (t *Table) Row(row int) ([]string, error) {
	if row < 0 || row >= len(t.rows) {
		return nil, t.indexError(row, 0)
	}
	return append([]string(nil), t.rows[row]...), nil
}

// Cell returns the value at (row, column).
func (t *Table) Cell(row, column int) (string, error) {
	if !t.inBounds(row, column) {
		return "", t.indexError(row, column)
	}
	return t.rows[row][column], nil
}

// SetCell overwrites the value at (row, column) in place.
func (t *Table) SetCell(row, column int, value string) error {
	if !t.inBounds(row, column) {
		return t.indexError(row, column)
	}
	if t.rows[row][column] == value {
		return nil
	}
	t.rows[row][column] = value
	t.source[row].edited[column] = true
	return nil
}

// WriteTo serializes the table. Cells that were never changed are written
// exactly as they appeared in the source; changed cells are CSV-encoded.
func (t *Table) WriteTo(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	if t.bom {
		buf.Write(utf8BOM)
	}
	for i, row := range t.rows {
		src := t.source[i]
		buf.WriteString(src.lead)
		for j, value := range row {
			if j > 0 {
				buf.WriteByte(',')
			}
			if src.fields != nil && !src.edited[j] {
				buf.WriteString(src.fields[j])
				continue
			}
			field, err := encodeField(value)
			if err != nil {
				return 0, fmt.Errorf("encode case table: %w", err)
			}
			buf.WriteString(field)
		}
		buf.WriteString(src.eol)
	}
	buf.WriteString(t.tail)

	n, err := w.Write(buf.Bytes())
	return int64(n), err
}

// encodeField quotes value the way encoding/csv writes a field.
func encodeField(value string) (string, error) {
	var b strings.Builder
	cw := csv.NewWriter(&b)
	if err := cw.Write([]string{value}); err != nil {
		return "", err
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return "", err
	}
	return strings.TrimSuffix(b.String(), "\n"), nil
}

func (t *Table) inBounds(row, column int) bool {
	return row >= 0 && row < len(t.rows) && column >= 0 && column < t.width
}

func (t *Table) indexError(row, column int) error {
	return &IndexError{Row: row, Column: column, Rows: len(t.rows), Width: t.width}
}
