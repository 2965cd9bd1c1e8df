// Package sheet reads the first worksheet of an xlsx workbook into a header
// plus raw string rows
package sheet

import (
	"bytes"
	"io"
	"strings"

	perr "telejoin/internal/platform/errors"

	"github.com/xuri/excelize/v2"
)

// Table is the first worksheet of a workbook
// Cells hold raw values: dates come back as Excel serials, not formatted text
type Table struct {
	Header   []string
	Rows     [][]string
	Date1904 bool
}

// Open reads the workbook at path
func Open(path string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeFileFormat, "open workbook %s", path)
	}
	defer func() { _ = f.Close() }()
	return read(f)
}

// Read reads a workbook from r
func Read(r io.Reader) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeFileFormat, "open workbook")
	}
	defer func() { _ = f.Close() }()
	return read(f)
}

// Parse reads a workbook held in memory
func Parse(payload []byte) (*Table, error) {
	if len(payload) == 0 {
		return nil, perr.FileFormatf("empty workbook")
	}
	return Read(bytes.NewReader(payload))
}

func read(f *excelize.File) (*Table, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, perr.FileFormatf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeFileFormat, "read sheet %q", sheets[0])
	}

	t := &Table{}
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		t.Date1904 = *props.Date1904
	}
	if len(rows) == 0 {
		return t, nil
	}
	t.Header = make([]string, len(rows[0]))
	for i, h := range rows[0] {
		t.Header[i] = strings.TrimSpace(h)
	}
	t.Rows = rows[1:]
	return t, nil
}

// Columns resolves header names to column indexes, in the order given
// Every missing name is reported in one FileFormat error
func (t *Table) Columns(names ...string) ([]int, error) {
	idx := make([]int, len(names))
	var missing []string
	for i, name := range names {
		idx[i] = t.index(strings.TrimSpace(name))
		if idx[i] < 0 {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, perr.WithField(
			perr.FileFormatf("missing columns: %s", strings.Join(missing, ", ")),
			strings.Join(missing, ","),
		)
	}
	return idx, nil
}

func (t *Table) index(name string) int {
	for i, h := range t.Header {
		if h == name {
			return i
		}
	}
	return -1
}

// Cell returns the cell at row r, column c; short rows read as empty
func (t *Table) Cell(r, c int) string {
	if r < 0 || r >= len(t.Rows) || c < 0 || c >= len(t.Rows[r]) {
		return ""
	}
	return t.Rows[r][c]
}

// Len is the number of data rows, header excluded
func (t *Table) Len() int { return len(t.Rows) }
