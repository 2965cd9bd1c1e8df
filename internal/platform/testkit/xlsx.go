package testkit

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

// XLSX builds an in-memory workbook whose first sheet holds header followed by rows
// time.Time cells are stored as Excel dates, everything else as typed values
func XLSX(t *testing.T, header []string, rows ...[]any) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	head := make([]any, len(header))
	for i, h := range header {
		head[i] = h
	}
	all := append([][]any{head}, rows...)
	for i, row := range all {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		r := row
		if err := f.SetSheetRow(sheet, cell, &r); err != nil {
			t.Fatalf("write row %d: %v", i+1, err)
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return buf.Bytes()
}

// WriteXLSX writes XLSX output to dir/name and returns the path
func WriteXLSX(t *testing.T, dir, name string, header []string, rows ...[]any) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, XLSX(t, header, rows...), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}
