package gutachten

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
)

// Export format of validated tables: semicolon-separated values, UTF-8 with
// BOM, one file per table. Downstream consumers re-read these files, so the
// format is a compatibility contract, not an implementation detail.
const (
	exportSeparator = ';'
	utf8BOM         = "\uFEFF"
)

// ExportFileName returns the canonical on-disk name for table n of a
// processed document.
func ExportFileName(pdfID string, n int) string {
	return fmt.Sprintf("%s_table_%d.csv", pdfID, n)
}

// WriteTable writes one table to path in the export format.
func WriteTable(table RawTable, path string) error {
	var buf bytes.Buffer
	buf.WriteString(utf8BOM)

	w := csv.NewWriter(&buf)
	w.Comma = exportSeparator
	if err := w.Write(table.Columns); err != nil {
		return fmt.Errorf("failed to encode header: %w", err)
	}
	for _, row := range table.Rows {
		// rows shorter than the header pad out to keep the grid rectangular
		padded := append(append([]string{}, row...), make([]string, max(0, len(table.Columns)-len(row)))...)
		if err := w.Write(padded); err != nil {
			return fmt.Errorf("failed to encode row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to encode table: %w", err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// ReadTable reads a table back from the export format, reproducing the cell
// values that were written.
func ReadTable(path string) (RawTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return RawTable{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	data = bytes.TrimPrefix(data, []byte(utf8BOM))

	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = exportSeparator
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return RawTable{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if len(records) == 0 {
		return RawTable{}, nil
	}
	return RawTable{Columns: records[0], Rows: records[1:]}, nil
}

// ExportTables writes every table to dir using the canonical naming scheme
// and returns the written paths. A failing table aborts the export.
func ExportTables(tables []RawTable, dir, pdfID string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create export directory: %w", err)
	}

	paths := make([]string, 0, len(tables))
	for i, table := range tables {
		path := filepath.Join(dir, ExportFileName(pdfID, i+1))
		if err := WriteTable(table, path); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}
