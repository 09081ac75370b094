// Package export writes research result sets to CSV files.
package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"video-research/internal/domain"
)

// bom is the UTF-8 byte order mark spreadsheet tools use to detect the encoding.
var bom = []byte{0xEF, 0xBB, 0xBF}

// ErrNoResultSet is returned when there is nothing to export.
var ErrNoResultSet = errors.New("no result set to export")

// Write encodes rs as UTF-8 CSV with a leading BOM. The header is the workflow's fixed column
// set, followed by one line per row in result order. Null values are written as empty cells.
func Write(w io.Writer, rs *domain.ResultSet) error {
	if rs == nil {
		return ErrNoResultSet
	}

	if _, err := w.Write(bom); err != nil {
		return fmt.Errorf("writing byte order mark: %w", err)
	}

	cols := rs.Workflow.Columns()
	if len(cols) == 0 {
		return fmt.Errorf("unknown workflow %q", rs.Workflow)
	}

	cw := csv.NewWriter(w)

	header := make([]string, len(cols))
	for i, col := range cols {
		header[i] = string(col)
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	record := make([]string, len(cols))
	for i := range rs.Rows {
		for j, col := range cols {
			record[j] = rs.Rows[i].Cell(col)
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing row %d: %w", i+1, err)
		}
	}

	cw.Flush()

	return cw.Error()
}

// WriteFile exports rs to path, creating parent directories as needed.
// It returns the path that was written.
func WriteFile(path string, rs *domain.ResultSet) (string, error) {
	if path == "" {
		return "", errors.New("export path is empty")
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("creating export directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating export file: %w", err)
	}

	if err := Write(f, rs); err != nil {
		_ = f.Close()
		return "", err
	}

	if err := f.Close(); err != nil {
		return "", fmt.Errorf("closing export file: %w", err)
	}

	return path, nil
}

// FileName suggests a download name for a workflow export.
func FileName(workflow domain.Workflow) string {
	return fmt.Sprintf("%s_results.csv", workflow)
}
