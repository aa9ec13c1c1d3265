package repository

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"SentiPnL/internal/domain/models"
	"SentiPnL/pkg/util"
)

// csvTable is a CSV file read into normalized-header rows.
type csvTable struct {
	path    string
	columns []string
	rows    []map[string]string
}

func (t *csvTable) has(col string) bool {
	for _, c := range t.columns {
		if c == col {
			return true
		}
	}
	return false
}

// firstExisting returns the first path that exists, or ErrSourceNotFound.
func firstExisting(paths []string) (string, error) {
	for _, p := range paths {
		if p == "" {
			continue
		}
		if st, err := os.Stat(p); err == nil && !st.IsDir() {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %v", models.ErrSourceNotFound, paths)
}

func readCSVFile(ctx context.Context, path string) (*csvTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	t, err := readCSV(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	t.path = path
	return t, nil
}

func readCSV(ctx context.Context, r io.Reader) (*csvTable, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty csv")
		}
		return nil, fmt.Errorf("header: %w", err)
	}
	cols := make([]string, len(header))
	for i, h := range header {
		cols[i] = util.NormalizeHeader(h)
	}

	t := &csvTable{columns: cols}
	for line := 2; ; line++ {
		if line%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		row := make(map[string]string, len(cols))
		for i, c := range cols {
			if i < len(rec) {
				row[c] = rec[i]
			}
		}
		t.rows = append(t.rows, row)
	}
	return t, nil
}
