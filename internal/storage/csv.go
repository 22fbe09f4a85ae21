package storage

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"drivelog/internal/core"
)

// CSVStore keeps the journal in a single comma-separated file with a header
// row.
type CSVStore struct {
	path string
}

func NewCSVStore(path string) *CSVStore {
	return &CSVStore{path: path}
}

func (s *CSVStore) Path() string { return s.path }

// Load reads the whole file. A missing file is an empty table.
func (s *CSVStore) Load(ctx context.Context) (core.Table, error) {
	f, err := os.Open(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		slog.DebugContext(ctx, "Data file not found, starting empty", "path", s.path)
		return core.Table{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open data file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read data file: %w", err)
	}

	t, err := core.DecodeTable(rows)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.path, err)
	}
	return t, nil
}

// Persist rewrites the file with t. The new content is written to a
// temporary file in the same directory and renamed over the old one, so a
// failed write leaves the previous file intact.
func (s *CSVStore) Persist(ctx context.Context, t core.Table) (err error) {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	w := csv.NewWriter(tmp)
	if err = w.WriteAll(core.EncodeTable(t)); err != nil {
		return fmt.Errorf("write data file: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("sync data file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close data file: %w", err)
	}
	if err = os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace data file: %w", err)
	}

	slog.DebugContext(ctx, "Data file written", "path", s.path, "records", len(t))
	return nil
}
