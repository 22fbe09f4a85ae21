package storage

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"drivelog/internal/core"
)

func sampleTable() core.Table {
	worked := core.DailyRecord{
		Date:                 core.NewDate(2024, 1, 5),
		Worked:               true,
		Revenue:              core.Money{Cents: 20000},
		DistanceKm:           123.4,
		FuelCost:             core.Money{Cents: 5000},
		FoodCost:             core.Money{Cents: 1000},
		OtherCost:            core.Money{Cents: 250},
		OtherCostDescription: "toll, bridge",
		HoursWorked:          8.5,
		DailyTarget:          core.Money{Cents: 18000},
		Notes:                "rain \"heavy\"",
	}
	return core.Table{worked, core.DayOff(core.NewDate(2024, 1, 6)), worked}
}

func TestAppendDoesNotModifyInput(t *testing.T) {
	base := sampleTable()[:1]
	next := Append(base, core.DayOff(core.NewDate(2024, 2, 1)))
	if len(base) != 1 || len(next) != 2 {
		t.Fatalf("unexpected lengths: base=%d next=%d", len(base), len(next))
	}
	if !reflect.DeepEqual(next[0], base[0]) {
		t.Fatalf("existing record changed: %+v", next[0])
	}
	if next[1].Worked {
		t.Fatalf("expected appended day off, got %+v", next[1])
	}
}

func TestCSVStoreMissingFileIsEmpty(t *testing.T) {
	s := NewCSVStore(filepath.Join(t.TempDir(), "nope.csv"))
	tbl, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if tbl == nil || len(tbl) != 0 {
		t.Fatalf("expected empty table, got %v", tbl)
	}
}

func TestCSVStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data", "daily_records.csv")
	s := NewCSVStore(path)

	want := sampleTable()
	if err := s.Persist(ctx, want); err != nil {
		t.Fatalf("persist: %v", err)
	}
	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", got, want)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.HasPrefix(string(raw), strings.Join(core.Header, ",")+"\n") {
		t.Fatalf("missing header row: %q", string(raw))
	}
}

func TestCSVStoreEmptyTableKeepsHeader(t *testing.T) {
	ctx := context.Background()
	s := NewCSVStore(filepath.Join(t.TempDir(), "empty.csv"))
	if err := s.Persist(ctx, core.Table{}); err != nil {
		t.Fatalf("persist: %v", err)
	}
	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no records, got %d", len(got))
	}
}

func TestCSVStoreRejectsForeignHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "foreign.csv")
	if err := os.WriteFile(path, []byte("date,amount\n2024-01-01,10\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	_, err := NewCSVStore(path).Load(context.Background())
	if err == nil || !strings.Contains(err.Error(), core.ErrSchemaMismatch.Error()) {
		t.Fatalf("expected schema mismatch, got %v", err)
	}
}

func TestCSVStoreFailedPersistLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	// A non-empty directory at the target path makes the final rename fail.
	target := filepath.Join(dir, "records.csv")
	if err := os.MkdirAll(filepath.Join(target, "child"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	if err := NewCSVStore(target).Persist(context.Background(), sampleTable()); err == nil {
		t.Fatalf("expected persist to fail")
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".tmp") {
			t.Fatalf("temp file left behind: %s", e.Name())
		}
	}
}

func TestSQLiteRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "db", "drivelog.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer repo.Close()

	empty, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("load empty: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("expected empty table, got %d records", len(empty))
	}

	want := sampleTable()
	if err := repo.Persist(ctx, want); err != nil {
		t.Fatalf("persist: %v", err)
	}
	got, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", got, want)
	}

	// Persisting again replaces rather than accumulates.
	shorter := want[:1]
	if err := repo.Persist(ctx, shorter); err != nil {
		t.Fatalf("persist shorter: %v", err)
	}
	n, err := repo.queries.CountDailyRecords(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 row, got %d", n)
	}
}
