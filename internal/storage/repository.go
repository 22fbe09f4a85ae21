package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"drivelog/internal/core"

	_ "modernc.org/sqlite"
)

// SQLiteRepository stores the journal in the daily_records table. Row order
// follows the position column, which preserves insertion order.
type SQLiteRepository struct {
	db      *sql.DB
	queries *Queries
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	version, err := migrateSchema(dbPath)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	slog.Debug("SQLite schema ready", "path", dbPath, "version", version)

	return &SQLiteRepository{
		db:      db,
		queries: New(db),
	}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Load implements sheets.TableReader
func (r *SQLiteRepository) Load(ctx context.Context) (core.Table, error) {
	rows, err := r.queries.ListDailyRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("list daily records: %w", err)
	}

	t := make(core.Table, 0, len(rows))
	for _, row := range rows {
		rec, err := fromRow(row)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", row.Position, err)
		}
		t = append(t, rec)
	}
	return t, nil
}

// Persist implements sheets.TableWriter. The table is replaced inside one
// transaction.
func (r *SQLiteRepository) Persist(ctx context.Context, t core.Table) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	q := r.queries.WithTx(tx)
	if err := q.DeleteAllDailyRecords(ctx); err != nil {
		return fmt.Errorf("clear daily records: %w", err)
	}
	for i, rec := range t {
		if err := q.InsertDailyRecord(ctx, toParams(rec)); err != nil {
			return fmt.Errorf("insert record %d: %w", i+1, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	slog.DebugContext(ctx, "Journal saved to SQLite", "records", len(t))
	return nil
}

func toParams(rec core.DailyRecord) InsertDailyRecordParams {
	return InsertDailyRecordParams{
		Date:             rec.Date.String(),
		Worked:           rec.Worked,
		RevenueCents:     rec.Revenue.Cents,
		DistanceKm:       rec.DistanceKm,
		FuelCents:        rec.FuelCost.Cents,
		FoodCents:        rec.FoodCost.Cents,
		AttendantCents:   rec.AttendantCost.Cents,
		CarWashCents:     rec.CarWashCost.Cents,
		GarageCents:      rec.GarageCost.Cents,
		OtherCents:       rec.OtherCost.Cents,
		OtherDescription: rec.OtherCostDescription,
		HoursWorked:      rec.HoursWorked,
		DailyTargetCents: rec.DailyTarget.Cents,
		Notes:            rec.Notes,
	}
}

func fromRow(row DailyRecord) (core.DailyRecord, error) {
	d, err := core.ParseDate(row.Date)
	if err != nil {
		return core.DailyRecord{}, err
	}
	return core.DailyRecord{
		Date:                 d,
		Worked:               row.Worked,
		Revenue:              core.Money{Cents: row.RevenueCents},
		DistanceKm:           row.DistanceKm,
		FuelCost:             core.Money{Cents: row.FuelCents},
		FoodCost:             core.Money{Cents: row.FoodCents},
		AttendantCost:        core.Money{Cents: row.AttendantCents},
		CarWashCost:          core.Money{Cents: row.CarWashCents},
		GarageCost:           core.Money{Cents: row.GarageCents},
		OtherCost:            core.Money{Cents: row.OtherCents},
		OtherCostDescription: row.OtherDescription,
		HoursWorked:          row.HoursWorked,
		DailyTarget:          core.Money{Cents: row.DailyTargetCents},
		Notes:                row.Notes,
	}, nil
}
