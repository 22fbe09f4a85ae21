package storage

import (
	"context"
	"database/sql"
)

type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

type Queries struct {
	db DBTX
}

func (q *Queries) WithTx(tx *sql.Tx) *Queries {
	return &Queries{db: tx}
}

// DailyRecord mirrors one row of the daily_records table.
type DailyRecord struct {
	Position         int64
	Date             string
	Worked           bool
	RevenueCents     int64
	DistanceKm       float64
	FuelCents        int64
	FoodCents        int64
	AttendantCents   int64
	CarWashCents     int64
	GarageCents      int64
	OtherCents       int64
	OtherDescription string
	HoursWorked      float64
	DailyTargetCents int64
	Notes            string
}

const listDailyRecords = `-- name: ListDailyRecords :many
SELECT position, date, worked, revenue_cents, distance_km, fuel_cents, food_cents,
       attendant_cents, car_wash_cents, garage_cents, other_cents, other_description,
       hours_worked, daily_target_cents, notes
FROM daily_records
ORDER BY position
`

func (q *Queries) ListDailyRecords(ctx context.Context) ([]DailyRecord, error) {
	rows, err := q.db.QueryContext(ctx, listDailyRecords)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []DailyRecord
	for rows.Next() {
		var i DailyRecord
		if err := rows.Scan(
			&i.Position,
			&i.Date,
			&i.Worked,
			&i.RevenueCents,
			&i.DistanceKm,
			&i.FuelCents,
			&i.FoodCents,
			&i.AttendantCents,
			&i.CarWashCents,
			&i.GarageCents,
			&i.OtherCents,
			&i.OtherDescription,
			&i.HoursWorked,
			&i.DailyTargetCents,
			&i.Notes,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const deleteAllDailyRecords = `-- name: DeleteAllDailyRecords :exec
DELETE FROM daily_records
`

func (q *Queries) DeleteAllDailyRecords(ctx context.Context) error {
	_, err := q.db.ExecContext(ctx, deleteAllDailyRecords)
	return err
}

const insertDailyRecord = `-- name: InsertDailyRecord :exec
INSERT INTO daily_records (
    date, worked, revenue_cents, distance_km, fuel_cents, food_cents, attendant_cents,
    car_wash_cents, garage_cents, other_cents, other_description, hours_worked,
    daily_target_cents, notes
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

type InsertDailyRecordParams struct {
	Date             string
	Worked           bool
	RevenueCents     int64
	DistanceKm       float64
	FuelCents        int64
	FoodCents        int64
	AttendantCents   int64
	CarWashCents     int64
	GarageCents      int64
	OtherCents       int64
	OtherDescription string
	HoursWorked      float64
	DailyTargetCents int64
	Notes            string
}

func (q *Queries) InsertDailyRecord(ctx context.Context, arg InsertDailyRecordParams) error {
	_, err := q.db.ExecContext(ctx, insertDailyRecord,
		arg.Date,
		arg.Worked,
		arg.RevenueCents,
		arg.DistanceKm,
		arg.FuelCents,
		arg.FoodCents,
		arg.AttendantCents,
		arg.CarWashCents,
		arg.GarageCents,
		arg.OtherCents,
		arg.OtherDescription,
		arg.HoursWorked,
		arg.DailyTargetCents,
		arg.Notes,
	)
	return err
}

const countDailyRecords = `-- name: CountDailyRecords :one
SELECT COUNT(*) FROM daily_records
`

func (q *Queries) CountDailyRecords(ctx context.Context) (int64, error) {
	row := q.db.QueryRowContext(ctx, countDailyRecords)
	var count int64
	err := row.Scan(&count)
	return count, err
}
