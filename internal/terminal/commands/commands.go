// Package commands holds the drivelogctl subcommands.
package commands

import (
	"context"
	"strconv"
	"time"

	"drivelog/internal/core"
	"drivelog/internal/report"
	"drivelog/internal/services"
	"drivelog/internal/terminal/export"
)

// Env is what every subcommand runs against.
type Env struct {
	Journal *services.Journal
	Printer *export.Printer
	Now     func() time.Time
	Timeout time.Duration
}

func (e *Env) context(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	if e.Timeout <= 0 {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, e.Timeout)
}

func (e *Env) today() core.Date {
	now := time.Now()
	if e.Now != nil {
		now = e.Now()
	}
	return core.NewDate(now.Year(), int(now.Month()), now.Day())
}

func (e *Env) reporter() *report.Reporter {
	return e.Journal.Reporter()
}

func historyRow(r *report.Reporter, rec core.DailyRecord) export.HistoryRow {
	worked := "no"
	if rec.Worked {
		worked = "yes"
	}
	notes := rec.Notes
	if rec.OtherCostDescription != "" {
		if notes != "" {
			notes += "; "
		}
		notes += "other: " + rec.OtherCostDescription
	}
	return export.HistoryRow{
		Date:     rec.Date.String(),
		Worked:   worked,
		Revenue:  r.Currency(rec.Revenue),
		Expenses: r.Currency(rec.TotalExpenses()),
		Net:      r.Currency(rec.NetProfit()),
		Km:       strconv.FormatFloat(rec.DistanceKm, 'f', -1, 64),
		Hours:    strconv.FormatFloat(rec.HoursWorked, 'f', -1, 64),
		Notes:    notes,
	}
}
