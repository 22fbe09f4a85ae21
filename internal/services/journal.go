package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"drivelog/internal/aggregate"
	"drivelog/internal/cache"
	"drivelog/internal/core"
	"drivelog/internal/report"
	"drivelog/internal/sheets"
	"drivelog/internal/storage"
)

// Publisher announces registered records to other processes.
type Publisher interface {
	PublishRecordRegistered(ctx context.Context, r core.DailyRecord, tableSize int) error
}

// MonthlySummary is everything the Monthly Summary view shows for one month.
// Totals, breakdown and efficiency cover worked days only; Indicators count
// every recorded day of the month.
type MonthlySummary struct {
	Month      string
	Revenue    core.Money
	Expenses   core.Money
	Net        core.Money
	Breakdown  aggregate.Breakdown
	Indicators aggregate.Indicators
	Efficiency aggregate.Efficiency
	DistanceKm float64
	Hours      float64
}

// AnnualSummary covers the worked days of one year.
type AnnualSummary struct {
	Year       string
	Revenue    core.Money
	Expenses   core.Money
	Net        core.Money
	Breakdown  aggregate.Breakdown
	Series     []aggregate.MonthProfit
	Indicators aggregate.Indicators
}

// Comparison is the month-over-month view across the whole journal.
type Comparison struct {
	Series     []aggregate.MonthProfit
	Indicators aggregate.Indicators
}

// Document is a generated file ready for download.
type Document struct {
	FileName    string
	ContentType string
	Content     []byte
}

// Journal runs the five operator flows over a table store.
type Journal struct {
	store     sheets.TableStore
	reporter  *report.Reporter
	publisher Publisher

	// mu serialises load, append and persist within this process.
	mu sync.Mutex

	months *cache.LRUCache[MonthlySummary]
	years  *cache.LRUCache[AnnualSummary]

	// cacheMu guards generation, which invalidate bumps. A summary computed
	// from a load that started before the bump is not cached.
	cacheMu    sync.Mutex
	generation uint64
}

type Option func(*Journal)

// WithPublisher enables record registered events.
func WithPublisher(p Publisher) Option {
	return func(j *Journal) { j.publisher = p }
}

// WithSummaryCache keeps computed summaries for ttl. Registering a day drops
// them; writes by other processes show up once ttl has passed.
func WithSummaryCache(ttl time.Duration) Option {
	return func(j *Journal) {
		if ttl <= 0 {
			return
		}
		j.months = cache.NewLRUCache[MonthlySummary](24, ttl)
		j.years = cache.NewLRUCache[AnnualSummary](8, ttl)
	}
}

func NewJournal(store sheets.TableStore, reporter *report.Reporter, opts ...Option) *Journal {
	if reporter == nil {
		reporter = report.New("")
	}
	j := &Journal{store: store, reporter: reporter}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

func (j *Journal) Reporter() *report.Reporter { return j.reporter }

// Caches returns the summary caches so a cache.Manager can expire them.
func (j *Journal) Caches() []cache.Cleaner {
	if j.months == nil {
		return nil
	}
	return []cache.Cleaner{j.months, j.years}
}

// RegisterDay validates r, appends it and persists the table. On a persist
// failure the stored table is unchanged and the error is returned.
func (j *Journal) RegisterDay(ctx context.Context, r core.DailyRecord) (core.DailyRecord, error) {
	if err := r.Validate(); err != nil {
		return core.DailyRecord{}, err
	}

	j.mu.Lock()
	t, err := j.store.Load(ctx)
	if err != nil {
		j.mu.Unlock()
		return core.DailyRecord{}, fmt.Errorf("load journal: %w", err)
	}
	t = storage.Append(t, r)
	if err := j.store.Persist(ctx, t); err != nil {
		j.mu.Unlock()
		return core.DailyRecord{}, fmt.Errorf("persist journal: %w", err)
	}
	j.mu.Unlock()

	j.invalidate()

	if j.publisher != nil {
		if err := j.publisher.PublishRecordRegistered(ctx, r, len(t)); err != nil {
			// The record is stored; the mirror catches up on its next pass.
			slog.ErrorContext(ctx, "Failed to publish record registered event", "date", r.Date.String(), "error", err)
		}
	}
	return r, nil
}

// History returns every record, most recent date first.
func (j *Journal) History(ctx context.Context) ([]core.DailyRecord, error) {
	t, err := j.load(ctx)
	if err != nil {
		return nil, err
	}
	return aggregate.SortByDateDesc(t.Records()), nil
}

// MonthlySummary aggregates one YYYY-MM month.
func (j *Journal) MonthlySummary(ctx context.Context, month string) (MonthlySummary, error) {
	month, err := core.ParseMonthKey(month)
	if err != nil {
		return MonthlySummary{}, err
	}
	if j.months != nil {
		if s, ok := j.months.Get(month); ok {
			return s, nil
		}
	}

	gen := j.currentGeneration()
	t, err := j.load(ctx)
	if err != nil {
		return MonthlySummary{}, err
	}
	inMonth := aggregate.FilterByMonthPrefix(t, month)
	worked := aggregate.Worked(inMonth)
	s := MonthlySummary{
		Month:      month,
		Revenue:    aggregate.TotalRevenue(worked),
		Expenses:   aggregate.TotalExpenses(worked),
		Net:        aggregate.NetProfit(worked),
		Breakdown:  aggregate.ExpenseBreakdown(worked),
		Indicators: aggregate.SummaryIndicators(inMonth),
		Efficiency: aggregate.EfficiencyOf(worked),
		DistanceKm: aggregate.TotalDistance(worked),
		Hours:      aggregate.TotalHours(worked),
	}
	if j.months != nil {
		j.cacheIfCurrent(gen, func() { j.months.Set(month, s) })
	}
	return s, nil
}

// MonthlyReportPDF renders the four-line summary document of one month.
func (j *Journal) MonthlyReportPDF(ctx context.Context, month string) (Document, error) {
	s, err := j.MonthlySummary(ctx, month)
	if err != nil {
		return Document{}, err
	}
	doc := j.reporter.MonthSummary(s.Month, s.Revenue, s.Expenses, s.Net)
	content, err := report.RenderPDF(doc)
	if err != nil {
		return Document{}, fmt.Errorf("render monthly report: %w", err)
	}
	return Document{FileName: doc.FileName(), ContentType: "application/pdf", Content: content}, nil
}

// AnnualSummary aggregates one YYYY year.
func (j *Journal) AnnualSummary(ctx context.Context, year string) (AnnualSummary, error) {
	year, err := core.ParseYearKey(year)
	if err != nil {
		return AnnualSummary{}, err
	}
	if j.years != nil {
		if s, ok := j.years.Get(year); ok {
			return s, nil
		}
	}

	gen := j.currentGeneration()
	t, err := j.load(ctx)
	if err != nil {
		return AnnualSummary{}, err
	}
	inYear := aggregate.FilterByYearPrefix(t, year)
	worked := aggregate.Worked(inYear)
	s := AnnualSummary{
		Year:       year,
		Revenue:    aggregate.TotalRevenue(worked),
		Expenses:   aggregate.TotalExpenses(worked),
		Net:        aggregate.NetProfit(worked),
		Breakdown:  aggregate.ExpenseBreakdown(worked),
		Series:     aggregate.MonthlyProfitSeries(worked),
		Indicators: aggregate.SummaryIndicators(inYear),
	}
	if j.years != nil {
		j.cacheIfCurrent(gen, func() { j.years.Set(year, s) })
	}
	return s, nil
}

// CompareMonths returns the profit of every worked month and the indicators
// over the whole journal.
func (j *Journal) CompareMonths(ctx context.Context) (Comparison, error) {
	t, err := j.load(ctx)
	if err != nil {
		return Comparison{}, err
	}
	return Comparison{
		Series:     aggregate.MonthlyProfitSeries(t),
		Indicators: aggregate.SummaryIndicators(t),
	}, nil
}

// Months lists the recorded months, most recent first.
func (j *Journal) Months(ctx context.Context) ([]string, error) {
	t, err := j.load(ctx)
	if err != nil {
		return nil, err
	}
	return aggregate.MonthOptions(t), nil
}

// Years lists the recorded years, most recent first.
func (j *Journal) Years(ctx context.Context) ([]string, error) {
	t, err := j.load(ctx)
	if err != nil {
		return nil, err
	}
	return aggregate.YearOptions(t), nil
}

// Ping checks that the store can be read.
func (j *Journal) Ping(ctx context.Context) error {
	_, err := j.load(ctx)
	return err
}

func (j *Journal) load(ctx context.Context) (core.Table, error) {
	t, err := j.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load journal: %w", err)
	}
	return t, nil
}

func (j *Journal) invalidate() {
	if j.months == nil {
		return
	}
	j.cacheMu.Lock()
	defer j.cacheMu.Unlock()
	j.generation++
	j.months.Purge()
	j.years.Purge()
}

func (j *Journal) currentGeneration() uint64 {
	j.cacheMu.Lock()
	defer j.cacheMu.Unlock()
	return j.generation
}

// cacheIfCurrent runs set only when no register happened since gen was read.
func (j *Journal) cacheIfCurrent(gen uint64, set func()) {
	j.cacheMu.Lock()
	defer j.cacheMu.Unlock()
	if j.generation == gen {
		set()
	}
}

// Close closes the store and publisher when they hold resources.
func (j *Journal) Close() error {
	var errs []error
	if c, ok := j.store.(io.Closer); ok {
		if err := c.Close(); err != nil {
			errs = append(errs, fmt.Errorf("store: %w", err))
		}
	}
	if c, ok := j.publisher.(io.Closer); ok {
		if err := c.Close(); err != nil {
			errs = append(errs, fmt.Errorf("publisher: %w", err))
		}
	}
	return errors.Join(errs...)
}
