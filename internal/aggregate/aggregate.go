// Package aggregate computes sums, means and counts over journal records.
//
// Every function is pure: inputs are never modified and the returned slices
// are freshly allocated. Callers decide whether to restrict to worked days
// first (see Worked); the Monthly/Annual views always do.
package aggregate

import (
	"math"
	"sort"
	"strings"

	"drivelog/internal/core"
)

// CategoryAmount is the sum spent on one expense category.
type CategoryAmount struct {
	Category core.ExpenseCategory
	Amount   core.Money
}

// Breakdown holds one sum per expense category in core.ExpenseCategories order.
type Breakdown []CategoryAmount

// MonthProfit is one point of the monthly profit series.
type MonthProfit struct {
	Month  string // YYYY-MM
	Profit core.Money
}

// Average is a mean that may be undefined. Valid is false when the
// population was empty; Value is then meaningless and must not be shown.
type Average struct {
	Value core.Money
	Valid bool
}

// Rate is a ratio that may be undefined because its divisor was zero.
type Rate struct {
	Value float64
	Valid bool
}

// Indicators are the headline counters of a set of records.
type Indicators struct {
	TotalDays           int
	DaysWorked          int
	DaysOff             int
	AverageDailyRevenue Average
	TargetsMet          int
}

// Efficiency relates revenue and profit to time and distance.
type Efficiency struct {
	RevenuePerHour Rate
	RevenuePerKm   Rate
	ProfitPerKm    Rate
}

// Worked keeps only the records flagged as worked days.
func Worked(records []core.DailyRecord) []core.DailyRecord {
	out := make([]core.DailyRecord, 0, len(records))
	for _, r := range records {
		if r.Worked {
			out = append(out, r)
		}
	}
	return out
}

// FilterByMonthPrefix keeps records whose date starts with a YYYY-MM key.
// Dates are always rendered fixed width, so "2024-03" cannot match a day of
// another month.
func FilterByMonthPrefix(records []core.DailyRecord, month string) []core.DailyRecord {
	return filterByPrefix(records, month, 7)
}

// FilterByYearPrefix keeps records whose date starts with a YYYY key.
func FilterByYearPrefix(records []core.DailyRecord, year string) []core.DailyRecord {
	return filterByPrefix(records, year, 4)
}

func filterByPrefix(records []core.DailyRecord, prefix string, width int) []core.DailyRecord {
	out := make([]core.DailyRecord, 0)
	if len(prefix) != width {
		return out
	}
	for _, r := range records {
		if strings.HasPrefix(r.Date.String(), prefix) {
			out = append(out, r)
		}
	}
	return out
}

// TotalRevenue sums revenue.
func TotalRevenue(records []core.DailyRecord) core.Money {
	var total core.Money
	for _, r := range records {
		total = total.Add(r.Revenue)
	}
	return total
}

// TotalExpenses sums every cost cell of every record.
func TotalExpenses(records []core.DailyRecord) core.Money {
	var total core.Money
	for _, r := range records {
		total = total.Add(r.TotalExpenses())
	}
	return total
}

// NetProfit is TotalRevenue minus TotalExpenses.
func NetProfit(records []core.DailyRecord) core.Money {
	return TotalRevenue(records).Sub(TotalExpenses(records))
}

// TotalDistance sums kilometres driven.
func TotalDistance(records []core.DailyRecord) float64 {
	var km float64
	for _, r := range records {
		km += r.DistanceKm
	}
	return km
}

// TotalHours sums hours worked.
func TotalHours(records []core.DailyRecord) float64 {
	var h float64
	for _, r := range records {
		h += r.HoursWorked
	}
	return h
}

// ExpenseBreakdown sums each category separately.
func ExpenseBreakdown(records []core.DailyRecord) Breakdown {
	b := make(Breakdown, len(core.ExpenseCategories))
	for i, c := range core.ExpenseCategories {
		b[i].Category = c
		for _, r := range records {
			b[i].Amount = b[i].Amount.Add(r.Cost(c))
		}
	}
	return b
}

// Total sums the categories of the breakdown.
func (b Breakdown) Total() core.Money {
	var total core.Money
	for _, ca := range b {
		total = total.Add(ca.Amount)
	}
	return total
}

// IsZero reports the degenerate breakdown where every category is zero.
func (b Breakdown) IsZero() bool {
	for _, ca := range b {
		if ca.Amount.Cents != 0 {
			return false
		}
	}
	return true
}

// MonthlyProfitSeries groups worked records by month and returns the net
// profit of each month in ascending chronological order. Months without
// worked records are absent, not zero.
func MonthlyProfitSeries(records []core.DailyRecord) []MonthProfit {
	byMonth := map[string][]core.DailyRecord{}
	for _, r := range Worked(records) {
		k := r.Date.MonthKey()
		byMonth[k] = append(byMonth[k], r)
	}
	months := make([]string, 0, len(byMonth))
	for k := range byMonth {
		months = append(months, k)
	}
	sort.Strings(months)

	series := make([]MonthProfit, 0, len(months))
	for _, m := range months {
		series = append(series, MonthProfit{Month: m, Profit: NetProfit(byMonth[m])})
	}
	return series
}

// SummaryIndicators counts days over all records, worked or not.
func SummaryIndicators(records []core.DailyRecord) Indicators {
	worked := Worked(records)
	ind := Indicators{
		TotalDays:           len(records),
		DaysWorked:          len(worked),
		DaysOff:             len(records) - len(worked),
		AverageDailyRevenue: Mean(worked),
	}
	for _, r := range worked {
		if r.TargetMet() {
			ind.TargetsMet++
		}
	}
	return ind
}

// Mean is the average revenue per record, rounded half away from zero to
// the cent. It is invalid for an empty input.
func Mean(records []core.DailyRecord) Average {
	if len(records) == 0 {
		return Average{}
	}
	total := TotalRevenue(records).Cents
	n := int64(len(records))
	q, rem := total/n, total%n
	if rem < 0 {
		rem = -rem
	}
	if 2*rem >= n {
		if total < 0 {
			q--
		} else {
			q++
		}
	}
	return Average{Value: core.Money{Cents: q}, Valid: true}
}

// EfficiencyOf derives per-hour and per-km ratios.
func EfficiencyOf(records []core.DailyRecord) Efficiency {
	revenue := TotalRevenue(records).Units()
	profit := NetProfit(records).Units()
	return Efficiency{
		RevenuePerHour: ratio(revenue, TotalHours(records)),
		RevenuePerKm:   ratio(revenue, TotalDistance(records)),
		ProfitPerKm:    ratio(profit, TotalDistance(records)),
	}
}

func ratio(num, den float64) Rate {
	if den <= 0 || math.IsInf(den, 0) || math.IsNaN(num) {
		return Rate{}
	}
	v := num / den
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Rate{}
	}
	return Rate{Value: v, Valid: true}
}

// MonthOptions lists distinct YYYY-MM keys over all records, most recent first.
func MonthOptions(records []core.DailyRecord) []string {
	return distinctDescending(records, core.Date.MonthKey)
}

// YearOptions lists distinct YYYY keys over all records, most recent first.
func YearOptions(records []core.DailyRecord) []string {
	return distinctDescending(records, core.Date.YearKey)
}

func distinctDescending(records []core.DailyRecord, key func(core.Date) string) []string {
	seen := map[string]struct{}{}
	out := make([]string, 0)
	for _, r := range records {
		k := key(r.Date)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(out)))
	return out
}

// SortByDateDesc returns a copy ordered most recent first. Records sharing a
// date keep their insertion order.
func SortByDateDesc(records []core.DailyRecord) []core.DailyRecord {
	out := make([]core.DailyRecord, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date.Time)
	})
	return out
}
