// Package report turns aggregation results into display-ready values:
// formatted metrics, chart series and the monthly summary document.
//
// Nothing here computes totals; it only formats what the aggregate
// package produced and never modifies it.
package report

import (
	"fmt"
	"math"
	"strings"

	"drivelog/internal/aggregate"
	"drivelog/internal/core"
)

// NoData is shown wherever an aggregate is undefined.
const NoData = "no data"

// DefaultCurrencySymbol matches the currency the journal was first kept in.
const DefaultCurrencySymbol = "R$"

// Metric is a single labelled figure.
type Metric struct {
	Label string
	Value string
}

// PieSlice is one category share of the expense chart.
type PieSlice struct {
	Label        string
	Amount       string
	Percent      float64
	PercentLabel string
}

// PieChart is the expense proportion chart. Degenerate is set when every
// category is zero; percentages are then all zero and should not be drawn.
type PieChart struct {
	Slices     []PieSlice
	Total      string
	Degenerate bool
}

// Bar is one month of the profit bar chart. Width is relative to the
// largest absolute profit in the series, 0-100.
type Bar struct {
	Label    string
	Value    string
	Width    float64
	Negative bool
}

// BarChart is the monthly profit chart in chronological order.
type BarChart struct {
	Bars []Bar
}

// Reporter formats money with a fixed currency symbol.
type Reporter struct {
	symbol string
}

// New returns a Reporter; an empty symbol falls back to DefaultCurrencySymbol.
func New(symbol string) *Reporter {
	symbol = strings.TrimSpace(symbol)
	if symbol == "" {
		symbol = DefaultCurrencySymbol
	}
	return &Reporter{symbol: symbol}
}

// Currency renders an amount with two decimals, e.g. "R$ 140.00" or "-R$ 5.50".
func (r *Reporter) Currency(m core.Money) string {
	if m.Cents < 0 {
		return "-" + r.symbol + " " + core.Money{Cents: -m.Cents}.Decimal()
	}
	return r.symbol + " " + m.Decimal()
}

// Average renders a possibly undefined mean.
func (r *Reporter) Average(a aggregate.Average) string {
	if !a.Valid {
		return NoData
	}
	return r.Currency(a.Value)
}

// Rate renders a possibly undefined ratio in currency per unit.
func (r *Reporter) Rate(rt aggregate.Rate, unit string) string {
	if !rt.Valid {
		return NoData
	}
	return fmt.Sprintf("%s %.2f/%s", r.symbol, rt.Value, unit)
}

// Totals renders gross, expenses and net as metrics.
func (r *Reporter) Totals(revenue, expenses, net core.Money) []Metric {
	return []Metric{
		{Label: "Gross revenue", Value: r.Currency(revenue)},
		{Label: "Expenses", Value: r.Currency(expenses)},
		{Label: "Net profit", Value: r.Currency(net)},
	}
}

// Indicators renders the headline day counters.
func (r *Reporter) Indicators(ind aggregate.Indicators) []Metric {
	return []Metric{
		{Label: "Days recorded", Value: fmt.Sprint(ind.TotalDays)},
		{Label: "Days worked", Value: fmt.Sprint(ind.DaysWorked)},
		{Label: "Days off", Value: fmt.Sprint(ind.DaysOff)},
		{Label: "Average daily revenue", Value: r.Average(ind.AverageDailyRevenue)},
		{Label: "Days target met", Value: fmt.Sprint(ind.TargetsMet)},
	}
}

// Efficiency renders time and distance ratios together with the raw totals.
func (r *Reporter) Efficiency(eff aggregate.Efficiency, km, hours float64) []Metric {
	return []Metric{
		{Label: "Distance", Value: fmt.Sprintf("%.1f km", km)},
		{Label: "Hours worked", Value: fmt.Sprintf("%.1f h", hours)},
		{Label: "Revenue per hour", Value: r.Rate(eff.RevenuePerHour, "h")},
		{Label: "Revenue per km", Value: r.Rate(eff.RevenuePerKm, "km")},
		{Label: "Profit per km", Value: r.Rate(eff.ProfitPerKm, "km")},
	}
}

// Pie builds the expense proportion chart from a breakdown.
func (r *Reporter) Pie(b aggregate.Breakdown) PieChart {
	total := b.Total()
	chart := PieChart{
		Slices:     make([]PieSlice, 0, len(b)),
		Total:      r.Currency(total),
		Degenerate: total.Cents <= 0 || b.IsZero(),
	}
	for _, ca := range b {
		s := PieSlice{
			Label:  ca.Category.Label(),
			Amount: r.Currency(ca.Amount),
		}
		if !chart.Degenerate {
			s.Percent = float64(ca.Amount.Cents) / float64(total.Cents) * 100
		}
		s.PercentLabel = fmt.Sprintf("%.1f%%", s.Percent)
		chart.Slices = append(chart.Slices, s)
	}
	return chart
}

// Bars builds the monthly profit chart, keeping the series order.
func (r *Reporter) Bars(series []aggregate.MonthProfit) BarChart {
	var peak int64
	for _, p := range series {
		if v := abs(p.Profit.Cents); v > peak {
			peak = v
		}
	}
	chart := BarChart{Bars: make([]Bar, 0, len(series))}
	for _, p := range series {
		b := Bar{
			Label:    p.Month,
			Value:    r.Currency(p.Profit),
			Negative: p.Profit.Cents < 0,
		}
		if peak > 0 {
			b.Width = math.Round(float64(abs(p.Profit.Cents))/float64(peak)*1000) / 10
		}
		chart.Bars = append(chart.Bars, b)
	}
	return chart
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
