package aggregate

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"drivelog/internal/core"
)

func money(units int64) core.Money { return core.Money{Cents: units * 100} }

func worked(y, m, d int, revenue int64) core.DailyRecord {
	return core.DailyRecord{Date: core.NewDate(y, m, d), Worked: true, Revenue: money(revenue)}
}

func TestScenarioSingleMonth(t *testing.T) {
	r := worked(2024, 1, 5, 200)
	r.FuelCost = money(50)
	r.FoodCost = money(10)
	table := []core.DailyRecord{r, core.DayOff(core.NewDate(2024, 1, 10))}

	subset := Worked(FilterByMonthPrefix(table, "2024-01"))
	require.Len(t, subset, 1)
	assert.Equal(t, money(200), TotalRevenue(subset))
	assert.Equal(t, money(60), TotalExpenses(subset))
	assert.Equal(t, money(140), NetProfit(subset))
}

func TestScenarioSummaryIndicators(t *testing.T) {
	var table []core.DailyRecord
	for i, rev := range []int64{100, 100, 100, 100, 100, 100, 700} {
		r := worked(2024, 2, i+1, rev)
		r.DailyTarget = money(100)
		table = append(table, r)
	}
	for i := 0; i < 3; i++ {
		table = append(table, core.DayOff(core.NewDate(2024, 2, 10+i)))
	}

	ind := SummaryIndicators(table)
	assert.Equal(t, 10, ind.TotalDays)
	assert.Equal(t, 7, ind.DaysWorked)
	assert.Equal(t, 3, ind.DaysOff)
	require.True(t, ind.AverageDailyRevenue.Valid)
	assert.Equal(t, money(200), ind.AverageDailyRevenue.Value)
	assert.Equal(t, 7, ind.TargetsMet)
}

func TestScenarioMonthlySeriesSkipsGaps(t *testing.T) {
	a := worked(2024, 3, 2, 300)
	a.FuelCost = money(100)
	b := worked(2024, 1, 20, 50)
	c := worked(2024, 1, 3, 70)
	off := core.DayOff(core.NewDate(2024, 2, 14))

	series := MonthlyProfitSeries([]core.DailyRecord{a, off, b, c})
	require.Len(t, series, 2)
	assert.Equal(t, MonthProfit{Month: "2024-01", Profit: money(120)}, series[0])
	assert.Equal(t, MonthProfit{Month: "2024-03", Profit: money(200)}, series[1])
}

func TestAverageUndefinedWithoutWorkedDays(t *testing.T) {
	table := []core.DailyRecord{
		core.DayOff(core.NewDate(2024, 4, 1)),
		core.DayOff(core.NewDate(2024, 4, 2)),
		worked(2024, 5, 1, 100),
	}
	ind := SummaryIndicators(FilterByMonthPrefix(table, "2024-04"))
	assert.False(t, ind.AverageDailyRevenue.Valid)
	assert.Equal(t, 2, ind.DaysOff)

	assert.False(t, SummaryIndicators(nil).AverageDailyRevenue.Valid)
}

func TestMeanRoundsToCent(t *testing.T) {
	table := []core.DailyRecord{
		{Worked: true, Revenue: core.Money{Cents: 1}},
		{Worked: true, Revenue: core.Money{Cents: 2}},
	}
	avg := Mean(table)
	require.True(t, avg.Valid)
	assert.Equal(t, int64(2), avg.Value.Cents)
}

func TestFilterByPrefixIsExact(t *testing.T) {
	table := []core.DailyRecord{
		worked(2024, 3, 1, 1),
		worked(2024, 3, 31, 1),
		worked(2024, 4, 1, 1),
		worked(2023, 3, 15, 1),
		worked(2024, 12, 3, 1),
	}
	march := FilterByMonthPrefix(table, "2024-03")
	require.Len(t, march, 2)
	for _, r := range march {
		assert.Equal(t, "2024-03", r.Date.MonthKey())
	}
	assert.Len(t, FilterByYearPrefix(table, "2024"), 4)
	assert.Empty(t, FilterByMonthPrefix(table, "2024-1"), "short prefix must not match several months")
	assert.Empty(t, FilterByMonthPrefix(table, "2024-031"))
	assert.Empty(t, FilterByYearPrefix(table, "202"))
}

func TestBreakdownMatchesTotalExpenses(t *testing.T) {
	a := worked(2024, 6, 1, 300)
	a.FuelCost, a.FoodCost, a.AttendantCost = money(40), money(12), core.Money{Cents: 350}
	b := worked(2024, 6, 2, 250)
	b.CarWashCost, b.GarageCost, b.OtherCost = money(25), money(180), core.Money{Cents: 99}
	subsets := [][]core.DailyRecord{nil, {a}, {b}, {a, b}}

	for _, s := range subsets {
		bd := ExpenseBreakdown(s)
		require.Len(t, bd, len(core.ExpenseCategories))
		assert.Equal(t, TotalExpenses(s), bd.Total())
		assert.Equal(t, TotalRevenue(s).Sub(TotalExpenses(s)), NetProfit(s))
	}

	bd := ExpenseBreakdown([]core.DailyRecord{a, b})
	assert.Equal(t, core.CategoryFuel, bd[0].Category)
	assert.Equal(t, money(40), bd[0].Amount)
	assert.Equal(t, core.CategoryOther, bd[5].Category)
	assert.Equal(t, core.Money{Cents: 99}, bd[5].Amount)
}

func TestBreakdownDegenerate(t *testing.T) {
	bd := ExpenseBreakdown([]core.DailyRecord{worked(2024, 1, 1, 100)})
	assert.True(t, bd.IsZero())
	assert.Equal(t, core.Money{}, bd.Total())
}

func TestSelectionOptionsDescending(t *testing.T) {
	table := []core.DailyRecord{
		worked(2023, 11, 1, 1),
		core.DayOff(core.NewDate(2024, 2, 1)),
		worked(2024, 1, 1, 1),
		worked(2024, 1, 2, 1),
	}
	assert.Equal(t, []string{"2024-02", "2024-01", "2023-11"}, MonthOptions(table))
	assert.Equal(t, []string{"2024", "2023"}, YearOptions(table))
	assert.Empty(t, MonthOptions(nil))
	assert.NotNil(t, YearOptions(nil))
}

func TestSortByDateDescIsStable(t *testing.T) {
	first := worked(2024, 1, 2, 1)
	second := worked(2024, 1, 2, 2)
	older := worked(2024, 1, 1, 3)
	in := []core.DailyRecord{older, first, second}

	out := SortByDateDesc(in)
	assert.Equal(t, []core.DailyRecord{first, second, older}, out)
	assert.Equal(t, older, in[0], "input must not be reordered")
}

func TestEfficiency(t *testing.T) {
	r := worked(2024, 1, 1, 200)
	r.FuelCost = money(50)
	r.HoursWorked = 8
	r.DistanceKm = 100

	eff := EfficiencyOf([]core.DailyRecord{r})
	require.True(t, eff.RevenuePerHour.Valid)
	assert.InDelta(t, 25.0, eff.RevenuePerHour.Value, 1e-9)
	assert.InDelta(t, 2.0, eff.RevenuePerKm.Value, 1e-9)
	assert.InDelta(t, 1.5, eff.ProfitPerKm.Value, 1e-9)

	none := EfficiencyOf(nil)
	assert.False(t, none.RevenuePerHour.Valid)
	assert.False(t, none.RevenuePerKm.Valid)
}

func TestEfficiencyIgnoresNonFiniteQuantities(t *testing.T) {
	r := worked(2024, 1, 1, 100)
	r.DistanceKm = math.NaN()
	r.HoursWorked = math.Inf(1)

	eff := EfficiencyOf([]core.DailyRecord{r})
	assert.False(t, eff.RevenuePerHour.Valid)
	assert.False(t, eff.RevenuePerKm.Valid)
	assert.False(t, eff.ProfitPerKm.Valid)
}
