package terminal

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"drivelog/internal/core"
	"drivelog/internal/report"
	"drivelog/internal/services"
	"drivelog/internal/sheets/memory"
)

func run(t *testing.T, j *services.Journal, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cli := NewCLI(Options{
		Journal: j,
		Output:  &out,
		Now:     func() time.Time { return time.Date(2024, 3, 9, 18, 0, 0, 0, time.UTC) },
		Timeout: 5 * time.Second,
	})
	cli.SetArgs(args)
	err := cli.ExecuteContext(context.Background())
	return out.String(), err
}

func newJournal(seed ...core.DailyRecord) (*services.Journal, *memory.Store) {
	store := memory.New(seed...)
	return services.NewJournal(store, report.New("R$")), store
}

func TestRegisterAndHistory(t *testing.T) {
	j, store := newJournal()

	out, err := run(t, j, "register", "--date", "2024-01-05", "--revenue", "200", "--fuel", "50", "--food", "10", "--km", "120", "--notes", "airport")
	require.NoError(t, err)
	assert.Contains(t, out, "Day 2024-01-05 saved: revenue R$ 200.00, expenses R$ 60.00, net R$ 140.00.")

	out, err = run(t, j, "register", "--off", "--revenue", "99")
	require.NoError(t, err)
	assert.Contains(t, out, "Day off on 2024-03-09 recorded.")

	table, err := store.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, table, 2)
	assert.Equal(t, core.DayOff(core.NewDate(2024, 3, 9)), table[1])

	out, err = run(t, j, "history")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "Date"))
	assert.True(t, strings.HasPrefix(lines[1], "2024-03-09"))
	assert.Contains(t, lines[2], "airport")

	out, err = run(t, j, "history", "--limit", "1")
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 2)
}

func TestRegisterRejectsInvalidInput(t *testing.T) {
	j, store := newJournal()

	_, err := run(t, j, "register", "--revenue=-10")
	require.ErrorIs(t, err, core.ErrNegativeAmount)

	_, err = run(t, j, "register", "--date", "2024/01/05")
	require.ErrorIs(t, err, core.ErrInvalidDate)

	assert.Zero(t, store.Persists())
}

func TestEmptyJournal(t *testing.T) {
	j, _ := newJournal()

	out, err := run(t, j, "history")
	require.NoError(t, err)
	assert.Contains(t, out, "no data")

	for _, cmd := range []string{"month", "year", "compare"} {
		out, err := run(t, j, cmd)
		require.NoError(t, err, cmd)
		assert.Contains(t, out, "no data", cmd)
	}

	_, err = run(t, j, "export")
	assert.Error(t, err)
}

func seededJournal() *services.Journal {
	jan := core.DailyRecord{
		Date: core.NewDate(2024, 1, 5), Worked: true,
		Revenue: core.Money{Cents: 20000}, FuelCost: core.Money{Cents: 5000}, FoodCost: core.Money{Cents: 1000},
		DistanceKm: 100, HoursWorked: 8, DailyTarget: core.Money{Cents: 15000},
	}
	mar := core.DailyRecord{
		Date: core.NewDate(2024, 3, 2), Worked: true,
		Revenue: core.Money{Cents: 10000}, GarageCost: core.Money{Cents: 15000},
	}
	j, _ := newJournal(jan, core.DayOff(core.NewDate(2024, 2, 14)), mar)
	return j
}

func TestMonthSummary(t *testing.T) {
	j := seededJournal()

	out, err := run(t, j, "month", "2024-01")
	require.NoError(t, err)
	assert.Contains(t, out, "Monthly summary 2024-01")
	assert.Contains(t, out, "Available: 2024-03, 2024-02, 2024-01")
	assert.Contains(t, out, "R$ 140.00")
	assert.Contains(t, out, "83.3%")

	out, err = run(t, j, "month", "2024-02")
	require.NoError(t, err)
	assert.Contains(t, out, report.NoData, "a month without worked days has no average")

	_, err = run(t, j, "month", "2024-1")
	assert.ErrorIs(t, err, core.ErrInvalidMonthKey)
}

func TestYearAndCompare(t *testing.T) {
	j := seededJournal()

	out, err := run(t, j, "year")
	require.NoError(t, err)
	assert.Contains(t, out, "Annual summary 2024")
	assert.Contains(t, out, "R$ 90.00")
	assert.Contains(t, out, "-R$ 50.00")

	out, err = run(t, j, "compare")
	require.NoError(t, err)
	assert.Contains(t, out, "2024-01")
	assert.Contains(t, out, "2024-03")
	assert.NotContains(t, out, "2024-02", "months without worked days are not charted")
}

func TestExportWritesPDF(t *testing.T) {
	j := seededJournal()
	dir := t.TempDir()

	out, err := run(t, j, "export", "2024-01", "--out", dir)
	require.NoError(t, err)
	path := filepath.Join(dir, "summary_2024-01.pdf")
	assert.Contains(t, out, path)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(content, []byte("%PDF")))

	explicit := filepath.Join(dir, "jan.pdf")
	_, err = run(t, j, "export", "2024-01", "-o", explicit)
	require.NoError(t, err)
	assert.FileExists(t, explicit)
}
