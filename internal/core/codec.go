package core

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Header is the fixed column order of the persisted table.
var Header = []string{
	"date",
	"worked",
	"revenue",
	"distanceKm",
	"fuelCost",
	"foodCost",
	"attendantCost",
	"carWashCost",
	"garageCost",
	"otherCost",
	"otherCostDescription",
	"hoursWorked",
	"dailyTarget",
	"notes",
}

// CheckHeader rejects unknown, missing or reordered columns.
func CheckHeader(h []string) error {
	if len(h) != len(Header) {
		return fmt.Errorf("%w: got %d columns, want %d", ErrSchemaMismatch, len(h), len(Header))
	}
	for i, name := range Header {
		got := strings.TrimSpace(h[i])
		if i == 0 {
			got = strings.TrimPrefix(got, "\ufeff")
		}
		if got != name {
			return fmt.Errorf("%w: column %d is %q, want %q", ErrSchemaMismatch, i+1, got, name)
		}
	}
	return nil
}

// EncodeRecord renders a record as one row of cells in Header order.
func EncodeRecord(r DailyRecord) []string {
	return []string{
		r.Date.String(),
		strconv.FormatBool(r.Worked),
		r.Revenue.Decimal(),
		formatQuantity(r.DistanceKm),
		r.FuelCost.Decimal(),
		r.FoodCost.Decimal(),
		r.AttendantCost.Decimal(),
		r.CarWashCost.Decimal(),
		r.GarageCost.Decimal(),
		r.OtherCost.Decimal(),
		r.OtherCostDescription,
		formatQuantity(r.HoursWorked),
		r.DailyTarget.Decimal(),
		r.Notes,
	}
}

// DecodeRecord parses one row of cells in Header order. Empty numeric
// cells are read as zero.
func DecodeRecord(row []string) (DailyRecord, error) {
	if len(row) != len(Header) {
		return DailyRecord{}, fmt.Errorf("%w: row has %d cells, want %d", ErrSchemaMismatch, len(row), len(Header))
	}
	var (
		r   DailyRecord
		err error
	)
	if r.Date, err = ParseDate(strings.TrimSpace(row[0])); err != nil {
		return DailyRecord{}, err
	}
	if r.Worked, err = ParseBool(row[1]); err != nil {
		return DailyRecord{}, fmt.Errorf("worked: %w", err)
	}
	money := []struct {
		name string
		cell string
		dst  *Money
	}{
		{"revenue", row[2], &r.Revenue},
		{"fuelCost", row[4], &r.FuelCost},
		{"foodCost", row[5], &r.FoodCost},
		{"attendantCost", row[6], &r.AttendantCost},
		{"carWashCost", row[7], &r.CarWashCost},
		{"garageCost", row[8], &r.GarageCost},
		{"otherCost", row[9], &r.OtherCost},
		{"dailyTarget", row[12], &r.DailyTarget},
	}
	for _, m := range money {
		if strings.TrimSpace(m.cell) == "" {
			continue
		}
		if *m.dst, err = ParseMoney(m.cell); err != nil {
			return DailyRecord{}, fmt.Errorf("%s: %w", m.name, err)
		}
	}
	if r.DistanceKm, err = ParseQuantity(row[3]); err != nil {
		return DailyRecord{}, fmt.Errorf("distanceKm: %w", err)
	}
	if r.HoursWorked, err = ParseQuantity(row[11]); err != nil {
		return DailyRecord{}, fmt.Errorf("hoursWorked: %w", err)
	}
	r.OtherCostDescription = row[10]
	r.Notes = row[13]
	return r, nil
}

// DecodeTable parses a header row followed by data rows. An input with no
// rows at all is the empty table.
func DecodeTable(rows [][]string) (Table, error) {
	if len(rows) == 0 {
		return Table{}, nil
	}
	if err := CheckHeader(rows[0]); err != nil {
		return nil, err
	}
	t := make(Table, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if isBlank(row) {
			continue
		}
		r, err := DecodeRecord(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		t = append(t, r)
	}
	return t, nil
}

// EncodeTable renders the header followed by one row per record.
func EncodeTable(t Table) [][]string {
	rows := make([][]string, 0, len(t)+1)
	rows = append(rows, append([]string(nil), Header...))
	for _, r := range t {
		rows = append(rows, EncodeRecord(r))
	}
	return rows
}

// ParseBool accepts true/false, 1/0, yes/no and a checkbox "on"; blank is false.
func ParseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes", "on":
		return true, nil
	case "false", "0", "no", "":
		return false, nil
	}
	return false, fmt.Errorf("%q: %w", s, ErrInvalidFlag)
}

// ParseQuantity reads a decimal such as kilometres or hours; blank is zero.
// NaN and infinities are rejected with ErrInvalidAmount.
func ParseQuantity(s string) (float64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%q: %w", s, ErrInvalidAmount)
	}
	return v, nil
}

func formatQuantity(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
