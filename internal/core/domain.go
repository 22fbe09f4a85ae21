package core

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"
)

// DateLayout is the fixed-width form every date is stored and compared in.
const DateLayout = "2006-01-02"

type (
	Date struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	// ExpenseCategory names one of the six fixed cost columns of a record.
	ExpenseCategory string

	// DailyRecord is one row of the journal: a worked session or a day off.
	DailyRecord struct {
		Date                 Date
		Worked               bool
		Revenue              Money
		DistanceKm           float64
		FuelCost             Money
		FoodCost             Money
		AttendantCost        Money
		CarWashCost          Money
		GarageCost           Money
		OtherCost            Money
		OtherCostDescription string
		HoursWorked          float64
		DailyTarget          Money
		Notes                string
	}

	// Table is the append-only log of records in insertion order.
	Table []DailyRecord
)

const (
	CategoryFuel      ExpenseCategory = "fuel"
	CategoryFood      ExpenseCategory = "food"
	CategoryAttendant ExpenseCategory = "attendant"
	CategoryCarWash   ExpenseCategory = "car_wash"
	CategoryGarage    ExpenseCategory = "garage"
	CategoryOther     ExpenseCategory = "other"
)

// ExpenseCategories lists the cost columns in their fixed display order.
var ExpenseCategories = []ExpenseCategory{
	CategoryFuel,
	CategoryFood,
	CategoryAttendant,
	CategoryCarWash,
	CategoryGarage,
	CategoryOther,
}

var (
	ErrInvalidDate      = errors.New("invalid date")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrNegativeAmount   = errors.New("amount cannot be negative")
	ErrNegativeQuantity = errors.New("quantity cannot be negative")
	ErrInvalidMonthKey  = errors.New("invalid month, expected YYYY-MM")
	ErrInvalidYearKey   = errors.New("invalid year, expected YYYY")
	ErrSchemaMismatch   = errors.New("table header does not match schema")
	ErrNotesTooLong     = errors.New("text too long (max 500 characters)")
	ErrInvalidFlag      = errors.New("invalid yes/no value")
	ErrMissingField     = errors.New("field is required")
)

const maxTextLength = 500

// NewDate creates a new Date from year, month, day
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return Date{Time: t}, nil
}

func (d Date) Validate() error {
	if d.IsZero() {
		return fmt.Errorf("%w: date cannot be zero", ErrInvalidDate)
	}
	if y := d.Year(); y < 1000 || y > 9999 {
		// Four-digit years keep the string form fixed width.
		return fmt.Errorf("%w: year %d out of range", ErrInvalidDate, y)
	}
	return nil
}

// String returns the fixed-width YYYY-MM-DD form.
func (d Date) String() string {
	return d.Format(DateLayout)
}

// MonthKey returns the YYYY-MM prefix of the date.
func (d Date) MonthKey() string {
	return d.String()[:7]
}

// YearKey returns the YYYY prefix of the date.
func (d Date) YearKey() string {
	return d.String()[:4]
}

// ParseMonthKey checks that s is a YYYY-MM month key.
func ParseMonthKey(s string) (string, error) {
	if len(s) != 7 {
		return "", fmt.Errorf("%w: %q", ErrInvalidMonthKey, s)
	}
	if _, err := time.Parse("2006-01", s); err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidMonthKey, s)
	}
	return s, nil
}

// ParseYearKey checks that s is a four digit year key.
func ParseYearKey(s string) (string, error) {
	if len(s) != 4 {
		return "", fmt.Errorf("%w: %q", ErrInvalidYearKey, s)
	}
	if _, err := strconv.Atoi(s); err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidYearKey, s)
	}
	return s, nil
}

func (m Money) Add(o Money) Money { return Money{Cents: m.Cents + o.Cents} }
func (m Money) Sub(o Money) Money { return Money{Cents: m.Cents - o.Cents} }

func (m Money) Validate() error {
	if m.Cents < 0 {
		return ErrNegativeAmount
	}
	return nil
}

// Label returns the human readable name of the category.
func (c ExpenseCategory) Label() string {
	switch c {
	case CategoryFuel:
		return "Fuel"
	case CategoryFood:
		return "Food"
	case CategoryAttendant:
		return "Attendant"
	case CategoryCarWash:
		return "Car wash"
	case CategoryGarage:
		return "Garage"
	case CategoryOther:
		return "Other"
	}
	return string(c)
}

// DayOff builds the all-zero record used for a day without work.
func DayOff(d Date) DailyRecord {
	return DailyRecord{Date: d, Worked: false}
}

// Cost returns the amount spent on a single category.
func (r DailyRecord) Cost(c ExpenseCategory) Money {
	switch c {
	case CategoryFuel:
		return r.FuelCost
	case CategoryFood:
		return r.FoodCost
	case CategoryAttendant:
		return r.AttendantCost
	case CategoryCarWash:
		return r.CarWashCost
	case CategoryGarage:
		return r.GarageCost
	case CategoryOther:
		return r.OtherCost
	}
	return Money{}
}

// TotalExpenses sums the six cost categories.
func (r DailyRecord) TotalExpenses() Money {
	var total Money
	for _, c := range ExpenseCategories {
		total = total.Add(r.Cost(c))
	}
	return total
}

// NetProfit is revenue minus total expenses.
func (r DailyRecord) NetProfit() Money {
	return r.Revenue.Sub(r.TotalExpenses())
}

// TargetMet reports whether revenue reached the daily target.
func (r DailyRecord) TargetMet() bool {
	return r.Revenue.Cents >= r.DailyTarget.Cents
}

// Validate checks operator input before it is appended. The store itself
// does not call it, so legacy rows load as they are.
func (r DailyRecord) Validate() error {
	if err := r.Date.Validate(); err != nil {
		return err
	}
	type amount struct {
		name  string
		value Money
	}
	amounts := []amount{{"revenue", r.Revenue}}
	for _, c := range ExpenseCategories {
		amounts = append(amounts, amount{c.Label(), r.Cost(c)})
	}
	amounts = append(amounts, amount{"daily target", r.DailyTarget})
	for _, a := range amounts {
		if err := a.value.Validate(); err != nil {
			return fmt.Errorf("%s: %w", a.name, err)
		}
	}
	if err := validateQuantity(r.DistanceKm); err != nil {
		return fmt.Errorf("distance: %w", err)
	}
	if err := validateQuantity(r.HoursWorked); err != nil {
		return fmt.Errorf("hours worked: %w", err)
	}
	if len(r.Notes) > maxTextLength || len(r.OtherCostDescription) > maxTextLength {
		return ErrNotesTooLong
	}
	return nil
}

func validateQuantity(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return ErrInvalidAmount
	}
	if v < 0 {
		return ErrNegativeQuantity
	}
	return nil
}

// Len returns the number of rows.
func (t Table) Len() int { return len(t) }

// Records returns a copy of the rows so callers cannot alias the table.
func (t Table) Records() []DailyRecord {
	out := make([]DailyRecord, len(t))
	copy(out, t)
	return out
}
