package core

import (
	"fmt"
	"strings"
)

// RecordInput is a day as typed by the operator, before parsing.
// Blank numeric fields mean zero; a blank date means today.
type RecordInput struct {
	Date                 string
	Worked               string
	Revenue              string
	DistanceKm           string
	FuelCost             string
	FoodCost             string
	AttendantCost        string
	CarWashCost          string
	GarageCost           string
	OtherCost            string
	OtherCostDescription string
	HoursWorked          string
	DailyTarget          string
	Notes                string
}

// Record parses the input into a validated DailyRecord. A day off keeps only
// its date; every other field is zeroed.
func (in RecordInput) Record(today Date) (DailyRecord, error) {
	date := today
	if s := strings.TrimSpace(in.Date); s != "" {
		d, err := ParseDate(s)
		if err != nil {
			return DailyRecord{}, err
		}
		date = d
	}

	worked, err := ParseBool(in.Worked)
	if err != nil {
		return DailyRecord{}, fmt.Errorf("worked: %w", err)
	}
	if !worked {
		r := DayOff(date)
		return r, r.Validate()
	}

	r := DailyRecord{
		Date:                 date,
		Worked:               true,
		OtherCostDescription: strings.TrimSpace(in.OtherCostDescription),
		Notes:                strings.TrimSpace(in.Notes),
	}
	money := []struct {
		name string
		raw  string
		dst  *Money
	}{
		{"revenue", in.Revenue, &r.Revenue},
		{"fuel", in.FuelCost, &r.FuelCost},
		{"food", in.FoodCost, &r.FoodCost},
		{"attendant", in.AttendantCost, &r.AttendantCost},
		{"car wash", in.CarWashCost, &r.CarWashCost},
		{"garage", in.GarageCost, &r.GarageCost},
		{"other", in.OtherCost, &r.OtherCost},
		{"daily target", in.DailyTarget, &r.DailyTarget},
	}
	for _, f := range money {
		if strings.TrimSpace(f.raw) == "" {
			continue
		}
		m, err := ParseMoney(f.raw)
		if err != nil {
			return DailyRecord{}, fmt.Errorf("%s: %w", f.name, err)
		}
		*f.dst = m
	}

	if r.DistanceKm, err = ParseQuantity(in.DistanceKm); err != nil {
		return DailyRecord{}, fmt.Errorf("distance: %w", ErrInvalidAmount)
	}
	if r.HoursWorked, err = ParseQuantity(in.HoursWorked); err != nil {
		return DailyRecord{}, fmt.Errorf("hours worked: %w", ErrInvalidAmount)
	}
	if r.OtherCost.Cents == 0 {
		r.OtherCostDescription = ""
	}

	if err := r.Validate(); err != nil {
		return DailyRecord{}, err
	}
	return r, nil
}
