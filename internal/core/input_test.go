package core

import (
	"errors"
	"testing"
)

func TestRecordInputWorkedDay(t *testing.T) {
	in := RecordInput{
		Date:                 "2024-01-05",
		Worked:               "on",
		Revenue:              "200",
		DistanceKm:           "120,5",
		FuelCost:             "50.00",
		FoodCost:             "10",
		OtherCost:            "",
		OtherCostDescription: "ignored without an amount",
		HoursWorked:          "8",
		DailyTarget:          "180",
		Notes:                "  airport run  ",
	}
	r, err := in.Record(NewDate(2030, 1, 1))
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if r.Date.String() != "2024-01-05" || !r.Worked {
		t.Fatalf("unexpected date/worked: %v %v", r.Date, r.Worked)
	}
	if r.Revenue.Cents != 20000 || r.FuelCost.Cents != 5000 || r.FoodCost.Cents != 1000 {
		t.Fatalf("unexpected amounts: %+v", r)
	}
	if r.OtherCost.Cents != 0 || r.OtherCostDescription != "" {
		t.Fatalf("blank other cost should be zero without description: %+v", r)
	}
	if r.DistanceKm != 120.5 || r.HoursWorked != 8 {
		t.Fatalf("unexpected quantities: %v %v", r.DistanceKm, r.HoursWorked)
	}
	if r.Notes != "airport run" {
		t.Fatalf("notes = %q", r.Notes)
	}
	if r.NetProfit().Cents != 14000 {
		t.Fatalf("net = %d", r.NetProfit().Cents)
	}
}

func TestRecordInputDayOffZeroesFields(t *testing.T) {
	r, err := RecordInput{Date: "2024-01-10", Worked: "false", Revenue: "999", Notes: "x"}.Record(NewDate(2030, 1, 1))
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if r != DayOff(NewDate(2024, 1, 10)) {
		t.Fatalf("expected a bare day off, got %+v", r)
	}
}

func TestRecordInputDefaultsToToday(t *testing.T) {
	today := NewDate(2024, 6, 1)
	r, err := RecordInput{}.Record(today)
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if !r.Date.Equal(today.Time) || r.Worked {
		t.Fatalf("unexpected record: %+v", r)
	}
}

func TestRecordInputRejects(t *testing.T) {
	today := NewDate(2024, 6, 1)
	cases := []struct {
		name string
		in   RecordInput
		want error
	}{
		{"bad date", RecordInput{Date: "05/01/2024"}, ErrInvalidDate},
		{"negative revenue", RecordInput{Worked: "true", Revenue: "-1"}, ErrNegativeAmount},
		{"garbage amount", RecordInput{Worked: "true", FuelCost: "ten"}, ErrInvalidAmount},
		{"negative distance", RecordInput{Worked: "true", DistanceKm: "-3"}, ErrNegativeQuantity},
		{"garbage hours", RecordInput{Worked: "true", HoursWorked: "eight"}, ErrInvalidAmount},
		{"NaN distance", RecordInput{Worked: "true", Revenue: "100", DistanceKm: "NaN"}, ErrInvalidAmount},
		{"infinite hours", RecordInput{Worked: "true", Revenue: "100", HoursWorked: "Inf"}, ErrInvalidAmount},
		{"signed infinity", RecordInput{Worked: "true", DistanceKm: "+Inf"}, ErrInvalidAmount},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.in.Record(today)
			if !errors.Is(err, tc.want) {
				t.Fatalf("err = %v, want %v", err, tc.want)
			}
		})
	}

	if _, err := (RecordInput{Worked: "maybe"}).Record(today); !errors.Is(err, ErrInvalidFlag) {
		t.Fatalf("expected ErrInvalidFlag for an unreadable worked flag, got %v", err)
	}
}
