package core

import (
	"errors"
	"reflect"
	"testing"
)

func TestEncodeDecodeTable(t *testing.T) {
	in := Table{
		{
			Date: NewDate(2024, 1, 5), Worked: true, Revenue: Money{Cents: 20050},
			DistanceKm: 180.5, FuelCost: Money{Cents: 5000}, FoodCost: Money{Cents: 1000},
			OtherCost: Money{Cents: 250}, OtherCostDescription: "parking, downtown",
			HoursWorked: 9.25, DailyTarget: Money{Cents: 25000}, Notes: "rain\nslow evening",
		},
		DayOff(NewDate(2024, 1, 6)),
	}
	rows := EncodeTable(in)
	if !reflect.DeepEqual(rows[0], Header) {
		t.Fatalf("first row must be the header, got %v", rows[0])
	}
	if rows[1][2] != "200.50" || rows[2][1] != "false" {
		t.Fatalf("unexpected cells: %v", rows[1:])
	}
	out, err := DecodeTable(rows)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !reflect.DeepEqual(in, out) {
		t.Fatalf("round trip mismatch:\n in=%+v\nout=%+v", in, out)
	}
}

func TestDecodeTableEmpty(t *testing.T) {
	tbl, err := DecodeTable(nil)
	if err != nil || tbl.Len() != 0 {
		t.Fatalf("expected empty table, got %v err=%v", tbl, err)
	}
	tbl, err = DecodeTable([][]string{Header})
	if err != nil || tbl.Len() != 0 {
		t.Fatalf("header only: expected empty table, got %v err=%v", tbl, err)
	}
}

func TestDecodeTableRejectsSchemaDrift(t *testing.T) {
	extra := append(append([]string(nil), Header...), "tips")
	swapped := append([]string(nil), Header...)
	swapped[2], swapped[3] = swapped[3], swapped[2]
	renamed := append([]string(nil), Header...)
	renamed[0] = "Data"

	for name, h := range map[string][]string{"extra": extra, "swapped": swapped, "renamed": renamed, "missing": Header[:5]} {
		if _, err := DecodeTable([][]string{h}); !errors.Is(err, ErrSchemaMismatch) {
			t.Fatalf("%s: expected ErrSchemaMismatch, got %v", name, err)
		}
	}
}

func TestDecodeRecordBadCells(t *testing.T) {
	row := EncodeRecord(DayOff(NewDate(2024, 2, 1)))
	row[2] = "lots"
	if _, err := DecodeTable([][]string{Header, row}); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
	row = EncodeRecord(DayOff(NewDate(2024, 2, 1)))
	row[0] = "01/02/2024"
	if _, err := DecodeTable([][]string{Header, row}); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
}

func TestDecodeRecordEmptyNumbersAreZero(t *testing.T) {
	row := make([]string, len(Header))
	row[0] = "2024-02-01"
	r, err := DecodeRecord(row)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !reflect.DeepEqual(r, DayOff(NewDate(2024, 2, 1))) {
		t.Fatalf("expected day-off record, got %+v", r)
	}
}
