package calendar

import (
	"errors"
	"testing"

	"github.com/shamsitray/shamsitray/internal/jalali"
	"github.com/shamsitray/shamsitray/internal/model"
)

type plainAnnotator struct{}

func (plainAnnotator) Annotate(d jalali.Date) model.Annotation {
	return model.Annotation{ColorClass: model.ColorNormal}
}

func TestBuildFarvardin1403(t *testing.T) {
	b := NewBuilder(plainAnnotator{})
	today := jalali.Date{Year: 1403, Month: 1, Day: 15}

	grid, err := b.Build(1403, 1, today)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if grid.MonthName != "فروردین" {
		t.Errorf("month name = %q", grid.MonthName)
	}
	if grid.Weekdays[0] != "ش" || grid.Weekdays[6] != "ج" {
		t.Errorf("weekday headers = %v, want Saturday-first", grid.Weekdays)
	}

	// 1403/1/1 is a Wednesday, so four trailing days of Esfand 1402
	// lead the grid. Esfand 1402 has 29 days.
	if want := (jalali.Date{Year: 1402, Month: 12, Day: 26}); grid.Cells[0].Date != want {
		t.Errorf("cell 0 = %s, want %s", grid.Cells[0].Date, want)
	}
	if grid.Cells[0].InMonth {
		t.Error("padding cell marked in-month")
	}
	if want := (jalali.Date{Year: 1403, Month: 1, Day: 1}); grid.Cells[4].Date != want {
		t.Errorf("cell 4 = %s, want %s", grid.Cells[4].Date, want)
	}
	if !grid.Cells[4].InMonth {
		t.Error("first of month not marked in-month")
	}

	inMonth := 0
	todays := 0
	for _, c := range grid.Cells {
		if c.InMonth {
			inMonth++
		}
		if c.IsToday {
			todays++
			if c.Date != today {
				t.Errorf("today marker on %s", c.Date)
			}
		}
	}
	if inMonth != 31 {
		t.Errorf("in-month cells = %d, want 31", inMonth)
	}
	if todays != 1 {
		t.Errorf("today marked %d times", todays)
	}

	// The tail spills into Ordibehesht.
	if want := (jalali.Date{Year: 1403, Month: 2, Day: 7}); grid.Cells[41].Date != want {
		t.Errorf("cell 41 = %s, want %s", grid.Cells[41].Date, want)
	}
}

func TestBuildConsecutiveCells(t *testing.T) {
	b := NewBuilder(plainAnnotator{})
	grid, err := b.Build(1402, 12, jalali.Date{})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	for i := 1; i < GridCells; i++ {
		next, err := grid.Cells[i-1].Date.AddDays(1)
		if err != nil {
			t.Fatalf("add day: %v", err)
		}
		if grid.Cells[i].Date != next {
			t.Fatalf("cell %d = %s, want %s", i, grid.Cells[i].Date, next)
		}
	}
}

func TestBuildAtRangeBounds(t *testing.T) {
	b := NewBuilder(plainAnnotator{})

	// Padding may reach into the year just outside the supported range.
	if _, err := b.Build(1200, 1, jalali.Date{}); err != nil {
		t.Errorf("build 1200/1: %v", err)
	}
	if _, err := b.Build(1600, 12, jalali.Date{}); err != nil {
		t.Errorf("build 1600/12: %v", err)
	}
	if _, err := b.Build(1199, 12, jalali.Date{}); err == nil {
		t.Error("build 1199/12 should fail")
	}
	if _, err := b.Build(1601, 1, jalali.Date{}); err == nil {
		t.Error("build 1601/1 should fail")
	}
}

func TestMonthNavigation(t *testing.T) {
	y, m, err := NextMonth(1403, 12)
	if err != nil || y != 1404 || m != 1 {
		t.Errorf("next of 1403/12 = %d/%d, %v", y, m, err)
	}
	y, m, err = PrevMonth(1404, 1)
	if err != nil || y != 1403 || m != 12 {
		t.Errorf("prev of 1404/1 = %d/%d, %v", y, m, err)
	}
	if _, _, err := NextMonth(1600, 12); !errors.Is(err, jalali.ErrOutOfRange) {
		t.Errorf("next of 1600/12: %v", err)
	}
	if _, _, err := PrevMonth(1200, 1); !errors.Is(err, jalali.ErrOutOfRange) {
		t.Errorf("prev of 1200/1: %v", err)
	}
}

func TestGoToDate(t *testing.T) {
	d, err := GoToDate(1403, 12, 30)
	if err != nil {
		t.Fatalf("1403/12/30 is valid in a leap year: %v", err)
	}
	if (d != jalali.Date{Year: 1403, Month: 12, Day: 30}) {
		t.Errorf("got %s", d)
	}

	for _, bad := range [][3]int{
		{99, 1, 1},
		{1601, 1, 1},
		{1402, 12, 30},
		{1403, 13, 1},
		{1403, 0, 10},
		{1403, 7, 31},
	} {
		if _, err := GoToDate(bad[0], bad[1], bad[2]); !errors.Is(err, jalali.ErrOutOfRange) {
			t.Errorf("GoToDate(%v): %v, want ErrOutOfRange", bad, err)
		}
	}
}
