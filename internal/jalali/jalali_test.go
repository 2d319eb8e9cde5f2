package jalali

import (
	"errors"
	"testing"
	"time"
)

func TestKnownConversions(t *testing.T) {
	cases := []struct {
		jalali    Date
		gregorian string
	}{
		{Date{1400, 1, 1}, "2021-03-21"},
		{Date{1402, 11, 21}, "2024-02-10"},
		{Date{1402, 12, 29}, "2024-03-19"},
		{Date{1403, 1, 1}, "2024-03-20"},
		{Date{1403, 12, 30}, "2025-03-20"},
		{Date{1404, 1, 1}, "2025-03-21"},
		{Date{1411, 12, 29}, "2033-03-19"},
	}

	for _, c := range cases {
		g, err := c.jalali.Gregorian()
		if err != nil {
			t.Fatalf("Gregorian(%s): %v", c.jalali, err)
		}
		if got := g.Format("2006-01-02"); got != c.gregorian {
			t.Errorf("Gregorian(%s) = %s, want %s", c.jalali, got, c.gregorian)
		}

		want, err := time.Parse("2006-01-02", c.gregorian)
		if err != nil {
			t.Fatalf("parse %s: %v", c.gregorian, err)
		}
		back, err := FromTime(want)
		if err != nil {
			t.Fatalf("FromTime(%s): %v", c.gregorian, err)
		}
		if back != c.jalali {
			t.Errorf("FromTime(%s) = %s, want %s", c.gregorian, back, c.jalali)
		}
	}
}

func TestRoundTripAllSupportedYears(t *testing.T) {
	for year := MinYear; year <= MaxYear; year++ {
		for month := 1; month <= 12; month++ {
			for _, day := range []int{1, 15, DaysInMonth(year, month)} {
				d := Date{year, month, day}
				g, err := d.Gregorian()
				if err != nil {
					t.Fatalf("Gregorian(%s): %v", d, err)
				}
				back, err := FromTime(g)
				if err != nil {
					t.Fatalf("FromTime(%s): %v", g.Format("2006-01-02"), err)
				}
				if back != d {
					t.Fatalf("round trip %s -> %s -> %s", d, g.Format("2006-01-02"), back)
				}
			}
		}
	}
}

func TestLeapYears(t *testing.T) {
	// Reference leap years around the builtin holiday span, plus neighbors.
	leaps := map[int]bool{
		1395: true, 1399: true, 1403: true, 1408: true, 1412: true,
		1400: false, 1401: false, 1402: false, 1404: false,
		1405: false, 1406: false, 1407: false, 1409: false,
		1410: false, 1411: false,
	}
	for year, want := range leaps {
		if got := IsLeapYear(year); got != want {
			t.Errorf("IsLeapYear(%d) = %v, want %v", year, got, want)
		}
	}
}

func TestLeapYearMatchesEsfandLength(t *testing.T) {
	// A year is leap exactly when the day after Esfand 29 is still Esfand.
	for year := MinYear; year < MaxYear; year++ {
		d := Date{year, 12, 29}
		next, err := d.AddDays(1)
		if err != nil {
			t.Fatalf("AddDays(%s, 1): %v", d, err)
		}
		isLeap := next.Month == 12
		if isLeap != IsLeapYear(year) {
			t.Errorf("year %d: Esfand length says leap=%v, IsLeapYear says %v", year, isLeap, IsLeapYear(year))
		}
		if IsLeapYear(year) && DaysInMonth(year, 12) != 30 {
			t.Errorf("DaysInMonth(%d, 12) = %d, want 30", year, DaysInMonth(year, 12))
		}
		if !IsLeapYear(year) && DaysInMonth(year, 12) != 29 {
			t.Errorf("DaysInMonth(%d, 12) = %d, want 29", year, DaysInMonth(year, 12))
		}
	}
}

func TestDaysInMonth(t *testing.T) {
	for month := 1; month <= 6; month++ {
		if got := DaysInMonth(1403, month); got != 31 {
			t.Errorf("DaysInMonth(1403, %d) = %d, want 31", month, got)
		}
	}
	for month := 7; month <= 11; month++ {
		if got := DaysInMonth(1403, month); got != 30 {
			t.Errorf("DaysInMonth(1403, %d) = %d, want 30", month, got)
		}
	}
}

func TestWeekday(t *testing.T) {
	// 1403/01/01 = 2024-03-20, a Wednesday.
	d := Date{1403, 1, 1}
	wd, err := d.Weekday()
	if err != nil {
		t.Fatalf("Weekday(%s): %v", d, err)
	}
	if wd != Wednesday {
		t.Errorf("Weekday(%s) = %d, want Wednesday", d, wd)
	}

	// Two days later is the Persian weekend day.
	friday, err := d.AddDays(2)
	if err != nil {
		t.Fatalf("AddDays: %v", err)
	}
	wd, err = friday.Weekday()
	if err != nil {
		t.Fatalf("Weekday(%s): %v", friday, err)
	}
	if wd != Friday {
		t.Errorf("Weekday(%s) = %d, want Friday", friday, wd)
	}
}

func TestAddDaysCrossesMonthAndYear(t *testing.T) {
	d := Date{1403, 6, 31}
	got, err := d.AddDays(1)
	if err != nil {
		t.Fatalf("AddDays: %v", err)
	}
	if got != (Date{1403, 7, 1}) {
		t.Errorf("AddDays(%s, 1) = %s, want 1403/07/01", d, got)
	}

	d = Date{1403, 12, 30}
	got, err = d.AddDays(1)
	if err != nil {
		t.Fatalf("AddDays: %v", err)
	}
	if got != (Date{1404, 1, 1}) {
		t.Errorf("AddDays(%s, 1) = %s, want 1404/01/01", d, got)
	}

	got, err = got.AddDays(-1)
	if err != nil {
		t.Fatalf("AddDays: %v", err)
	}
	if got != (Date{1403, 12, 30}) {
		t.Errorf("AddDays back = %s, want 1403/12/30", got)
	}
}

func TestValidateRejectsOutOfRange(t *testing.T) {
	cases := []Date{
		{99, 1, 1},
		{1199, 12, 29},
		{1601, 1, 1},
		{1403, 13, 1},
		{1403, 0, 1},
		{1402, 12, 30}, // 1402 is not a leap year
		{1403, 7, 31},
	}
	for _, d := range cases {
		if err := d.Validate(); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("Validate(%s) = %v, want ErrOutOfRange", d, err)
		}
	}

	if err := (Date{1403, 12, 30}).Validate(); err != nil {
		t.Errorf("Validate(1403/12/30) = %v, want nil (leap year)", err)
	}
}

func TestConversionSlackBeyondBounds(t *testing.T) {
	// One year of slack exists for grid padding, no more.
	if _, err := (Date{MinYear - 1, 12, 29}).Gregorian(); err != nil {
		t.Errorf("Gregorian(%d/12/29) = %v, want nil (slack year)", MinYear-1, err)
	}
	if _, err := (Date{MinYear - 2, 1, 1}).Gregorian(); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("Gregorian(%d/01/01) should be out of range", MinYear-2)
	}
	if _, err := (Date{MaxYear + 1, 1, 1}).Gregorian(); err != nil {
		t.Errorf("Gregorian(%d/01/01) = %v, want nil (slack year)", MaxYear+1, err)
	}
	if _, err := (Date{MaxYear + 2, 1, 1}).Gregorian(); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("Gregorian(%d/01/01) should be out of range", MaxYear+2)
	}
}

func TestPersianDigits(t *testing.T) {
	if got := PersianDigits("1403/01/01"); got != "۱۴۰۳/۰۱/۰۱" {
		t.Errorf("PersianDigits = %q", got)
	}
	if got := LatinDigits("۱۴۰۳"); got != "1403" {
		t.Errorf("LatinDigits = %q", got)
	}
}

func TestMonthAndWeekdayNames(t *testing.T) {
	if got := MonthName(1); got != "فروردین" {
		t.Errorf("MonthName(1) = %q", got)
	}
	if got := MonthName(12); got != "اسفند" {
		t.Errorf("MonthName(12) = %q", got)
	}
	if got := MonthName(13); got != "" {
		t.Errorf("MonthName(13) = %q, want empty", got)
	}
	if got := Friday.Name(); got != "جمعه" {
		t.Errorf("Friday.Name() = %q", got)
	}
	if got := Saturday.ShortName(); got != "ش" {
		t.Errorf("Saturday.ShortName() = %q", got)
	}
}
