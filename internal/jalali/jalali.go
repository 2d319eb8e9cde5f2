// Package jalali implements Jalali (Shamsi) calendar arithmetic: conversion
// to and from the Gregorian calendar, leap years, month lengths, weekday
// computation, and day offsets. All functions are pure and side-effect-free.
package jalali

import (
	"errors"
	"fmt"
	"time"
)

// Supported year range. Dates outside it are rejected, never clamped.
const (
	MinYear = 1200
	MaxYear = 1600
)

// Conversion tolerates one year of slack beyond the supported range so that
// month grids at the bounds can still be padded with adjacent-month cells.
const (
	convMinYear = MinYear - 1
	convMaxYear = MaxYear + 1
)

// ErrOutOfRange is returned for dates outside the supported calendar span.
var ErrOutOfRange = errors.New("date out of supported range")

// Date is an immutable Jalali calendar date.
type Date struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}

// Weekday numbers days Saturday through Friday, matching the Persian week.
type Weekday int

const (
	Saturday Weekday = iota
	Sunday
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
)

// goWeekday maps time.Weekday (Sunday = 0) onto the Saturday-first week.
var goWeekday = [7]Weekday{Sunday, Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}

func (d Date) String() string {
	return fmt.Sprintf("%04d/%02d/%02d", d.Year, d.Month, d.Day)
}

// IsLeapYear reports whether a Jalali year has 366 days (Esfand with 30
// days). It follows the 33-year intercalation cycle and is consistent with
// the day-count arithmetic used for conversion: reference leap years include
// 1399, 1403 and 1408.
func IsLeapYear(year int) bool {
	r := (year + 1595) % 33
	return r%4 == 0 && r != 32
}

// DaysInMonth returns the number of days in the given Jalali month.
// Months 1-6 have 31 days, 7-11 have 30, and Esfand has 29 or 30.
func DaysInMonth(year, month int) int {
	switch {
	case month <= 6:
		return 31
	case month <= 11:
		return 30
	default:
		if IsLeapYear(year) {
			return 30
		}
		return 29
	}
}

// Validate checks the date against the supported year range and the Jalali
// month and day bounds. The returned error wraps ErrOutOfRange.
func (d Date) Validate() error {
	if d.Year < MinYear || d.Year > MaxYear {
		return fmt.Errorf("year %d outside %d-%d: %w", d.Year, MinYear, MaxYear, ErrOutOfRange)
	}
	if d.Month < 1 || d.Month > 12 {
		return fmt.Errorf("month %d: %w", d.Month, ErrOutOfRange)
	}
	if d.Day < 1 || d.Day > DaysInMonth(d.Year, d.Month) {
		return fmt.Errorf("day %d of %04d/%02d: %w", d.Day, d.Year, d.Month, ErrOutOfRange)
	}
	return nil
}

// Gregorian converts the date to its Gregorian equivalent at midnight UTC.
func (d Date) Gregorian() (time.Time, error) {
	if d.Year < convMinYear || d.Year > convMaxYear {
		return time.Time{}, fmt.Errorf("convert %s: %w", d, ErrOutOfRange)
	}
	if d.Month < 1 || d.Month > 12 || d.Day < 1 || d.Day > DaysInMonth(d.Year, d.Month) {
		return time.Time{}, fmt.Errorf("convert %s: %w", d, ErrOutOfRange)
	}
	gy, gm, gd := toGregorian(d.Year, d.Month, d.Day)
	return time.Date(gy, time.Month(gm), gd, 0, 0, 0, 0, time.UTC), nil
}

// FromTime converts a Gregorian instant to the Jalali date of its calendar
// day. The time of day and location are ignored beyond extracting the date.
func FromTime(t time.Time) (Date, error) {
	jy, jm, jd := toJalali(t.Year(), int(t.Month()), t.Day())
	d := Date{Year: jy, Month: jm, Day: jd}
	if jy < convMinYear || jy > convMaxYear {
		return Date{}, fmt.Errorf("convert %s: %w", t.Format("2006-01-02"), ErrOutOfRange)
	}
	return d, nil
}

// Weekday returns the Saturday-first weekday of the date.
func (d Date) Weekday() (Weekday, error) {
	g, err := d.Gregorian()
	if err != nil {
		return 0, err
	}
	return goWeekday[int(g.Weekday())], nil
}

// AddDays returns the date offset by n calendar days (n may be negative).
func (d Date) AddDays(n int) (Date, error) {
	g, err := d.Gregorian()
	if err != nil {
		return Date{}, err
	}
	return FromTime(g.AddDate(0, 0, n))
}

// Before reports whether d falls strictly before o.
func (d Date) Before(o Date) bool {
	if d.Year != o.Year {
		return d.Year < o.Year
	}
	if d.Month != o.Month {
		return d.Month < o.Month
	}
	return d.Day < o.Day
}

// toGregorian is the raw 33-year-cycle conversion. Inputs must be a valid
// Jalali date; the caller range-checks.
func toGregorian(jy, jm, jd int) (gy, gm, gd int) {
	jy += 1595
	days := -355668 + 365*jy + (jy/33)*8 + ((jy%33)+3)/4 + jd
	if jm < 7 {
		days += (jm - 1) * 31
	} else {
		days += (jm-7)*30 + 186
	}

	gy = 400 * (days / 146097)
	days %= 146097
	if days > 36524 {
		days--
		gy += 100 * (days / 36524)
		days %= 36524
		if days >= 365 {
			days++
		}
	}
	gy += 4 * (days / 1461)
	days %= 1461
	if days > 365 {
		gy += (days - 1) / 365
		days = (days - 1) % 365
	}
	gd = days + 1

	leap := 0
	if (gy%4 == 0 && gy%100 != 0) || gy%400 == 0 {
		leap = 1
	}
	monthDays := [12]int{31, 28 + leap, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}
	gm = 0
	for gm < 12 && gd > monthDays[gm] {
		gd -= monthDays[gm]
		gm++
	}
	gm++
	return gy, gm, gd
}

// toJalali is the raw inverse conversion.
func toJalali(gy, gm, gd int) (jy, jm, jd int) {
	monthStart := [12]int{0, 31, 59, 90, 120, 151, 181, 212, 243, 273, 304, 334}

	if gy > 1600 {
		jy = 979
		gy -= 1600
	} else {
		gy -= 621
	}
	gy2 := gy
	if gm > 2 {
		gy2 = gy + 1
	}
	days := 365*gy + (gy2+3)/4 - (gy2+99)/100 + (gy2+399)/400 - 80 + gd + monthStart[gm-1]

	jy += 33 * (days / 12053)
	days %= 12053
	jy += 4 * (days / 1461)
	days %= 1461
	if days > 365 {
		jy += (days - 1) / 365
		days = (days - 1) % 365
	}

	if days < 186 {
		jm = 1 + days/31
		jd = 1 + days%31
	} else {
		jm = 7 + (days-186)/30
		jd = 1 + (days-186)%30
	}
	return jy, jm, jd
}
