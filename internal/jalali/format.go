package jalali

import "strings"

var monthNames = [12]string{
	"فروردین", "اردیبهشت", "خرداد", "تیر", "مرداد", "شهریور",
	"مهر", "آبان", "آذر", "دی", "بهمن", "اسفند",
}

var weekdayNames = [7]string{
	"شنبه", "یکشنبه", "دوشنبه", "سه‌شنبه", "چهارشنبه", "پنج‌شنبه", "جمعه",
}

var weekdayShortNames = [7]string{"ش", "ی", "د", "س", "چ", "پ", "ج"}

var persianDigits = [10]rune{'۰', '۱', '۲', '۳', '۴', '۵', '۶', '۷', '۸', '۹'}

// MonthName returns the Persian name of a Jalali month (1-based). Out-of-range
// months yield an empty string.
func MonthName(month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	return monthNames[month-1]
}

// Name returns the Persian weekday name.
func (w Weekday) Name() string {
	if w < Saturday || w > Friday {
		return ""
	}
	return weekdayNames[w]
}

// ShortName returns the single-letter Persian weekday abbreviation used for
// calendar column headers.
func (w Weekday) ShortName() string {
	if w < Saturday || w > Friday {
		return ""
	}
	return weekdayShortNames[w]
}

// PersianDigits replaces every ASCII digit in s with its Persian counterpart.
func PersianDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(persianDigits[r-'0'])
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// LatinDigits replaces every Persian digit in s with its ASCII counterpart.
func LatinDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		replaced := false
		for i, p := range persianDigits {
			if r == p {
				b.WriteRune(rune('0' + i))
				replaced = true
				break
			}
		}
		if !replaced {
			b.WriteRune(r)
		}
	}
	return b.String()
}
