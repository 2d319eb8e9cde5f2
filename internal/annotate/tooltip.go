package annotate

import (
	"fmt"

	"github.com/shamsitray/shamsitray/internal/jalali"
	"github.com/shamsitray/shamsitray/internal/model"
)

// Tooltip builds the tray tooltip lines for a date: the weekday name, the
// numeric date in Persian digits, the written date, then any holiday
// descriptions and event titles.
func Tooltip(d jalali.Date, ann model.Annotation) []string {
	wd, err := d.Weekday()
	lines := make([]string, 0, 3+len(ann.HolidayDescriptions)+len(ann.Events))
	if err == nil {
		lines = append(lines, wd.Name())
	}
	lines = append(lines,
		jalali.PersianDigits(fmt.Sprintf("%d/%d/%d", d.Year, d.Month, d.Day)),
		jalali.PersianDigits(fmt.Sprintf("%d %s %d", d.Day, jalali.MonthName(d.Month), d.Year)),
	)
	lines = append(lines, ann.HolidayDescriptions...)
	for _, ev := range ann.Events {
		lines = append(lines, ev.Title)
	}
	return lines
}
