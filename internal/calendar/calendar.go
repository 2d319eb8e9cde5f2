// Package calendar builds the month view consumed by the rendering shell:
// a fixed six-week grid of annotated cells with Saturday as the first
// column, padded with the trailing and leading days of adjacent months.
package calendar

import (
	"fmt"

	"github.com/shamsitray/shamsitray/internal/jalali"
	"github.com/shamsitray/shamsitray/internal/model"
)

// GridWeeks and GridColumns fix the grid shape. Six rows of seven days
// always fit a Jalali month regardless of where its first day lands.
const (
	GridWeeks   = 6
	GridColumns = 7
	GridCells   = GridWeeks * GridColumns
)

// Cell is one slot of the month grid. Cells outside the displayed month
// carry InMonth=false so the shell can dim them.
type Cell struct {
	Date       jalali.Date      `json:"date"`
	InMonth    bool             `json:"in_month"`
	IsToday    bool             `json:"is_today"`
	Annotation model.Annotation `json:"annotation"`
}

// MonthGrid is a fully annotated six-week view of one Jalali month.
// Weekdays carries the Saturday-first column headers.
type MonthGrid struct {
	Year      int                 `json:"year"`
	Month     int                 `json:"month"`
	MonthName string              `json:"month_name"`
	Weekdays  [GridColumns]string `json:"weekdays"`
	Cells     [GridCells]Cell     `json:"cells"`
}

// Annotator supplies the per-date annotation for grid cells.
type Annotator interface {
	Annotate(d jalali.Date) model.Annotation
}

// Builder assembles month grids.
type Builder struct {
	annotator Annotator
}

func NewBuilder(a Annotator) *Builder {
	return &Builder{annotator: a}
}

// Build returns the grid for the given month. today marks the matching cell
// so the shell can outline it; a today outside the grid simply marks
// nothing. The month itself must lie within the supported range, but the
// padding cells may spill into the year before or after it.
func (b *Builder) Build(year, month int, today jalali.Date) (*MonthGrid, error) {
	first := jalali.Date{Year: year, Month: month, Day: 1}
	if err := first.Validate(); err != nil {
		return nil, fmt.Errorf("build month grid: %w", err)
	}

	wd, err := first.Weekday()
	if err != nil {
		return nil, fmt.Errorf("build month grid: %w", err)
	}
	start, err := first.AddDays(-int(wd))
	if err != nil {
		return nil, fmt.Errorf("build month grid: %w", err)
	}

	grid := &MonthGrid{Year: year, Month: month, MonthName: jalali.MonthName(month)}
	for i := range grid.Weekdays {
		grid.Weekdays[i] = jalali.Weekday(i).ShortName()
	}
	d := start
	for i := 0; i < GridCells; i++ {
		grid.Cells[i] = Cell{
			Date:       d,
			InMonth:    d.Year == year && d.Month == month,
			IsToday:    d == today,
			Annotation: b.annotator.Annotate(d),
		}
		if i < GridCells-1 {
			if d, err = d.AddDays(1); err != nil {
				return nil, fmt.Errorf("build month grid: %w", err)
			}
		}
	}
	return grid, nil
}

// NextMonth returns the month after (year, month), refusing to step past
// the supported range.
func NextMonth(year, month int) (int, int, error) {
	y, m := year, month+1
	if m > 12 {
		y, m = y+1, 1
	}
	if err := (jalali.Date{Year: y, Month: m, Day: 1}).Validate(); err != nil {
		return 0, 0, fmt.Errorf("next month: %w", err)
	}
	return y, m, nil
}

// PrevMonth returns the month before (year, month), refusing to step past
// the supported range.
func PrevMonth(year, month int) (int, int, error) {
	y, m := year, month-1
	if m < 1 {
		y, m = y-1, 12
	}
	if err := (jalali.Date{Year: y, Month: m, Day: 1}).Validate(); err != nil {
		return 0, 0, fmt.Errorf("prev month: %w", err)
	}
	return y, m, nil
}

// GoToDate validates a jump target. Out-of-range or malformed dates are
// rejected outright rather than clamped to the nearest valid one.
func GoToDate(year, month, day int) (jalali.Date, error) {
	d := jalali.Date{Year: year, Month: month, Day: day}
	if err := d.Validate(); err != nil {
		return jalali.Date{}, fmt.Errorf("go to date: %w", err)
	}
	return d, nil
}
