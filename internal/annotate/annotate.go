// Package annotate derives the display state of individual dates by
// combining the holiday dataset with the user's events.
package annotate

import (
	"github.com/shamsitray/shamsitray/internal/jalali"
	"github.com/shamsitray/shamsitray/internal/model"
)

// HolidayResolver yields the holiday records applying to one date.
type HolidayResolver interface {
	Resolve(year, month, day int) []model.HolidayRecord
}

// EventLister yields the user events occurring on one date.
type EventLister interface {
	ListForDate(d jalali.Date) []model.UserEvent
}

// Annotator combines holidays and events into per-date annotations.
type Annotator struct {
	holidays HolidayResolver
	events   EventLister
}

func New(holidays HolidayResolver, events EventLister) *Annotator {
	return &Annotator{holidays: holidays, events: events}
}

// Annotate computes the annotation for a single date. The date is assumed
// valid; callers validate before constructing grids or answering queries.
// Fridays and holidays share the holiday color class, a date with only
// events gets the event class, everything else stays normal.
func (a *Annotator) Annotate(d jalali.Date) model.Annotation {
	ann := model.Annotation{ColorClass: model.ColorNormal}

	if wd, err := d.Weekday(); err == nil && wd == jalali.Friday {
		ann.IsFriday = true
	}

	for _, rec := range a.holidays.Resolve(d.Year, d.Month, d.Day) {
		ann.HolidayDescriptions = append(ann.HolidayDescriptions, rec.Description)
	}
	ann.IsHoliday = len(ann.HolidayDescriptions) > 0

	ann.Events = a.events.ListForDate(d)

	switch {
	case ann.IsHoliday || ann.IsFriday:
		ann.ColorClass = model.ColorHoliday
	case len(ann.Events) > 0:
		ann.ColorClass = model.ColorEventOnly
	}
	return ann
}
