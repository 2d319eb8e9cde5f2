package model

import (
	"time"

	"github.com/shamsitray/shamsitray/internal/jalali"
)

// UserEvent is a user-created calendar entry pinned to a Jalali date.
// The ID is stable across edits. Non-recurring events whose date has passed
// are removed by the expiry sweep; recurring events repeat every year on
// the same month and day and never expire.
type UserEvent struct {
	ID              int64       `json:"id"`
	Title           string      `json:"title"`
	Date            jalali.Date `json:"date"`
	RecurringYearly bool        `json:"recurring_yearly"`
	CreatedAt       time.Time   `json:"created_at"`
	ModifiedAt      time.Time   `json:"modified_at"`
}

// OccursOn reports whether the event falls on the given date: month and day
// must match, and for non-recurring events the year as well.
func (e UserEvent) OccursOn(d jalali.Date) bool {
	if e.Date.Month != d.Month || e.Date.Day != d.Day {
		return false
	}
	return e.RecurringYearly || e.Date.Year == d.Year
}
