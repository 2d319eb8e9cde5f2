package model

// HolidaySource distinguishes entries shipped with the application from
// user-added overrides.
type HolidaySource string

const (
	SourceBuiltin HolidaySource = "builtin"
	SourceUser    HolidaySource = "user"
)

// HolidayRecord is one entry of the holiday dataset. Year 0 means the
// holiday recurs every year on the same month and day; any other value
// scopes it to that single Jalali year.
type HolidayRecord struct {
	Month       int           `json:"month"`
	Day         int           `json:"day"`
	Year        int           `json:"year,omitempty"`
	Description string        `json:"description"`
	Source      HolidaySource `json:"source,omitempty"`
}

// Recurring reports whether the record applies to every year.
func (h HolidayRecord) Recurring() bool {
	return h.Year == 0
}

// SameSlot reports whether two records occupy the same (month, day, year)
// slot. A user record in the same slot as a builtin one shadows it.
func (h HolidayRecord) SameSlot(o HolidayRecord) bool {
	return h.Month == o.Month && h.Day == o.Day && h.Year == o.Year
}
