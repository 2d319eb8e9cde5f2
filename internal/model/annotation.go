package model

// ColorClass tells the rendering shell how to paint a calendar cell.
type ColorClass string

const (
	ColorNormal    ColorClass = "normal"
	ColorHoliday   ColorClass = "holiday"
	ColorEventOnly ColorClass = "eventOnly"
)

// Annotation is the derived highlight state of a single date. It is computed
// on demand and never stored.
type Annotation struct {
	IsHoliday           bool        `json:"is_holiday"`
	IsFriday            bool        `json:"is_friday"`
	HolidayDescriptions []string    `json:"holiday_descriptions"`
	Events              []UserEvent `json:"events"`
	ColorClass          ColorClass  `json:"color_class"`
}
