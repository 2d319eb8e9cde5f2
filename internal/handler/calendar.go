package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/shamsitray/shamsitray/internal/calendar"
	"github.com/shamsitray/shamsitray/internal/jalali"
)

// CalendarHandler serves month grids, navigation validation, and the date
// converter backend.
type CalendarHandler struct {
	builder *calendar.Builder
	today   func() (jalali.Date, error)
}

func NewCalendarHandler(b *calendar.Builder, today func() (jalali.Date, error)) *CalendarHandler {
	return &CalendarHandler{builder: b, today: today}
}

// MonthGrid handles GET /api/calendar/{year}/{month}.
func (h *CalendarHandler) MonthGrid(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(r.PathValue("year"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "year must be a number")
		return
	}
	month, err := strconv.Atoi(r.PathValue("month"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "month must be a number")
		return
	}

	// A today that cannot be resolved only loses the marker, not the grid.
	today, _ := h.today()

	grid, err := h.builder.Build(year, month, today)
	if err != nil {
		if errors.Is(err, jalali.ErrOutOfRange) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to build month grid")
		return
	}
	writeJSON(w, http.StatusOK, grid)
}

type gotoResponse struct {
	Date    jalali.Date    `json:"date"`
	Weekday jalali.Weekday `json:"weekday"`
}

// GoTo handles GET /api/goto?year=&month=&day=. Invalid targets are
// rejected with the validation message, never clamped to a nearby date.
func (h *CalendarHandler) GoTo(w http.ResponseWriter, r *http.Request) {
	year, month, day, ok := queryDate(w, r)
	if !ok {
		return
	}

	d, err := calendar.GoToDate(year, month, day)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	wd, err := d.Weekday()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to resolve weekday")
		return
	}
	writeJSON(w, http.StatusOK, gotoResponse{Date: d, Weekday: wd})
}

type convertResponse struct {
	Jalali      jalali.Date    `json:"jalali"`
	Gregorian   string         `json:"gregorian"`
	Weekday     jalali.Weekday `json:"weekday"`
	WeekdayName string         `json:"weekday_name"`
}

// Convert handles GET /api/convert?calendar=jalali|gregorian&date=Y-M-D and
// answers with both representations of the given date.
func (h *CalendarHandler) Convert(w http.ResponseWriter, r *http.Request) {
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		writeError(w, http.StatusBadRequest, "date is required")
		return
	}

	var d jalali.Date
	switch cal := r.URL.Query().Get("calendar"); cal {
	case "jalali":
		year, month, day, err := splitDate(dateStr)
		if err != nil {
			writeError(w, http.StatusBadRequest, "date must be Y-M-D")
			return
		}
		d = jalali.Date{Year: year, Month: month, Day: day}
		if err := d.Validate(); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	case "gregorian":
		g, err := time.Parse("2006-1-2", jalali.LatinDigits(dateStr))
		if err != nil {
			writeError(w, http.StatusBadRequest, "date must be Y-M-D")
			return
		}
		var convErr error
		d, convErr = jalali.FromTime(g)
		if convErr != nil || d.Validate() != nil {
			writeError(w, http.StatusBadRequest, "date outside the supported range")
			return
		}
	default:
		writeError(w, http.StatusBadRequest, `calendar must be "jalali" or "gregorian"`)
		return
	}

	g, err := d.Gregorian()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "conversion failed")
		return
	}
	wd, err := d.Weekday()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "conversion failed")
		return
	}
	writeJSON(w, http.StatusOK, convertResponse{
		Jalali:      d,
		Gregorian:   g.Format("2006-01-02"),
		Weekday:     wd,
		WeekdayName: wd.Name(),
	})
}

// queryDate reads year, month and day query parameters, writing the error
// response itself when one is missing or malformed.
func queryDate(w http.ResponseWriter, r *http.Request) (year, month, day int, ok bool) {
	q := r.URL.Query()
	for _, p := range []struct {
		name string
		dst  *int
	}{{"year", &year}, {"month", &month}, {"day", &day}} {
		v, err := strconv.Atoi(jalali.LatinDigits(q.Get(p.name)))
		if err != nil {
			writeError(w, http.StatusBadRequest, p.name+" must be a number")
			return 0, 0, 0, false
		}
		*p.dst = v
	}
	return year, month, day, true
}

// splitDate parses a Y-M-D string, accepting Persian digits as the shell
// sends them from its localized input fields.
func splitDate(s string) (year, month, day int, err error) {
	parts := strings.Split(jalali.LatinDigits(s), "-")
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("want 3 parts, got %d", len(parts))
	}
	nums := make([]int, 3)
	for i, p := range parts {
		if nums[i], err = strconv.Atoi(p); err != nil {
			return 0, 0, 0, err
		}
	}
	return nums[0], nums[1], nums[2], nil
}
