package handler

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/shamsitray/shamsitray/internal/annotate"
	"github.com/shamsitray/shamsitray/internal/jalali"
	"github.com/shamsitray/shamsitray/internal/model"
)

// TodayHandler answers the shell's most frequent question: what is today
// and how should the tray render it.
type TodayHandler struct {
	today     func() (jalali.Date, error)
	annotator *annotate.Annotator
	logger    *slog.Logger
}

func NewTodayHandler(today func() (jalali.Date, error), a *annotate.Annotator, logger *slog.Logger) *TodayHandler {
	return &TodayHandler{today: today, annotator: a, logger: logger}
}

type todayResponse struct {
	Jalali      jalali.Date      `json:"jalali"`
	Gregorian   string           `json:"gregorian"`
	Weekday     jalali.Weekday   `json:"weekday"`
	WeekdayName string           `json:"weekday_name"`
	MonthName   string           `json:"month_name"`
	DayPersian  string           `json:"day_persian"`
	Tooltip     []string         `json:"tooltip"`
	Annotation  model.Annotation `json:"annotation"`
}

func (h *TodayHandler) Get(w http.ResponseWriter, r *http.Request) {
	d, err := h.today()
	if err != nil {
		h.logger.Error("resolve today", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to resolve today")
		return
	}

	g, err := d.Gregorian()
	if err != nil {
		h.logger.Error("convert today", "date", d.String(), "error", err)
		writeError(w, http.StatusInternalServerError, "failed to convert today")
		return
	}
	wd, err := d.Weekday()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to resolve weekday")
		return
	}

	ann := h.annotator.Annotate(d)
	writeJSON(w, http.StatusOK, todayResponse{
		Jalali:      d,
		Gregorian:   g.Format("2006-01-02"),
		Weekday:     wd,
		WeekdayName: wd.Name(),
		MonthName:   jalali.MonthName(d.Month),
		DayPersian:  jalali.PersianDigits(fmt.Sprintf("%d", d.Day)),
		Tooltip:     annotate.Tooltip(d, ann),
		Annotation:  ann,
	})
}
