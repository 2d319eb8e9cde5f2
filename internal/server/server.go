// Package server wires the calendar core to its HTTP surface.
package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/shamsitray/shamsitray/internal/annotate"
	"github.com/shamsitray/shamsitray/internal/calendar"
	"github.com/shamsitray/shamsitray/internal/config"
	"github.com/shamsitray/shamsitray/internal/event"
	"github.com/shamsitray/shamsitray/internal/handler"
	"github.com/shamsitray/shamsitray/internal/holiday"
	"github.com/shamsitray/shamsitray/internal/jalali"
	"github.com/shamsitray/shamsitray/internal/middleware"
	"github.com/shamsitray/shamsitray/internal/store"
	ws "github.com/shamsitray/shamsitray/internal/websocket"
)

type Server struct {
	hub         *ws.Hub
	todayH      *handler.TodayHandler
	calendarH   *handler.CalendarHandler
	eventH      *handler.EventHandler
	holidayH    *handler.HolidayHandler
	settingsH   *handler.SettingsHandler
	rateLimiter *middleware.RateLimiter
	basicAuth   *config.BasicAuthConfig
	logger      *slog.Logger
}

// New assembles the server. today resolves the current Jalali date; the
// rollover watcher owns the clock, so the server just borrows its view.
func New(
	engine *event.Engine,
	holidays *holiday.Set,
	settings *store.SettingsStore,
	hub *ws.Hub,
	today func() (jalali.Date, error),
	basicAuth *config.BasicAuthConfig,
	logger *slog.Logger,
) *Server {
	annotator := annotate.New(holidays, engine)
	builder := calendar.NewBuilder(annotator)

	return &Server{
		hub:         hub,
		todayH:      handler.NewTodayHandler(today, annotator, logger.With("component", "today")),
		calendarH:   handler.NewCalendarHandler(builder, today),
		eventH:      handler.NewEventHandler(engine, hub, logger.With("component", "event")),
		holidayH:    handler.NewHolidayHandler(holidays, hub, logger.With("component", "holiday")),
		settingsH:   handler.NewSettingsHandler(settings, hub, logger.With("component", "settings")),
		rateLimiter: middleware.NewRateLimiter(),
		basicAuth:   basicAuth,
		logger:      logger,
	}
}

// Hub exposes the signal hub so the rollover watcher can broadcast.
func (s *Server) Hub() *ws.Hub {
	return s.hub
}

// RateLimiter returns the rate limiter for cleanup tasks.
func (s *Server) RateLimiter() *middleware.RateLimiter {
	return s.rateLimiter
}

func (s *Server) Router() http.Handler {
	outerMux := http.NewServeMux()
	outerMux.HandleFunc("GET /health", s.healthHandler)

	apiMux := http.NewServeMux()
	s.registerAPIRoutes(apiMux)

	authMiddleware := middleware.BasicAuth(s.basicAuth)
	outerMux.Handle("/", authMiddleware(apiMux))

	return middleware.RequestLogger(s.logger.With("component", "http"))(outerMux)
}

func (s *Server) registerAPIRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/today", s.todayH.Get)

	mux.HandleFunc("GET /api/calendar/{year}/{month}", s.calendarH.MonthGrid)
	mux.HandleFunc("GET /api/goto", s.calendarH.GoTo)
	mux.HandleFunc("GET /api/convert", s.calendarH.Convert)

	mux.HandleFunc("POST /api/events", s.rateLimitedHandler(s.eventH.Create))
	mux.HandleFunc("GET /api/events", s.eventH.List)
	mux.HandleFunc("GET /api/events/{id}", s.eventH.Get)
	mux.HandleFunc("PUT /api/events/{id}", s.rateLimitedHandler(s.eventH.Update))
	mux.HandleFunc("DELETE /api/events/{id}", s.rateLimitedHandler(s.eventH.Delete))

	mux.HandleFunc("GET /api/holidays", s.holidayH.Resolve)
	mux.HandleFunc("POST /api/holidays", s.rateLimitedHandler(s.holidayH.AddOverride))
	mux.HandleFunc("DELETE /api/holidays", s.rateLimitedHandler(s.holidayH.RemoveOverride))
	mux.HandleFunc("POST /api/holidays/reload", s.holidayH.Reload)

	mux.HandleFunc("GET /api/settings", s.settingsH.Get)
	mux.HandleFunc("PUT /api/settings", s.settingsH.Update)

	mux.HandleFunc("GET /ws", ws.HandleWebSocket(s.hub, s.logger.With("component", "websocket")))
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) rateLimitedHandler(h http.HandlerFunc) http.HandlerFunc {
	keyFunc := func(r *http.Request) string {
		return middleware.RealIP(r)
	}
	rl := middleware.RateLimit(s.rateLimiter, keyFunc, 60, time.Minute)
	return func(w http.ResponseWriter, r *http.Request) {
		rl(http.HandlerFunc(h)).ServeHTTP(w, r)
	}
}
