package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func captureLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestRequestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	mw := RequestLogger(captureLogger(&buf))

	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte(`{"ok":true}`))
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/api/today", nil))
	line := buf.String()
	if !strings.Contains(line, "level=DEBUG") {
		t.Errorf("successful request logged as %q, want debug", line)
	}
	if !strings.Contains(line, "status=200") || !strings.Contains(line, "bytes=11") {
		t.Errorf("log line missing status or size: %q", line)
	}

	buf.Reset()
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/missing", nil))
	if line := buf.String(); !strings.Contains(line, "level=WARN") {
		t.Errorf("404 logged as %q, want warn", line)
	}
}

func TestRequestLoggerSkipsHealth(t *testing.T) {
	var buf bytes.Buffer
	mw := RequestLogger(captureLogger(&buf))
	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/health", nil))
	if buf.Len() != 0 {
		t.Errorf("health probe logged: %q", buf.String())
	}
}
