// Package holiday resolves Jalali dates against the holiday dataset: a
// builtin layer embedded in the binary and a user-editable overlay file.
package holiday

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/shamsitray/shamsitray/internal/model"
)

//go:embed data/holidays.json
var builtinData []byte

type dataset struct {
	Holidays []json.RawMessage `json:"holidays"`
}

// Set holds the loaded holiday records. The builtin layer is read-only; user
// edits only touch the overlay, which shadows builtin records occupying the
// same (month, day, year) slot.
type Set struct {
	mu       sync.RWMutex
	builtin  []model.HolidayRecord
	user     []model.HolidayRecord
	userPath string
	logger   *slog.Logger
}

// NewSet loads the builtin dataset and, if userPath is non-empty, the user
// overlay file. A missing or corrupt overlay never fails startup: the set
// falls back to whatever loaded and the problem is logged as a warning.
func NewSet(userPath string, logger *slog.Logger) *Set {
	s := &Set{userPath: userPath, logger: logger}
	s.builtin = parseRecords(builtinData, model.SourceBuiltin, logger)
	s.loadUser()
	return s
}

// Reload re-reads the user overlay file, keeping the previous overlay if the
// file has become unreadable.
func (s *Set) Reload() {
	s.loadUser()
}

func (s *Set) loadUser() {
	if s.userPath == "" {
		return
	}
	data, err := os.ReadFile(s.userPath)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("read user holidays", "path", s.userPath, "error", err)
		}
		return
	}
	records := parseRecords(data, model.SourceUser, s.logger)
	s.mu.Lock()
	s.user = records
	s.mu.Unlock()
	s.logger.Info("loaded user holidays", "path", s.userPath, "count", len(records))
}

// parseRecords decodes a holiday dataset. Malformed entries are skipped with
// a warning; partial data is preferred to no data.
func parseRecords(data []byte, source model.HolidaySource, logger *slog.Logger) []model.HolidayRecord {
	var ds dataset
	if err := json.Unmarshal(data, &ds); err != nil {
		logger.Warn("parse holiday dataset", "source", source, "error", err)
		return nil
	}

	records := make([]model.HolidayRecord, 0, len(ds.Holidays))
	for i, raw := range ds.Holidays {
		var rec model.HolidayRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			logger.Warn("skip malformed holiday entry", "source", source, "index", i, "error", err)
			continue
		}
		if err := validateRecord(rec); err != nil {
			logger.Warn("skip malformed holiday entry", "source", source, "index", i, "error", err)
			continue
		}
		rec.Source = source
		records = append(records, rec)
	}
	return records
}

func validateRecord(rec model.HolidayRecord) error {
	if rec.Month < 1 || rec.Month > 12 {
		return fmt.Errorf("month %d out of range", rec.Month)
	}
	if rec.Day < 1 || rec.Day > 31 {
		return fmt.Errorf("day %d out of range", rec.Day)
	}
	if rec.Description == "" {
		return fmt.Errorf("empty description")
	}
	return nil
}

// effective returns the merged layers: builtin records in declaration order
// with same-slot user records substituted in place, followed by user records
// that shadow nothing.
func (s *Set) effective() []model.HolidayRecord {
	merged := make([]model.HolidayRecord, 0, len(s.builtin)+len(s.user))
	shadowing := make([]bool, len(s.user))

	for _, b := range s.builtin {
		rec := b
		for i, u := range s.user {
			if u.SameSlot(b) {
				rec = u
				shadowing[i] = true
				break
			}
		}
		merged = append(merged, rec)
	}
	for i, u := range s.user {
		if !shadowing[i] {
			merged = append(merged, u)
		}
	}
	return merged
}

// Resolve returns all records applying to the date: year-scoped matches
// first, then recurring matches, each in dataset-declaration order.
func (s *Set) Resolve(year, month, day int) []model.HolidayRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var scoped, recurring []model.HolidayRecord
	for _, rec := range s.effective() {
		if rec.Month != month || rec.Day != day {
			continue
		}
		switch {
		case rec.Year == year:
			scoped = append(scoped, rec)
		case rec.Recurring():
			recurring = append(recurring, rec)
		}
	}
	return append(scoped, recurring...)
}

// IsHoliday reports whether any record applies to the date. Friday status is
// not considered here.
func (s *Set) IsHoliday(year, month, day int) bool {
	return len(s.Resolve(year, month, day)) > 0
}

// ResolveMonth returns the records applying to any day of the given month,
// keyed by day of month.
func (s *Set) ResolveMonth(year, month int) map[int][]model.HolidayRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[int][]model.HolidayRecord)
	for _, rec := range s.effective() {
		if rec.Month != month {
			continue
		}
		if rec.Year != year && !rec.Recurring() {
			continue
		}
		out[rec.Day] = append(out[rec.Day], rec)
	}
	for day := range out {
		recs := out[day]
		var scoped, recurring []model.HolidayRecord
		for _, rec := range recs {
			if rec.Year == year {
				scoped = append(scoped, rec)
			} else {
				recurring = append(recurring, rec)
			}
		}
		out[day] = append(scoped, recurring...)
	}
	return out
}

// AddOverride adds a record to the user overlay, replacing any existing user
// record in the same slot, and persists the overlay.
func (s *Set) AddOverride(rec model.HolidayRecord) error {
	if err := validateRecord(rec); err != nil {
		return fmt.Errorf("add holiday override: %w", err)
	}
	rec.Source = model.SourceUser

	s.mu.Lock()
	replaced := false
	for i, u := range s.user {
		if u.SameSlot(rec) {
			s.user[i] = rec
			replaced = true
			break
		}
	}
	if !replaced {
		s.user = append(s.user, rec)
	}
	snapshot := make([]model.HolidayRecord, len(s.user))
	copy(snapshot, s.user)
	s.mu.Unlock()

	return s.saveUser(snapshot)
}

// RemoveOverride deletes the user record in the given slot. Builtin records
// are never deleted; removing an override merely un-shadows them. Returns
// whether an override existed.
func (s *Set) RemoveOverride(month, day, year int) (bool, error) {
	slot := model.HolidayRecord{Month: month, Day: day, Year: year}

	s.mu.Lock()
	removed := false
	kept := s.user[:0]
	for _, u := range s.user {
		if u.SameSlot(slot) {
			removed = true
			continue
		}
		kept = append(kept, u)
	}
	s.user = kept
	snapshot := make([]model.HolidayRecord, len(s.user))
	copy(snapshot, s.user)
	s.mu.Unlock()

	if !removed {
		return false, nil
	}
	return true, s.saveUser(snapshot)
}

// saveUser writes the overlay atomically (temp file + rename).
func (s *Set) saveUser(records []model.HolidayRecord) error {
	if s.userPath == "" {
		return nil
	}

	type out struct {
		Holidays []model.HolidayRecord `json:"holidays"`
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out{Holidays: records}); err != nil {
		return fmt.Errorf("encode user holidays: %w", err)
	}

	dir := filepath.Dir(s.userPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create holidays dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".holidays-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp holidays file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp holidays file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temp holidays file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp holidays file: %w", err)
	}
	if err := os.Rename(tmpName, s.userPath); err != nil {
		return fmt.Errorf("rename holidays file: %w", err)
	}
	return nil
}
