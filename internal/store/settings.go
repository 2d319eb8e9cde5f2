// Package store persists application settings in SQLite.
package store

import (
	"database/sql"
	"fmt"
	"time"
)

// Setting keys. The migration seeds a default for each.
const (
	KeyAutorunEnabled = "autorun_enabled"
	KeyThemeChoice    = "theme_choice"
	KeyTutorialShown  = "tutorial_shown"
)

// Theme values accepted for theme_choice.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

type SettingsStore struct {
	db *sql.DB
}

func NewSettingsStore(db *sql.DB) *SettingsStore {
	return &SettingsStore{db: db}
}

func (s *SettingsStore) Get(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", fmt.Errorf("setting %q not found", key)
	}
	if err != nil {
		return "", fmt.Errorf("get setting %q: %w", key, err)
	}
	return value, nil
}

func (s *SettingsStore) GetAll() (map[string]string, error) {
	rows, err := s.db.Query(`SELECT key, value FROM settings ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("get all settings: %w", err)
	}
	defer rows.Close()

	settings := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("scan setting: %w", err)
		}
		settings[key] = value
	}
	return settings, rows.Err()
}

func (s *SettingsStore) Set(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO settings (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("set setting %q: %w", key, err)
	}
	return nil
}

// AutorunEnabled reports whether the shell should register itself to start
// at login. Anything but the literal "true" counts as disabled.
func (s *SettingsStore) AutorunEnabled() (bool, error) {
	v, err := s.Get(KeyAutorunEnabled)
	if err != nil {
		return false, err
	}
	return v == "true", nil
}

func (s *SettingsStore) SetAutorunEnabled(enabled bool) error {
	return s.Set(KeyAutorunEnabled, boolValue(enabled))
}

// ThemeChoice returns the active theme, falling back to light for any
// unexpected stored value.
func (s *SettingsStore) ThemeChoice() (string, error) {
	v, err := s.Get(KeyThemeChoice)
	if err != nil {
		return "", err
	}
	if v != ThemeLight && v != ThemeDark {
		return ThemeLight, nil
	}
	return v, nil
}

func (s *SettingsStore) SetThemeChoice(theme string) error {
	if theme != ThemeLight && theme != ThemeDark {
		return fmt.Errorf("unknown theme %q", theme)
	}
	return s.Set(KeyThemeChoice, theme)
}

func (s *SettingsStore) TutorialShown() (bool, error) {
	v, err := s.Get(KeyTutorialShown)
	if err != nil {
		return false, err
	}
	return v == "true", nil
}

func (s *SettingsStore) SetTutorialShown(shown bool) error {
	return s.Set(KeyTutorialShown, boolValue(shown))
}

func boolValue(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
