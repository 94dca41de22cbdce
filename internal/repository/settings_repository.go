package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/mnakahara/trade-journal-backend/internal/apperrors"
)

// SettingsRepository provides data access methods for the app_setting
// key/value table. Sensitive values (the market-data refresh token) are
// encrypted by the service layer before they get here.
type SettingsRepository struct {
	db *sql.DB
}

// NewSettingsRepository creates a new SettingsRepository with the provided database connection.
func NewSettingsRepository(db *sql.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// GetSetting returns the value stored under key.
// Returns apperrors.ErrSettingNotFound when the key has never been set.
func (s *SettingsRepository) GetSetting(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM app_setting WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", apperrors.ErrSettingNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to scan app_setting table results: %w", err)
	}
	return value, nil
}

// SetSetting stores value under key, replacing any previous value.
func (s *SettingsRepository) SetSetting(key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO app_setting (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to upsert app_setting: %w", err)
	}
	return nil
}

// GetSettingTime returns the value stored under key parsed as a timestamp.
func (s *SettingsRepository) GetSettingTime(key string) (time.Time, error) {
	value, err := s.GetSetting(key)
	if err != nil {
		return time.Time{}, err
	}
	return ParseTime(value)
}
