package service

import (
	"database/sql"

	"github.com/mnakahara/trade-journal-backend/internal/database"
	"github.com/mnakahara/trade-journal-backend/internal/model"
	"github.com/mnakahara/trade-journal-backend/internal/version"
)

// SystemService handles system-related operations
type SystemService struct {
	db *sql.DB
}

// NewSystemService creates a new SystemService
func NewSystemService(db *sql.DB) *SystemService {
	return &SystemService{
		db: db,
	}
}

// CheckHealth checks the health of the system
func (s *SystemService) CheckHealth() error {
	return database.HealthCheck(s.db)
}

// GetVersion reports the application version and the applied schema version.
func (s *SystemService) GetVersion() (model.VersionInfo, error) {
	var dbVersion sql.NullInt64
	err := s.db.QueryRow(`SELECT MAX(version_id) FROM goose_db_version`).Scan(&dbVersion)
	if err != nil {
		return model.VersionInfo{}, err
	}

	return model.VersionInfo{
		AppVersion: version.Version,
		DbVersion:  dbVersion.Int64,
	}, nil
}
