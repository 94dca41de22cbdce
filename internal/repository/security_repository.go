package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/mnakahara/trade-journal-backend/internal/apperrors"
	"github.com/mnakahara/trade-journal-backend/internal/model"
)

// SecurityRepository provides data access methods for the local
// listed-securities cache.
type SecurityRepository struct {
	db *sql.DB
}

// NewSecurityRepository creates a new SecurityRepository with the provided database connection.
func NewSecurityRepository(db *sql.DB) *SecurityRepository {
	return &SecurityRepository{db: db}
}

// GetAllSecurities returns the cached listed securities ordered by code.
func (s *SecurityRepository) GetAllSecurities() ([]model.SecurityInfo, error) {
	rows, err := s.db.Query(`
		SELECT code, name, market, sector, fetched_at
		FROM security
		ORDER BY code ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query security table: %w", err)
	}
	defer rows.Close()

	securities := []model.SecurityInfo{}
	for rows.Next() {
		var info model.SecurityInfo
		var sector sql.NullString
		var fetchedAtStr string

		if err := rows.Scan(&info.Code, &info.Name, &info.Market, &sector, &fetchedAtStr); err != nil {
			return nil, fmt.Errorf("failed to scan security table results: %w", err)
		}
		if sector.Valid {
			info.Sector = sector.String
		}
		info.FetchedAt, err = ParseTime(fetchedAtStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse date: %w", err)
		}

		securities = append(securities, info)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating security table: %w", err)
	}

	return securities, nil
}

// GetSecurityByCode returns the cached security with the given code.
func (s *SecurityRepository) GetSecurityByCode(code string) (model.SecurityInfo, error) {
	var info model.SecurityInfo
	var sector sql.NullString
	var fetchedAtStr string

	err := s.db.QueryRow(`
		SELECT code, name, market, sector, fetched_at
		FROM security
		WHERE code = ?
	`, code).Scan(&info.Code, &info.Name, &info.Market, &sector, &fetchedAtStr)
	if err == sql.ErrNoRows {
		return model.SecurityInfo{}, apperrors.ErrSecurityNotFound
	}
	if err != nil {
		return model.SecurityInfo{}, fmt.Errorf("failed to query security table: %w", err)
	}
	if sector.Valid {
		info.Sector = sector.String
	}
	info.FetchedAt, err = ParseTime(fetchedAtStr)
	if err != nil {
		return model.SecurityInfo{}, fmt.Errorf("failed to parse date: %w", err)
	}

	return info, nil
}

// CountSecurities returns the number of cached securities.
func (s *SecurityRepository) CountSecurities() (int, error) {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM security`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count security table: %w", err)
	}
	return count, nil
}

// ReplaceSecurities swaps the entire cache for a fresh listing in one
// transaction, stamping every row with the given fetch time.
func (s *SecurityRepository) ReplaceSecurities(securities []model.SecurityInfo, fetchedAt time.Time) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM security`); err != nil {
		return fmt.Errorf("failed to clear security table: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO security (code, name, market, sector, fetched_at)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare security insert: %w", err)
	}
	defer stmt.Close()

	stamp := fetchedAt.UTC().Format(time.RFC3339)
	for _, info := range securities {
		if _, err := stmt.Exec(info.Code, info.Name, info.Market, info.Sector, stamp); err != nil {
			return fmt.Errorf("failed to insert security: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
