package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/mnakahara/trade-journal-backend/internal/model"
)

// PriceRepository provides data access methods for the local OHLCV price
// cache that backs the detail-screen charts.
type PriceRepository struct {
	db *sql.DB
}

// NewPriceRepository creates a new PriceRepository with the provided database connection.
func NewPriceRepository(db *sql.DB) *PriceRepository {
	return &PriceRepository{db: db}
}

// GetPrices returns the cached daily prices for a code within the inclusive
// date range, sorted by date ascending.
func (s *PriceRepository) GetPrices(code string, startDate, endDate time.Time) ([]model.OHLCV, error) {
	rows, err := s.db.Query(`
		SELECT date, open, high, low, close, volume
		FROM price_cache
		WHERE code = ?
		AND date >= ?
		AND date <= ?
		ORDER BY date ASC
	`, code, startDate.UTC().Format("2006-01-02"), endDate.UTC().Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("failed to query price_cache table: %w", err)
	}
	defer rows.Close()

	prices := []model.OHLCV{}
	for rows.Next() {
		var p model.OHLCV
		var dateStr string

		if err := rows.Scan(&dateStr, &p.Open, &p.High, &p.Low, &p.Close, &p.Volume); err != nil {
			return nil, fmt.Errorf("failed to scan price_cache table results: %w", err)
		}
		p.Date, err = ParseTime(dateStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse date: %w", err)
		}

		prices = append(prices, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating price_cache table: %w", err)
	}

	return prices, nil
}

// SavePrices upserts a batch of daily prices for a code.
func (s *PriceRepository) SavePrices(code string, prices []model.OHLCV) error {
	if len(prices) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO price_cache (code, date, open, high, low, close, volume)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(code, date) DO UPDATE SET
			open = excluded.open,
			high = excluded.high,
			low = excluded.low,
			close = excluded.close,
			volume = excluded.volume
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare price_cache insert: %w", err)
	}
	defer stmt.Close()

	for _, p := range prices {
		_, err := stmt.Exec(code, p.Date.UTC().Format("2006-01-02"), p.Open, p.High, p.Low, p.Close, p.Volume)
		if err != nil {
			return fmt.Errorf("failed to insert price_cache row: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
