package repository

import (
	"database/sql"
	"fmt"

	"github.com/mnakahara/trade-journal-backend/internal/apperrors"
	"github.com/mnakahara/trade-journal-backend/internal/model"
)

const (
	legKindPurchase = "purchase"
	legKindSale     = "sale"
)

// RecordRepository provides data access methods for stock records, their
// trade legs and their tag links. Records are always loaded whole: one
// purchase leg, all sale legs in insertion order, all tags.
type RecordRepository struct {
	db *sql.DB
}

// NewRecordRepository creates a new RecordRepository with the provided database connection.
func NewRecordRepository(db *sql.DB) *RecordRepository {
	return &RecordRepository{db: db}
}

// GetAllRecords returns a fully-materialized snapshot of every stock record,
// ordered by creation time. The calculators operate on this snapshot; they
// never read through to the database themselves.
func (s *RecordRepository) GetAllRecords() ([]model.StockRecord, error) {
	recordQuery := `
		SELECT id, code, market, name, position, created_at
		FROM stock_record
		ORDER BY created_at ASC, id ASC
	`

	rows, err := s.db.Query(recordQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to query stock_record table: %w", err)
	}
	defer rows.Close()

	records := []model.StockRecord{}
	index := make(map[string]int)

	for rows.Next() {
		var r model.StockRecord
		var createdAtStr string

		err := rows.Scan(&r.ID, &r.Code, &r.Market, &r.Name, &r.Position, &createdAtStr)
		if err != nil {
			return nil, fmt.Errorf("failed to scan stock_record table results: %w", err)
		}
		r.CreatedAt, err = ParseTime(createdAtStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse date: %w", err)
		}
		r.Sales = []model.TradeLeg{}
		r.Tags = []model.Tag{}

		index[r.ID] = len(records)
		records = append(records, r)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating stock_record table: %w", err)
	}

	if err := s.attachLegs(records, index); err != nil {
		return nil, err
	}
	if err := s.attachTags(records, index); err != nil {
		return nil, err
	}

	return records, nil
}

// GetRecord returns a single fully-materialized record.
// Returns apperrors.ErrRecordNotFound if no record has the given ID.
func (s *RecordRepository) GetRecord(recordID string) (model.StockRecord, error) {
	recordQuery := `
		SELECT id, code, market, name, position, created_at
		FROM stock_record
		WHERE id = ?
	`

	var r model.StockRecord
	var createdAtStr string

	err := s.db.QueryRow(recordQuery, recordID).Scan(
		&r.ID, &r.Code, &r.Market, &r.Name, &r.Position, &createdAtStr,
	)
	if err == sql.ErrNoRows {
		return model.StockRecord{}, apperrors.ErrRecordNotFound
	}
	if err != nil {
		return model.StockRecord{}, fmt.Errorf("failed to scan stock_record table results: %w", err)
	}
	r.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil {
		return model.StockRecord{}, fmt.Errorf("failed to parse date: %w", err)
	}
	r.Sales = []model.TradeLeg{}
	r.Tags = []model.Tag{}

	records := []model.StockRecord{r}
	index := map[string]int{r.ID: 0}
	if err := s.attachLegs(records, index); err != nil {
		return model.StockRecord{}, err
	}
	if err := s.attachTags(records, index); err != nil {
		return model.StockRecord{}, err
	}

	return records[0], nil
}

// attachLegs loads every trade leg for the given records and distributes
// them: the purchase leg onto Purchase, sale legs appended in seq order.
func (s *RecordRepository) attachLegs(records []model.StockRecord, index map[string]int) error {
	if len(records) == 0 {
		return nil
	}

	legQuery := `
		SELECT l.id, l.record_id, l.kind, l.amount, l.shares, l.date, l.emotion, l.reason
		FROM trade_leg l
		JOIN stock_record r ON l.record_id = r.id
		ORDER BY r.created_at ASC, l.seq ASC
	`

	rows, err := s.db.Query(legQuery)
	if err != nil {
		return fmt.Errorf("failed to query trade_leg table: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var leg model.TradeLeg
		var recordID, kind, dateStr string
		var reason sql.NullString

		err := rows.Scan(&leg.ID, &recordID, &kind, &leg.Amount, &leg.Shares, &dateStr, &leg.Emotion, &reason)
		if err != nil {
			return fmt.Errorf("failed to scan trade_leg table results: %w", err)
		}
		leg.Date, err = ParseTime(dateStr)
		if err != nil {
			return fmt.Errorf("failed to parse date: %w", err)
		}
		if reason.Valid {
			leg.Reason = reason.String
		}

		i, ok := index[recordID]
		if !ok {
			continue
		}
		if kind == legKindPurchase {
			records[i].Purchase = leg
		} else {
			records[i].Sales = append(records[i].Sales, leg)
		}
	}

	if err = rows.Err(); err != nil {
		return fmt.Errorf("error iterating trade_leg table: %w", err)
	}

	return nil
}

// attachTags loads the tag links for the given records.
func (s *RecordRepository) attachTags(records []model.StockRecord, index map[string]int) error {
	if len(records) == 0 {
		return nil
	}

	tagQuery := `
		SELECT rt.record_id, t.id, t.name, t.color
		FROM record_tag rt
		JOIN tag t ON rt.tag_id = t.id
		ORDER BY t.name ASC
	`

	rows, err := s.db.Query(tagQuery)
	if err != nil {
		return fmt.Errorf("failed to query record_tag table: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var recordID string
		var t model.Tag

		if err := rows.Scan(&recordID, &t.ID, &t.Name, &t.Color); err != nil {
			return fmt.Errorf("failed to scan record_tag table results: %w", err)
		}

		if i, ok := index[recordID]; ok {
			records[i].Tags = append(records[i].Tags, t)
		}
	}

	if err = rows.Err(); err != nil {
		return fmt.Errorf("error iterating record_tag table: %w", err)
	}

	return nil
}

// CreateRecord inserts a record, its purchase leg and its tag links in one
// transaction.
func (s *RecordRepository) CreateRecord(r model.StockRecord) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO stock_record (id, code, market, name, position, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, r.ID, r.Code, r.Market, r.Name, r.Position, r.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"))
	if err != nil {
		return fmt.Errorf("failed to insert stock_record: %w", err)
	}

	_, err = tx.Exec(`
		INSERT INTO trade_leg (id, record_id, kind, amount, shares, date, emotion, reason, seq)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, 0)
	`, r.Purchase.ID, r.ID, legKindPurchase, r.Purchase.Amount, r.Purchase.Shares,
		r.Purchase.Date.UTC().Format("2006-01-02"), r.Purchase.Emotion, r.Purchase.Reason)
	if err != nil {
		return fmt.Errorf("failed to insert purchase leg: %w", err)
	}

	for _, t := range r.Tags {
		if _, err := tx.Exec(`INSERT INTO record_tag (record_id, tag_id) VALUES (?, ?)`, r.ID, t.ID); err != nil {
			return fmt.Errorf("failed to insert record_tag link: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// UpdateRecord updates the record's own fields and replaces its purchase
// leg. Sale legs are managed through the sale methods below.
func (s *RecordRepository) UpdateRecord(r model.StockRecord) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(`
		UPDATE stock_record SET code = ?, market = ?, name = ?, position = ?
		WHERE id = ?
	`, r.Code, r.Market, r.Name, r.Position, r.ID)
	if err != nil {
		return fmt.Errorf("failed to update stock_record: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return apperrors.ErrRecordNotFound
	}

	_, err = tx.Exec(`
		UPDATE trade_leg SET amount = ?, shares = ?, date = ?, emotion = ?, reason = ?
		WHERE record_id = ? AND kind = ?
	`, r.Purchase.Amount, r.Purchase.Shares, r.Purchase.Date.UTC().Format("2006-01-02"),
		r.Purchase.Emotion, r.Purchase.Reason, r.ID, legKindPurchase)
	if err != nil {
		return fmt.Errorf("failed to update purchase leg: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// DeleteRecord removes a record; legs and tag links cascade.
func (s *RecordRepository) DeleteRecord(recordID string) error {
	res, err := s.db.Exec(`DELETE FROM stock_record WHERE id = ?`, recordID)
	if err != nil {
		return fmt.Errorf("failed to delete stock_record: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return apperrors.ErrRecordNotFound
	}
	return nil
}

// AddSale appends a sale leg after the record's existing sales.
func (s *RecordRepository) AddSale(recordID string, leg model.TradeLeg) error {
	var maxSeq sql.NullInt64
	err := s.db.QueryRow(`
		SELECT MAX(seq) FROM trade_leg WHERE record_id = ? AND kind = ?
	`, recordID, legKindSale).Scan(&maxSeq)
	if err != nil {
		return fmt.Errorf("failed to query trade_leg table: %w", err)
	}

	seq := int64(1)
	if maxSeq.Valid {
		seq = maxSeq.Int64 + 1
	}

	_, err = s.db.Exec(`
		INSERT INTO trade_leg (id, record_id, kind, amount, shares, date, emotion, reason, seq)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, leg.ID, recordID, legKindSale, leg.Amount, leg.Shares,
		leg.Date.UTC().Format("2006-01-02"), leg.Emotion, leg.Reason, seq)
	if err != nil {
		return fmt.Errorf("failed to insert sale leg: %w", err)
	}
	return nil
}

// UpdateSale replaces the fields of an existing sale leg. The leg keeps its
// position in the record's sale list.
func (s *RecordRepository) UpdateSale(recordID string, leg model.TradeLeg) error {
	res, err := s.db.Exec(`
		UPDATE trade_leg SET amount = ?, shares = ?, date = ?, emotion = ?, reason = ?
		WHERE id = ? AND record_id = ? AND kind = ?
	`, leg.Amount, leg.Shares, leg.Date.UTC().Format("2006-01-02"), leg.Emotion, leg.Reason,
		leg.ID, recordID, legKindSale)
	if err != nil {
		return fmt.Errorf("failed to update sale leg: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return apperrors.ErrSaleNotFound
	}
	return nil
}

// DeleteSale removes a single sale leg.
func (s *RecordRepository) DeleteSale(recordID, legID string) error {
	res, err := s.db.Exec(`
		DELETE FROM trade_leg WHERE id = ? AND record_id = ? AND kind = ?
	`, legID, recordID, legKindSale)
	if err != nil {
		return fmt.Errorf("failed to delete sale leg: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return apperrors.ErrSaleNotFound
	}
	return nil
}

// SetTags replaces the record's tag links with the given tag IDs.
func (s *RecordRepository) SetTags(recordID string, tagIDs []string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM record_tag WHERE record_id = ?`, recordID); err != nil {
		return fmt.Errorf("failed to clear record_tag links: %w", err)
	}
	for _, tagID := range tagIDs {
		if _, err := tx.Exec(`INSERT INTO record_tag (record_id, tag_id) VALUES (?, ?)`, recordID, tagID); err != nil {
			return fmt.Errorf("failed to insert record_tag link: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
