package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/mnakahara/trade-journal-backend/internal/model"
)

// RecordBuilder provides a fluent interface for creating test stock records.
//
// Example usage:
//
//	// Simple creation with defaults
//	record := testutil.NewRecord().Build(t, db)
//
//	// A fully closed trade
//	record := testutil.NewRecord().
//	    WithCode("7203").
//	    WithPurchase(2500, 100, "2024-01-10").
//	    WithSale(2800, 100, "2024-03-15").
//	    Build(t, db)
type RecordBuilder struct {
	ID        string
	Code      string
	Market    model.Market
	Name      string
	Position  model.Position
	Purchase  model.TradeLeg
	Sales     []model.TradeLeg
	TagIDs    []string
	CreatedAt time.Time
}

// NewRecord creates a RecordBuilder with sensible defaults: a long position
// of 100 shares bought at 1000 in January 2024, no sales yet.
func NewRecord() *RecordBuilder {
	return &RecordBuilder{
		ID:       MakeID(),
		Code:     MakeCode(),
		Market:   model.MarketTokyo,
		Name:     MakeRecordName("Test Stock"),
		Position: model.PositionBuy,
		Purchase: model.TradeLeg{
			ID:      MakeID(),
			Amount:  1000,
			Shares:  100,
			Date:    MustDate("2024-01-10"),
			Emotion: string(model.PurchaseConfident),
		},
		CreatedAt: time.Now().UTC(),
	}
}

// WithID sets a custom record ID.
func (b *RecordBuilder) WithID(id string) *RecordBuilder {
	b.ID = id
	return b
}

// WithCode sets a custom security code.
func (b *RecordBuilder) WithCode(code string) *RecordBuilder {
	b.Code = code
	return b
}

// WithMarket sets a custom market.
func (b *RecordBuilder) WithMarket(market model.Market) *RecordBuilder {
	b.Market = market
	return b
}

// WithName sets a custom security name.
func (b *RecordBuilder) WithName(name string) *RecordBuilder {
	b.Name = name
	return b
}

// WithPosition sets the position direction.
func (b *RecordBuilder) WithPosition(position model.Position) *RecordBuilder {
	b.Position = position
	return b
}

// Short marks the record as a short position.
func (b *RecordBuilder) Short() *RecordBuilder {
	b.Position = model.PositionSell
	return b
}

// WithPurchase replaces the purchase leg's amount, shares and date.
func (b *RecordBuilder) WithPurchase(amount float64, shares int, date string) *RecordBuilder {
	b.Purchase.Amount = amount
	b.Purchase.Shares = shares
	b.Purchase.Date = MustDate(date)
	return b
}

// WithPurchaseEmotion sets the purchase leg's emotion.
func (b *RecordBuilder) WithPurchaseEmotion(emotion model.PurchaseEmotion) *RecordBuilder {
	b.Purchase.Emotion = string(emotion)
	return b
}

// WithSale appends a sale leg.
func (b *RecordBuilder) WithSale(amount float64, shares int, date string) *RecordBuilder {
	b.Sales = append(b.Sales, model.TradeLeg{
		ID:      MakeID(),
		Amount:  amount,
		Shares:  shares,
		Date:    MustDate(date),
		Emotion: string(model.SaleSatisfied),
	})
	return b
}

// WithSaleEmotion sets the emotion of the most recently added sale leg.
func (b *RecordBuilder) WithSaleEmotion(emotion model.SaleEmotion) *RecordBuilder {
	if len(b.Sales) > 0 {
		b.Sales[len(b.Sales)-1].Emotion = string(emotion)
	}
	return b
}

// WithTags links the record to existing tags.
func (b *RecordBuilder) WithTags(tagIDs ...string) *RecordBuilder {
	b.TagIDs = append(b.TagIDs, tagIDs...)
	return b
}

// WithCreatedAt sets a custom creation time, which controls snapshot order.
func (b *RecordBuilder) WithCreatedAt(createdAt time.Time) *RecordBuilder {
	b.CreatedAt = createdAt
	return b
}

// Build creates the record, its legs and tag links in the database and
// returns the in-memory model.
func (b *RecordBuilder) Build(t *testing.T, db *sql.DB) model.StockRecord {
	t.Helper()

	_, err := db.Exec(`
		INSERT INTO stock_record (id, code, market, name, position, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, b.ID, b.Code, b.Market, b.Name, b.Position, b.CreatedAt.UTC().Format(time.RFC3339))
	if err != nil {
		t.Fatalf("Failed to create test record: %v", err)
	}

	_, err = db.Exec(`
		INSERT INTO trade_leg (id, record_id, kind, amount, shares, date, emotion, reason, seq)
		VALUES (?, ?, 'purchase', ?, ?, ?, ?, ?, 0)
	`, b.Purchase.ID, b.ID, b.Purchase.Amount, b.Purchase.Shares,
		b.Purchase.Date.Format("2006-01-02"), b.Purchase.Emotion, b.Purchase.Reason)
	if err != nil {
		t.Fatalf("Failed to create test purchase leg: %v", err)
	}

	for i, sale := range b.Sales {
		_, err = db.Exec(`
			INSERT INTO trade_leg (id, record_id, kind, amount, shares, date, emotion, reason, seq)
			VALUES (?, ?, 'sale', ?, ?, ?, ?, ?, ?)
		`, sale.ID, b.ID, sale.Amount, sale.Shares,
			sale.Date.Format("2006-01-02"), sale.Emotion, sale.Reason, i+1)
		if err != nil {
			t.Fatalf("Failed to create test sale leg: %v", err)
		}
	}

	for _, tagID := range b.TagIDs {
		if _, err := db.Exec(`INSERT INTO record_tag (record_id, tag_id) VALUES (?, ?)`, b.ID, tagID); err != nil {
			t.Fatalf("Failed to link test tag: %v", err)
		}
	}

	sales := make([]model.TradeLeg, len(b.Sales))
	copy(sales, b.Sales)

	return model.StockRecord{
		ID:        b.ID,
		Code:      b.Code,
		Market:    b.Market,
		Name:      b.Name,
		Position:  b.Position,
		Purchase:  b.Purchase,
		Sales:     sales,
		Tags:      []model.Tag{},
		CreatedAt: b.CreatedAt,
	}
}

// TagBuilder provides a fluent interface for creating test tags.
type TagBuilder struct {
	ID    string
	Name  string
	Color string
}

// NewTag creates a TagBuilder with sensible defaults.
func NewTag() *TagBuilder {
	return &TagBuilder{
		ID:    MakeID(),
		Name:  MakeRecordName("Test Tag"),
		Color: "#1976D2",
	}
}

// WithID sets a custom ID.
func (b *TagBuilder) WithID(id string) *TagBuilder {
	b.ID = id
	return b
}

// WithName sets a custom name.
func (b *TagBuilder) WithName(name string) *TagBuilder {
	b.Name = name
	return b
}

// WithColor sets a custom color.
func (b *TagBuilder) WithColor(color string) *TagBuilder {
	b.Color = color
	return b
}

// Build creates the tag in the database and returns it.
func (b *TagBuilder) Build(t *testing.T, db *sql.DB) model.Tag {
	t.Helper()

	_, err := db.Exec(`INSERT INTO tag (id, name, color) VALUES (?, ?, ?)`, b.ID, b.Name, b.Color)
	if err != nil {
		t.Fatalf("Failed to create test tag: %v", err)
	}

	return model.Tag{ID: b.ID, Name: b.Name, Color: b.Color}
}

// Convenience functions

// CreateTag creates a tag with the given name and default values.
func CreateTag(t *testing.T, db *sql.DB, name string) model.Tag {
	t.Helper()
	return NewTag().WithName(name).Build(t, db)
}
