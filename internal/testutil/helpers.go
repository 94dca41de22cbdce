package testutil

import (
	"database/sql"
	"math/rand"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/mnakahara/trade-journal-backend/internal/repository"
	"github.com/mnakahara/trade-journal-backend/internal/service"
)

func NewTestRecordService(t *testing.T, db *sql.DB) *service.RecordService {
	t.Helper()

	recordRepo := repository.NewRecordRepository(db)
	tagRepo := repository.NewTagRepository(db)

	return service.NewRecordService(recordRepo, tagRepo)
}

func NewTestTagService(t *testing.T, db *sql.DB) *service.TagService {
	t.Helper()

	return service.NewTagService(repository.NewTagRepository(db))
}

func NewTestPerformanceService(t *testing.T, db *sql.DB) *service.PerformanceService {
	t.Helper()

	return service.NewPerformanceService(repository.NewRecordRepository(db))
}

func NewTestSystemService(t *testing.T, db *sql.DB) *service.SystemService {
	t.Helper()

	return service.NewSystemService(db)
}

// MakeID generates a UUID string for use in tests.
//
// Example usage:
//
//	id := testutil.MakeID()
//	// Returns: "550e8400-e29b-41d4-a716-446655440000"
func MakeID() string {
	return uuid.New().String()
}

// MakeCode generates a plausible four-digit security code for testing.
//
// Example usage:
//
//	code := testutil.MakeCode()
//	// Returns: "7342"
func MakeCode() string {
	const digits = "0123456789"
	result := make([]byte, 4)
	result[0] = digits[1+rand.Intn(9)]
	for i := 1; i < len(result); i++ {
		result[i] = digits[rand.Intn(len(digits))]
	}
	return string(result)
}

// MakeRecordName generates a unique display name for testing.
//
// Example usage:
//
//	name := testutil.MakeRecordName("Test Stock")
//	// Returns: "Test Stock ABC123"
func MakeRecordName(base string) string {
	if base == "" {
		base = "Stock"
	}
	return base + " " + randomAlphanumeric(6)
}

// MustDate parses a "2006-01-02" date, failing loudly on bad test data.
func MustDate(value string) time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic("testutil: bad date literal " + value)
	}
	return t.UTC()
}

// randomAlphanumeric generates a random alphanumeric string of specified length.
func randomAlphanumeric(length int) string {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	result := make([]byte, length)
	for i := range result {
		result[i] = charset[rand.Intn(len(charset))]
	}
	return string(result)
}
