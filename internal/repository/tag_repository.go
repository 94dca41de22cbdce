package repository

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/mnakahara/trade-journal-backend/internal/apperrors"
	"github.com/mnakahara/trade-journal-backend/internal/model"
)

// TagRepository provides data access methods for the tag table.
type TagRepository struct {
	db *sql.DB
}

// NewTagRepository creates a new TagRepository with the provided database connection.
func NewTagRepository(db *sql.DB) *TagRepository {
	return &TagRepository{db: db}
}

// GetAllTags returns every tag ordered by name.
func (s *TagRepository) GetAllTags() ([]model.Tag, error) {
	rows, err := s.db.Query(`SELECT id, name, color FROM tag ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query tag table: %w", err)
	}
	defer rows.Close()

	tags := []model.Tag{}
	for rows.Next() {
		var t model.Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.Color); err != nil {
			return nil, fmt.Errorf("failed to scan tag table results: %w", err)
		}
		tags = append(tags, t)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tag table: %w", err)
	}

	return tags, nil
}

// GetTag returns one tag by ID.
// Returns apperrors.ErrTagNotFound if no tag has the given ID.
func (s *TagRepository) GetTag(tagID string) (model.Tag, error) {
	var t model.Tag
	err := s.db.QueryRow(`SELECT id, name, color FROM tag WHERE id = ?`, tagID).
		Scan(&t.ID, &t.Name, &t.Color)
	if err == sql.ErrNoRows {
		return model.Tag{}, apperrors.ErrTagNotFound
	}
	if err != nil {
		return model.Tag{}, fmt.Errorf("failed to scan tag table results: %w", err)
	}
	return t, nil
}

// GetTagsByIDs returns the tags matching the given IDs. Missing IDs are
// silently absent from the result; the caller decides whether that matters.
func (s *TagRepository) GetTagsByIDs(tagIDs []string) ([]model.Tag, error) {
	if len(tagIDs) == 0 {
		return []model.Tag{}, nil
	}

	placeholders := make([]string, len(tagIDs))
	args := make([]any, len(tagIDs))
	for i, id := range tagIDs {
		placeholders[i] = "?"
		args[i] = id
	}

	query := `SELECT id, name, color FROM tag WHERE id IN (` + strings.Join(placeholders, ",") + `)`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query tag table: %w", err)
	}
	defer rows.Close()

	tags := []model.Tag{}
	for rows.Next() {
		var t model.Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.Color); err != nil {
			return nil, fmt.Errorf("failed to scan tag table results: %w", err)
		}
		tags = append(tags, t)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tag table: %w", err)
	}

	return tags, nil
}

// CreateTag inserts a new tag.
func (s *TagRepository) CreateTag(t model.Tag) error {
	if _, err := s.db.Exec(`INSERT INTO tag (id, name, color) VALUES (?, ?, ?)`, t.ID, t.Name, t.Color); err != nil {
		return fmt.Errorf("failed to insert tag: %w", err)
	}
	return nil
}

// UpdateTag updates an existing tag's name and color.
func (s *TagRepository) UpdateTag(t model.Tag) error {
	res, err := s.db.Exec(`UPDATE tag SET name = ?, color = ? WHERE id = ?`, t.Name, t.Color, t.ID)
	if err != nil {
		return fmt.Errorf("failed to update tag: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return apperrors.ErrTagNotFound
	}
	return nil
}

// DeleteTag removes a tag; record links cascade.
func (s *TagRepository) DeleteTag(tagID string) error {
	res, err := s.db.Exec(`DELETE FROM tag WHERE id = ?`, tagID)
	if err != nil {
		return fmt.Errorf("failed to delete tag: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return apperrors.ErrTagNotFound
	}
	return nil
}
