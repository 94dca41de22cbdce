package repository_test

import (
	"errors"
	"testing"

	"github.com/mnakahara/trade-journal-backend/internal/apperrors"
	"github.com/mnakahara/trade-journal-backend/internal/model"
	"github.com/mnakahara/trade-journal-backend/internal/repository"
	"github.com/mnakahara/trade-journal-backend/internal/testutil"
)

func TestGetAllTagsOrderedByName(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewTagRepository(db)

	testutil.NewTag().WithName("swing").Build(t, db)
	testutil.NewTag().WithName("dividend").Build(t, db)

	tags, err := repo.GetAllTags()
	if err != nil {
		t.Fatalf("GetAllTags failed: %v", err)
	}
	if len(tags) != 2 {
		t.Fatalf("Expected 2 tags, got %d", len(tags))
	}
	if tags[0].Name != "dividend" || tags[1].Name != "swing" {
		t.Errorf("Tags must be ordered by name: %+v", tags)
	}
}

func TestGetTagsByIDsSkipsMissing(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewTagRepository(db)

	tag := testutil.CreateTag(t, db, "growth")

	tags, err := repo.GetTagsByIDs([]string{tag.ID, testutil.MakeID()})
	if err != nil {
		t.Fatalf("GetTagsByIDs failed: %v", err)
	}
	if len(tags) != 1 || tags[0].ID != tag.ID {
		t.Errorf("Expected only the existing tag, got %+v", tags)
	}

	empty, err := repo.GetTagsByIDs(nil)
	if err != nil {
		t.Fatalf("GetTagsByIDs failed: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("Expected empty result for no IDs, got %+v", empty)
	}
}

func TestUpdateAndDeleteTagNotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewTagRepository(db)

	err := repo.UpdateTag(model.Tag{ID: testutil.MakeID(), Name: "x", Color: "#fff"})
	if !errors.Is(err, apperrors.ErrTagNotFound) {
		t.Errorf("Expected ErrTagNotFound on update, got %v", err)
	}

	if err := repo.DeleteTag(testutil.MakeID()); !errors.Is(err, apperrors.ErrTagNotFound) {
		t.Errorf("Expected ErrTagNotFound on delete, got %v", err)
	}
}
