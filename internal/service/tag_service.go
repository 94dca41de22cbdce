package service

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/mnakahara/trade-journal-backend/internal/api/request"
	"github.com/mnakahara/trade-journal-backend/internal/apperrors"
	"github.com/mnakahara/trade-journal-backend/internal/model"
	"github.com/mnakahara/trade-journal-backend/internal/repository"
)

// TagService handles tag-related business logic operations.
type TagService struct {
	tagRepo *repository.TagRepository
}

// NewTagService creates a new TagService with the provided repository dependencies.
func NewTagService(tagRepo *repository.TagRepository) *TagService {
	return &TagService{tagRepo: tagRepo}
}

// GetAllTags returns every tag.
func (s *TagService) GetAllTags() ([]model.Tag, error) {
	return s.tagRepo.GetAllTags()
}

// GetTag returns one tag by ID.
func (s *TagService) GetTag(tagID string) (model.Tag, error) {
	return s.tagRepo.GetTag(tagID)
}

// GetPalette returns the tags deduplicated by name for the picker UI.
// Tag identity stays the synthetic ID everywhere else; this name-level
// collapse exists only here, at the consumer.
func (s *TagService) GetPalette() ([]model.Tag, error) {
	tags, err := s.tagRepo.GetAllTags()
	if err != nil {
		return nil, err
	}
	return model.DedupTagsByName(tags), nil
}

// nameTaken reports whether another tag (excluding excludeID) already
// carries the name.
func (s *TagService) nameTaken(name, excludeID string) (bool, error) {
	tags, err := s.tagRepo.GetAllTags()
	if err != nil {
		return false, err
	}
	for _, t := range tags {
		if t.Name == name && t.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

// CreateTag creates a new tag. Names are unique across tags created here;
// the palette dedup still guards against duplicates in pre-existing data.
func (s *TagService) CreateTag(req request.CreateTagRequest) (model.Tag, error) {
	taken, err := s.nameTaken(req.Name, "")
	if err != nil {
		return model.Tag{}, err
	}
	if taken {
		return model.Tag{}, fmt.Errorf("%w: tag name %q", apperrors.ErrDuplicateEntry, req.Name)
	}

	tag := model.Tag{
		ID:    uuid.NewString(),
		Name:  req.Name,
		Color: req.Color,
	}
	if err := s.tagRepo.CreateTag(tag); err != nil {
		return model.Tag{}, err
	}
	return tag, nil
}

// UpdateTag applies the present fields of an update request. Renaming onto
// another tag's name is rejected like a duplicate create.
func (s *TagService) UpdateTag(tagID string, req request.UpdateTagRequest) (model.Tag, error) {
	tag, err := s.tagRepo.GetTag(tagID)
	if err != nil {
		return model.Tag{}, err
	}

	if req.Name != nil {
		taken, err := s.nameTaken(*req.Name, tagID)
		if err != nil {
			return model.Tag{}, err
		}
		if taken {
			return model.Tag{}, fmt.Errorf("%w: tag name %q", apperrors.ErrDuplicateEntry, *req.Name)
		}
		tag.Name = *req.Name
	}
	if req.Color != nil {
		tag.Color = *req.Color
	}

	if err := s.tagRepo.UpdateTag(tag); err != nil {
		return model.Tag{}, err
	}
	return tag, nil
}

// DeleteTag removes a tag; links from records cascade.
func (s *TagService) DeleteTag(tagID string) error {
	return s.tagRepo.DeleteTag(tagID)
}
