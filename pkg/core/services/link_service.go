package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/wadjakorntonsri/biolink/pkg/core/domain"
	"github.com/wadjakorntonsri/biolink/pkg/ports"
)

type LinkService struct {
	repo ports.Store
}

func NewLinkService(repo ports.Store) *LinkService {
	return &LinkService{repo: repo}
}

// CreateLink appends a link to the end of its bucket.
func (s *LinkService) CreateLink(ctx context.Context, userID string, in domain.LinkInput) (*domain.Link, error) {
	validURL, err := domain.NormalizeURL(in.URL)
	if err != nil {
		return nil, err
	}

	bucket := domain.Ungrouped
	if in.CollectionID != nil && *in.CollectionID != "" {
		collection, err := s.repo.GetCollection(ctx, userID, *in.CollectionID)
		if err != nil {
			return nil, err
		}
		if collection == nil {
			return nil, domain.ErrCollectionNotFound
		}
		bucket = domain.BucketID(collection.ID)
	}

	position, err := s.repo.NextLinkPosition(ctx, userID, bucket)
	if err != nil {
		return nil, fmt.Errorf("next position: %w", err)
	}

	now := time.Now()
	link := &domain.Link{
		ID:           uuid.NewString(),
		UserID:       userID,
		CollectionID: bucket.CollectionID(),
		Title:        domain.NormalizeTitle(in.Title),
		URL:          validURL,
		Description:  in.Description,
		Icon:         in.Icon,
		Position:     position,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.CreateLink(ctx, link); err != nil {
		return nil, err
	}

	return link, nil
}

// UpdateLink edits title, URL, description and icon. Bucket and position are
// owned by the ordering service and are not touched here.
func (s *LinkService) UpdateLink(ctx context.Context, userID, id string, in domain.LinkInput) (*domain.Link, error) {
	validURL, err := domain.NormalizeURL(in.URL)
	if err != nil {
		return nil, err
	}

	link, err := s.repo.GetLink(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if link == nil {
		return nil, domain.ErrLinkNotFound
	}

	link.Title = domain.NormalizeTitle(in.Title)
	link.URL = validURL
	link.Description = in.Description
	link.Icon = in.Icon
	link.UpdatedAt = time.Now()

	if err := s.repo.UpdateLink(ctx, link); err != nil {
		return nil, err
	}

	return link, nil
}

func (s *LinkService) SetLinkActive(ctx context.Context, userID, id string, active bool) (*domain.Link, error) {
	link, err := s.repo.GetLink(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if link == nil {
		return nil, domain.ErrLinkNotFound
	}

	link.IsActive = active
	link.UpdatedAt = time.Now()
	if err := s.repo.UpdateLink(ctx, link); err != nil {
		return nil, err
	}
	return link, nil
}

func (s *LinkService) DeleteLink(ctx context.Context, userID, id string) error {
	return s.repo.DeleteLink(ctx, userID, id)
}

func (s *LinkService) ListLinks(ctx context.Context, userID string) ([]domain.Link, error) {
	return s.repo.ListLinks(ctx, userID, nil)
}

func (s *LinkService) GetLinkStats(ctx context.Context, userID, id string) (*domain.LinkStats, error) {
	link, err := s.repo.GetLink(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if link == nil {
		return nil, domain.ErrLinkNotFound
	}
	return s.repo.GetLinkStats(ctx, link.ID)
}
