package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/wadjakorntonsri/biolink/pkg/core/domain"
	"github.com/wadjakorntonsri/biolink/pkg/ports"
)

// CollectionService handles collection rows. Deleting and ungrouping go
// through OrderingService since they rewrite link membership.
type CollectionService struct {
	repo ports.Store
}

func NewCollectionService(repo ports.Store) *CollectionService {
	return &CollectionService{repo: repo}
}

func (s *CollectionService) CreateCollection(ctx context.Context, userID, title, description string) (*domain.Collection, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, domain.ErrTitleRequired
	}

	position, err := s.repo.NextCollectionPosition(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("next position: %w", err)
	}

	now := time.Now()
	collection := &domain.Collection{
		ID:          uuid.NewString(),
		UserID:      userID,
		Title:       title,
		Description: optionalText(description),
		Position:    position,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.CreateCollection(ctx, collection); err != nil {
		return nil, err
	}

	return collection, nil
}

func (s *CollectionService) UpdateCollection(ctx context.Context, userID, id, title, description string, active *bool) (*domain.Collection, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, domain.ErrTitleRequired
	}

	collection, err := s.repo.GetCollection(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if collection == nil {
		return nil, domain.ErrCollectionNotFound
	}

	collection.Title = title
	collection.Description = optionalText(description)
	if active != nil {
		collection.IsActive = *active
	}
	collection.UpdatedAt = time.Now()

	if err := s.repo.UpdateCollection(ctx, collection); err != nil {
		return nil, err
	}

	return collection, nil
}

func (s *CollectionService) ListCollections(ctx context.Context, userID string) ([]domain.Collection, error) {
	return s.repo.ListCollections(ctx, userID, nil)
}

func optionalText(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
