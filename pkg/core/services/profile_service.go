package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/wadjakorntonsri/biolink/pkg/core/domain"
	"github.com/wadjakorntonsri/biolink/pkg/ports"
)

type ProfileService struct {
	repo ports.Store
}

func NewProfileService(repo ports.Store) *ProfileService {
	return &ProfileService{repo: repo}
}

// EnsureProfile returns the user's profile, creating a public one on first
// sign-in. The username is taken from the email's local part when that is
// valid and free, else it is user_<first 8 chars of the id>.
func (s *ProfileService) EnsureProfile(ctx context.Context, userID, email string) (*domain.Profile, error) {
	profile, err := s.repo.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile != nil {
		return profile, nil
	}

	username, err := s.initialUsername(ctx, userID, email)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	profile = &domain.Profile{
		ID:        userID,
		Username:  username,
		Theme:     domain.DefaultThemeID,
		IsPublic:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.CreateProfile(ctx, profile); err != nil {
		return nil, fmt.Errorf("create profile: %w", err)
	}
	return profile, nil
}

func (s *ProfileService) initialUsername(ctx context.Context, userID, email string) (string, error) {
	local, _, _ := strings.Cut(email, "@")
	candidate := domain.NormalizeUsername(local)
	if domain.ValidUsername(candidate) {
		existing, err := s.repo.GetProfileByUsername(ctx, candidate)
		if err != nil {
			return "", err
		}
		if existing == nil {
			return candidate, nil
		}
	}

	short := strings.ReplaceAll(userID, "-", "")
	if len(short) > 8 {
		short = short[:8]
	}
	return "user_" + short, nil
}

func (s *ProfileService) GetProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	profile, err := s.repo.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, domain.ErrProfileNotFound
	}
	return profile, nil
}

func (s *ProfileService) UpdateProfile(ctx context.Context, userID string, update domain.ProfileUpdate) (*domain.Profile, error) {
	profile, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if update.Username != nil {
		username := domain.NormalizeUsername(*update.Username)
		if !domain.ValidUsername(username) {
			return nil, domain.ErrInvalidUsername
		}
		if username != profile.Username {
			existing, err := s.repo.GetProfileByUsername(ctx, username)
			if err != nil {
				return nil, err
			}
			if existing != nil && existing.ID != profile.ID {
				return nil, domain.ErrUsernameTaken
			}
		}
		profile.Username = username
	}
	if update.Theme != nil {
		if _, ok := domain.LookupTheme(*update.Theme); !ok {
			return nil, domain.ErrInvalidTheme
		}
		profile.Theme = *update.Theme
	}
	if update.DisplayName != nil {
		profile.DisplayName = strings.TrimSpace(*update.DisplayName)
	}
	if update.Bio != nil {
		profile.Bio = strings.TrimSpace(*update.Bio)
	}
	if update.IsPublic != nil {
		profile.IsPublic = *update.IsPublic
	}
	profile.UpdatedAt = time.Now()

	if err := s.repo.UpdateProfile(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// GetPublicPage loads what /{username} shows: active links in position order,
// ungrouped first, then active collections that have at least one active link.
// Missing and private profiles both yield ErrProfileNotFound.
func (s *ProfileService) GetPublicPage(ctx context.Context, username string) (*domain.PublicPage, error) {
	profile, err := s.repo.GetProfileByUsername(ctx, domain.NormalizeUsername(username))
	if err != nil {
		return nil, err
	}
	if profile == nil || !profile.IsPublic {
		return nil, domain.ErrProfileNotFound
	}

	active := map[string]interface{}{"active": true}
	links, err := s.repo.ListLinks(ctx, profile.ID, active)
	if err != nil {
		return nil, err
	}
	collections, err := s.repo.ListCollections(ctx, profile.ID, active)
	if err != nil {
		return nil, err
	}

	board := domain.NewBoard(links, collections)
	page := &domain.PublicPage{
		Profile:   *profile,
		Theme:     domain.ThemeOrDefault(profile.Theme),
		Ungrouped: board.BucketLinks(domain.Ungrouped),
	}
	for _, group := range board.Groups() {
		if len(group.Links) > 0 {
			page.Groups = append(page.Groups, group)
		}
	}
	return page, nil
}
