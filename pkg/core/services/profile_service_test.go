package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wadjakorntonsri/biolink/pkg/adapters/repository/memory"
	"github.com/wadjakorntonsri/biolink/pkg/core/domain"
)

func strPtr(s string) *string { return &s }

func TestEnsureProfile(t *testing.T) {
	ctx := context.Background()
	profiles := NewProfileService(memory.New())

	p, err := profiles.EnsureProfile(ctx, "0f8fad5b-d9cb-469f-a165-70867728950e", "Jane.Doe@example.com")
	require.NoError(t, err)
	assert.Equal(t, "user_0f8fad5b", p.Username, "dots are not allowed in usernames")
	assert.Equal(t, domain.DefaultThemeID, p.Theme)
	assert.True(t, p.IsPublic)

	again, err := profiles.EnsureProfile(ctx, p.ID, "other@example.com")
	require.NoError(t, err)
	assert.Equal(t, p.Username, again.Username)

	q, err := profiles.EnsureProfile(ctx, "7c9e6679-7425-40de-944b-e07fc1f90ae7", "sam@example.com")
	require.NoError(t, err)
	assert.Equal(t, "sam", q.Username)

	r, err := profiles.EnsureProfile(ctx, "16fd2706-8baf-433b-82eb-8c7fada847da", "sam@other.org")
	require.NoError(t, err)
	assert.Equal(t, "user_16fd2706", r.Username)

	m, err := profiles.EnsureProfile(ctx, "9b2d6c1e-4f0a-4c5e-8d3b-2a7e1f6c9d40", "Metrics@example.com")
	require.NoError(t, err)
	assert.Equal(t, "user_9b2d6c1e", m.Username, "route names are never handed out")
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()
	profiles := NewProfileService(memory.New())

	_, err := profiles.EnsureProfile(ctx, "u1", "first@example.com")
	require.NoError(t, err)
	_, err = profiles.EnsureProfile(ctx, "u2", "second@example.com")
	require.NoError(t, err)

	tests := []struct {
		name    string
		update  domain.ProfileUpdate
		wantErr error
	}{
		{"too short", domain.ProfileUpdate{Username: strPtr("ab")}, domain.ErrInvalidUsername},
		{"bad chars", domain.ProfileUpdate{Username: strPtr("a b c")}, domain.ErrInvalidUsername},
		{"reserved", domain.ProfileUpdate{Username: strPtr("Dashboard")}, domain.ErrInvalidUsername},
		{"taken", domain.ProfileUpdate{Username: strPtr("Second")}, domain.ErrUsernameTaken},
		{"unknown theme", domain.ProfileUpdate{Theme: strPtr("neon")}, domain.ErrInvalidTheme},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := profiles.UpdateProfile(ctx, "u1", tt.update)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	updated, err := profiles.UpdateProfile(ctx, "u1", domain.ProfileUpdate{
		Username:    strPtr("  New_Name "),
		DisplayName: strPtr(" First "),
		Theme:       strPtr("pink"),
	})
	require.NoError(t, err)
	assert.Equal(t, "new_name", updated.Username)
	assert.Equal(t, "First", updated.DisplayName)
	assert.Equal(t, "pink", updated.Theme)

	_, err = profiles.UpdateProfile(ctx, "ghost", domain.ProfileUpdate{})
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)
}

func TestGetPublicPage(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	profiles := NewProfileService(store)
	links := NewLinkService(store)
	collections := NewCollectionService(store)
	ordering := NewOrderingService(store, zerolog.Nop())

	p, err := profiles.EnsureProfile(ctx, owner, "owner@example.com")
	require.NoError(t, err)

	loose, err := links.CreateLink(ctx, owner, domain.LinkInput{Title: "loose", URL: "a.example.com"})
	require.NoError(t, err)
	hidden, err := links.CreateLink(ctx, owner, domain.LinkInput{Title: "hidden", URL: "b.example.com"})
	require.NoError(t, err)
	_, err = links.SetLinkActive(ctx, owner, hidden.ID, false)
	require.NoError(t, err)

	full, err := collections.CreateCollection(ctx, owner, "Full", "")
	require.NoError(t, err)
	empty, err := collections.CreateCollection(ctx, owner, "Empty", "")
	require.NoError(t, err)
	inner, err := links.CreateLink(ctx, owner, domain.LinkInput{Title: "inner", URL: "c.example.com", CollectionID: &full.ID})
	require.NoError(t, err)
	_, err = ordering.ReorderBuckets(ctx, owner, empty.ID, full.ID)
	require.NoError(t, err)

	page, err := profiles.GetPublicPage(ctx, "OWNER")
	require.NoError(t, err)
	assert.Equal(t, p.ID, page.Profile.ID)
	assert.Equal(t, "default", page.Theme.ID)
	require.Len(t, page.Ungrouped, 1)
	assert.Equal(t, loose.ID, page.Ungrouped[0].ID)
	require.Len(t, page.Groups, 1, "collections without active links are hidden")
	assert.Equal(t, full.ID, page.Groups[0].Collection.ID)
	assert.Equal(t, inner.ID, page.Groups[0].Links[0].ID)

	_, err = profiles.UpdateProfile(ctx, owner, domain.ProfileUpdate{IsPublic: new(bool)})
	require.NoError(t, err)
	_, err = profiles.GetPublicPage(ctx, "owner")
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)

	_, err = profiles.GetPublicPage(ctx, "nobody")
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)
}
