package sqlstore

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wadjakorntonsri/biolink/pkg/core/domain"
)

func newTestRepo(t *testing.T) *Repository {
	t.Helper()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	repo, err := New(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func seedProfile(t *testing.T, repo *Repository, username string) *domain.Profile {
	t.Helper()
	now := time.Now().UTC()
	p := &domain.Profile{
		ID:        uuid.NewString(),
		Username:  username,
		Theme:     domain.DefaultThemeID,
		IsPublic:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, repo.CreateProfile(context.Background(), p))
	return p
}

func seedLink(t *testing.T, repo *Repository, userID string, collectionID *string, position int) *domain.Link {
	t.Helper()
	now := time.Now().UTC()
	l := &domain.Link{
		ID:           uuid.NewString(),
		UserID:       userID,
		CollectionID: collectionID,
		Title:        "link",
		URL:          "https://example.com",
		Position:     position,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, repo.CreateLink(context.Background(), l))
	return l
}

func seedCollection(t *testing.T, repo *Repository, userID, title string) *domain.Collection {
	t.Helper()
	now := time.Now().UTC()
	c := &domain.Collection{ID: uuid.NewString(), UserID: userID, Title: title, IsActive: true, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, repo.CreateCollection(context.Background(), c))
	return c
}

func TestWithForeignKeys(t *testing.T) {
	assert.Equal(t, "biolink.db?_pragma=foreign_keys(1)", withForeignKeys("biolink.db"))
	assert.Equal(t, "file:x?mode=memory&_pragma=foreign_keys(1)", withForeignKeys("file:x?mode=memory"))
}

func TestRebind(t *testing.T) {
	assert.Equal(t, "SELECT * FROM links WHERE id = $1 AND user_id = $2",
		rebind("SELECT * FROM links WHERE id = ? AND user_id = ?"))
	assert.Equal(t, "SELECT 1", rebind("SELECT 1"))
}

func TestDriverFor(t *testing.T) {
	tests := []struct {
		url     string
		driver  string
		dialect dialect
	}{
		{"postgres://u:p@localhost/db", "pgx", dialectPostgres},
		{"postgresql://u:p@localhost/db", "pgx", dialectPostgres},
		{"libsql://db.turso.io?authToken=x", "libsql", dialectSQLite},
		{"wss://db.turso.io", "libsql", dialectSQLite},
		{"file:db.sqlite", "sqlite", dialectSQLite},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			driver, d := driverFor(tt.url)
			assert.Equal(t, tt.driver, driver)
			assert.Equal(t, tt.dialect, d)
		})
	}
}

func TestProfiles(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	p := seedProfile(t, repo, "alice")

	got, err := repo.GetProfileByUsername(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, p.ID, got.ID)
	assert.True(t, got.IsPublic)

	missing, err := repo.GetProfile(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)

	dup := *p
	dup.ID = uuid.NewString()
	assert.ErrorIs(t, repo.CreateProfile(ctx, &dup), domain.ErrUsernameTaken)

	p.Bio = "hello"
	require.NoError(t, repo.UpdateProfile(ctx, p))
	got, err = repo.GetProfile(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "hello", got.Bio)
}

func TestNextLinkPositionPerBucket(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	p := seedProfile(t, repo, "bob")

	pos, err := repo.NextLinkPosition(ctx, p.ID, domain.Ungrouped)
	require.NoError(t, err)
	assert.Equal(t, 0, pos)

	seedLink(t, repo, p.ID, nil, 0)
	seedLink(t, repo, p.ID, nil, 4)
	cid := seedCollection(t, repo, p.ID, "Work").ID
	seedLink(t, repo, p.ID, &cid, 1)

	pos, err = repo.NextLinkPosition(ctx, p.ID, domain.Ungrouped)
	require.NoError(t, err)
	assert.Equal(t, 5, pos)

	pos, err = repo.NextLinkPosition(ctx, p.ID, domain.BucketID(cid))
	require.NoError(t, err)
	assert.Equal(t, 2, pos)
}

func TestOrderingWritesAreOwnerScoped(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	owner := seedProfile(t, repo, "owner")
	other := seedProfile(t, repo, "other")
	l := seedLink(t, repo, owner.ID, nil, 0)

	assert.ErrorIs(t, repo.UpdateLinkPosition(ctx, other.ID, l.ID, 3), domain.ErrLinkNotFound)
	require.NoError(t, repo.UpdateLinkPosition(ctx, owner.ID, l.ID, 3))

	cid := seedCollection(t, repo, owner.ID, "Work").ID
	require.NoError(t, repo.SetLinkCollection(ctx, owner.ID, l.ID, &cid))
	got, err := repo.GetLink(ctx, owner.ID, l.ID)
	require.NoError(t, err)
	require.NotNil(t, got.CollectionID)
	assert.Equal(t, cid, *got.CollectionID)
	assert.Equal(t, 3, got.Position)

	n, err := repo.UngroupLinks(ctx, owner.ID, cid)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
	got, err = repo.GetLink(ctx, owner.ID, l.ID)
	require.NoError(t, err)
	assert.Nil(t, got.CollectionID)

	foreign, err := repo.GetLink(ctx, other.ID, l.ID)
	require.NoError(t, err)
	assert.Nil(t, foreign)
}

func TestListLinksOrdered(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	p := seedProfile(t, repo, "carol")

	c := seedLink(t, repo, p.ID, nil, 2)
	a := seedLink(t, repo, p.ID, nil, 0)
	b := seedLink(t, repo, p.ID, nil, 1)
	b.IsActive = false
	require.NoError(t, repo.UpdateLink(ctx, b))

	links, err := repo.ListLinks(ctx, p.ID, nil)
	require.NoError(t, err)
	require.Len(t, links, 3)
	assert.Equal(t, []string{a.ID, b.ID, c.ID}, []string{links[0].ID, links[1].ID, links[2].ID})

	active, err := repo.ListLinks(ctx, p.ID, map[string]interface{}{"active": true})
	require.NoError(t, err)
	assert.Len(t, active, 2)
}

func TestCollections(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	p := seedProfile(t, repo, "dave")
	now := time.Now().UTC()

	desc := "things"
	col := &domain.Collection{ID: uuid.NewString(), UserID: p.ID, Title: "Stuff", Description: &desc, IsActive: true, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, repo.CreateCollection(ctx, col))

	next, err := repo.NextCollectionPosition(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, next)

	got, err := repo.GetCollection(ctx, p.ID, col.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Description)
	assert.Equal(t, "things", *got.Description)

	require.NoError(t, repo.UpdateCollectionPosition(ctx, p.ID, col.ID, 7))
	require.NoError(t, repo.DeleteCollection(ctx, p.ID, col.ID))
	assert.ErrorIs(t, repo.DeleteCollection(ctx, p.ID, col.ID), domain.ErrCollectionNotFound)
}

func TestIncrementLinkClicks(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	p := seedProfile(t, repo, "erin")
	l := seedLink(t, repo, p.ID, nil, 0)

	for _, ref := range []string{"https://twitter.com", "", "https://twitter.com"} {
		err := repo.IncrementLinkClicks(ctx, &domain.LinkClick{
			ID:        uuid.NewString(),
			LinkID:    l.ID,
			ClickedAt: time.Now(),
			IPAddress: "1.2.3.4",
			Referrer:  ref,
		})
		require.NoError(t, err)
	}

	got, err := repo.GetLink(ctx, p.ID, l.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, got.ClickCount)

	stats, err := repo.GetLinkStats(ctx, l.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, stats.TotalClicks)
	assert.EqualValues(t, 2, stats.Referrers["https://twitter.com"])
	assert.EqualValues(t, 1, stats.Referrers["Direct"])
	require.Len(t, stats.DailyClicks, 1)
	assert.EqualValues(t, 3, stats.DailyClicks[0].Count)

	err = repo.IncrementLinkClicks(ctx, &domain.LinkClick{ID: uuid.NewString(), LinkID: "missing", ClickedAt: time.Now()})
	assert.ErrorIs(t, err, domain.ErrLinkNotFound)

	stats, err = repo.GetLinkStats(ctx, "missing")
	require.NoError(t, err)
	assert.Zero(t, stats.TotalClicks)
}

func TestForeignKeysEnforced(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	p := seedProfile(t, repo, "frank")

	ghost := "no-such-collection"
	l := seedLink(t, repo, p.ID, nil, 0)
	assert.Error(t, repo.SetLinkCollection(ctx, p.ID, l.ID, &ghost))

	col := seedCollection(t, repo, p.ID, "Work")
	require.NoError(t, repo.SetLinkCollection(ctx, p.ID, l.ID, &col.ID))
	require.NoError(t, repo.DeleteCollection(ctx, p.ID, col.ID))
	got, err := repo.GetLink(ctx, p.ID, l.ID)
	require.NoError(t, err)
	assert.Nil(t, got.CollectionID)

	require.NoError(t, repo.IncrementLinkClicks(ctx, &domain.LinkClick{ID: uuid.NewString(), LinkID: l.ID, ClickedAt: time.Now()}))
	require.NoError(t, repo.DeleteLink(ctx, p.ID, l.ID))
	stats, err := repo.GetLinkStats(ctx, l.ID)
	require.NoError(t, err)
	assert.Zero(t, stats.TotalClicks)
}
