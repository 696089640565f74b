package main

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wadjakorntonsri/biolink/pkg/adapters/repository/memory"
	"github.com/wadjakorntonsri/biolink/pkg/core/domain"
)

func seedBoard(t *testing.T) *memory.Store {
	t.Helper()
	ctx := context.Background()
	store := memory.New()
	now := time.Now()
	col := "c1"

	require.NoError(t, store.CreateProfile(ctx, &domain.Profile{ID: "u1", Username: "alice", Theme: "dark", IsPublic: true, CreatedAt: now, UpdatedAt: now}))
	require.NoError(t, store.CreateCollection(ctx, &domain.Collection{ID: col, UserID: "u1", Title: "Work", IsActive: true, CreatedAt: now}))
	require.NoError(t, store.CreateLink(ctx, &domain.Link{ID: "l1", UserID: "u1", Title: "a", URL: "https://a.example", Position: 0, IsActive: true, CreatedAt: now}))
	require.NoError(t, store.CreateLink(ctx, &domain.Link{ID: "l2", UserID: "u1", CollectionID: &col, Title: "b", URL: "https://b.example", Position: 3, ClickCount: 9, CreatedAt: now}))
	return store
}

func TestExportImportRoundTrip(t *testing.T) {
	ctx := context.Background()
	src := seedBoard(t)

	var buf bytes.Buffer
	require.NoError(t, exportBoard(ctx, src, "u1", &buf))

	dst := memory.New()
	res, err := importBoard(ctx, dst, bytes.NewReader(buf.Bytes()), zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, importResult{Profiles: 1, Collections: 1, Links: 2}, res)

	l2, err := dst.GetLink(ctx, "u1", "l2")
	require.NoError(t, err)
	require.NotNil(t, l2)
	require.NotNil(t, l2.CollectionID)
	assert.Equal(t, "c1", *l2.CollectionID)
	assert.Equal(t, 3, l2.Position)
	assert.EqualValues(t, 9, l2.ClickCount)

	// second import skips everything
	res, err = importBoard(ctx, dst, bytes.NewReader(buf.Bytes()), zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, importResult{Skipped: 4}, res)
}

func TestExportUnknownUser(t *testing.T) {
	err := exportBoard(context.Background(), memory.New(), "ghost", &bytes.Buffer{})
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)
}

func TestImportBadJSON(t *testing.T) {
	_, err := importBoard(context.Background(), memory.New(), bytes.NewBufferString("{"), zerolog.Nop())
	assert.Error(t, err)
}
