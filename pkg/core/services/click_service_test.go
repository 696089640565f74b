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

func TestRecordClick(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	links := NewLinkService(store)
	clicks := NewClickService(store, zerolog.Nop())

	link, err := links.CreateLink(ctx, owner, domain.LinkInput{URL: "example.com"})
	require.NoError(t, err)

	require.NoError(t, clicks.RecordClick(ctx, link.ID, domain.ClickMeta{UserAgent: "ua"}))
	require.NoError(t, clicks.RecordClick(ctx, link.ID, domain.ClickMeta{IP: "10.1.1.1", Referrer: "https://news.example"}))

	stored, err := store.GetLink(ctx, owner, link.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, stored.ClickCount)

	events := store.Clicks()
	require.Len(t, events, 2)
	assert.Equal(t, "unknown", events[0].IPAddress)
	assert.Equal(t, "ua", events[0].UserAgent)
	assert.Equal(t, "10.1.1.1", events[1].IPAddress)
	assert.NotEqual(t, events[0].ID, events[1].ID)

	stats, err := links.GetLinkStats(ctx, owner, link.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, stats.TotalClicks)
	assert.EqualValues(t, 1, stats.Referrers["Direct"])
	assert.EqualValues(t, 1, stats.Referrers["https://news.example"])
}

func TestRecordClickErrors(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	clicks := NewClickService(store, zerolog.Nop())

	assert.ErrorIs(t, clicks.RecordClick(ctx, " ", domain.ClickMeta{}), domain.ErrLinkIDRequired)
	assert.ErrorIs(t, clicks.RecordClick(ctx, "missing", domain.ClickMeta{}), domain.ErrLinkNotFound)
	assert.Empty(t, store.Clicks())
}
