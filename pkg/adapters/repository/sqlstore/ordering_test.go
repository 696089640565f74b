package sqlstore

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wadjakorntonsri/biolink/pkg/core/domain"
	"github.com/wadjakorntonsri/biolink/pkg/core/services"
)

func TestDropReordersCollectionBucket(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	p := seedProfile(t, repo, "grace")
	social := seedCollection(t, repo, p.ID, "Social")

	a := seedLink(t, repo, p.ID, &social.ID, 0)
	b := seedLink(t, repo, p.ID, &social.ID, 1)
	c := seedLink(t, repo, p.ID, &social.ID, 2)
	other := seedLink(t, repo, p.ID, nil, 0)

	ordering := services.NewOrderingService(repo, zerolog.Nop())
	update, err := ordering.Drop(ctx, p.ID, c.ID, a.ID)
	require.NoError(t, err)
	assert.False(t, update.Reconciled)
	assert.Len(t, update.Sync.Rows, 3)

	board, err := ordering.Board(ctx, p.ID)
	require.NoError(t, err)
	got := board.BucketLinks(domain.BucketID(social.ID))
	require.Len(t, got, 3)
	assert.Equal(t, []string{c.ID, a.ID, b.ID}, []string{got[0].ID, got[1].ID, got[2].ID})
	assert.Equal(t, []int{0, 1, 2}, []int{got[0].Position, got[1].Position, got[2].Position})

	untouched, err := repo.GetLink(ctx, p.ID, other.ID)
	require.NoError(t, err)
	assert.Nil(t, untouched.CollectionID)
	assert.Equal(t, 0, untouched.Position)
}
