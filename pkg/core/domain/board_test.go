package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArrayMove(t *testing.T) {
	tests := []struct {
		name     string
		from, to int
		want     []string
	}{
		{"back to front", 2, 0, []string{"C", "A", "B"}},
		{"front to back", 0, 2, []string{"B", "C", "A"}},
		{"adjacent", 0, 1, []string{"B", "A", "C"}},
		{"same index", 1, 1, []string{"A", "B", "C"}},
		{"from out of range", 5, 0, []string{"A", "B", "C"}},
		{"to out of range", 0, -1, []string{"A", "B", "C"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := []string{"A", "B", "C"}
			got := ArrayMove(in, tt.from, tt.to)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, []string{"A", "B", "C"}, in, "input must not change")
		})
	}
}

func TestParseBucketID(t *testing.T) {
	assert.Equal(t, Ungrouped, ParseBucketID(""))
	assert.Equal(t, Ungrouped, ParseBucketID(UngroupedSentinel))
	assert.Equal(t, BucketID("abc"), ParseBucketID("abc"))

	assert.Nil(t, Ungrouped.CollectionID())
	require.NotNil(t, BucketID("abc").CollectionID())
	assert.Equal(t, "abc", *BucketID("abc").CollectionID())
}

func TestBoardBucketLinks(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	col := "col"
	board := NewBoard([]Link{
		{ID: "late", Position: 1, CreatedAt: base.Add(2 * time.Hour)},
		{ID: "early", Position: 1, CreatedAt: base.Add(time.Hour)},
		{ID: "first", Position: 0, CreatedAt: base.Add(3 * time.Hour)},
		{ID: "grouped", Position: 0, CollectionID: &col},
	}, []Collection{{ID: col}})

	var got []string
	for _, l := range board.BucketLinks(Ungrouped) {
		got = append(got, l.ID)
	}
	assert.Equal(t, []string{"first", "early", "late"}, got)

	groups := board.Groups()
	require.Len(t, groups, 1)
	require.Len(t, groups[0].Links, 1)
	assert.Equal(t, "grouped", groups[0].Links[0].ID)

	board.RemoveCollection(col)
	assert.Empty(t, board.Collections)
	assert.Len(t, board.BucketLinks(Ungrouped), 4)
}

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"example.com", "https://example.com", false},
		{"  http://example.com/x ", "http://example.com/x", false},
		{"https://example.com", "https://example.com", false},
		{"", "", true},
		{"https://", "", true},
	}
	for _, tt := range tests {
		got, err := NormalizeURL(tt.in)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrInvalidURL, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestValidUsername(t *testing.T) {
	assert.True(t, ValidUsername("abc"))
	assert.True(t, ValidUsername("a_b-c9"))
	assert.False(t, ValidUsername("ab"))
	assert.False(t, ValidUsername("has space"))
	assert.False(t, ValidUsername("0123456789012345678901234567890"))
	for _, name := range []string{"dashboard", "healthz", "metrics", "api", "auth", "Dashboard"} {
		assert.False(t, ValidUsername(name), name)
	}
	assert.True(t, ValidUsername("dashboards"))
	assert.Equal(t, "mixed", NormalizeUsername("  MiXed "))
}

func TestSyncReport(t *testing.T) {
	var r SyncReport
	p := 0
	i := r.Pending(RowKindLink, "a", &p)
	j := r.Pending(RowKindLink, "b", nil)
	assert.Equal(t, SyncPending, r.Rows[i].State)

	r.Resolve(i, nil)
	r.Resolve(j, assert.AnError)

	failed := r.Failed()
	require.Len(t, failed, 1)
	assert.Equal(t, "b", failed[0].ID)
	assert.Equal(t, SyncSynced, r.Rows[i].State)

	err := &PartialSyncError{Report: r}
	assert.Equal(t, "1 of 2 writes failed", err.Error())
	assert.False(t, IsNotFound(err))
}

func TestThemeOrDefault(t *testing.T) {
	assert.Equal(t, "dark", ThemeOrDefault("dark").ID)
	assert.Equal(t, DefaultThemeID, ThemeOrDefault("missing").ID)
}
