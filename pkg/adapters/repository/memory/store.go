// Package memory is an in-process implementation of ports.Store. It backs
// tests and local demos; WriteCount and FailWrites make the ordering write
// pattern observable.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/wadjakorntonsri/biolink/pkg/core/domain"
	"github.com/wadjakorntonsri/biolink/pkg/ports"
)

type Store struct {
	mu          sync.Mutex
	profiles    map[string]domain.Profile
	links       map[string]domain.Link
	collections map[string]domain.Collection
	clicks      []domain.LinkClick

	writes    int
	failWrite func(id string) error
}

func New() *Store {
	return &Store{
		profiles:    make(map[string]domain.Profile),
		links:       make(map[string]domain.Link),
		collections: make(map[string]domain.Collection),
	}
}

// WriteCount returns how many ordering writes (positions, membership,
// ungroup, collection delete) have been issued.
func (s *Store) WriteCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}

// FailWrites makes single-row ordering writes for which fn returns an error
// fail with that error. nil clears it.
func (s *Store) FailWrites(fn func(id string) error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failWrite = fn
}

// Clicks returns the recorded click events.
func (s *Store) Clicks() []domain.LinkClick {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.LinkClick(nil), s.clicks...)
}

func (s *Store) injected(id string) error {
	if s.failWrite == nil {
		return nil
	}
	return s.failWrite(id)
}

// --- Profiles ---

func (s *Store) CreateProfile(ctx context.Context, profile *domain.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.profiles {
		if p.Username == profile.Username {
			return domain.ErrUsernameTaken
		}
	}
	s.profiles[profile.ID] = *profile
	return nil
}

func (s *Store) GetProfile(ctx context.Context, id string) (*domain.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (s *Store) GetProfileByUsername(ctx context.Context, username string) (*domain.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.profiles {
		if p.Username == username {
			return &p, nil
		}
	}
	return nil, nil
}

func (s *Store) UpdateProfile(ctx context.Context, profile *domain.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.profiles[profile.ID]; !ok {
		return domain.ErrProfileNotFound
	}
	s.profiles[profile.ID] = *profile
	return nil
}

// --- Links ---

func (s *Store) CreateLink(ctx context.Context, link *domain.Link) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.links[link.ID] = *link
	return nil
}

func (s *Store) GetLink(ctx context.Context, userID, id string) (*domain.Link, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.links[id]
	if !ok || l.UserID != userID {
		return nil, nil
	}
	return &l, nil
}

func (s *Store) UpdateLink(ctx context.Context, link *domain.Link) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.links[link.ID]
	if !ok || l.UserID != link.UserID {
		return domain.ErrLinkNotFound
	}
	l.Title = link.Title
	l.URL = link.URL
	l.Description = link.Description
	l.Icon = link.Icon
	l.IsActive = link.IsActive
	l.UpdatedAt = link.UpdatedAt
	s.links[link.ID] = l
	return nil
}

func (s *Store) DeleteLink(ctx context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.links[id]
	if !ok || l.UserID != userID {
		return domain.ErrLinkNotFound
	}
	delete(s.links, id)
	return nil
}

func (s *Store) ListLinks(ctx context.Context, userID string, filters map[string]interface{}) ([]domain.Link, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	activeOnly, _ := filters["active"].(bool)
	var links []domain.Link
	for _, l := range s.links {
		if l.UserID != userID || (activeOnly && !l.IsActive) {
			continue
		}
		links = append(links, l)
	}
	sort.Slice(links, func(i, j int) bool {
		if links[i].Position != links[j].Position {
			return links[i].Position < links[j].Position
		}
		return links[i].CreatedAt.Before(links[j].CreatedAt)
	})
	return links, nil
}

func (s *Store) NextLinkPosition(ctx context.Context, userID string, bucket domain.BucketID) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := 0
	for _, l := range s.links {
		if l.UserID == userID && l.Bucket() == bucket && l.Position >= next {
			next = l.Position + 1
		}
	}
	return next, nil
}

func (s *Store) UpdateLinkPosition(ctx context.Context, userID, id string, position int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writes++
	if err := s.injected(id); err != nil {
		return err
	}
	l, ok := s.links[id]
	if !ok || l.UserID != userID {
		return domain.ErrLinkNotFound
	}
	l.Position = position
	s.links[id] = l
	return nil
}

func (s *Store) SetLinkCollection(ctx context.Context, userID, id string, collectionID *string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writes++
	if err := s.injected(id); err != nil {
		return err
	}
	l, ok := s.links[id]
	if !ok || l.UserID != userID {
		return domain.ErrLinkNotFound
	}
	if collectionID != nil {
		c := *collectionID
		l.CollectionID = &c
	} else {
		l.CollectionID = nil
	}
	l.UpdatedAt = time.Now()
	s.links[id] = l
	return nil
}

func (s *Store) UngroupLinks(ctx context.Context, userID, collectionID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writes++
	var n int64
	for id, l := range s.links {
		if l.UserID == userID && l.CollectionID != nil && *l.CollectionID == collectionID {
			l.CollectionID = nil
			s.links[id] = l
			n++
		}
	}
	return n, nil
}

// --- Collections ---

func (s *Store) CreateCollection(ctx context.Context, collection *domain.Collection) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.collections[collection.ID] = *collection
	return nil
}

func (s *Store) GetCollection(ctx context.Context, userID, id string) (*domain.Collection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.collections[id]
	if !ok || c.UserID != userID {
		return nil, nil
	}
	return &c, nil
}

func (s *Store) UpdateCollection(ctx context.Context, collection *domain.Collection) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.collections[collection.ID]
	if !ok || c.UserID != collection.UserID {
		return domain.ErrCollectionNotFound
	}
	c.Title = collection.Title
	c.Description = collection.Description
	c.IsActive = collection.IsActive
	c.UpdatedAt = collection.UpdatedAt
	s.collections[collection.ID] = c
	return nil
}

func (s *Store) DeleteCollection(ctx context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writes++
	c, ok := s.collections[id]
	if !ok || c.UserID != userID {
		return domain.ErrCollectionNotFound
	}
	delete(s.collections, id)
	return nil
}

func (s *Store) ListCollections(ctx context.Context, userID string, filters map[string]interface{}) ([]domain.Collection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	activeOnly, _ := filters["active"].(bool)
	var collections []domain.Collection
	for _, c := range s.collections {
		if c.UserID != userID || (activeOnly && !c.IsActive) {
			continue
		}
		collections = append(collections, c)
	}
	sort.Slice(collections, func(i, j int) bool {
		if collections[i].Position != collections[j].Position {
			return collections[i].Position < collections[j].Position
		}
		return collections[i].CreatedAt.Before(collections[j].CreatedAt)
	})
	return collections, nil
}

func (s *Store) NextCollectionPosition(ctx context.Context, userID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := 0
	for _, c := range s.collections {
		if c.UserID == userID && c.Position >= next {
			next = c.Position + 1
		}
	}
	return next, nil
}

func (s *Store) UpdateCollectionPosition(ctx context.Context, userID, id string, position int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writes++
	if err := s.injected(id); err != nil {
		return err
	}
	c, ok := s.collections[id]
	if !ok || c.UserID != userID {
		return domain.ErrCollectionNotFound
	}
	c.Position = position
	s.collections[id] = c
	return nil
}

// --- Clicks ---

func (s *Store) IncrementLinkClicks(ctx context.Context, click *domain.LinkClick) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.links[click.LinkID]
	if !ok {
		return domain.ErrLinkNotFound
	}
	l.ClickCount++
	s.links[click.LinkID] = l
	s.clicks = append(s.clicks, *click)
	return nil
}

func (s *Store) GetLinkStats(ctx context.Context, linkID string) (*domain.LinkStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stats := &domain.LinkStats{
		Referrers:   make(map[string]int64),
		DailyClicks: []domain.DailyClick{},
	}
	daily := make(map[string]int64)
	for _, c := range s.clicks {
		if c.LinkID != linkID {
			continue
		}
		stats.TotalClicks++
		ref := c.Referrer
		if ref == "" {
			ref = "Direct"
		}
		stats.Referrers[ref]++
		daily[c.ClickedAt.Format("2006-01-02")]++
	}
	for date, count := range daily {
		stats.DailyClicks = append(stats.DailyClicks, domain.DailyClick{Date: date, Count: count})
	}
	sort.Slice(stats.DailyClicks, func(i, j int) bool {
		return stats.DailyClicks[i].Date > stats.DailyClicks[j].Date
	})
	return stats, nil
}

// Ensure interface compliance
var _ ports.Store = (*Store)(nil)
