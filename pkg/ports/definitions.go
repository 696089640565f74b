package ports

import (
	"context"

	"github.com/wadjakorntonsri/biolink/pkg/core/domain"
)

// Getters return (nil, nil) when the row does not exist. Mutations are scoped
// by owner and return a domain not-found error when no owned row matched.

// ProfileRepository defines storage operations for profiles
type ProfileRepository interface {
	CreateProfile(ctx context.Context, profile *domain.Profile) error
	GetProfile(ctx context.Context, id string) (*domain.Profile, error)
	GetProfileByUsername(ctx context.Context, username string) (*domain.Profile, error)
	UpdateProfile(ctx context.Context, profile *domain.Profile) error
}

// LinkRepository defines storage operations for links
type LinkRepository interface {
	CreateLink(ctx context.Context, link *domain.Link) error
	GetLink(ctx context.Context, userID, id string) (*domain.Link, error)
	UpdateLink(ctx context.Context, link *domain.Link) error
	DeleteLink(ctx context.Context, userID, id string) error
	ListLinks(ctx context.Context, userID string, filters map[string]interface{}) ([]domain.Link, error)
	NextLinkPosition(ctx context.Context, userID string, bucket domain.BucketID) (int, error)

	// Ordering writes, one row per call
	UpdateLinkPosition(ctx context.Context, userID, id string, position int) error
	SetLinkCollection(ctx context.Context, userID, id string, collectionID *string) error
	UngroupLinks(ctx context.Context, userID, collectionID string) (int64, error)
}

// CollectionRepository defines storage operations for collections
type CollectionRepository interface {
	CreateCollection(ctx context.Context, collection *domain.Collection) error
	GetCollection(ctx context.Context, userID, id string) (*domain.Collection, error)
	UpdateCollection(ctx context.Context, collection *domain.Collection) error
	DeleteCollection(ctx context.Context, userID, id string) error
	ListCollections(ctx context.Context, userID string, filters map[string]interface{}) ([]domain.Collection, error)
	NextCollectionPosition(ctx context.Context, userID string) (int, error)
	UpdateCollectionPosition(ctx context.Context, userID, id string, position int) error
}

// ClickRepository records clicks and reads them back
type ClickRepository interface {
	// IncrementLinkClicks bumps links.click_count and appends the click in one
	// atomic operation. Unknown links yield domain.ErrLinkNotFound.
	IncrementLinkClicks(ctx context.Context, click *domain.LinkClick) error
	GetLinkStats(ctx context.Context, linkID string) (*domain.LinkStats, error)
}

// Store is the single injected store capability.
type Store interface {
	ProfileRepository
	LinkRepository
	CollectionRepository
	ClickRepository
}

// LinkService defines the business logic operations on links
type LinkService interface {
	CreateLink(ctx context.Context, userID string, in domain.LinkInput) (*domain.Link, error)
	UpdateLink(ctx context.Context, userID, id string, in domain.LinkInput) (*domain.Link, error)
	SetLinkActive(ctx context.Context, userID, id string, active bool) (*domain.Link, error)
	DeleteLink(ctx context.Context, userID, id string) error
	ListLinks(ctx context.Context, userID string) ([]domain.Link, error)
	GetLinkStats(ctx context.Context, userID, id string) (*domain.LinkStats, error)
}

// CollectionService defines business logic for collections
type CollectionService interface {
	CreateCollection(ctx context.Context, userID, title, description string) (*domain.Collection, error)
	UpdateCollection(ctx context.Context, userID, id, title, description string, active *bool) (*domain.Collection, error)
	ListCollections(ctx context.Context, userID string) ([]domain.Collection, error)
}

// OrderingService maintains bucket membership and positions.
// Operations that write several rows return a *domain.PartialSyncError
// together with the reconciled board when some writes failed.
type OrderingService interface {
	Board(ctx context.Context, userID string) (*domain.Board, error)
	ReorderWithinBucket(ctx context.Context, userID string, bucket domain.BucketID, draggedID, targetID string) (*domain.BoardUpdate, error)
	MoveToBucket(ctx context.Context, userID, linkID string, dest domain.BucketID) (*domain.BoardUpdate, error)
	ReorderBuckets(ctx context.Context, userID, draggedID, targetID string) (*domain.BoardUpdate, error)
	UngroupBucket(ctx context.Context, userID, collectionID string) (*domain.BoardUpdate, error)
	DeleteBucket(ctx context.Context, userID, collectionID string) (*domain.BoardUpdate, error)
	Drop(ctx context.Context, userID, draggedID, overID string) (*domain.BoardUpdate, error)
	Renumber(ctx context.Context, userID string) (*domain.BoardUpdate, error)
}

// ClickService records clicks against links
type ClickService interface {
	RecordClick(ctx context.Context, linkID string, meta domain.ClickMeta) error
}

// ProfileService covers profile bootstrap, settings and the public page
type ProfileService interface {
	EnsureProfile(ctx context.Context, userID, email string) (*domain.Profile, error)
	GetProfile(ctx context.Context, userID string) (*domain.Profile, error)
	UpdateProfile(ctx context.Context, userID string, update domain.ProfileUpdate) (*domain.Profile, error)
	GetPublicPage(ctx context.Context, username string) (*domain.PublicPage, error)
}
