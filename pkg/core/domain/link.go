package domain

import (
	"net/url"
	"strings"
	"time"
)

const DefaultLinkTitle = "Untitled"

// Link is one entry on a profile page. CollectionID is nil for ungrouped links.
type Link struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	CollectionID *string   `json:"collection_id"`
	Title        string    `json:"title"`
	URL          string    `json:"url"`
	Description  string    `json:"description,omitempty"`
	Icon         string    `json:"icon,omitempty"`
	Position     int       `json:"position"`
	IsActive     bool      `json:"is_active"`
	ClickCount   int64     `json:"click_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Bucket returns the bucket the link currently belongs to.
func (l Link) Bucket() BucketID {
	if l.CollectionID == nil {
		return Ungrouped
	}
	return BucketID(*l.CollectionID)
}

// LinkInput carries the editable fields of a link.
type LinkInput struct {
	Title        string
	URL          string
	Description  string
	Icon         string
	CollectionID *string
}

// NormalizeURL prefixes https:// when no scheme is given and checks that the
// result is an absolute URL with a host.
func NormalizeURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrInvalidURL
	}
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "", ErrInvalidURL
	}
	return raw, nil
}

// NormalizeTitle falls back to DefaultLinkTitle for blank titles.
func NormalizeTitle(title string) string {
	if strings.TrimSpace(title) == "" {
		return DefaultLinkTitle
	}
	return title
}
