package domain

import "time"

// Collection groups links on a profile page (link-in-bio)
type Collection struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Position    int       `json:"position"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CollectionGroup is a collection together with its links in display order.
type CollectionGroup struct {
	Collection Collection `json:"collection"`
	Links      []Link     `json:"links"`
}
