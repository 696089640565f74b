package domain

import (
	"regexp"
	"strings"
	"time"
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

type Profile struct {
	ID          string    `json:"id"`
	Username    string    `json:"username"`
	DisplayName string    `json:"display_name,omitempty"`
	Bio         string    `json:"bio,omitempty"`
	AvatarURL   string    `json:"avatar_url,omitempty"`
	Theme       string    `json:"theme"`
	IsPublic    bool      `json:"is_public"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Name is what the public page shows as the heading.
func (p Profile) Name() string {
	if p.DisplayName != "" {
		return p.DisplayName
	}
	return p.Username
}

// ProfileUpdate holds the settings a user may change. Nil fields are left as is.
type ProfileUpdate struct {
	Username    *string
	DisplayName *string
	Bio         *string
	Theme       *string
	IsPublic    *bool
}

// reservedUsernames are top-level paths served by the app itself; a profile
// with one of these names would never be reachable at /{username}.
var reservedUsernames = map[string]bool{
	"api":       true,
	"auth":      true,
	"dashboard": true,
	"healthz":   true,
	"metrics":   true,
}

// ValidUsername reports whether s is 3-30 characters of letters, digits, _ or -
// and not a reserved path.
func ValidUsername(s string) bool {
	if len(s) < 3 || len(s) > 30 || !usernamePattern.MatchString(s) {
		return false
	}
	return !reservedUsernames[strings.ToLower(s)]
}

// NormalizeUsername lower-cases and trims a username before storage.
func NormalizeUsername(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// PublicPage is everything the public profile view renders.
type PublicPage struct {
	Profile   Profile           `json:"profile"`
	Theme     Theme             `json:"theme"`
	Ungrouped []Link            `json:"links"`
	Groups    []CollectionGroup `json:"collections"`
}
