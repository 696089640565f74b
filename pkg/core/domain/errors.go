package domain

import (
	"errors"
	"fmt"
)

var (
	ErrLinkNotFound       = errors.New("link not found")
	ErrCollectionNotFound = errors.New("collection not found")
	ErrProfileNotFound    = errors.New("profile not found")

	ErrInvalidURL      = errors.New("please enter a valid URL")
	ErrTitleRequired   = errors.New("collection title is required")
	ErrInvalidUsername = errors.New("username must be 3-30 characters: letters, numbers, _ or -")
	ErrUsernameTaken   = errors.New("username is already taken")
	ErrInvalidTheme    = errors.New("unknown theme")
	ErrLinkIDRequired  = errors.New("link ID is required")
)

// IsValidation reports whether err was caused by bad user input.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidURL) ||
		errors.Is(err, ErrTitleRequired) ||
		errors.Is(err, ErrInvalidUsername) ||
		errors.Is(err, ErrUsernameTaken) ||
		errors.Is(err, ErrInvalidTheme) ||
		errors.Is(err, ErrLinkIDRequired)
}

// IsNotFound reports whether err refers to a missing (or foreign) row.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrLinkNotFound) ||
		errors.Is(err, ErrCollectionNotFound) ||
		errors.Is(err, ErrProfileNotFound)
}

// PartialSyncError is returned when some row writes of a batch failed.
// The batch was not rolled back; Report says which rows made it.
type PartialSyncError struct {
	Report SyncReport
}

func (e *PartialSyncError) Error() string {
	return fmt.Sprintf("%d of %d writes failed", len(e.Report.Failed()), len(e.Report.Rows))
}
