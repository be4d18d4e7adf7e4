package services

import "errors"

var (
	ErrNotSignedIn = errors.New("not signed in")

	// Save validation, reported before any network call.
	ErrTitleRequired    = errors.New("title is required")
	ErrNoMedia          = errors.New("select at least one photo or video")
	ErrInvalidCover     = errors.New("cover index out of range")
	ErrUnsupportedMedia = errors.New("unsupported media kind")

	// ErrSaveFailed wraps every failure after validation.
	ErrSaveFailed = errors.New("failed to save memory")
)
