// Package publisher provides use cases for publishing houses and their
// staff rosters. A publisher groups editors and journalists; editor
// membership is what grants approval authority over the publisher's articles.
package publisher

import "errors"

// Sentinel errors for publisher use case operations.
var (
	// ErrPublisherNotFound indicates the requested publisher does not exist.
	ErrPublisherNotFound = errors.New("publisher not found")

	// ErrInvalidPublisherID indicates the provided publisher ID is invalid.
	ErrInvalidPublisherID = errors.New("invalid publisher ID")

	// ErrDuplicateName indicates a publisher with the same name already exists.
	ErrDuplicateName = errors.New("publisher name already exists")

	// ErrMemberNotEligible indicates the user cannot join the roster in the
	// requested capacity, e.g. adding a reader as an editor.
	ErrMemberNotEligible = errors.New("user not eligible for this roster")
)
