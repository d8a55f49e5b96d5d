// Package subscription provides use cases for reader subscriptions.
// Readers follow individual journalists or curated newsletters; both edges
// are idempotent, so repeated subscribe calls converge on a single row.
package subscription

import "errors"

// Sentinel errors for subscription use case operations.
var (
	// ErrJournalistNotFound indicates the subscribe target is not an
	// existing user with the journalist role.
	ErrJournalistNotFound = errors.New("journalist not found")

	// ErrNewsletterNotFound indicates the subscribe target newsletter
	// does not exist.
	ErrNewsletterNotFound = errors.New("newsletter not found")

	// ErrInvalidTargetID indicates the provided target ID is invalid.
	ErrInvalidTargetID = errors.New("invalid subscription target ID")
)
