// Package newsletter provides use cases for curated newsletters.
// Journalists assemble approved articles into newsletters that readers can
// subscribe to as a unit.
package newsletter

import "errors"

// Sentinel errors for newsletter use case operations.
var (
	// ErrNewsletterNotFound indicates the requested newsletter does not exist.
	ErrNewsletterNotFound = errors.New("newsletter not found")

	// ErrInvalidNewsletterID indicates the provided newsletter ID is invalid.
	ErrInvalidNewsletterID = errors.New("invalid newsletter ID")

	// ErrArticleNotEligible indicates the article cannot be attached: it does
	// not exist, is not approved, or is not visible to the caller.
	ErrArticleNotEligible = errors.New("article not eligible for newsletter")
)
