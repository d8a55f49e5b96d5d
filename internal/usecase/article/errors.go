// Package article provides use cases for managing article entities.
// It implements business logic for drafting, editing, approving, and querying
// articles, including validation, authorization, and interaction with the
// article repository.
package article

import "errors"

// Sentinel errors for article use case operations.
var (
	// ErrArticleNotFound indicates that the requested article was not found.
	// It is also returned when an article exists but is not visible to the
	// caller, so hidden drafts are indistinguishable from absent rows.
	ErrArticleNotFound = errors.New("article not found")

	// ErrInvalidArticleID indicates that the provided article ID is invalid.
	// Article IDs must be positive integers.
	ErrInvalidArticleID = errors.New("invalid article ID")
)
