package entity

import "time"

// JournalistSubscription records a reader following a journalist.
// The (reader, journalist) pair is unique; creation is get-or-create.
type JournalistSubscription struct {
	ID           int64
	ReaderID     int64
	JournalistID int64
	CreatedAt    time.Time
}

// NewsletterSubscription records a reader following a newsletter.
// The (reader, newsletter) pair is unique; creation is get-or-create.
type NewsletterSubscription struct {
	ID           int64
	ReaderID     int64
	NewsletterID int64
	CreatedAt    time.Time
}
