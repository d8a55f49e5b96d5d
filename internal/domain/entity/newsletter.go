package entity

import "time"

// Newsletter represents a curated collection of articles owned by a
// journalist. Articles are attached through a many-to-many relation; only
// approved articles may be attached (enforced at the usecase edge).
type Newsletter struct {
	ID          int64
	Title       string
	Description string
	AuthorID    int64
	CreatedAt   time.Time
}
