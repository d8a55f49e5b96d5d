package entity

import "time"

// Article represents a news article in the system.
// An article starts as a draft (Approved=false) and becomes approved through
// a one-way, one-shot editor transition. Unapproved articles are invisible to
// readers; visibility filters are applied before existence is revealed.
type Article struct {
	ID          int64
	Title       string
	Content     string
	AuthorID    int64
	PublisherID *int64 // nil for independent (publisher-less) articles
	Approved    bool
	CreatedAt   time.Time
}

// Draft reports whether the article is still pending editorial approval.
func (a *Article) Draft() bool {
	return !a.Approved
}

// ApprovalEdge reports whether moving from prev to next crosses the
// false→true approval boundary. The notification fan-out fires only on this
// edge: not on creation, not on a save of an already-approved article.
func ApprovalEdge(prev, next bool) bool {
	return !prev && next
}
