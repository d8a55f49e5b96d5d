package entity

import "time"

// Publisher represents a news publisher. Publisher names are unique.
// Editor and journalist membership are many-to-many sets persisted as join
// rows; an editor's membership grants approve/delete authority over the
// publisher's articles.
type Publisher struct {
	ID          int64
	Name        string
	Description string
	CreatedAt   time.Time
}
