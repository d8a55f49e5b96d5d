// Package article provides HTTP handlers for article endpoints: the public
// feed, role-scoped listings, drafting, editing, approval and deletion.
package article

import (
	"time"

	"newsdesk/internal/domain/entity"
)

// DTO represents the JSON structure for article data transfer.
type DTO struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	AuthorID    int64     `json:"author_id"`
	PublisherID *int64    `json:"publisher_id,omitempty"`
	Approved    bool      `json:"approved"`
	CreatedAt   time.Time `json:"created_at"`
}

func toDTO(a *entity.Article) DTO {
	return DTO{
		ID:          a.ID,
		Title:       a.Title,
		Content:     a.Content,
		AuthorID:    a.AuthorID,
		PublisherID: a.PublisherID,
		Approved:    a.Approved,
		CreatedAt:   a.CreatedAt,
	}
}

func toDTOs(articles []*entity.Article) []DTO {
	out := make([]DTO, 0, len(articles))
	for _, a := range articles {
		out = append(out, toDTO(a))
	}
	return out
}
