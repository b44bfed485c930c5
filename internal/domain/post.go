package domain

import (
	"time"

	"github.com/google/uuid"
)

type Post struct {
	ID        uuid.UUID `json:"id"`
	AuthorID  uuid.UUID `json:"author_id"`
	Caption   string    `json:"caption"`
	MediaURL  string    `json:"media_url"`
	MediaType string    `json:"media_type"`
	CreatedAt time.Time `json:"created_at"`
	// Joined fields
	Author *UserSummary `json:"author,omitempty"`
	Likes  []uuid.UUID  `json:"likes"`
}
