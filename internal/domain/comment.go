package domain

import (
	"time"

	"github.com/google/uuid"
)

// Comment belongs to exactly one post or one loop.
type Comment struct {
	ID        uuid.UUID  `json:"id"`
	AuthorID  uuid.UUID  `json:"author_id"`
	PostID    *uuid.UUID `json:"post_id,omitempty"`
	LoopID    *uuid.UUID `json:"loop_id,omitempty"`
	Body      string     `json:"body"`
	CreatedAt time.Time  `json:"created_at"`
	// Joined fields
	Author *UserSummary `json:"author,omitempty"`
}
