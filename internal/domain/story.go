package domain

import (
	"time"

	"github.com/google/uuid"
)

// Story expires 24 hours after creation; queries filter on age, physical
// cleanup is left to the storage layer.
type Story struct {
	ID        uuid.UUID `json:"id"`
	AuthorID  uuid.UUID `json:"author_id"`
	Caption   string    `json:"caption"`
	MediaURL  string    `json:"media_url"`
	MediaType string    `json:"media_type"`
	CreatedAt time.Time `json:"created_at"`
	// Joined fields
	Author  *UserSummary  `json:"author,omitempty"`
	Viewers []UserSummary `json:"viewers,omitempty"`
}

const StoryTTL = 24 * time.Hour
