package domain

import (
	"time"

	"github.com/google/uuid"
)

// Conversation pairs two users. User1ID < User2ID always holds (canonical
// sorted pair), which lets the storage layer enforce uniqueness per pair.
type Conversation struct {
	ID        uuid.UUID `json:"id"`
	User1ID   uuid.UUID `json:"user1_id"`
	User2ID   uuid.UUID `json:"user2_id"`
	CreatedAt time.Time `json:"created_at"`
	// Joined fields
	Participants []UserSummary `json:"participants,omitempty"`
}

// Message is a direct message. Body and media are each optional but never
// both absent. Media is immutable once sent; only the body can change.
type Message struct {
	ID             uuid.UUID `json:"id"`
	ConversationID uuid.UUID `json:"conversation_id"`
	SenderID       uuid.UUID `json:"sender_id"`
	ReceiverID     uuid.UUID `json:"receiver_id"`
	Body           *string   `json:"body,omitempty"`
	MediaURL       *string   `json:"media_url,omitempty"`
	MediaType      *string   `json:"media_type,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// SortUserPair returns the two ids in canonical order.
func SortUserPair(a, b uuid.UUID) (uuid.UUID, uuid.UUID) {
	if a.String() > b.String() {
		return b, a
	}
	return a, b
}
