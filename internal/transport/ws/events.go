package ws

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Server → client event vocabulary. These three are the channel's entire
// vocabulary; clients never receive anything else.
const (
	EventNewMessage     = "newMessage"
	EventMessageUpdated = "messageUpdated"
	EventMessageDeleted = "messageDeleted"
)

// Event is the envelope for every WebSocket message.
type Event struct {
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	Timestamp int64           `json:"ts,omitempty"`
}

// MessageDeletedPayload carries only the identifier; the receiving side
// already holds the rest of the message if it cares.
type MessageDeletedPayload struct {
	ID uuid.UUID `json:"id"`
}

// NewEvent creates a server→client event with the current timestamp.
func NewEvent(eventType string, payload any) (*Event, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &Event{
		Type:      eventType,
		Payload:   data,
		Timestamp: time.Now().Unix(),
	}, nil
}
