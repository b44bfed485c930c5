// Package chatview is the client-side companion to the chat service: a
// websocket-fed message view that mirrors what the server holds for the
// currently open conversation. Events arriving for other conversations
// are dropped; opening a conversation refetches the full history, which
// is also how the view recovers after a reconnect.
package chatview

import (
	"sync"

	"github.com/google/uuid"

	"github.com/vybe-social/vybe/internal/domain"
)

// View holds the ordered message list of one open conversation.
// All methods are safe for concurrent use; the websocket read loop and
// the REST caller feed it from different goroutines.
type View struct {
	mu       sync.Mutex
	selfID   uuid.UUID
	otherID  uuid.UUID
	messages []domain.Message
}

func NewView(selfID uuid.UUID) *View {
	return &View{selfID: selfID}
}

// Open switches the view to a conversation with otherID and installs the
// freshly fetched history, replacing whatever was displayed before.
func (v *View) Open(otherID uuid.UUID, history []domain.Message) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.otherID = otherID
	v.messages = append([]domain.Message(nil), history...)
}

// Replace swaps in a full history for the current conversation.
func (v *View) Replace(history []domain.Message) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.messages = append([]domain.Message(nil), history...)
}

// ApplyNew appends an incoming message if it belongs to the open
// conversation. Messages already present (by id) are ignored, so a
// REST-acknowledged send followed by its own push stays a single entry.
func (v *View) ApplyNew(msg domain.Message) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if msg.SenderID != v.otherID && msg.SenderID != v.selfID {
		return
	}
	if v.indexOf(msg.ID) >= 0 {
		return
	}
	v.messages = append(v.messages, msg)
}

// ApplyUpdated replaces the stored message body in place. Updates for
// messages the view does not hold are ignored.
func (v *View) ApplyUpdated(msg domain.Message) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if i := v.indexOf(msg.ID); i >= 0 {
		v.messages[i].Body = msg.Body
	}
}

// ApplyDeleted removes the message with the given id. Deleting an absent
// message is a no-op, so replayed or duplicated events are harmless.
func (v *View) ApplyDeleted(id uuid.UUID) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if i := v.indexOf(id); i >= 0 {
		v.messages = append(v.messages[:i], v.messages[i+1:]...)
	}
}

// AppendSent records a message the server acknowledged over REST. The
// sender gets no websocket echo, so this is the only way its own sends
// enter the view.
func (v *View) AppendSent(msg domain.Message) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.indexOf(msg.ID) >= 0 {
		return
	}
	v.messages = append(v.messages, msg)
}

// Messages returns a copy of the current ordered list.
func (v *View) Messages() []domain.Message {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]domain.Message(nil), v.messages...)
}

// Other returns the open conversation's other participant.
func (v *View) Other() uuid.UUID {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.otherID
}

func (v *View) indexOf(id uuid.UUID) int {
	for i := range v.messages {
		if v.messages[i].ID == id {
			return i
		}
	}
	return -1
}
