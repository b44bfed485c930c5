package ws

import (
	"encoding/json"
	"log"

	"github.com/google/uuid"
	"github.com/vybe-social/vybe/internal/domain"
)

// HubNotifier implements service.Notifier using the WebSocket Hub.
type HubNotifier struct {
	hub *Hub
}

func NewHubNotifier(hub *Hub) *HubNotifier {
	return &HubNotifier{hub: hub}
}

func (n *HubNotifier) NotifyNewMessage(to uuid.UUID, msg *domain.Message) {
	n.push(to, EventNewMessage, msg)
}

func (n *HubNotifier) NotifyMessageUpdated(to uuid.UUID, msg *domain.Message) {
	n.push(to, EventMessageUpdated, msg)
}

func (n *HubNotifier) NotifyMessageDeleted(to uuid.UUID, messageID uuid.UUID) {
	n.push(to, EventMessageDeleted, MessageDeletedPayload{ID: messageID})
}

func (n *HubNotifier) push(to uuid.UUID, eventType string, payload any) {
	evt, err := NewEvent(eventType, payload)
	if err != nil {
		log.Printf("ws notifier: marshal error: %v", err)
		return
	}
	data, err := json.Marshal(evt)
	if err != nil {
		log.Printf("ws notifier: marshal error: %v", err)
		return
	}
	n.hub.SendToUser(to, data)
}
