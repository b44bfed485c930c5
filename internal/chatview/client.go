package chatview

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/vybe-social/vybe/internal/domain"
	"github.com/vybe-social/vybe/internal/transport/ws"
)

const reconnectDelay = 2 * time.Second

// Client talks to the chat API: REST for everything that mutates or
// fetches, a websocket purely as a delivery channel for the three push
// events. Mutations never go over the socket.
type Client struct {
	baseURL string
	token   string
	httpc   *http.Client
	view    *View
}

func NewClient(baseURL, token string, selfID uuid.UUID) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpc:   &http.Client{Timeout: 15 * time.Second},
		view:    NewView(selfID),
	}
}

func (c *Client) View() *View {
	return c.view
}

// OpenConversation fetches the full history for the other user and makes
// it the displayed conversation. Called on every open, including after a
// reconnect; the refetch is what recovers events missed while offline.
func (c *Client) OpenConversation(ctx context.Context, otherID uuid.UUID) error {
	history, err := c.FetchHistory(ctx, otherID)
	if err != nil {
		return err
	}
	c.view.Open(otherID, history)
	return nil
}

func (c *Client) FetchHistory(ctx context.Context, otherID uuid.UUID) ([]domain.Message, error) {
	var history []domain.Message
	if err := c.doJSON(ctx, http.MethodGet, "/api/chat/"+otherID.String(), nil, &history); err != nil {
		return nil, err
	}
	return history, nil
}

// Send posts a message over REST and appends the acknowledged result to
// the view. The server pushes nothing back to the sender.
func (c *Client) Send(ctx context.Context, receiverID uuid.UUID, body string) (*domain.Message, error) {
	var msg domain.Message
	payload := map[string]string{"message": body}
	if err := c.doJSON(ctx, http.MethodPost, "/api/chat/send/"+receiverID.String(), payload, &msg); err != nil {
		return nil, err
	}
	c.view.AppendSent(msg)
	return &msg, nil
}

func (c *Client) Edit(ctx context.Context, messageID uuid.UUID, body string) (*domain.Message, error) {
	var msg domain.Message
	payload := map[string]string{"message": body}
	if err := c.doJSON(ctx, http.MethodPut, "/api/chat/message/"+messageID.String(), payload, &msg); err != nil {
		return nil, err
	}
	c.view.ApplyUpdated(msg)
	return &msg, nil
}

func (c *Client) Delete(ctx context.Context, messageID uuid.UUID) error {
	if err := c.doJSON(ctx, http.MethodDelete, "/api/chat/message/"+messageID.String(), nil, nil); err != nil {
		return err
	}
	c.view.ApplyDeleted(messageID)
	return nil
}

func (c *Client) ListConversations(ctx context.Context) ([]domain.Conversation, error) {
	var conversations []domain.Conversation
	if err := c.doJSON(ctx, http.MethodGet, "/api/chat/conversations", nil, &conversations); err != nil {
		return nil, err
	}
	return conversations, nil
}

// Listen dials the websocket and feeds push events into the view until
// ctx is cancelled. A dropped connection is re-dialed after a short
// delay; events emitted while disconnected are gone, and the next
// OpenConversation refetch papers over the gap.
func (c *Client) Listen(ctx context.Context) {
	for {
		if err := c.listenOnce(ctx); err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Printf("chatview: connection lost: %v", err)
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(reconnectDelay):
		}
	}
}

func (c *Client) listenOnce(ctx context.Context) error {
	conn, _, err := websocket.Dial(ctx, c.wsURL(), nil)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer conn.Close(websocket.StatusNormalClosure, "")

	for {
		var event ws.Event
		if err := wsjson.Read(ctx, conn, &event); err != nil {
			return err
		}
		c.dispatch(event)
	}
}

func (c *Client) dispatch(event ws.Event) {
	switch event.Type {
	case ws.EventNewMessage:
		var msg domain.Message
		if err := json.Unmarshal(event.Payload, &msg); err != nil {
			log.Printf("chatview: bad %s payload: %v", event.Type, err)
			return
		}
		c.view.ApplyNew(msg)
	case ws.EventMessageUpdated:
		var msg domain.Message
		if err := json.Unmarshal(event.Payload, &msg); err != nil {
			log.Printf("chatview: bad %s payload: %v", event.Type, err)
			return
		}
		c.view.ApplyUpdated(msg)
	case ws.EventMessageDeleted:
		var payload ws.MessageDeletedPayload
		if err := json.Unmarshal(event.Payload, &payload); err != nil {
			log.Printf("chatview: bad %s payload: %v", event.Type, err)
			return
		}
		c.view.ApplyDeleted(payload.ID)
	default:
		log.Printf("chatview: unknown event type %q", event.Type)
	}
}

func (c *Client) wsURL() string {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return c.baseURL + "/ws?token=" + url.QueryEscape(c.token)
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}
	u.Path = "/ws"
	u.RawQuery = "token=" + url.QueryEscape(c.token)
	return u.String()
}

func (c *Client) doJSON(ctx context.Context, method, path string, payload, out any) error {
	var body *bytes.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var apiErr struct {
			Error struct {
				Code    string `json:"code"`
				Message string `json:"message"`
			} `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Error.Code != "" {
			return fmt.Errorf("%s %s: %s (%s)", method, path, apiErr.Error.Message, apiErr.Error.Code)
		}
		return fmt.Errorf("%s %s: unexpected status %d", method, path, resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
