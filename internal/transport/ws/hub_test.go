package ws

import (
	"io"
	"log"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vybe-social/vybe/internal/presence"
)

func quietLogs(t *testing.T) {
	t.Helper()
	old := log.Writer()
	log.SetOutput(io.Discard)
	t.Cleanup(func() { log.SetOutput(old) })
}

func TestSendToUserDeliversToLiveConnection(t *testing.T) {
	quietLogs(t)
	hub := NewHub(presence.NewRegistry())
	userID := uuid.New()

	client := NewClient(hub, nil, userID)
	hub.Register(client)

	hub.SendToUser(userID, []byte("ping"))

	select {
	case data := <-client.send:
		assert.Equal(t, []byte("ping"), data)
	default:
		t.Fatal("expected event in send buffer")
	}
}

func TestSendToUserOfflineIsNoop(t *testing.T) {
	quietLogs(t)
	hub := NewHub(presence.NewRegistry())

	hub.SendToUser(uuid.New(), []byte("ping"))
}

func TestSendToUserAfterUnregisterIsNoop(t *testing.T) {
	quietLogs(t)
	hub := NewHub(presence.NewRegistry())
	userID := uuid.New()

	client := NewClient(hub, nil, userID)
	hub.Register(client)
	hub.Unregister(client)

	hub.SendToUser(userID, []byte("late"))
}

func TestSendToUserFullBufferDropsEvent(t *testing.T) {
	quietLogs(t)
	hub := NewHub(presence.NewRegistry())
	userID := uuid.New()

	client := NewClient(hub, nil, userID)
	hub.Register(client)

	for i := 0; i < sendBufSize; i++ {
		hub.SendToUser(userID, []byte("fill"))
	}
	hub.SendToUser(userID, []byte("overflow"))

	require.Len(t, client.send, sendBufSize)
}

// Senders race disconnects: a send must never land on a channel the
// disconnect path already closed.
func TestSendToUserDuringDisconnectDoesNotPanic(t *testing.T) {
	quietLogs(t)
	hub := NewHub(presence.NewRegistry())
	userID := uuid.New()
	data := []byte("racy")

	const senders = 4
	const churns = 500

	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(senders)
	for i := 0; i < senders; i++ {
		go func() {
			defer wg.Done()
			for {
				select {
				case <-done:
					return
				default:
					hub.SendToUser(userID, data)
				}
			}
		}()
	}

	for i := 0; i < churns; i++ {
		client := NewClient(hub, nil, userID)
		hub.Register(client)
		hub.Unregister(client)
	}
	close(done)
	wg.Wait()
}
