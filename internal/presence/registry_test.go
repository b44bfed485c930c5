package presence

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestLookupNeverRegistered(t *testing.T) {
	r := NewRegistry()

	_, ok := r.Lookup(uuid.New())
	assert.False(t, ok)
}

func TestRegisterAndLookup(t *testing.T) {
	r := NewRegistry()
	user := uuid.New()
	conn := uuid.New()

	r.Register(user, conn)

	got, ok := r.Lookup(user)
	assert.True(t, ok)
	assert.Equal(t, conn, got)
}

func TestLastConnectionWins(t *testing.T) {
	r := NewRegistry()
	user := uuid.New()
	c1 := uuid.New()
	c2 := uuid.New()

	r.Register(user, c1)
	r.Register(user, c2)

	got, ok := r.Lookup(user)
	assert.True(t, ok)
	assert.Equal(t, c2, got)
}

func TestStaleDisconnectDoesNotEvictNewerMapping(t *testing.T) {
	r := NewRegistry()
	user := uuid.New()
	c1 := uuid.New()
	c2 := uuid.New()

	r.Register(user, c1)
	r.Register(user, c2)
	r.Unregister(c1)

	got, ok := r.Lookup(user)
	assert.True(t, ok)
	assert.Equal(t, c2, got)
}

func TestUnregister(t *testing.T) {
	r := NewRegistry()
	user := uuid.New()
	conn := uuid.New()

	r.Register(user, conn)
	r.Unregister(conn)

	_, ok := r.Lookup(user)
	assert.False(t, ok)
}

func TestUnregisterUnknownConnIsNoop(t *testing.T) {
	r := NewRegistry()
	user := uuid.New()
	conn := uuid.New()

	r.Register(user, conn)
	r.Unregister(uuid.New())

	got, ok := r.Lookup(user)
	assert.True(t, ok)
	assert.Equal(t, conn, got)
}

func TestConcurrentChurn(t *testing.T) {
	r := NewRegistry()

	const users = 64
	const reconnects = 50

	var wg sync.WaitGroup
	userIDs := make([]uuid.UUID, users)
	finalConns := make([]uuid.UUID, users)

	for i := 0; i < users; i++ {
		userIDs[i] = uuid.New()
	}

	for i := 0; i < users; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			var prev uuid.UUID
			for j := 0; j < reconnects; j++ {
				conn := uuid.New()
				r.Register(userIDs[i], conn)
				if j > 0 {
					// stale disconnect for the superseded connection
					r.Unregister(prev)
				}
				prev = conn
			}
			finalConns[i] = prev
		}(i)
	}
	wg.Wait()

	for i := 0; i < users; i++ {
		got, ok := r.Lookup(userIDs[i])
		assert.True(t, ok)
		assert.Equal(t, finalConns[i], got)
	}
}
