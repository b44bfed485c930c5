// Package presence tracks which users currently hold a live connection.
// The registry stores identifiers only; it never owns the connections
// themselves and never touches persisted storage.
package presence

import (
	"sync"

	"github.com/google/uuid"
)

const shardCount = 32

type shard struct {
	mu sync.RWMutex
	m  map[uuid.UUID]uuid.UUID
}

// Registry maps userID -> connID with at most one live connection per
// user (last connection wins). Both directions are sharded so unrelated
// users never contend on a common lock.
type Registry struct {
	byUser [shardCount]shard // userID -> connID
	byConn [shardCount]shard // connID -> userID
}

func NewRegistry() *Registry {
	r := &Registry{}
	for i := range r.byUser {
		r.byUser[i].m = make(map[uuid.UUID]uuid.UUID)
		r.byConn[i].m = make(map[uuid.UUID]uuid.UUID)
	}
	return r
}

func shardIdx(id uuid.UUID) int {
	return int(id[0]) % shardCount
}

// Register records connID as the live connection for userID,
// unconditionally replacing any prior mapping.
func (r *Registry) Register(userID, connID uuid.UUID) {
	us := &r.byUser[shardIdx(userID)]
	us.mu.Lock()
	prior, had := us.m[userID]
	us.m[userID] = connID
	us.mu.Unlock()

	if had && prior != connID {
		cs := &r.byConn[shardIdx(prior)]
		cs.mu.Lock()
		if cs.m[prior] == userID {
			delete(cs.m, prior)
		}
		cs.mu.Unlock()
	}

	cs := &r.byConn[shardIdx(connID)]
	cs.mu.Lock()
	cs.m[connID] = userID
	cs.mu.Unlock()
}

// Lookup reports the live connection for userID. Absence means the user
// is offline; it is not an error.
func (r *Registry) Lookup(userID uuid.UUID) (uuid.UUID, bool) {
	us := &r.byUser[shardIdx(userID)]
	us.mu.RLock()
	connID, ok := us.m[userID]
	us.mu.RUnlock()
	return connID, ok
}

// Unregister removes the mapping owned by connID. Disconnects are
// reported by connection identity, so this is a reverse lookup. A stale
// disconnect for a connection that was already superseded by a newer
// Register must not evict the newer mapping.
func (r *Registry) Unregister(connID uuid.UUID) {
	cs := &r.byConn[shardIdx(connID)]
	cs.mu.Lock()
	userID, ok := cs.m[connID]
	if ok {
		delete(cs.m, connID)
	}
	cs.mu.Unlock()
	if !ok {
		return
	}

	us := &r.byUser[shardIdx(userID)]
	us.mu.Lock()
	if us.m[userID] == connID {
		delete(us.m, userID)
	}
	us.mu.Unlock()
}
