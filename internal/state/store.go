package state

import (
	"sync"
	"time"

	"github.com/five82/fledgling/internal/birds"
)

// DefaultFailureMessage is shown when a failed load carries no message.
const DefaultFailureMessage = "Failed to fetch birds."

// Snapshot is the fetch state handed to the view. Err and Payload are never
// both set.
type Snapshot struct {
	Loading     bool
	Err         string
	Payload     *birds.Payload
	LastUpdated time.Time
	Seq         uint64 // latest issued request token
}

// HasError reports whether the last applied load failed.
func (s Snapshot) HasError() bool {
	return s.Err != ""
}

// Store coordinates concurrent loads against the shared fetch state. Each
// load takes a sequence token from Begin; only the newest token may settle
// the state, so a slow stale response cannot overwrite a newer request.
type Store struct {
	mu       sync.RWMutex
	seq      uint64
	snapshot Snapshot
}

// Begin marks a new load as in flight, clears any previous error and returns
// the token the load must settle with.
func (s *Store) Begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	s.snapshot.Seq = s.seq
	s.snapshot.Loading = true
	s.snapshot.Err = ""
	return s.seq
}

// Succeed stores payload when seq is still current. It reports whether the
// result was applied.
func (s *Store) Succeed(seq uint64, payload *birds.Payload) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if seq != s.seq {
		return false
	}
	s.snapshot.Loading = false
	s.snapshot.Err = ""
	s.snapshot.Payload = payload
	s.snapshot.LastUpdated = time.Now()
	return true
}

// Fail records err when seq is still current, dropping any payload. It
// reports whether the failure was applied.
func (s *Store) Fail(seq uint64, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if seq != s.seq {
		return false
	}
	s.snapshot.Loading = false
	s.snapshot.Err = FailureMessage(err)
	s.snapshot.Payload = nil
	s.snapshot.LastUpdated = time.Now()
	return true
}

// Snapshot returns a copy of the current state. The payload is shared and
// must be treated as read-only.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.snapshot
}

// FailureMessage is the banner text for err. Missing and empty messages both
// fall back to DefaultFailureMessage.
func FailureMessage(err error) string {
	if err == nil {
		return DefaultFailureMessage
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return DefaultFailureMessage
}
