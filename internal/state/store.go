package state

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

// Store shares the most recently committed value of a Container with other
// goroutines. The pump publishes after every commit; readers get their own
// copy and never observe a half-updated value.
type Store[V any] struct {
	mu        sync.RWMutex
	encoded   []byte
	version   uint64
	updatedAt time.Time
}

// Publish records v as the latest committed value.
func (s *Store[V]) Publish(v *V) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding published state: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.encoded = data
	s.version++
	s.updatedAt = time.Now()
	return nil
}

// Snapshot returns a copy of the latest value. ok is false until the first
// Publish.
func (s *Store[V]) Snapshot() (v V, ok bool) {
	s.mu.RLock()
	data := s.encoded
	s.mu.RUnlock()

	if data == nil {
		return v, false
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return v, false
	}
	return v, true
}

// Raw returns the encoded form of the latest value, or nil.
func (s *Store[V]) Raw() []byte {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.encoded == nil {
		return nil
	}
	dup := make([]byte, len(s.encoded))
	copy(dup, s.encoded)
	return dup
}

// Version counts publishes. It is zero before the first one.
func (s *Store[V]) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// UpdatedAt is the time of the last publish.
func (s *Store[V]) UpdatedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.updatedAt
}
