// Package state holds UI state between renders.
//
// A Container wraps one value together with the copy of it that was last
// handed to a renderer. Handlers mutate the value freely through GetMut; the
// event pump later asks whether anything changed, renders the structural
// diff, and commits with Snapshot. Change detection is structural (the JSON
// encoding of the value is compared), so there is no per-field dirty flag to
// maintain.
//
// A Container is not safe for concurrent use. Use a Store to share committed
// snapshots with other goroutines.
package state

import (
	"bytes"
	"encoding/json"
	"fmt"

	"browsershell/internal/treediff"
)

// Container holds the current value of V and the snapshot last rendered.
// V must round-trip through encoding/json.
type Container[V any] struct {
	current  V
	snapshot V
	// snapshot encoded once at commit time
	encoded []byte
}

// New returns a container whose snapshot equals initial.
func New[V any](initial V) (*Container[V], error) {
	c := &Container[V]{current: initial}
	if err := c.commit(); err != nil {
		return nil, err
	}
	return c, nil
}

// Get returns the current value. Callers must not mutate through it.
func (c *Container[V]) Get() *V {
	return &c.current
}

// GetMut returns the current value for mutation.
func (c *Container[V]) GetMut() *V {
	return &c.current
}

// HasChanged reports whether the current value differs from the snapshot.
// A value that fails to encode is reported as changed.
func (c *Container[V]) HasChanged() bool {
	data, err := json.Marshal(&c.current)
	if err != nil {
		return true
	}
	return !bytes.Equal(data, c.encoded)
}

// Diff returns the operations that turn the snapshot into the current value.
// It is empty when nothing changed.
func (c *Container[V]) Diff() (treediff.Patch, error) {
	old, err := treediff.Parse(c.encoded)
	if err != nil {
		return nil, fmt.Errorf("parsing snapshot: %w", err)
	}
	cur, err := treediff.FromValue(&c.current)
	if err != nil {
		return nil, fmt.Errorf("encoding current state: %w", err)
	}
	return treediff.Diff(old, cur), nil
}

// Snapshot replaces the snapshot with a deep copy of the current value.
// Call it once per render, after the diff has been consumed.
func (c *Container[V]) Snapshot() error {
	return c.commit()
}

// Last returns a copy of the most recent snapshot.
func (c *Container[V]) Last() V {
	return c.snapshot
}

func (c *Container[V]) commit() error {
	data, err := json.Marshal(&c.current)
	if err != nil {
		return fmt.Errorf("encoding state: %w", err)
	}
	var copied V
	if err := json.Unmarshal(data, &copied); err != nil {
		return fmt.Errorf("copying state: %w", err)
	}
	c.snapshot = copied
	c.encoded = data
	return nil
}
