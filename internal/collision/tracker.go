// Package collision tracks hash-bucketed string keys and flags the rare
// case where two distinct keys land in the same bucket.
package collision

import (
	"github.com/lattice-io/chcore/errs"
)

// Tracker tracks registered names and detects hash collisions as they are
// added. It maintains a map of hash-to-name mappings and an ordered list of
// names in registration order.
type Tracker struct {
	names        map[uint64]string // hash -> name
	namesList    []string          // registration order
	hasCollision bool
}

// NewTracker creates a new collision tracker.
func NewTracker() *Tracker {
	return &Tracker{
		names:     make(map[uint64]string),
		namesList: make([]string, 0),
	}
}

// Track registers name under hash. It fails with errs.ErrEmptyTypeName if
// name is empty, and with errs.ErrTypeAlreadyRegistered if name was already
// tracked under the same hash. If hash is already in use by a different
// name, Track does not fail: it sets the collision flag instead, since a
// hash bucket holding the wrong name (rather than refusing the name
// outright) is the caller's (chtype.Registry's) concern to resolve.
func (t *Tracker) Track(name string, hash uint64) error {
	if name == "" {
		return errs.ErrEmptyTypeName
	}

	if existing, exists := t.names[hash]; exists {
		if existing == name {
			return errs.ErrTypeAlreadyRegistered
		}
		t.hasCollision = true
	}

	t.names[hash] = name
	t.namesList = append(t.namesList, name)

	return nil
}

// HasCollision returns true if a collision has been detected.
func (t *Tracker) HasCollision() bool {
	return t.hasCollision
}

// Names returns the tracked names in registration order.
func (t *Tracker) Names() []string {
	return t.namesList
}

// Count returns the number of tracked names.
func (t *Tracker) Count() int {
	return len(t.namesList)
}

// Reset clears all tracked names and collision state, preserving the
// tracker's allocated capacity.
func (t *Tracker) Reset() {
	for k := range t.names {
		delete(t.names, k)
	}
	t.namesList = t.namesList[:0]
	t.hasCollision = false
}
