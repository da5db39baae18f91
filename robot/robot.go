// Package robot models the worker carrying one value at a time between
// the conveyors and the vacant cells.
package robot

import (
	"fmt"
)

const (
	EMPTY_HAND = 0 // Value reported by an empty hand.
)

// Robot holds at most one value.
type Robot struct {
	Value int  // Value held. EMPTY_HAND when nothing is held.
	Full  bool // Set when a value is held.
}

// Take replaces whatever is held with value.
func (rb *Robot) Take(value int) {
	rb.Value = value
	rb.Full = true
}

// Release hands over the held value, leaving the robot empty.
func (rb *Robot) Release() (value int, err error) {
	if rb.Empty() {
		err = ErrHandEmpty
		return
	}

	value = rb.Value
	rb.Reset()

	return
}

// Peek returns the held value, or EMPTY_HAND when nothing is held.
func (rb *Robot) Peek() int {
	return rb.Value
}

// Empty returns true if nothing is held.
func (rb *Robot) Empty() bool {
	return !rb.Full
}

// Reset empties the hand.
func (rb *Robot) Reset() {
	rb.Value = EMPTY_HAND
	rb.Full = false
}

// String returns the held value, or '_' when empty.
func (rb *Robot) String() string {
	if rb.Empty() {
		return "_"
	}
	return fmt.Sprintf("%v", rb.Value)
}
