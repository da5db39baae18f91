// Package channel provides the conveyor queues feeding values to, and
// taking values from, the robot.
package channel

import (
	"fmt"
	"iter"
	"maps"
	"slices"
)

// Queue is a FIFO of integers. Values enter at the back and leave from the front.
type Queue struct {
	Data []int
}

// NewQueue creates a queue seeded with values, front first.
func NewQueue(values ...int) (queue *Queue) {
	queue = &Queue{}
	queue.Load(values)

	return
}

// Defines returns the assembler defines describing a queue named prefix.
func (queue *Queue) Defines(prefix string) iter.Seq2[string, string] {
	return maps.All(map[string]string{
		prefix + "_SIZE": fmt.Sprintf("%v", queue.Len()),
	})
}

// Push appends value to the back of the queue.
func (queue *Queue) Push(value int) {
	queue.Data = append(queue.Data, value)
}

// Pop removes and returns the front of the queue.
func (queue *Queue) Pop() (value int, err error) {
	if queue.Empty() {
		err = ErrChannelEmpty
		return
	}

	value = queue.Data[0]
	queue.Data = queue.Data[1:]

	return
}

// Peek returns the front of the queue without removing it.
func (queue *Queue) Peek() (value int, ok bool) {
	if queue.Empty() {
		return
	}

	return queue.Data[0], true
}

// Empty returns true if nothing is queued.
func (queue *Queue) Empty() bool {
	return len(queue.Data) == 0
}

// Len returns the number of queued values.
func (queue *Queue) Len() int {
	return len(queue.Data)
}

// Reset drops all queued values.
func (queue *Queue) Reset() {
	queue.Data = nil
}

// Load replaces the queue contents with a copy of values, front first.
func (queue *Queue) Load(values []int) {
	queue.Data = slices.Clone(values)
}

// Values returns a copy of the queue contents, front first.
func (queue *Queue) Values() []int {
	values := slices.Clone(queue.Data)
	if values == nil {
		values = []int{}
	}
	return values
}

// All iterates over the queue contents, front first, without consuming them.
func (queue *Queue) All() iter.Seq[int] {
	return slices.Values(queue.Data)
}

// String returns the queue contents as '[1 2 3]'.
func (queue *Queue) String() string {
	return fmt.Sprintf("%v", queue.Values())
}
