package robot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRobot_Take(t *testing.T) {
	assert := assert.New(t)

	rb := &Robot{}
	assert.True(rb.Empty())
	assert.Equal("_", rb.String())

	rb.Take(12)
	assert.False(rb.Empty())
	assert.Equal(12, rb.Peek())
	assert.Equal("12", rb.String())

	rb.Take(-3)
	assert.Equal(-3, rb.Peek())
}

func TestRobot_Release(t *testing.T) {
	assert := assert.New(t)

	rb := &Robot{}
	rb.Take(5)

	value, err := rb.Release()
	assert.NoError(err)
	assert.Equal(5, value)
	assert.True(rb.Empty())
	assert.Equal(EMPTY_HAND, rb.Peek())
}

func TestRobot_Release_Empty(t *testing.T) {
	assert := assert.New(t)

	rb := &Robot{}
	value, err := rb.Release()
	assert.ErrorIs(err, ErrHandEmpty)
	assert.Equal(0, value)
	assert.True(rb.Empty())
}

func TestRobot_Zero(t *testing.T) {
	assert := assert.New(t)

	// Holding zero is not the same as holding nothing.
	rb := &Robot{}
	rb.Take(0)
	assert.False(rb.Empty())
	assert.Equal(0, rb.Peek())

	rb.Reset()
	assert.True(rb.Empty())
	assert.Equal(0, rb.Peek())
}
