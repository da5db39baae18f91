package memory

import (
	"maps"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBank_New(t *testing.T) {
	assert := assert.New(t)

	bank := NewBank(4)
	assert.Equal(4, bank.Size())
	for n := range 4 {
		assert.False(bank.Occupied(n))
	}

	assert.Equal(0, NewBank(-3).Size())
}

func TestBank_ReadWrite(t *testing.T) {
	assert := assert.New(t)

	bank := NewBank(3)

	_, err := bank.Read(1)
	assert.ErrorIs(err, ErrEmptyCell)

	assert.NoError(bank.Write(1, 42))
	assert.True(bank.Occupied(1))

	value, err := bank.Read(1)
	assert.NoError(err)
	assert.Equal(42, value)

	// Overwrite is permitted.
	assert.NoError(bank.Write(1, -7))
	value, err = bank.Read(1)
	assert.NoError(err)
	assert.Equal(-7, value)

	// Zero is a value, not emptiness.
	assert.NoError(bank.Write(0, 0))
	value, err = bank.Read(0)
	assert.NoError(err)
	assert.Equal(0, value)
}

func TestBank_Bounds(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name  string
		size  int
		index int
		valid bool
	}){
		{"first", 3, 0, true},
		{"last", 3, 2, true},
		{"size", 3, 3, false},
		{"negative", 3, -1, false},
		{"empty_bank", 0, 0, false},
	}

	for _, entry := range table {
		bank := NewBank(entry.size)
		assert.Equal(entry.valid, bank.Valid(entry.index), entry.name)

		err := bank.Write(entry.index, 5)
		if entry.valid {
			assert.NoError(err, entry.name)
		} else {
			assert.ErrorIs(err, ErrInvalidIndex, entry.name)
			_, err = bank.Read(entry.index)
			assert.ErrorIs(err, ErrInvalidIndex, entry.name)
			assert.False(bank.Occupied(entry.index), entry.name)
		}
	}
}

func TestBank_Reset(t *testing.T) {
	assert := assert.New(t)

	bank := NewBank(2)
	bank.Write(0, 1)
	bank.Write(1, 2)
	assert.Equal("[1 2]", bank.String())

	bank.Reset()
	assert.Equal(2, bank.Size())
	assert.Equal("[_ _]", bank.String())
}

func TestBank_Cells(t *testing.T) {
	assert := assert.New(t)

	bank := NewBank(2)
	bank.Write(1, 9)

	cells := bank.Cells()
	assert.Equal([]Cell{{}, {Value: 9, Occupied: true}}, cells)

	cells[0] = Cell{Value: 1, Occupied: true}
	assert.False(bank.Occupied(0))
}

func TestBank_Defines(t *testing.T) {
	assert := assert.New(t)

	defines := maps.Collect(NewBank(5).Defines())
	assert.Equal("5", defines["VACANT_SIZE"])
	assert.Equal("4", defines["VACANT_LAST"])
}
