// Package memory implements the row of vacant cells the robot may park
// values in.
package memory

import (
	"fmt"
	"iter"
	"maps"
	"slices"
)

// Cell is a single vacant slot. Value is meaningless unless Occupied.
type Cell struct {
	Value    int
	Occupied bool
}

// Bank is a fixed size row of cells, addressed from 0.
type Bank struct {
	Cell []Cell
}

// NewBank creates a bank of size empty cells.
func NewBank(size int) (bank *Bank) {
	bank = &Bank{
		Cell: make([]Cell, max(size, 0)),
	}

	return
}

// Defines returns the assembler defines describing a bank of the given size.
func Defines(size int) iter.Seq2[string, string] {
	return maps.All(map[string]string{
		"VACANT_SIZE": fmt.Sprintf("%v", size),
		"VACANT_LAST": fmt.Sprintf("%v", size-1),
	})
}

// Defines for this bank.
func (bank *Bank) Defines() iter.Seq2[string, string] {
	return Defines(bank.Size())
}

// Size returns the number of cells.
func (bank *Bank) Size() int {
	return len(bank.Cell)
}

// Valid returns true if index addresses a cell.
func (bank *Bank) Valid(index int) bool {
	return index >= 0 && index < len(bank.Cell)
}

// Occupied returns true if the cell at index holds a value.
// Out of range indexes are never occupied.
func (bank *Bank) Occupied(index int) bool {
	return bank.Valid(index) && bank.Cell[index].Occupied
}

// Read the value at index.
func (bank *Bank) Read(index int) (value int, err error) {
	if !bank.Valid(index) {
		err = ErrInvalidIndex
		return
	}

	cell := &bank.Cell[index]
	if !cell.Occupied {
		err = ErrEmptyCell
		return
	}

	value = cell.Value
	return
}

// Write value to index, replacing whatever was there.
func (bank *Bank) Write(index int, value int) (err error) {
	if !bank.Valid(index) {
		err = ErrInvalidIndex
		return
	}

	bank.Cell[index] = Cell{Value: value, Occupied: true}

	return
}

// Reset empties every cell. The size does not change.
func (bank *Bank) Reset() {
	clear(bank.Cell)
}

// Cells returns a copy of the cell contents.
func (bank *Bank) Cells() []Cell {
	return slices.Clone(bank.Cell)
}

// String returns the cells as '[3 _ 7]', with '_' for empty cells.
func (bank *Bank) String() (text string) {
	text = "["
	for n, cell := range bank.Cell {
		if n > 0 {
			text += " "
		}
		if cell.Occupied {
			text += fmt.Sprintf("%v", cell.Value)
		} else {
			text += "_"
		}
	}
	text += "]"

	return
}
