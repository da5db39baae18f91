package game

import (
	"errors"

	"github.com/ezrec/robox/translate"
)

var f = translate.From

var (
	ErrNotInitialized = errors.New(f("session not initialized"))
	ErrVacantSize     = errors.New(f("vacant size negative"))
)

// ErrRuntime indicates the source line of a runtime fault.
type ErrRuntime struct {
	LineNo int
	Err    error
}

func (err *ErrRuntime) Error() string {
	return f("line %d %v", err.LineNo, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
