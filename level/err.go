package level

import (
	"errors"

	"github.com/ezrec/robox/translate"
)

var f = translate.From

var (
	ErrFormat      = errors.New(f("level format unknown"))
	ErrNameMissing = errors.New(f("level name missing"))
	ErrVacantSize  = errors.New(f("level vacant size negative"))
	ErrNotFound    = errors.New(f("level not found"))
)

// ErrVersion is a level schema newer than this program understands.
type ErrVersion int

func (err ErrVersion) Error() string {
	return f("level version %d unsupported (current %d)", int(err), CURRENT_VERSION)
}

// ErrLevel indicates the level file an error came from.
type ErrLevel struct {
	Path string
	Err  error
}

func (err *ErrLevel) Error() string {
	return f("%v: %v", err.Path, err.Err)
}

func (err *ErrLevel) Unwrap() error {
	return err.Err
}
