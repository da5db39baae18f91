package memory

import (
	"errors"

	"github.com/ezrec/robox/translate"
)

var f = translate.From

var (
	// Vacant errors
	ErrInvalidIndex = errors.New(f("vacant index invalid"))
	ErrEmptyCell    = errors.New(f("vacant empty"))
)
