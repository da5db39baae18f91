package robot

import (
	"errors"

	"github.com/ezrec/robox/translate"
)

var f = translate.From

var (
	// Robot errors
	ErrHandEmpty = errors.New(f("hand empty"))
)
