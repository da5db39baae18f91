package channel

import (
	"errors"

	"github.com/ezrec/robox/translate"
)

var f = translate.From

var (
	// Channel errors
	ErrChannelEmpty = errors.New(f("channel empty"))
)
