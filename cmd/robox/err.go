package main

import (
	"errors"

	"github.com/ezrec/robox/translate"
)

var f = translate.From

var (
	ErrStepBudget = errors.New(f("step budget exhausted"))
	ErrPaused     = errors.New(f("interrupted"))
)
