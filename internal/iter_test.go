package internal

import (
	"maps"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIterSeq2Concat(t *testing.T) {
	assert := assert.New(t)

	a := maps.All(map[string]int{"a": 1})
	b := maps.All(map[string]int{"b": 2, "c": 3})

	assert.Equal(map[string]int{"a": 1, "b": 2, "c": 3}, maps.Collect(IterSeq2Concat(a, b)))
	assert.Empty(maps.Collect(IterSeq2Concat[string, int]()))

	count := 0
	for range IterSeq2Concat(a, b) {
		count++
		if count == 2 {
			break
		}
	}
	assert.Equal(2, count)
}
