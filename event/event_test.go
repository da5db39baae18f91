package event

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocation_String(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("core", LOC_CORE.String())
	assert.Equal("cli", LOC_CLI.String())
	assert.Equal("gui", LOC_GUI.String())
	assert.Equal("unknown", Location(9).String())
}

func TestSeverity_String(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("info", SEVERITY_INFO.String())
	assert.Equal("error", SEVERITY_ERROR.String())
	assert.Equal("unknown", Severity(-1).String())
}

func TestRecorder(t *testing.T) {
	assert := assert.New(t)

	rec := &Recorder{}
	rec.Emit(Event{Message: "one"})
	rec.Emit(Event{Message: "two", Severity: SEVERITY_ERROR, Err: errors.New("bad")})
	rec.Emit(Event{Message: "three"})

	assert.Equal([]string{"one", "two", "three"}, rec.Messages())
	assert.Len(rec.Errors(), 1)
	assert.Equal("two", rec.Errors()[0].Message)

	rec.Reset()
	assert.Empty(rec.Events)
}

func TestTee(t *testing.T) {
	assert := assert.New(t)

	a := &Recorder{}
	b := &Recorder{}
	var count int

	tee := Tee{a, nil, b, SinkFunc(func(Event) { count++ })}
	tee.Emit(Event{Message: "hello"})

	assert.Len(a.Events, 1)
	assert.Len(b.Events, 1)
	assert.Equal(1, count)

	Discard.Emit(Event{})
}

func TestLogger_Text(t *testing.T) {
	assert := assert.New(t)

	var buf bytes.Buffer
	lg := NewLogger(&buf, false, false)

	lg.Emit(Event{Message: "quiet"})
	assert.Empty(buf.String())

	lg.Emit(Event{Message: "loud", Severity: SEVERITY_ERROR, Ip: 3, Err: errors.New("hand empty")})
	out := buf.String()
	assert.Contains(out, "level=ERROR")
	assert.Contains(out, "msg=loud")
	assert.Contains(out, "loc=core")
	assert.Contains(out, "ip=3")
	assert.Contains(out, `err="hand empty"`)
	assert.NotContains(out, "session=")
}

func TestLogger_Json(t *testing.T) {
	assert := assert.New(t)

	var buf bytes.Buffer
	lg := NewLogger(&buf, true, true)

	id := uuid.New()
	lg.Emit(Event{Message: "step", Session: id, Location: LOC_CLI})

	line := strings.TrimSpace(buf.String())
	var record map[string]any
	require.NoError(t, json.Unmarshal([]byte(line), &record))

	assert.Equal("INFO", record["level"])
	assert.Equal("step", record["msg"])
	assert.Equal("cli", record["loc"])
	assert.Equal(id.String(), record["session"])
	assert.NotContains(record, "ip")
}
