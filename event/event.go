// Package event carries diagnostics from the robox engine and its front ends
// to whoever is listening: a log, a presentation panel, or a test.
package event

import (
	"time"

	"github.com/google/uuid"
)

// Location is where an event originated.
type Location int

const (
	LOC_CORE = Location(0) // core
	LOC_CLI  = Location(1) // cli
	LOC_GUI  = Location(2) // gui
)

var locationNames = [...]string{"core", "cli", "gui"}

func (loc Location) String() string {
	if loc < 0 || int(loc) >= len(locationNames) {
		return "unknown"
	}
	return locationNames[loc]
}

// Severity of an event.
type Severity int

const (
	SEVERITY_INFO  = Severity(0) // info
	SEVERITY_ERROR = Severity(1) // error
)

func (sev Severity) String() string {
	switch sev {
	case SEVERITY_INFO:
		return "info"
	case SEVERITY_ERROR:
		return "error"
	}
	return "unknown"
}

// Event is a single diagnostic.
type Event struct {
	Time     time.Time
	Session  uuid.UUID // Session the event belongs to, or uuid.Nil.
	Location Location
	Severity Severity
	Ip       int // Instruction pointer, 0 when not tied to an instruction.
	Message  string
	Err      error // Set for SEVERITY_ERROR events.
}

// Sink receives events.
type Sink interface {
	Emit(ev Event)
}

// SinkFunc adapts a function to a Sink.
type SinkFunc func(ev Event)

func (fn SinkFunc) Emit(ev Event) {
	fn(ev)
}

// Discard drops all events.
var Discard Sink = SinkFunc(func(Event) {})

// Tee fans events out to every sink in order.
type Tee []Sink

func (tee Tee) Emit(ev Event) {
	for _, sink := range tee {
		if sink != nil {
			sink.Emit(ev)
		}
	}
}

// Recorder keeps every event it receives.
type Recorder struct {
	Events []Event
}

func (rec *Recorder) Emit(ev Event) {
	rec.Events = append(rec.Events, ev)
}

// Errors returns the recorded SEVERITY_ERROR events.
func (rec *Recorder) Errors() (errs []Event) {
	for _, ev := range rec.Events {
		if ev.Severity == SEVERITY_ERROR {
			errs = append(errs, ev)
		}
	}
	return
}

// Messages returns the recorded messages in order.
func (rec *Recorder) Messages() (msgs []string) {
	for _, ev := range rec.Events {
		msgs = append(msgs, ev.Message)
	}
	return
}

// Reset forgets all recorded events.
func (rec *Recorder) Reset() {
	rec.Events = nil
}
