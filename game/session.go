// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package game runs a robot program against a level's goal.
package game

import (
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/ezrec/robox/cpu"
	"github.com/ezrec/robox/event"
	"github.com/ezrec/robox/memory"
	"github.com/ezrec/robox/robot"
)

// Outcome is the result of comparing the outbox with the goal.
type Outcome int

const (
	OUTCOME_NONE    = Outcome(0) // not checked, or skipped after a fault
	OUTCOME_SUCCESS = Outcome(1) // outbox matches the goal
	OUTCOME_FAIL    = Outcome(2) // outbox differs from the goal
)

func (oc Outcome) String() string {
	switch oc {
	case OUTCOME_NONE:
		return "None"
	case OUTCOME_SUCCESS:
		return "Success"
	case OUTCOME_FAIL:
		return "Fail"
	}
	return fmt.Sprintf("Outcome(%d)", int(oc))
}

// Snapshot is a copy of the session state for a presentation layer.
type Snapshot struct {
	Ip      int
	LineNo  int
	Hand    robot.Robot
	Vacant  []memory.Cell
	Inbox   []int
	Outbox  []int
	Needed  []int
	Running bool
	Faulted bool
	Fault   error
	Outcome Outcome
	Ticks   int
}

// Session state. CPU + goal + run flags.
type Session struct {
	Id   uuid.UUID  // Tags every event of this session.
	Sink event.Sink // If set, receives session and execution events.

	// Pace, if set, is called between steps of a run with Gap.
	// It may call Pause to stop the run.
	Pace func(gap time.Duration)
	Gap  time.Duration

	// Listing is the assembled source of the program, if any.
	Listing *cpu.Program

	Cpu *cpu.Cpu // Reference to the CPU simulation.

	provided []int
	needed   []int

	initialized bool
	running     bool
	faulted     bool
	fault       error
	outcome     Outcome
}

// NewSession creates an uninitialized session.
func NewSession() (ses *Session) {
	ses = &Session{
		Id:  uuid.New(),
		Cpu: cpu.NewCpu(nil, 0),
	}

	return
}

func (ses *Session) emit(sev event.Severity, msg string, err error) {
	if ses.Sink == nil {
		return
	}

	ses.Sink.Emit(event.Event{
		Time:     time.Now(),
		Session:  ses.Id,
		Location: event.LOC_CORE,
		Severity: sev,
		Ip:       ses.Cpu.Ip,
		Message:  msg,
		Err:      err,
	})
}

// sync hands the session's event routing to the CPU.
func (ses *Session) sync() {
	ses.Cpu.Sink = ses.Sink
	ses.Cpu.Session = ses.Id
}

// Initialize loads a program and its level.
//
// allowed names the operations the program may use. Each program command
// must name one of them. provided seeds the inbox, needed is the goal, and
// vacantSize is the number of memory cells. On failure the session is left
// faulted with an empty program.
func (ses *Session) Initialize(allowed []string, provided, needed []int, program []cpu.Command, vacantSize int) (err error) {
	ses.initialized = false
	ses.running = false
	ses.faulted = false
	ses.fault = nil
	ses.outcome = OUTCOME_NONE
	ses.Listing = nil

	defer func() {
		if err != nil {
			ses.Cpu = cpu.NewCpu(nil, 0)
			ses.faulted = true
			ses.fault = err
			ses.emit(event.SEVERITY_ERROR, f("initialize: %v", err), err)
		}
	}()

	if vacantSize < 0 {
		err = ErrVacantSize
		return
	}

	ops, err := cpu.ParseAllowed(allowed)
	if err != nil {
		return
	}

	prog, err := cpu.Compile(ops, program)
	if err != nil {
		return
	}

	ses.Cpu = cpu.NewCpu(prog, vacantSize)
	ses.provided = slices.Clone(provided)
	ses.needed = slices.Clone(needed)
	ses.Cpu.Reset(ses.provided)
	ses.initialized = true

	ses.emit(event.SEVERITY_INFO, f("initialized: %d instructions, %d cells, %d provided, %d needed",
		prog.Len(), vacantSize, len(provided), len(needed)), nil)

	return
}

// Restart rewinds the session to its freshly initialized state.
// The program, memory size and goal are kept.
func (ses *Session) Restart() (err error) {
	if !ses.initialized {
		err = ErrNotInitialized
		return
	}

	ses.Cpu.Reset(ses.provided)
	ses.running = false
	ses.faulted = false
	ses.fault = nil
	ses.outcome = OUTCOME_NONE

	ses.emit(event.SEVERITY_INFO, f("restart"), nil)

	return
}

// Pause stops a run after the current step, without a fault.
func (ses *Session) Pause() {
	if ses.running {
		ses.emit(event.SEVERITY_INFO, f("paused"), nil)
	}
	ses.running = false
}

// Step executes a single instruction.
//
// Halts are returned as ErrIpEnd or ErrInboxEmpty. Faults are returned,
// wrapped in an *ErrRuntime when a listing is known, and leave the session
// faulted until Restart. Every later call returns the same fault.
func (ses *Session) Step() (err error) {
	if ses.faulted {
		return ses.fault
	}
	if !ses.initialized {
		return ErrNotInitialized
	}

	ses.sync()

	lineno := ses.LineNo()

	err = ses.Cpu.Step()
	if err == nil {
		return
	}

	ses.running = false
	if cpu.IsHalt(err) {
		return
	}

	if lineno > 0 {
		err = &ErrRuntime{LineNo: lineno, Err: err}
	}

	ses.faulted = true
	ses.fault = err

	return
}

// run steps until the program halts, faults, is paused or stop returns true.
func (ses *Session) run(stop func() bool) (outcome Outcome, err error) {
	if ses.faulted {
		return ses.CheckGoal(), ses.fault
	}
	if !ses.initialized {
		return ses.CheckGoal(), ErrNotInitialized
	}

	ses.running = true
	for ses.running {
		err = ses.Step()
		if cpu.IsHalt(err) {
			err = nil
			break
		}
		if err != nil {
			break
		}
		if stop != nil && stop() {
			ses.running = false
			break
		}
		if ses.Pace != nil {
			ses.Pace(ses.Gap)
		}
	}

	outcome = ses.CheckGoal()

	return
}

// RunToCompletion runs until the program halts, faults or is paused, then
// checks the goal.
func (ses *Session) RunToCompletion() (outcome Outcome, err error) {
	return ses.run(nil)
}

// RunUntil runs like RunToCompletion, also stopping once the ip reaches
// target. At least one instruction is executed, so a run stopped at
// target can be resumed with the same target.
func (ses *Session) RunUntil(target int) (outcome Outcome, err error) {
	return ses.run(func() bool {
		return ses.Cpu.Ip == target
	})
}

// CheckGoal compares the outbox, front to back, with the goal.
// A faulted session is not checked and gives OUTCOME_NONE.
func (ses *Session) CheckGoal() (outcome Outcome) {
	defer func() {
		ses.outcome = outcome
	}()

	if ses.faulted || !ses.initialized {
		outcome = OUTCOME_NONE
		return
	}

	if slices.Equal(ses.Cpu.Outbox.Values(), ses.needed) {
		outcome = OUTCOME_SUCCESS
	} else {
		outcome = OUTCOME_FAIL
	}

	ses.emit(event.SEVERITY_INFO, f("goal: %v", outcome), nil)

	return
}

// Running returns true while a run is in progress.
func (ses *Session) Running() bool {
	return ses.running
}

// Faulted returns true if initialization or execution faulted.
func (ses *Session) Faulted() bool {
	return ses.faulted
}

// Fault returns the fault, if any, as Step returned it.
func (ses *Session) Fault() error {
	return ses.fault
}

// Outcome returns the result of the last goal check.
func (ses *Session) Outcome() Outcome {
	return ses.outcome
}

// Needed returns a copy of the goal.
func (ses *Session) Needed() []int {
	return slices.Clone(ses.needed)
}

// LineNo returns the source line of the instruction at the ip, or 0.
func (ses *Session) LineNo() int {
	if ses.Listing == nil {
		return 0
	}

	dbg := ses.Listing.Debug(ses.Cpu.Ip)
	if dbg.Opcode == nil {
		return 0
	}

	return dbg.LineNo
}

// Snapshot returns a copy of the session state.
func (ses *Session) Snapshot() Snapshot {
	return Snapshot{
		Ip:      ses.Cpu.Ip,
		LineNo:  ses.LineNo(),
		Hand:    ses.Cpu.Robot,
		Vacant:  ses.Cpu.Vacant.Cells(),
		Inbox:   ses.Cpu.Inbox.Values(),
		Outbox:  ses.Cpu.Outbox.Values(),
		Needed:  ses.Needed(),
		Running: ses.running,
		Faulted: ses.faulted,
		Fault:   ses.fault,
		Outcome: ses.outcome,
		Ticks:   ses.Cpu.Ticks,
	}
}
