package cpu

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ezrec/robox/channel"
	"github.com/ezrec/robox/event"
	"github.com/ezrec/robox/memory"
	"github.com/ezrec/robox/robot"
)

// State is the interpreter's run state.
type State int

const (
	STATE_RUNNING = State(0) // running
	STATE_HALTED  = State(1) // halted
	STATE_FAULTED = State(2) // faulted
)

func (st State) String() string {
	switch st {
	case STATE_RUNNING:
		return "running"
	case STATE_HALTED:
		return "halted"
	case STATE_FAULTED:
		return "faulted"
	}
	return fmt.Sprintf("State(%d)", int(st))
}

// Cpu is the simulation context for the mailroom robot.
type Cpu struct {
	Sink    event.Sink // Receives execution events. May be nil.
	Session uuid.UUID  // Tags emitted events.

	Program *Program       // Program being executed.
	Robot   robot.Robot    // The robot's hand.
	Vacant  *memory.Bank   // Vacant cells.
	Inbox   *channel.Queue // Input conveyor.
	Outbox  *channel.Queue // Output conveyor.

	Ip    int   // Next instruction to execute, from 1.
	State State // Current run state.
	Fault error // Set when State is STATE_FAULTED.
	Halt  error // Set when State is STATE_HALTED.
	Ticks int   // Instructions executed since reset.
}

// NewCpu creates a CPU for prog with a bank of vacantSize empty cells.
func NewCpu(prog *Program, vacantSize int) (cpu *Cpu) {
	if prog == nil {
		prog = &Program{}
	}

	cpu = &Cpu{
		Program: prog,
		Vacant:  memory.NewBank(vacantSize),
		Inbox:   &channel.Queue{},
		Outbox:  &channel.Queue{},
		Ip:      1,
	}

	return
}

// Reset the CPU state.
// - Empties the hand, the vacant cells and the outbox.
// - Loads the inbox with provided.
// - Rewinds the ip to the first instruction.
func (cpu *Cpu) Reset(provided []int) {
	cpu.Robot.Reset()
	cpu.Vacant.Reset()
	cpu.Inbox.Load(provided)
	cpu.Outbox.Reset()

	cpu.Ip = 1
	cpu.State = STATE_RUNNING
	cpu.Fault = nil
	cpu.Halt = nil
	cpu.Ticks = 0
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	regs := []string{"ip", "state", "hand", "vacant", "inbox", "outbox"}
	for _, reg := range regs {
		var strval string
		switch reg {
		case "ip":
			strval = fmt.Sprintf("%d", cpu.Ip)
			if in, ok := cpu.Program.Fetch(cpu.Ip); ok {
				strval += fmt.Sprintf(" (%v)", in)
			}
		case "state":
			strval = cpu.State.String()
			if cpu.Fault != nil {
				strval += fmt.Sprintf(" (%v)", cpu.Fault)
			} else if cpu.Halt != nil {
				strval += fmt.Sprintf(" (%v)", cpu.Halt)
			}
		case "hand":
			strval = cpu.Robot.String()
		case "vacant":
			strval = cpu.Vacant.String()
		case "inbox":
			strval = cpu.Inbox.String()
		case "outbox":
			strval = cpu.Outbox.String()
		}
		text += fmt.Sprintf("% 6s: %v\n", reg, strval)
	}

	return
}

func (cpu *Cpu) emit(sev event.Severity, msg string, err error) {
	if cpu.Sink == nil {
		return
	}

	cpu.Sink.Emit(event.Event{
		Time:     time.Now(),
		Session:  cpu.Session,
		Location: event.LOC_CORE,
		Severity: sev,
		Ip:       cpu.Ip,
		Message:  msg,
		Err:      err,
	})
}

// Step executes the instruction at the ip.
//
// The returned error is nil while the program keeps running, ErrIpEnd or
// ErrInboxEmpty when it halts normally, and an *ErrFault when an
// instruction is rejected. A rejected instruction changes nothing.
// Once halted or faulted, Step returns the same reason until Reset.
func (cpu *Cpu) Step() (err error) {
	switch cpu.State {
	case STATE_FAULTED:
		return cpu.Fault
	case STATE_HALTED:
		return cpu.Halt
	}

	if cpu.Ip < 1 {
		return cpu.fault(&ErrFault{Ip: cpu.Ip, Err: ErrInvalidTarget})
	}

	in, ok := cpu.Program.Fetch(cpu.Ip)
	if !ok {
		return cpu.halt(ErrIpEnd)
	}

	next, err := cpu.Execute(in)
	if errors.Is(err, ErrInboxEmpty) {
		return cpu.halt(err)
	}
	if err != nil {
		return cpu.fault(&ErrFault{Ip: cpu.Ip, Instruction: in, Err: err})
	}

	cpu.State = STATE_RUNNING
	cpu.Ticks++

	jumped := in.Op == OP_JUMP || (in.Op == OP_JUMP_IF_ZERO && cpu.Robot.Peek() == 0)
	if jumped {
		cpu.emit(event.SEVERITY_INFO, f("%v: jump to %d", in, next), nil)
	} else {
		cpu.emit(event.SEVERITY_INFO, f("%v: hand %v", in, cpu.Robot.String()), nil)
	}

	cpu.Ip = next

	return
}

func (cpu *Cpu) halt(reason error) error {
	cpu.State = STATE_HALTED
	cpu.Halt = reason
	cpu.emit(event.SEVERITY_INFO, f("halted: %v", reason), nil)
	return reason
}

func (cpu *Cpu) fault(err *ErrFault) error {
	cpu.State = STATE_FAULTED
	cpu.Fault = err
	cpu.emit(event.SEVERITY_ERROR, err.Error(), err)
	return err
}

// Execute validates and performs a single instruction, returning the ip of
// the instruction to run next. Every precondition is checked before any
// state is modified, so on error nothing has changed.
func (cpu *Cpu) Execute(in Instruction) (next int, err error) {
	hand := &cpu.Robot

	next = cpu.Ip + 1

	var value int

	switch in.Op {
	case OP_INBOX:
		if in.HasOperand {
			err = ErrSurplusOperand
			return
		}
		value, err = cpu.Inbox.Pop()
		if err != nil {
			err = ErrInboxEmpty
			return
		}
		hand.Take(value)
	case OP_OUTBOX:
		if in.HasOperand {
			err = ErrSurplusOperand
			return
		}
		value, err = hand.Release()
		if err != nil {
			return
		}
		cpu.Outbox.Push(value)
	case OP_ADD, OP_SUB:
		if hand.Empty() {
			err = ErrHandEmpty
			return
		}
		value, err = cpu.Vacant.Read(in.Operand)
		if err != nil {
			return
		}
		if in.Op == OP_SUB {
			hand.Take(hand.Peek() - value)
		} else {
			hand.Take(hand.Peek() + value)
		}
	case OP_COPY_TO:
		if hand.Empty() {
			err = ErrHandEmpty
			return
		}
		err = cpu.Vacant.Write(in.Operand, hand.Peek())
		if err != nil {
			return
		}
	case OP_COPY_FROM:
		value, err = cpu.Vacant.Read(in.Operand)
		if err != nil {
			return
		}
		hand.Take(value)
	case OP_JUMP:
		if !cpu.Program.Valid(in.Operand) {
			err = ErrInvalidTarget
			return
		}
		next = in.Operand
	case OP_JUMP_IF_ZERO:
		// An empty hand reads as zero, so it only matters when jumping.
		if hand.Peek() == 0 {
			if hand.Empty() {
				err = ErrHandEmpty
				return
			}
			if !cpu.Program.Valid(in.Operand) {
				err = ErrInvalidTarget
				return
			}
			next = in.Operand
		}
	default:
		err = ErrUnknownOpcode
		return
	}

	return
}
