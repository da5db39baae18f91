package cpu

import (
	"errors"

	"github.com/ezrec/robox/channel"
	"github.com/ezrec/robox/memory"
	"github.com/ezrec/robox/robot"
	"github.com/ezrec/robox/translate"
)

var f = translate.From

var (
	// Halts. These end a run without a fault.
	ErrIpEnd      = errors.New(f("program end"))
	ErrInboxEmpty = errors.New(f("inbox empty"))

	// Load faults
	ErrUnknownOpcode    = errors.New(f("opcode unknown"))
	ErrDisallowedOpcode = errors.New(f("opcode not allowed"))

	// Execution faults
	ErrSurplusOperand = errors.New(f("surplus operand"))
	ErrHandEmpty      = robot.ErrHandEmpty
	ErrInvalidIndex   = memory.ErrInvalidIndex
	ErrEmptyCell      = memory.ErrEmptyCell
	ErrInvalidTarget  = errors.New(f("jump target invalid"))

	// Conveyor errors
	ErrChannelEmpty = channel.ErrChannelEmpty

	// Assembler errors
	ErrEquateSyntax    = errors.New(f(".equ syntax"))
	ErrEquateDuplicate = errors.New(f(".equ duplicated"))
	ErrLabelDuplicate  = errors.New(f("label duplicated"))
	ErrLabelSyntax     = errors.New(f("label syntax"))
	ErrOpcodeExtraArgs = errors.New(f("excessive arguments"))
	ErrOpcodeMissing   = errors.New(f("opcode missing"))
	ErrMacroSyntax     = errors.New(f(".macro syntax"))
	ErrMacroNesting    = errors.New(f(".macro in .macro prohibited"))
	ErrMacroDuplicate  = errors.New(f(".macro duplicated"))
	ErrMacroLonely     = errors.New(f(".macro without .endm"))
	ErrMacroLonelyEndm = errors.New(f(".endm without .macro"))
)

// IsHalt returns true if err ends a run without a fault.
func IsHalt(err error) bool {
	return errors.Is(err, ErrIpEnd) || errors.Is(err, ErrInboxEmpty)
}

// IsFault returns true if err is an execution or load fault.
func IsFault(err error) bool {
	return err != nil && !IsHalt(err)
}

// ErrOpcodeName is an allow-list entry that names no operation.
type ErrOpcodeName struct {
	Name    string
	Suggest string // Closest known name, if any.
	Err     error
}

func (err *ErrOpcodeName) Error() string {
	if len(err.Suggest) != 0 {
		return f("'%v' %v (did you mean '%v'?)", err.Name, err.Err, err.Suggest)
	}
	return f("'%v' %v", err.Name, err.Err)
}

func (err *ErrOpcodeName) Unwrap() error {
	return err.Err
}

// ErrInstruction is a program instruction rejected when compiled.
type ErrInstruction struct {
	Ip      int // 1-based position in the program.
	Name    string
	Suggest string // Closest allowed name, if any.
	Err     error
}

func (err *ErrInstruction) Error() string {
	if len(err.Suggest) != 0 {
		return f("instruction %d '%v' %v (did you mean '%v'?)", err.Ip, err.Name, err.Err, err.Suggest)
	}
	return f("instruction %d '%v' %v", err.Ip, err.Name, err.Err)
}

func (err *ErrInstruction) Unwrap() error {
	return err.Err
}

// ErrFault is an execution fault at an instruction.
type ErrFault struct {
	Ip          int
	Instruction Instruction
	Err         error
}

func (err *ErrFault) Error() string {
	if err.Ip < 1 {
		return f("ip %d %v", err.Ip, err.Err)
	}
	return f("instruction %d '%v' %v", err.Ip, err.Instruction, err.Err)
}

func (err *ErrFault) Unwrap() error {
	return err.Err
}

// ErrSyntax is an assembler error at a source line.
type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

type ErrMacro struct {
	Macro string
	Line  int
	Err   error
}

func (err *ErrMacro) Error() string {
	return f("macro %v line %v %v", err.Macro, err.Line, err.Err.Error())
}

func (err *ErrMacro) Unwrap() error {
	return err.Err
}
