package cpu

import (
	"fmt"
	"slices"
)

// Op is an instruction operation.
type Op int

const (
	OP_INBOX        = Op(0) // inbox
	OP_OUTBOX       = Op(1) // outbox
	OP_ADD          = Op(2) // add
	OP_SUB          = Op(3) // sub
	OP_COPY_TO      = Op(4) // copyto
	OP_COPY_FROM    = Op(5) // copyfrom
	OP_JUMP         = Op(6) // jump
	OP_JUMP_IF_ZERO = Op(7) // jumpifzero
)

const (
	NULL_VACANT = -1 // Operand of an instruction given none.
)

var opNames = [...]string{
	"inbox", "outbox", "add", "sub",
	"copyto", "copyfrom", "jump", "jumpifzero",
}

// Ops returns every operation, in encoding order.
func Ops() []Op {
	ops := make([]Op, len(opNames))
	for n := range ops {
		ops[n] = Op(n)
	}
	return ops
}

// OpNames returns the names of every operation, in encoding order.
func OpNames() []string {
	return slices.Clone(opNames[:])
}

// ParseOp looks up an operation by name.
func ParseOp(name string) (op Op, ok bool) {
	n := slices.Index(opNames[:], name)
	if n < 0 {
		return
	}

	return Op(n), true
}

// Valid returns true if op is one of the eight operations.
func (op Op) Valid() bool {
	return op >= OP_INBOX && op <= OP_JUMP_IF_ZERO
}

func (op Op) String() string {
	if !op.Valid() {
		return fmt.Sprintf("Op(%d)", int(op))
	}
	return opNames[op]
}

// Operand returns true if the operation takes an operand.
func (op Op) Operand() bool {
	return op != OP_INBOX && op != OP_OUTBOX
}

// Jump returns true if the operand is an instruction address rather
// than a vacant index.
func (op Op) Jump() bool {
	return op == OP_JUMP || op == OP_JUMP_IF_ZERO
}

// Instruction is a decoded operation with its optional operand.
type Instruction struct {
	Op         Op
	Operand    int
	HasOperand bool
}

// MakeInstruction creates an instruction without an operand.
func MakeInstruction(op Op) Instruction {
	return Instruction{Op: op, Operand: NULL_VACANT}
}

// MakeInstructionArg creates an instruction with an operand.
func MakeInstructionArg(op Op, operand int) Instruction {
	return Instruction{Op: op, Operand: operand, HasOperand: true}
}

// String returns the assembly language representation of this instruction.
func (in Instruction) String() string {
	if !in.HasOperand {
		return in.Op.String()
	}
	return fmt.Sprintf("%v %v", in.Op, in.Operand)
}

// Command is an undecoded instruction as supplied by a level or the
// assembler. Its name is only checked when the program is compiled.
type Command struct {
	Name       string
	Operand    int
	HasOperand bool
}

// Cmd creates a command without an operand.
func Cmd(name string) Command {
	return Command{Name: name, Operand: NULL_VACANT}
}

// CmdArg creates a command with an operand.
func CmdArg(name string, operand int) Command {
	return Command{Name: name, Operand: operand, HasOperand: true}
}

func (cmd Command) String() string {
	if !cmd.HasOperand {
		return cmd.Name
	}
	return fmt.Sprintf("%v %v", cmd.Name, cmd.Operand)
}
