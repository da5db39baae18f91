package cpu

import (
	"iter"
	"slices"

	"github.com/agnivade/levenshtein"
)

const (
	SUGGEST_DISTANCE = 2 // Maximum edit distance for a 'did you mean' hint.
)

// Opcode represents a line of assembled code with its source location.
type Opcode struct {
	LineNo    int
	Ip        int
	Words     []string
	Command   Command
	LinkLabel string
}

// Program is an ordered list of instructions, addressed from 1.
type Program struct {
	Opcodes      []Opcode      // Source listing, when assembled.
	Instructions []Instruction // Instructions[0] is at ip 1.
}

// Debug locates the source of an instruction.
type Debug struct {
	*Opcode
	Ip int
}

// Debug returns the source line for ip, if known.
func (prog *Program) Debug(ip int) (dbg Debug) {
	for n, op := range prog.Opcodes {
		if op.Ip == ip {
			dbg = Debug{
				Opcode: &prog.Opcodes[n],
				Ip:     ip,
			}
			break
		}
	}

	return
}

// Len returns the number of instructions.
func (prog *Program) Len() int {
	return len(prog.Instructions)
}

// Valid returns true if ip addresses an instruction.
func (prog *Program) Valid(ip int) bool {
	return ip >= 1 && ip <= len(prog.Instructions)
}

// Fetch returns the instruction at ip.
func (prog *Program) Fetch(ip int) (in Instruction, ok bool) {
	if !prog.Valid(ip) {
		return
	}

	return prog.Instructions[ip-1], true
}

// All iterates over the instructions with their addresses.
func (prog *Program) All() iter.Seq2[int, Instruction] {
	return func(yield func(ip int, in Instruction) bool) {
		for n, in := range prog.Instructions {
			if !yield(n+1, in) {
				return
			}
		}
	}
}

// Commands returns the undecoded commands of the source listing.
func (prog *Program) Commands() (cmds []Command) {
	for _, op := range prog.Opcodes {
		cmds = append(cmds, op.Command)
	}
	return
}

// Suggest returns the candidate closest to name, or "" if none is close.
func Suggest(name string, candidates []string) (best string) {
	distance := SUGGEST_DISTANCE + 1
	for _, candidate := range candidates {
		d := levenshtein.ComputeDistance(name, candidate)
		if d > 0 && d < distance {
			best = candidate
			distance = d
		}
	}
	return
}

// ParseAllowed decodes an allow-list of operation names.
func ParseAllowed(names []string) (ops []Op, err error) {
	for _, name := range names {
		op, ok := ParseOp(name)
		if !ok {
			err = &ErrOpcodeName{
				Name:    name,
				Suggest: Suggest(name, OpNames()),
				Err:     ErrUnknownOpcode,
			}
			return nil, err
		}
		if !slices.Contains(ops, op) {
			ops = append(ops, op)
		}
	}

	return
}

// Compile decodes commands into a program, rejecting any operation
// outside of allowed.
func Compile(allowed []Op, cmds []Command) (prog *Program, err error) {
	var names []string
	for _, op := range allowed {
		names = append(names, op.String())
	}

	prog = &Program{
		Instructions: make([]Instruction, 0, len(cmds)),
	}

	for n, cmd := range cmds {
		op, ok := ParseOp(cmd.Name)
		if !ok || !slices.Contains(allowed, op) {
			var suggest string
			if !ok {
				suggest = Suggest(cmd.Name, names)
			}
			err = &ErrInstruction{
				Ip:      n + 1,
				Name:    cmd.Name,
				Suggest: suggest,
				Err:     ErrDisallowedOpcode,
			}
			return nil, err
		}

		in := Instruction{Op: op, Operand: cmd.Operand, HasOperand: cmd.HasOperand}
		if !in.HasOperand {
			in.Operand = NULL_VACANT
		}
		prog.Instructions = append(prog.Instructions, in)
	}

	return
}
