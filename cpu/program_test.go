package cpu

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAllowed(t *testing.T) {
	assert := assert.New(t)

	ops, err := ParseAllowed([]string{"inbox", "outbox", "inbox", "jump"})
	assert.NoError(err)
	assert.Equal([]Op{OP_INBOX, OP_OUTBOX, OP_JUMP}, ops)

	ops, err = ParseAllowed(nil)
	assert.NoError(err)
	assert.Empty(ops)
}

func TestParseAllowed_Unknown(t *testing.T) {
	assert := assert.New(t)

	ops, err := ParseAllowed([]string{"inbox", "copy_to"})
	assert.Nil(ops)
	assert.ErrorIs(err, ErrUnknownOpcode)

	var name *ErrOpcodeName
	if assert.True(errors.As(err, &name)) {
		assert.Equal("copy_to", name.Name)
		assert.Equal("copyto", name.Suggest)
	}
	assert.Contains(err.Error(), "did you mean 'copyto'")

	_, err = ParseAllowed([]string{"teleport"})
	assert.ErrorIs(err, ErrUnknownOpcode)
	assert.NotContains(err.Error(), "did you mean")
}

func TestSuggest(t *testing.T) {
	assert := assert.New(t)

	names := OpNames()
	assert.Equal("outbox", Suggest("outnox", names))
	assert.Equal("jumpifzero", Suggest("jumpifzer0", names))
	assert.Equal("", Suggest("inbox", names))
	assert.Equal("", Suggest("xyzzy", names))
	assert.Equal("", Suggest("outnox", nil))
}

func TestCompile(t *testing.T) {
	assert := assert.New(t)

	allowed := []Op{OP_INBOX, OP_OUTBOX, OP_COPY_TO, OP_JUMP}
	prog, err := Compile(allowed, []Command{
		Cmd("inbox"),
		CmdArg("copyto", 0),
		Cmd("outbox"),
		CmdArg("jump", 1),
	})
	require.NoError(t, err)

	assert.Equal(4, prog.Len())
	assert.Equal([]Instruction{
		MakeInstruction(OP_INBOX),
		MakeInstructionArg(OP_COPY_TO, 0),
		MakeInstruction(OP_OUTBOX),
		MakeInstructionArg(OP_JUMP, 1),
	}, prog.Instructions)

	// A command given NULL_VACANT explicitly keeps its operand.
	prog, err = Compile(allowed, []Command{CmdArg("inbox", NULL_VACANT)})
	require.NoError(t, err)
	assert.True(prog.Instructions[0].HasOperand)
}

func TestCompile_Disallowed(t *testing.T) {
	assert := assert.New(t)

	allowed := []Op{OP_INBOX, OP_OUTBOX}

	table := [](struct {
		name    string
		program []Command
		ip      int
		suggest string
	}){
		{"misspelled", []Command{Cmd("inbox"), Cmd("outbox"), Cmd("inbox"), Cmd("outnox")}, 4, "outbox"},
		{"not_allowed", []Command{Cmd("inbox"), CmdArg("copyto", 0)}, 2, ""},
		{"unknown", []Command{Cmd("teleport")}, 1, ""},
	}

	for _, entry := range table {
		prog, err := Compile(allowed, entry.program)
		assert.Nil(prog, entry.name)
		assert.ErrorIs(err, ErrDisallowedOpcode, entry.name)

		var inst *ErrInstruction
		if assert.True(errors.As(err, &inst), entry.name) {
			assert.Equal(entry.ip, inst.Ip, entry.name)
			assert.Equal(entry.suggest, inst.Suggest, entry.name)
		}
	}
}

func TestProgram_Fetch(t *testing.T) {
	assert := assert.New(t)

	prog := &Program{
		Instructions: []Instruction{
			MakeInstruction(OP_INBOX),
			MakeInstruction(OP_OUTBOX),
		},
	}

	_, ok := prog.Fetch(0)
	assert.False(ok)

	in, ok := prog.Fetch(1)
	assert.True(ok)
	assert.Equal(OP_INBOX, in.Op)

	in, ok = prog.Fetch(2)
	assert.True(ok)
	assert.Equal(OP_OUTBOX, in.Op)

	_, ok = prog.Fetch(3)
	assert.False(ok)

	assert.False(prog.Valid(0))
	assert.True(prog.Valid(2))
	assert.False(prog.Valid(3))

	var ips []int
	for ip := range prog.All() {
		ips = append(ips, ip)
	}
	assert.Equal([]int{1, 2}, ips)
}

func TestProgram_Debug(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	prog, err := asm.Parse(strings.NewReader(strings.Join([]string{
		"; copy the inbox",
		"loop:",
		"  inbox",
		"  outbox",
		"  jump loop",
	}, "\n")))
	require.NoError(t, err)

	dbg := prog.Debug(1)
	assert.NotNil(dbg.Opcode)
	assert.Equal(3, dbg.LineNo)
	assert.Equal(1, dbg.Ip)

	dbg = prog.Debug(3)
	assert.NotNil(dbg.Opcode)
	assert.Equal(5, dbg.LineNo)
	assert.Equal([]string{"jump", "loop"}, dbg.Words)

	dbg = prog.Debug(4)
	assert.Nil(dbg.Opcode)

	assert.Equal([]Command{Cmd("inbox"), Cmd("outbox"), CmdArg("jump", 1)}, prog.Commands())
	assert.True(slices.Equal(prog.Commands(), prog.Commands()))
}
