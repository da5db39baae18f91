package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOp_Names(t *testing.T) {
	assert := assert.New(t)

	assert.Equal([]string{
		"inbox", "outbox", "add", "sub",
		"copyto", "copyfrom", "jump", "jumpifzero",
	}, OpNames())

	for _, op := range Ops() {
		parsed, ok := ParseOp(op.String())
		assert.True(ok, op.String())
		assert.Equal(op, parsed)
		assert.True(op.Valid())
	}

	_, ok := ParseOp("outnox")
	assert.False(ok)
	_, ok = ParseOp("INBOX")
	assert.False(ok)

	assert.False(Op(8).Valid())
	assert.Equal("Op(8)", Op(8).String())
}

func TestOp_Operand(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		op      Op
		operand bool
		jump    bool
	}){
		{OP_INBOX, false, false},
		{OP_OUTBOX, false, false},
		{OP_ADD, true, false},
		{OP_SUB, true, false},
		{OP_COPY_TO, true, false},
		{OP_COPY_FROM, true, false},
		{OP_JUMP, true, true},
		{OP_JUMP_IF_ZERO, true, true},
	}

	for _, entry := range table {
		assert.Equal(entry.operand, entry.op.Operand(), entry.op.String())
		assert.Equal(entry.jump, entry.op.Jump(), entry.op.String())
	}
}

func TestInstruction_String(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("inbox", MakeInstruction(OP_INBOX).String())
	assert.Equal(NULL_VACANT, MakeInstruction(OP_INBOX).Operand)
	assert.Equal("copyto 3", MakeInstructionArg(OP_COPY_TO, 3).String())
	assert.Equal("inbox -1", MakeInstructionArg(OP_INBOX, NULL_VACANT).String())

	assert.Equal("outbox", Cmd("outbox").String())
	assert.Equal("jump 2", CmdArg("jump", 2).String())
}
