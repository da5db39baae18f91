// Package cpu implements the instruction set, interpreter and assembler for
// the robox mailroom robot.
//
// The machine consists of an instruction pointer (ip), the robot's hand, a
// row of vacant cells, and two conveyors: the inbox the robot takes values
// from and the outbox it delivers them to. Instructions are addressed from
// 1; vacant cells are addressed from 0.
//
// The assembler provides a small assembly language for robot programs,
// supporting labels, equates, and compile-time expression evaluation.
package cpu
