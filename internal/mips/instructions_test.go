// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package mips

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestState() *State {
	img := &ProgramImage{Words: map[uint32]uint32{}, Entry: 0}
	return NewInitialState(img)
}

func encodeR(opcode, rs, rt, rd, shamt, funct uint32) uint32 {
	return (opcode << 26) | (rs << 21) | (rt << 16) | (rd << 11) | (shamt << 6) | funct
}

func encodeI(opcode, rs, rt, imm uint32) uint32 {
	return (opcode << 26) | (rs << 21) | (rt << 16) | (imm & 0xFFFF)
}

func TestDecodeADDU(t *testing.T) {
	word := encodeR(0x00, 9, 10, 8, 0, 0x21) // ADDU $8, $9, $10
	ins := Decode(word)
	require.Equal(t, "ADDU", ins.Op)
	require.Equal(t, uint32(9), ins.RS)
	require.Equal(t, uint32(10), ins.RT)
	require.Equal(t, uint32(8), ins.RD)
}

func TestExecADDU(t *testing.T) {
	st := newTestState()
	st.WriteReg(9, 5)
	st.WriteReg(10, 7)
	ins := Decode(encodeR(0x00, 9, 10, 8, 0, 0x21))
	_, err := execStep(st, ins, st.PC)
	require.NoError(t, err)
	require.Equal(t, uint32(12), st.Regs.Get(8))
}

// DIVU by zero: HI = dividend, LO = 0xFFFFFFFF (MIPS32r2 manual, spec.md
// open-question decision).
func TestDIVUByZero(t *testing.T) {
	st := newTestState()
	st.WriteReg(9, 42)
	st.WriteReg(10, 0)
	ins := Decode(encodeR(0x00, 9, 10, 0, 0, 0x1B))
	_, err := execStep(st, ins, st.PC)
	require.NoError(t, err)
	require.Equal(t, uint32(42), st.HI)
	require.Equal(t, uint32(0xFFFFFFFF), st.LO)
}

// DIV by zero with a negative dividend: HI = dividend, LO = 1 (spec.md open
// question decision; MIPS32r2 manual §DIV).
func TestDIVByZeroNegativeDividend(t *testing.T) {
	st := newTestState()
	st.WriteReg(9, uint32(int32(-7)))
	st.WriteReg(10, 0)
	ins := Decode(encodeR(0x00, 9, 10, 0, 0, 0x1A))
	_, err := execStep(st, ins, st.PC)
	require.NoError(t, err)
	require.Equal(t, uint32(int32(-7)), st.HI)
	require.Equal(t, uint32(1), st.LO)
}

// DIV by zero with a non-negative dividend: LO = -1.
func TestDIVByZeroNonNegativeDividend(t *testing.T) {
	st := newTestState()
	st.WriteReg(9, 7)
	st.WriteReg(10, 0)
	ins := Decode(encodeR(0x00, 9, 10, 0, 0, 0x1A))
	_, err := execStep(st, ins, st.PC)
	require.NoError(t, err)
	require.Equal(t, uint32(7), st.HI)
	require.Equal(t, uint32(int32(-1)), st.LO)
}

// Boundary case at the most negative int32: DIV -2^31 / -1 must not panic
// (the one input pair where two's-complement division overflows).
func TestDIVMinInt32ByNegOne(t *testing.T) {
	st := newTestState()
	st.WriteReg(9, uint32(int32(-1)<<31))
	st.WriteReg(10, uint32(int32(-1)))
	ins := Decode(encodeR(0x00, 9, 10, 0, 0, 0x1A))
	_, err := execStep(st, ins, st.PC)
	require.NoError(t, err)
}

func TestSLTSigned(t *testing.T) {
	st := newTestState()
	st.WriteReg(9, uint32(int32(-1)))
	st.WriteReg(10, 1)
	ins := Decode(encodeR(0x00, 9, 10, 8, 0, 0x2A)) // SLT
	_, err := execStep(st, ins, st.PC)
	require.NoError(t, err)
	require.Equal(t, uint32(1), st.Regs.Get(8))
}

func TestLWSWRoundTrip(t *testing.T) {
	st := newTestState()
	st.WriteReg(9, 0x1000)
	st.WriteReg(10, 0xdeadbeef)
	sw := Decode(encodeI(0x2B, 9, 10, 0)) // SW $10, 0($9)
	_, err := execStep(st, sw, st.PC)
	require.NoError(t, err)

	lw := Decode(encodeI(0x23, 9, 11, 0)) // LW $11, 0($9)
	_, err = execStep(st, lw, st.PC)
	require.NoError(t, err)
	require.Equal(t, uint32(0xdeadbeef), st.Regs.Get(11))
}

func TestSCAlwaysSucceeds(t *testing.T) {
	st := newTestState()
	st.WriteReg(9, 0x2000)
	st.WriteReg(10, 0x11111111)
	sc := Decode(encodeI(0x38, 9, 10, 0))
	out, err := execStep(st, sc, st.PC)
	require.NoError(t, err)
	require.Equal(t, uint32(1), st.Regs.Get(10))
	require.NotNil(t, out.MemAccess)
}

func TestBEQDelayTargetComputation(t *testing.T) {
	st := newTestState()
	st.PC = 0x400
	st.WriteReg(9, 5)
	st.WriteReg(10, 5)
	beq := Decode(encodeI(0x04, 9, 10, 2)) // BEQ $9, $10, +2 words
	out, err := execStep(st, beq, st.PC)
	require.NoError(t, err)
	require.NotNil(t, out.BranchTarget)
	require.Equal(t, uint32(0x400+4+(2<<2)), *out.BranchTarget)
}

func TestJALLinksReturnAddress(t *testing.T) {
	st := newTestState()
	st.PC = 0x1000
	jal := Decode(uint32(0x03)<<26 | 0x40) // JAL target=0x40
	out, err := execStep(st, jal, st.PC)
	require.NoError(t, err)
	require.Equal(t, uint32(0x1008), st.Regs.Get(31))
	require.NotNil(t, out.BranchTarget)
}

func TestSYSCALLCapturesOperands(t *testing.T) {
	st := newTestState()
	st.WriteReg(2, 0x00)
	st.WriteReg(4, 99)
	syscall := Decode(encodeR(0x00, 0, 0, 0, 0, 0x0C))
	out, err := execStep(st, syscall, st.PC)
	require.NoError(t, err)
	require.True(t, out.IsSyscall)
	require.Equal(t, uint32(0x00), out.SyscallNumber)
	require.Equal(t, uint32(99), out.OperandB)
}

func TestUnknownOpcodeFails(t *testing.T) {
	st := newTestState()
	_, err := execStep(st, Instruction{Opcode: 0x3E, Op: ""}, st.PC)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrUnknownOpcode)
}
