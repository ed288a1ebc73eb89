package riscv64

import (
	"unsafe"

	"github.com/substrate-os/substrate/go/models"
)

// Trap frame slot enums. The layout mirrors the order the trap entry
// stub spills x1..x31, followed by the mepc/mcause/mtval CSRs.
const (
	RA = iota // x1
	SP
	GP
	TP
	T0
	T1
	T2
	S0
	S1
	A0
	A1
	A2
	A3
	A4
	A5
	A6
	A7
	S2
	S3
	S4
	S5
	S6
	S7
	S8
	S9
	S10
	S11
	T3
	T4
	T5
	T6
	MEPC
	MCAUSE
	MTVAL

	frameWords
)

const (
	FrameSize  = frameWords * 8
	FrameAlign = 16
)

// frame reinterprets a trap frame region as register words. regs must
// reference exactly FrameSize bytes at FrameAlign alignment; that is a
// precondition of every accessor below, not a runtime check.
func frame(regs []byte) *[frameWords]uint64 {
	return (*[frameWords]uint64)(unsafe.Pointer(&regs[0]))
}

func trapFrameSize() int  { return FrameSize }
func trapFrameAlign() int { return FrameAlign }

func trapFrameClone(dst, src []byte) {
	copy(dst[:FrameSize], src[:FrameSize])
}

// trapFrameInit prepares a frame to enter user mode at pc. The return
// value register is forced to 0, which is what a cloned child observes
// as its fork return.
func trapFrameInit(regs []byte, userSP, userTLS, pc uint64) {
	f := frame(regs)
	*f = [frameWords]uint64{}
	f[SP] = userSP
	f[TP] = userTLS
	f[MEPC] = pc
	f[A0] = 0
}

func trapFrameSetRet(regs []byte, val uint64) { frame(regs)[A0] = val }
func trapFrameSetSP(regs []byte, sp uint64)   { frame(regs)[SP] = sp }
func trapFrameSetTP(regs []byte, tp uint64)   { frame(regs)[TP] = tp }
func trapFrameSetPC(regs []byte, pc uint64)   { frame(regs)[MEPC] = pc }

func trapFrameGetPC(regs []byte) uint64    { return frame(regs)[MEPC] }
func trapFrameGetNR(regs []byte) uint64    { return frame(regs)[A7] }
func trapFrameGetCause(regs []byte) uint64 { return frame(regs)[MCAUSE] }
func trapFrameGetFault(regs []byte) uint64 { return frame(regs)[MTVAL] }

// Out-of-range argument indexes read as 0 to keep the dispatch path
// branch-free on the caller side.
func trapFrameGetArg(regs []byte, idx int) uint64 {
	if idx < 0 || idx >= 6 {
		return 0
	}
	return frame(regs)[A0+idx]
}

func trapFrameGetReg(regs []byte, enum int) uint64 {
	return frame(regs)[enum]
}

// currentTrapFrame locates the running thread's frame: the kernel tp
// register always holds the current thread anchor, and the frame sits
// at a fixed offset inside the control block.
func currentTrapFrame() []byte {
	anchor := uintptr(hart.tp)
	p := (*byte)(unsafe.Pointer(anchor + models.TrapFrameOffset))
	return unsafe.Slice(p, FrameSize)
}
