// Package riscv64 is the RV64 backend: trap frame layout, thread
// context switching, and the syscall register convention.
package riscv64

import (
	"github.com/substrate-os/substrate/go/models"
)

var Arch = &models.Arch{
	Name: "riscv64",
	Bits: 64,

	NR:   A7,
	Args: []int{A0, A1, A2, A3, A4, A5},
	Ret:  A0,
	PC:   MEPC,
	SP:   SP,

	Ops: models.ArchOps{
		ThreadCtxSize:   threadCtxSize,
		ThreadCtxAlign:  threadCtxAlign,
		ThreadCtxInit:   threadCtxInit,
		ThreadCtxSetSP:  threadCtxSetSP,
		ThreadCtxSetTP:  threadCtxSetTP,
		ThreadCtxSetRA:  threadCtxSetRA,
		ThreadCtxSetRet: threadCtxSetRet,

		SwitchTo:    switchTo,
		RetFromFork: retFromFork,

		TrapFrameSize:   trapFrameSize,
		TrapFrameAlign:  trapFrameAlign,
		TrapFrameClone:  trapFrameClone,
		TrapFrameInit:   trapFrameInit,
		TrapFrameSetRet: trapFrameSetRet,
		TrapFrameSetSP:  trapFrameSetSP,
		TrapFrameSetTP:  trapFrameSetTP,
		TrapFrameSetPC:  trapFrameSetPC,

		CurrentTrapFrame:  currentTrapFrame,
		TrapFrameGetPC:    trapFrameGetPC,
		TrapFrameGetNR:    trapFrameGetNR,
		TrapFrameGetArg:   trapFrameGetArg,
		TrapFrameGetCause: trapFrameGetCause,
		TrapFrameGetFault: trapFrameGetFault,
		TrapFrameGetReg:   trapFrameGetReg,
	},

	Syscalls: linuxSyscalls,

	Regs: map[int]string{
		RA: "ra", SP: "sp", GP: "gp", TP: "tp",
		T0: "t0", T1: "t1", T2: "t2",
		S0: "s0", S1: "s1",
		A0: "a0", A1: "a1", A2: "a2", A3: "a3",
		A4: "a4", A5: "a5", A6: "a6", A7: "a7",
		S2: "s2", S3: "s3", S4: "s4", S5: "s5",
		S6: "s6", S7: "s7", S8: "s8", S9: "s9",
		S10: "s10", S11: "s11",
		T3: "t3", T4: "t4", T5: "t5", T6: "t6",
		MEPC: "mepc", MCAUSE: "mcause", MTVAL: "mtval",
	},
	DefaultRegs: []string{
		"ra", "sp", "gp", "tp",
		"a0", "a1", "a2", "a3", "a4", "a5", "a6", "a7",
	},
}
