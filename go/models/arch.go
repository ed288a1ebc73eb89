package models

import (
	"fmt"
	"sort"

	"github.com/lunixbochs/fvbommel-util/sortorder"
)

type Reg struct {
	Enum int
	Name string
}

type RegVal struct {
	Reg
	Val uint64
}

type regList []Reg

func (r regList) Len() int           { return len(r) }
func (r regList) Swap(i, j int)      { r[i], r[j] = r[j], r[i] }
func (r regList) Less(i, j int) bool { return sortorder.NaturalLess(r[i].Name, r[j].Name) }

type regMap map[int]string

func (r regMap) Items() regList {
	ret := make(regList, 0, len(r))
	for e, n := range r {
		ret = append(ret, Reg{e, n})
	}
	return ret
}

// ArchOps is the fixed operation table every architecture backend fills
// in. Exactly one table is installed process-wide (see arch.Register)
// before the first trap, context switch, or VFS call.
//
// Every trap frame or thread context argument must reference a region of
// exactly TrapFrameSize()/ThreadCtxSize() bytes with the matching
// alignment. That is a precondition, not a runtime check: these run on
// the trap hot path.
type ArchOps struct {
	ThreadCtxSize   func() int
	ThreadCtxAlign  func() int
	ThreadCtxInit   func(ctx []byte, anchor, kstackTop uint64)
	ThreadCtxSetSP  func(ctx []byte, sp uint64)
	ThreadCtxSetTP  func(ctx []byte, tp uint64)
	ThreadCtxSetRA  func(ctx []byte, ra uint64)
	ThreadCtxSetRet func(ctx []byte, val uint64)

	// SwitchTo saves the live register state into old and resumes next.
	// Cooperative only: must be called at defined yield points.
	SwitchTo    func(old, next []byte)
	RetFromFork func() uint64

	TrapFrameSize   func() int
	TrapFrameAlign  func() int
	TrapFrameClone  func(dst, src []byte)
	TrapFrameInit   func(regs []byte, userSP, userTLS, pc uint64)
	TrapFrameSetRet func(regs []byte, val uint64)
	TrapFrameSetSP  func(regs []byte, sp uint64)
	TrapFrameSetTP  func(regs []byte, tp uint64)
	TrapFrameSetPC  func(regs []byte, pc uint64)

	// CurrentTrapFrame locates the running thread's frame through the
	// reserved-register/anchor convention.
	CurrentTrapFrame  func() []byte
	TrapFrameGetPC    func(regs []byte) uint64
	TrapFrameGetNR    func(regs []byte) uint64
	TrapFrameGetArg   func(regs []byte, idx int) uint64
	TrapFrameGetCause func(regs []byte) uint64
	TrapFrameGetFault func(regs []byte) uint64

	// TrapFrameGetReg reads a single register slot by enum. Diagnostic
	// path only (register dumps, strace diffs).
	TrapFrameGetReg func(regs []byte, enum int) uint64
}

type Arch struct {
	Name string
	Bits uint

	// trap frame slots used by the syscall convention
	NR   int
	Args []int
	Ret  int
	PC   int
	SP   int

	Ops ArchOps

	// syscall number -> name for dispatch and tracing
	Syscalls map[int]string

	Regs        regMap
	DefaultRegs []string

	// sorted for RegDump
	regList regList
}

func (a *Arch) String() string {
	return fmt.Sprintf("<Arch %s>", a.Name)
}

func (a *Arch) SyscallName(num int) string {
	return a.Syscalls[num]
}

// RegDump reads every named register out of a trap frame, in natural
// name order.
func (a *Arch) RegDump(regs []byte) []RegVal {
	if a.regList == nil {
		rl := a.Regs.Items()
		sort.Sort(rl)
		a.regList = rl
	}
	ret := make([]RegVal, len(a.regList))
	for i, r := range a.regList {
		ret[i] = RegVal{r, a.Ops.TrapFrameGetReg(regs, r.Enum)}
	}
	return ret
}
