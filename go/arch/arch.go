// Package arch holds the process-wide architecture binding. Exactly one
// backend is installed, before the first trap; everything above this
// package reaches the hardware through the free functions here.
package arch

import (
	"sync/atomic"
	"unsafe"

	"github.com/pkg/errors"

	"github.com/substrate-os/substrate/go/arch/riscv64"
	"github.com/substrate-os/substrate/go/models"
)

var archMap = map[string]*models.Arch{
	"riscv64": riscv64.Arch,
}

// GetArch looks up a backend by name without installing it.
func GetArch(name string) (*models.Arch, error) {
	a, ok := archMap[name]
	if !ok {
		return nil, errors.Errorf("arch '%s' not found", name)
	}
	return a, nil
}

// current holds the installed backend. Write-once: published with an
// atomic pointer so readers on the trap path never need a lock.
var current unsafe.Pointer

// Register installs a backend as the process architecture. Installing a
// second one is a boot-sequence bug and panics.
func Register(a *models.Arch) {
	if a == nil {
		panic("arch: Register(nil)")
	}
	if !atomic.CompareAndSwapPointer(&current, nil, unsafe.Pointer(a)) {
		panic("arch: already registered")
	}
}

// Registered returns the installed backend, panicking if boot never
// installed one. Traps before registration cannot be serviced.
func Registered() *models.Arch {
	p := atomic.LoadPointer(&current)
	if p == nil {
		panic("arch: no architecture registered")
	}
	return (*models.Arch)(p)
}

// resetForTest clears the installed backend. Test hook only.
func resetForTest() {
	atomic.StorePointer(&current, nil)
}

// Free functions over the installed backend's op table. These are the
// forms the task, trap, and VFS layers call.

func ThreadCtxSize() int  { return Registered().Ops.ThreadCtxSize() }
func ThreadCtxAlign() int { return Registered().Ops.ThreadCtxAlign() }

func ThreadCtxInit(ctx []byte, anchor, kstackTop uint64) {
	Registered().Ops.ThreadCtxInit(ctx, anchor, kstackTop)
}

func ThreadCtxSetSP(ctx []byte, sp uint64)   { Registered().Ops.ThreadCtxSetSP(ctx, sp) }
func ThreadCtxSetTP(ctx []byte, tp uint64)   { Registered().Ops.ThreadCtxSetTP(ctx, tp) }
func ThreadCtxSetRA(ctx []byte, ra uint64)   { Registered().Ops.ThreadCtxSetRA(ctx, ra) }
func ThreadCtxSetRet(ctx []byte, val uint64) { Registered().Ops.ThreadCtxSetRet(ctx, val) }

func SwitchTo(old, next []byte) { Registered().Ops.SwitchTo(old, next) }
func RetFromFork() uint64       { return Registered().Ops.RetFromFork() }

func TrapFrameSize() int  { return Registered().Ops.TrapFrameSize() }
func TrapFrameAlign() int { return Registered().Ops.TrapFrameAlign() }

func TrapFrameClone(dst, src []byte) { Registered().Ops.TrapFrameClone(dst, src) }

func TrapFrameInit(regs []byte, userSP, userTLS, pc uint64) {
	Registered().Ops.TrapFrameInit(regs, userSP, userTLS, pc)
}

func TrapFrameSetRet(regs []byte, val uint64) { Registered().Ops.TrapFrameSetRet(regs, val) }
func TrapFrameSetSP(regs []byte, sp uint64)   { Registered().Ops.TrapFrameSetSP(regs, sp) }
func TrapFrameSetTP(regs []byte, tp uint64)   { Registered().Ops.TrapFrameSetTP(regs, tp) }
func TrapFrameSetPC(regs []byte, pc uint64)   { Registered().Ops.TrapFrameSetPC(regs, pc) }

func CurrentTrapFrame() []byte { return Registered().Ops.CurrentTrapFrame() }

func TrapFrameGetPC(regs []byte) uint64    { return Registered().Ops.TrapFrameGetPC(regs) }
func TrapFrameGetNR(regs []byte) uint64    { return Registered().Ops.TrapFrameGetNR(regs) }
func TrapFrameGetCause(regs []byte) uint64 { return Registered().Ops.TrapFrameGetCause(regs) }
func TrapFrameGetFault(regs []byte) uint64 { return Registered().Ops.TrapFrameGetFault(regs) }

func TrapFrameGetArg(regs []byte, idx int) uint64 {
	return Registered().Ops.TrapFrameGetArg(regs, idx)
}
