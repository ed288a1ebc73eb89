package task

import (
	"sync"
	"testing"

	"github.com/substrate-os/substrate/go/arch"
	"github.com/substrate-os/substrate/go/arch/riscv64"
	"github.com/substrate-os/substrate/go/models"
)

var archOnce sync.Once

func ensureArch(t *testing.T) {
	t.Helper()
	archOnce.Do(func() { arch.Register(riscv64.Arch) })
}

func TestBlockLayout(t *testing.T) {
	ensureArch(t)
	tk := New(7)
	anchor := tk.Anchor()
	if anchor%uint64(arch.TrapFrameAlign()) != 0 {
		t.Errorf("anchor %#x not frame-aligned", anchor)
	}
	if len(tk.Frame()) != arch.TrapFrameSize() {
		t.Errorf("frame size %d", len(tk.Frame()))
	}
	if len(tk.Ctx()) != arch.ThreadCtxSize() {
		t.Errorf("ctx size %d", len(tk.Ctx()))
	}
	if tk.kstackTop%16 != 0 {
		t.Errorf("kstack top %#x misaligned", tk.kstackTop)
	}
}

func TestSpawn(t *testing.T) {
	ensureArch(t)
	tk := Spawn(1, 0x80000000, 0x7fff0000, 0x10000)
	regs := tk.Frame()
	if pc := arch.TrapFrameGetPC(regs); pc != 0x80000000 {
		t.Errorf("pc = %#x", pc)
	}
	if sp := arch.Registered().Ops.TrapFrameGetReg(regs, arch.Registered().SP); sp != 0x7fff0000 {
		t.Errorf("sp = %#x", sp)
	}
	if ret := arch.TrapFrameGetArg(regs, 0); ret != 0 {
		t.Errorf("a0 = %d at entry", ret)
	}
}

func TestFork(t *testing.T) {
	ensureArch(t)
	parent := Spawn(1, 0x80000000, 0x7fff0000, 0x10000)
	pregs := parent.Frame()
	a := arch.Registered()
	// pretend the parent is mid-syscall with live registers
	a.Ops.TrapFrameSetRet(pregs, 99)
	a.Ops.TrapFrameSetPC(pregs, 0x80000040)

	child := Fork(2, parent, 0, 0)
	cregs := child.Frame()
	if pc := arch.TrapFrameGetPC(cregs); pc != 0x80000040 {
		t.Errorf("child pc = %#x", pc)
	}
	if ret := arch.TrapFrameGetArg(cregs, 0); ret != 0 {
		t.Errorf("child sees fork return %d, want 0", ret)
	}
	if ret := arch.TrapFrameGetArg(pregs, 0); ret != 99 {
		t.Errorf("parent frame mutated: a0 = %d", ret)
	}

	// stack and tls overrides
	child2 := Fork(3, parent, 0xb0000000, 0xc000)
	if sp := a.Ops.TrapFrameGetReg(child2.Frame(), a.SP); sp != 0xb0000000 {
		t.Errorf("child2 sp = %#x", sp)
	}
}

func TestAdoptAndSwitch(t *testing.T) {
	ensureArch(t)
	first := Spawn(1, 0x80000000, 0x7fff0000, 0)
	second := Spawn(2, 0x80001000, 0x7ffe0000, 0)

	Adopt(first)
	if Current() != first {
		t.Fatal("adopt did not install task")
	}
	// the reserved register now locates first's frame
	regs := arch.CurrentTrapFrame()
	arch.TrapFrameSetRet(regs, 0x11)
	if got := arch.TrapFrameGetArg(first.Frame(), 0); got != 0x11 {
		t.Fatal("current frame is not the adopted task's frame")
	}

	Switch(second)
	if Current() != second {
		t.Fatal("switch did not install task")
	}
	regs = arch.CurrentTrapFrame()
	arch.TrapFrameSetRet(regs, 0x22)
	if got := arch.TrapFrameGetArg(second.Frame(), 0); got != 0x22 {
		t.Fatal("current frame did not follow the switch")
	}
	if got := arch.TrapFrameGetArg(first.Frame(), 0); got != 0x11 {
		t.Fatal("first task's frame clobbered by switch")
	}

	// and back
	Switch(first)
	regs = arch.CurrentTrapFrame()
	if got := arch.TrapFrameGetArg(regs, 0); got != 0x11 {
		t.Fatalf("first frame lost across round trip: %#x", got)
	}
}

func TestHeaderHoldsId(t *testing.T) {
	ensureArch(t)
	tk := New(0xabcd)
	if tk.ID != 0xabcd {
		t.Fatal("id mismatch")
	}
	if off := models.TrapFrameOffset; off < 8 {
		t.Fatalf("header too small for id: %d", off)
	}
}
