package riscv64

import (
	"testing"
	"unsafe"
)

// newFrame allocates a properly aligned trap frame region.
func newFrame() []byte {
	words := make([]uint64, frameWords)
	return unsafe.Slice((*byte)(unsafe.Pointer(&words[0])), FrameSize)
}

func TestFrameGeometry(t *testing.T) {
	if FrameSize != 34*8 {
		t.Errorf("frame size = %d, want %d", FrameSize, 34*8)
	}
	if FrameSize%FrameAlign != 0 {
		t.Errorf("frame size %d not a multiple of alignment %d", FrameSize, FrameAlign)
	}
	if MTVAL != frameWords-1 {
		t.Errorf("mtval is not the last slot: %d vs %d", MTVAL, frameWords-1)
	}
}

func TestFrameInit(t *testing.T) {
	regs := newFrame()
	f := frame(regs)
	for i := range f {
		f[i] = 0xdeadbeef
	}
	trapFrameInit(regs, 0x7fff0000, 0x10000, 0x80000000)
	if f[SP] != 0x7fff0000 || f[TP] != 0x10000 || f[MEPC] != 0x80000000 {
		t.Errorf("init left sp=%#x tp=%#x pc=%#x", f[SP], f[TP], f[MEPC])
	}
	if f[A0] != 0 {
		t.Errorf("init frame returns %d to user, want 0", f[A0])
	}
	for _, r := range []int{RA, GP, T0, S0, A7, T6, MCAUSE, MTVAL} {
		if f[r] != 0 {
			t.Errorf("slot %d not cleared: %#x", r, f[r])
		}
	}
}

func TestFrameSyscallRegs(t *testing.T) {
	regs := newFrame()
	f := frame(regs)
	f[A7] = 63
	for i := 0; i < 6; i++ {
		f[A0+i] = uint64(100 + i)
	}
	if nr := trapFrameGetNR(regs); nr != 63 {
		t.Errorf("nr = %d, want 63", nr)
	}
	for i := 0; i < 6; i++ {
		if arg := trapFrameGetArg(regs, i); arg != uint64(100+i) {
			t.Errorf("arg %d = %d, want %d", i, arg, 100+i)
		}
	}
	// out of range reads as zero
	for _, idx := range []int{-1, 6, 7, 100} {
		if arg := trapFrameGetArg(regs, idx); arg != 0 {
			t.Errorf("arg %d = %d, want 0", idx, arg)
		}
	}
	trapFrameSetRet(regs, 0xfffffffffffffff2)
	if f[A0] != 0xfffffffffffffff2 {
		t.Errorf("ret landed in %#x", f[A0])
	}
}

func TestFrameClone(t *testing.T) {
	src, dst := newFrame(), newFrame()
	f := frame(src)
	for i := range f {
		f[i] = uint64(i) * 3
	}
	trapFrameClone(dst, src)
	g := frame(dst)
	for i := range g {
		if g[i] != uint64(i)*3 {
			t.Fatalf("slot %d = %d after clone", i, g[i])
		}
	}
	// clone then zero the child's return, the fork pattern
	trapFrameSetRet(dst, 0)
	if g[A0] != 0 {
		t.Errorf("child ret = %d", g[A0])
	}
	if f[A0] == 0 {
		t.Errorf("parent frame mutated by child setret")
	}
}

func TestFrameFaultRegs(t *testing.T) {
	regs := newFrame()
	f := frame(regs)
	f[MCAUSE] = 13
	f[MTVAL] = 0xbad0
	f[MEPC] = 0x80000010
	if c := trapFrameGetCause(regs); c != 13 {
		t.Errorf("cause = %d", c)
	}
	if v := trapFrameGetFault(regs); v != 0xbad0 {
		t.Errorf("fault addr = %#x", v)
	}
	if pc := trapFrameGetPC(regs); pc != 0x80000010 {
		t.Errorf("pc = %#x", pc)
	}
}
