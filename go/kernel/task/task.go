// Package task owns thread control blocks: allocation, spawn and fork,
// and the running-task handoff over the architecture switch primitive.
package task

import (
	"encoding/binary"
	"unsafe"

	"github.com/substrate-os/substrate/go/arch"
	"github.com/substrate-os/substrate/go/models"
)

// kernel stack carved out of each control block
const kstackSize = 4096

// Task is one thread control block. The block layout is dictated by the
// anchor convention: a fixed-size header first, the trap frame at
// models.TrapFrameOffset, then the switch context and kernel stack.
type Task struct {
	ID uint64

	block []byte
	base  int

	frame []byte
	ctx   []byte

	kstackTop uint64
}

func alignUp(n, align int) int {
	return (n + align - 1) &^ (align - 1)
}

// New allocates an empty control block. The frame and context are
// uninitialized; Spawn and Fork fill them.
func New(id uint64) *Task {
	frameAlign := arch.TrapFrameAlign()
	frameSize := arch.TrapFrameSize()
	ctxSize := arch.ThreadCtxSize()

	frameOff := models.TrapFrameOffset
	ctxOff := alignUp(frameOff+frameSize, arch.ThreadCtxAlign())
	kstackOff := alignUp(ctxOff+ctxSize, 16)
	total := kstackOff + kstackSize

	// over-allocate so the header lands on frame alignment
	block := make([]byte, total+frameAlign)
	addr := uintptr(unsafe.Pointer(&block[0]))
	base := 0
	if rem := int(addr % uintptr(frameAlign)); rem != 0 {
		base = frameAlign - rem
	}

	t := &Task{
		ID:        id,
		block:     block,
		base:      base,
		frame:     block[base+frameOff : base+frameOff+frameSize],
		ctx:       block[base+ctxOff : base+ctxOff+ctxSize],
		kstackTop: uint64(addr) + uint64(base+total),
	}
	binary.LittleEndian.PutUint64(block[base:], id)
	return t
}

// Anchor is the control block address the reserved register carries.
func (t *Task) Anchor() uint64 {
	return uint64(uintptr(unsafe.Pointer(&t.block[t.base])))
}

func (t *Task) Frame() []byte { return t.frame }
func (t *Task) Ctx() []byte   { return t.ctx }

// Spawn builds a task that enters user mode from scratch at entry.
func Spawn(id uint64, entry, userSP, userTLS uint64) *Task {
	t := New(id)
	arch.TrapFrameInit(t.frame, userSP, userTLS, entry)
	arch.ThreadCtxInit(t.ctx, t.Anchor(), t.kstackTop)
	return t
}

// Fork builds a child carrying a copy of the parent's trap frame. The
// child returns 0 from the interrupted syscall; a nonzero stack or tls
// overrides the inherited value.
func Fork(id uint64, parent *Task, stack, tls uint64) *Task {
	t := New(id)
	arch.TrapFrameClone(t.frame, parent.frame)
	arch.TrapFrameSetRet(t.frame, 0)
	if stack != 0 {
		arch.TrapFrameSetSP(t.frame, stack)
	}
	if tls != 0 {
		arch.TrapFrameSetTP(t.frame, tls)
	}
	arch.ThreadCtxInit(t.ctx, t.Anchor(), t.kstackTop)
	return t
}

var current *Task

// Current is the task whose anchor the reserved register holds.
func Current() *Task { return current }

// Adopt installs the first task without a predecessor to save into.
// Boot calls this once before the first trap.
func Adopt(t *Task) {
	words := make([]uint64, arch.ThreadCtxSize()/8)
	scratch := unsafe.Slice((*byte)(unsafe.Pointer(&words[0])), arch.ThreadCtxSize())
	arch.SwitchTo(scratch, t.ctx)
	current = t
}

// Switch hands the hart to next, saving the running task's state.
func Switch(next *Task) {
	prev := current
	current = next
	arch.SwitchTo(prev.ctx, next.ctx)
}
