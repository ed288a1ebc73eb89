package riscv64

import (
	"unsafe"
)

// threadCtx is the minimum state switchTo saves and restores: the
// callee-saved registers plus ra, sp, tp and the a0 return slot.
type threadCtx struct {
	ra uint64
	sp uint64
	tp uint64
	a0 uint64
	s  [12]uint64
}

const (
	CtxSize  = int(unsafe.Sizeof(threadCtx{}))
	CtxAlign = 16
)

// hart is the single hardware thread's live register file for the
// switch set. The hosted build keeps it as plain state; on metal these
// are the machine registers themselves.
var hart threadCtx

// ctx reinterprets a thread context region. Same size/alignment
// precondition as trap frames.
func ctx(p []byte) *threadCtx {
	return (*threadCtx)(unsafe.Pointer(&p[0]))
}

func threadCtxSize() int  { return CtxSize }
func threadCtxAlign() int { return CtxAlign }

// threadCtxInit arranges for the first switch into this context to
// resume at the fork-return trampoline on the given kernel stack, with
// the thread anchor installed in the reserved tp register.
func threadCtxInit(p []byte, anchor, kstackTop uint64) {
	c := ctx(p)
	*c = threadCtx{}
	c.sp = kstackTop
	c.tp = anchor
	c.ra = retFromFork()
}

func threadCtxSetSP(p []byte, sp uint64)   { ctx(p).sp = sp }
func threadCtxSetTP(p []byte, tp uint64)   { ctx(p).tp = tp }
func threadCtxSetRA(p []byte, ra uint64)   { ctx(p).ra = ra }
func threadCtxSetRet(p []byte, val uint64) { ctx(p).a0 = val }

// switchTo saves the live switch set into old and restores it from
// next. Cooperative only; interrupts cannot occur mid-switch in this
// model.
func switchTo(old, next []byte) {
	*ctx(old) = hart
	hart = *ctx(next)
}

// retFromForkMarker stands in for the assembly trampoline a forked
// thread resumes at; only its address matters to the hosted build.
var retFromForkMarker byte

func retFromFork() uint64 {
	return uint64(uintptr(unsafe.Pointer(&retFromForkMarker)))
}
