package posix

import (
	"github.com/substrate-os/substrate/go/native"
)

const UINT64_MAX = 0xFFFFFFFFFFFFFFFF

// Errno converts to the syscall-return form: the negated error number,
// reinterpreted as the full-width return register.
func Errno(e native.Errno) uint64 {
	return uint64(e.Neg())
}

// ret folds a signed device-layer result into the return register.
func ret(n int64) uint64 {
	return uint64(n)
}
