// Package posix is the syscall personality: handler methods named after
// the calls they service, dispatched by kernel/common over the trap
// frame argument registers.
package posix

import (
	co "github.com/substrate-os/substrate/go/kernel/common"
	"github.com/substrate-os/substrate/go/models"
)

const AT_FDCWD = -100

// CloneFn is installed by the machine layer; the personality itself has
// no thread machinery.
type CloneFn func(flags, stack, tls uint64) uint64

type PosixKernel struct {
	co.KernelBase

	// installed by the machine layer before the first clone
	CloneFn CloneFn

	// set by exit/exit_group
	Exited     bool
	ExitStatus int

	tidAddr uint64
	brk     uint64
	mmapTop uint64
}

func NewKernel(m models.Machine) *PosixKernel {
	k := &PosixKernel{}
	k.M = m
	return k
}

// Lookup finds a handler by syscall name.
func (k *PosixKernel) Lookup(name string) *co.Syscall {
	return co.Lookup(k.M, k, name)
}
