package posix

import (
	co "github.com/substrate-os/substrate/go/kernel/common"
	"github.com/substrate-os/substrate/go/native"
)

// single-process model: one pid, one initial tid
const initPid = 1

func (k *PosixKernel) Exit(code int) uint64 {
	k.Exited = true
	k.ExitStatus = code
	return 0
}

func (k *PosixKernel) ExitGroup(code int) uint64 {
	return k.Exit(code)
}

func (k *PosixKernel) Getpid() uint64 { return initPid }
func (k *PosixKernel) Gettid() uint64 { return initPid }

func (k *PosixKernel) SetTidAddress(addr co.Ptr) uint64 {
	k.tidAddr = uint64(addr)
	return initPid
}

func (k *PosixKernel) SchedYield() uint64 { return 0 }

func (k *PosixKernel) Prlimit64(pid uint64, resource uint64, newlim co.Buf, oldlim co.Obuf) uint64 {
	return 0
}

func (k *PosixKernel) Clone(flags uint64, stack co.Ptr, parentTid co.Ptr, tls co.Ptr, childTid co.Ptr) uint64 {
	if k.CloneFn == nil {
		return Errno(native.ENOSYS)
	}
	return k.CloneFn(flags, uint64(stack), uint64(tls))
}
