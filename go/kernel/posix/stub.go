package posix

import (
	co "github.com/substrate-os/substrate/go/kernel/common"
	"github.com/substrate-os/substrate/go/native"
)

func (k *PosixKernel) Getcwd(buf co.Obuf, size co.Len) uint64 {
	// the device namespace has a single root
	cwd := []byte("/\x00")
	if int(size) < len(cwd) {
		return Errno(native.EINVAL)
	}
	if err := buf.Pack(cwd); err != nil {
		return Errno(native.EFAULT)
	}
	return uint64(len(cwd))
}

func (k *PosixKernel) Mkdirat(dirfd co.Fd, path string, mode uint64) uint64 {
	return Errno(native.ENOSYS)
}

func (k *PosixKernel) Unlinkat(dirfd co.Fd, path string, flags uint64) uint64 {
	return Errno(native.ENOSYS)
}

func (k *PosixKernel) Readlinkat(dirfd co.Fd, path string, buf co.Obuf, size co.Len) uint64 {
	return Errno(native.ENOSYS)
}

func (k *PosixKernel) Getdents64(fd co.Fd, buf co.Obuf, size co.Len) uint64 {
	return Errno(native.ENOSYS)
}
