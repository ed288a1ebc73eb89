package posix

import (
	"strings"

	co "github.com/substrate-os/substrate/go/kernel/common"
	"github.com/substrate-os/substrate/go/kernel/vfs"
	"github.com/substrate-os/substrate/go/models/cpu"
	"github.com/substrate-os/substrate/go/native"
)

func (k *PosixKernel) Open(path string, flags uint64, mode uint64) uint64 {
	return ret(vfs.Open(path))
}

func (k *PosixKernel) Openat(dirfd co.Fd, path string, flags uint64, mode uint64) uint64 {
	// the device namespace is absolute; relative lookups have no
	// directory to resolve against
	if !strings.HasPrefix(path, "/") && dirfd != AT_FDCWD {
		return Errno(native.ENOENT)
	}
	return k.Open(path, flags, mode)
}

func (k *PosixKernel) Read(fd co.Fd, buf co.Obuf, size co.Len) uint64 {
	if buf.Addr == 0 && size != 0 {
		return Errno(native.EFAULT)
	}
	// the count is untrusted; refuse it before sizing a kernel buffer
	if !k.M.Mem().RangeValid(buf.Addr, uint64(size), cpu.PROT_WRITE) {
		return Errno(native.EFAULT)
	}
	tmp := make([]byte, size)
	n := vfs.Read(int(fd), tmp)
	if n < 0 {
		return ret(n)
	}
	if n > 0 {
		if err := buf.Pack(tmp[:n]); err != nil {
			return Errno(native.EFAULT)
		}
	}
	return uint64(n)
}

func (k *PosixKernel) Write(fd co.Fd, buf co.Buf, size co.Len) uint64 {
	if buf.Addr == 0 && size != 0 {
		return Errno(native.EFAULT)
	}
	if !k.M.Mem().RangeValid(buf.Addr, uint64(size), cpu.PROT_READ) {
		return Errno(native.EFAULT)
	}
	tmp := make([]byte, size)
	if size > 0 {
		if err := buf.Unpack(tmp); err != nil {
			return Errno(native.EFAULT)
		}
	}
	return ret(vfs.Write(int(fd), tmp))
}

func (k *PosixKernel) Lseek(fd co.Fd, offset co.Off, whence int) uint64 {
	return ret(vfs.Seek(int(fd), int64(offset), whence))
}

// Ioctl decodes the command word and owns the user-memory half of the
// transfer: copy-in for write commands, copy-out for read commands. The
// device only ever sees a kernel buffer of the declared size.
func (k *PosixKernel) Ioctl(fd co.Fd, cmd uint64, arg co.Buf) uint64 {
	c := native.IoctlFromRaw(cmd)
	if arg.Addr == 0 && c.Size != 0 {
		return Errno(native.EFAULT)
	}
	tmp := make([]byte, c.Size)
	if c.Dir&native.IoctlWrite != 0 && c.Size > 0 {
		if err := arg.Unpack(tmp); err != nil {
			return Errno(native.EFAULT)
		}
	}
	res := vfs.Ioctl(int(fd), cmd, tmp)
	if res < 0 {
		return ret(res)
	}
	if c.Dir&native.IoctlRead != 0 && c.Size > 0 {
		if err := arg.Pack(tmp); err != nil {
			return Errno(native.EFAULT)
		}
	}
	return uint64(res)
}

func (k *PosixKernel) Close(fd co.Fd) uint64 {
	return ret(vfs.Close(int(fd)))
}

func (k *PosixKernel) Dup(fd co.Fd) uint64 {
	return ret(vfs.Dup(int(fd)))
}

func (k *PosixKernel) Readv(fd co.Fd, iov co.Buf, count uint64) uint64 {
	var total uint64
	for i := uint64(0); i < count; i++ {
		base, length, err := k.iovec(iov, i)
		if err != nil {
			return Errno(native.EFAULT)
		}
		n := k.Read(fd, co.Obuf{Buf: co.Buf{K: iov.K, Addr: base}}, co.Len(length))
		if int64(n) < 0 {
			return n
		}
		total += n
		if n < length {
			break
		}
	}
	return total
}

func (k *PosixKernel) Writev(fd co.Fd, iov co.Buf, count uint64) uint64 {
	var total uint64
	for i := uint64(0); i < count; i++ {
		base, length, err := k.iovec(iov, i)
		if err != nil {
			return Errno(native.EFAULT)
		}
		n := k.Write(fd, co.Buf{K: iov.K, Addr: base}, co.Len(length))
		if int64(n) < 0 {
			return n
		}
		total += n
		if n < length {
			break
		}
	}
	return total
}

// iovec reads entry i of a struct iovec array: {base, len} target words.
func (k *PosixKernel) iovec(iov co.Buf, i uint64) (uint64, uint64, error) {
	wordSize := uint64(k.M.Bits() / 8)
	base, err := k.M.Mem().ReadUint(iov.Addr+i*2*wordSize, int(wordSize))
	if err != nil {
		return 0, 0, err
	}
	length, err := k.M.Mem().ReadUint(iov.Addr+(i*2+1)*wordSize, int(wordSize))
	if err != nil {
		return 0, 0, err
	}
	return base, length, nil
}

// Fstat validates its arguments but stat itself is an unimplemented
// gap: a caller holding a good descriptor and buffer still gets ENOSYS,
// distinguishable from the rejection errnos.
func (k *PosixKernel) Fstat(fd co.Fd, buf co.Obuf) uint64 {
	if !vfs.Valid(int(fd)) {
		return Errno(native.EBADF)
	}
	if buf.Addr == 0 {
		return Errno(native.EFAULT)
	}
	return Errno(native.ENOSYS)
}

func (k *PosixKernel) Fstatat(dirfd co.Fd, path string, buf co.Obuf, flags uint64) uint64 {
	if buf.Addr == 0 {
		return Errno(native.EFAULT)
	}
	return Errno(native.ENOSYS)
}

func (k *PosixKernel) Faccessat(dirfd co.Fd, path string, mode uint64) uint64 {
	if vfs.Registered(path) {
		return 0
	}
	return Errno(native.ENOENT)
}

func (k *PosixKernel) Fcntl(fd co.Fd, cmd uint64, arg uint64) uint64 {
	return Errno(native.ENOSYS)
}
