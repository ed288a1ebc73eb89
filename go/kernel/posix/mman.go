package posix

import (
	co "github.com/substrate-os/substrate/go/kernel/common"
	"github.com/substrate-os/substrate/go/models/cpu"
	"github.com/substrate-os/substrate/go/native"
)

const (
	pageSize = 0x1000

	// fallback bases when the program gives no hint
	brkBase  = 0x10000000
	mmapBase = 0x40000000
)

func align(addr uint64) uint64 {
	return (addr + pageSize - 1) &^ uint64(pageSize-1)
}

func (k *PosixKernel) Brk(addr uint64) uint64 {
	if k.brk == 0 {
		k.brk = brkBase
	}
	if addr == 0 {
		return k.brk
	}
	if addr > k.brk {
		size := align(addr) - k.brk
		if err := k.M.Mem().MemMapProt(k.brk, size, cpu.PROT_READ|cpu.PROT_WRITE); err != nil {
			return k.brk
		}
	}
	k.brk = addr
	return k.brk
}

func (k *PosixKernel) Mmap(addr uint64, size co.Len, prot uint64, flags uint64, fd co.Fd, off co.Off) uint64 {
	if size == 0 {
		return Errno(native.EINVAL)
	}
	if k.mmapTop == 0 {
		k.mmapTop = mmapBase
	}
	if addr == 0 {
		addr = k.mmapTop
		k.mmapTop = align(addr + uint64(size))
	}
	if err := k.M.Mem().MemMapProt(addr, align(uint64(size)), int(prot)); err != nil {
		return Errno(native.EINVAL)
	}
	return addr
}

func (k *PosixKernel) Munmap(addr uint64, size co.Len) uint64 {
	if err := k.M.Mem().MemUnmap(addr, align(uint64(size))); err != nil {
		return Errno(native.EINVAL)
	}
	return 0
}

func (k *PosixKernel) Mprotect(addr uint64, size co.Len, prot uint64) uint64 {
	if err := k.M.Mem().MemProt(addr, align(uint64(size)), int(prot)); err != nil {
		return Errno(native.EINVAL)
	}
	return 0
}
