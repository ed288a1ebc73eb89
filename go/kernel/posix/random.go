package posix

import (
	"crypto/rand"

	co "github.com/substrate-os/substrate/go/kernel/common"
	"github.com/substrate-os/substrate/go/models/cpu"
	"github.com/substrate-os/substrate/go/native"
)

func (k *PosixKernel) Getrandom(buf co.Obuf, size uint64, flags uint32) uint64 {
	if buf.Addr == 0 && size != 0 {
		return Errno(native.EFAULT)
	}
	if !k.M.Mem().RangeValid(buf.Addr, size, cpu.PROT_WRITE) {
		return Errno(native.EFAULT)
	}
	tmp := make([]byte, size)
	n, _ := rand.Read(tmp)
	tmp = tmp[:n]
	if err := buf.Pack(tmp); err != nil {
		return Errno(native.EFAULT)
	}
	return uint64(n)
}
