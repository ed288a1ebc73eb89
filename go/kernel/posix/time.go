package posix

import (
	"time"

	co "github.com/substrate-os/substrate/go/kernel/common"
	"github.com/substrate-os/substrate/go/native"
)

type timespec struct {
	Sec  int64
	Nsec int64
}

func (k *PosixKernel) ClockGettime(clockid uint64, tp co.Obuf) uint64 {
	if tp.Addr == 0 {
		return Errno(native.EFAULT)
	}
	now := time.Now()
	ts := timespec{Sec: now.Unix(), Nsec: int64(now.Nanosecond())}
	if err := tp.Pack(&ts); err != nil {
		return Errno(native.EFAULT)
	}
	return 0
}
