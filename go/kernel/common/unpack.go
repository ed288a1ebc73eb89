package common

import (
	"errors"

	"github.com/lunixbochs/argjoy"
)

// Unpacker reads a typed struct argument out of user memory. A kernel
// personality installs one to support struct-pointer syscall args.
type Unpacker func(Buf, []uint64, interface{}) error

// UnknownUnpackType is returned by an Unpacker for argument types it
// does not handle, letting codec fallthrough continue.
var UnknownUnpackType = errors.New("kernel.Unpack() does not support type")

func (k *KernelBase) unpack(arg interface{}, vals []interface{}) error {
	// guard against null pointers
	if v, ok := vals[0].(uint64); ok && v == 0 {
		return nil
	}
	if k.Unpack == nil {
		return argjoy.NoMatch
	}
	regs := make([]uint64, len(vals))
	for i, v := range vals {
		reg, ok := v.(uint64)
		if !ok {
			return argjoy.NoMatch
		}
		regs[i] = reg
	}
	buf := Buf{K: k, Addr: regs[0]}
	if err := k.Unpack(buf, regs, arg); err != nil {
		if err == UnknownUnpackType {
			return argjoy.NoMatch
		}
		return err
	}
	return nil
}
