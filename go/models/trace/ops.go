// Package trace records syscall activity to a compact binary stream:
// a struc-packed header followed by a snappy-framed run of ops.
package trace

import (
	"io"

	"github.com/lunixbochs/struc"
	"github.com/pkg/errors"
)

const (
	OP_NOP     = 0
	OP_SYSCALL = 1
	OP_FAULT   = 2
)

type Op interface {
	// Enum is the wire discriminator written ahead of the op body.
	Enum() uint8
}

// OpSyscall is one serviced syscall: entry registers and the result.
type OpSyscall struct {
	PC    uint64   `struc:"uint64"`
	Num   uint32   `struc:"uint32"`
	Ret   uint64   `struc:"uint64"`
	NArgs uint8    `struc:"uint8,sizeof=Args"`
	Args  []uint64 `struc:"[]uint64"`
}

func (o *OpSyscall) Enum() uint8 { return OP_SYSCALL }

// OpFault is a trap the kernel could not service.
type OpFault struct {
	PC    uint64 `struc:"uint64"`
	Cause uint64 `struc:"uint64"`
	Addr  uint64 `struc:"uint64"`
}

func (o *OpFault) Enum() uint8 { return OP_FAULT }

func Pack(w io.Writer, op Op) error {
	if _, err := w.Write([]byte{op.Enum()}); err != nil {
		return err
	}
	return struc.Pack(w, op)
}

func Unpack(r io.Reader) (Op, error) {
	var enum [1]byte
	if _, err := io.ReadFull(r, enum[:]); err != nil {
		return nil, err
	}
	var op Op
	switch enum[0] {
	case OP_SYSCALL:
		op = &OpSyscall{}
	case OP_FAULT:
		op = &OpFault{}
	default:
		return nil, errors.Errorf("unknown trace op %d", enum[0])
	}
	if err := struc.Unpack(r, op); err != nil {
		return nil, err
	}
	return op, nil
}
