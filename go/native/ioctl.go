// Package native holds target-ABI wire encodings shared by the kernel
// and its drivers.
package native

import (
	"fmt"
)

// ioctl command word, standard Linux generic layout:
//
//	bits 0-7:   sequence number (NR)
//	bits 8-15:  type/magic
//	bits 16-29: size (14 bits)
//	bits 30-31: direction
type IoctlDir uint8

// Direction wire values. The generic ABI uses 1=write, 2=read; the same
// mapping is used for both decode and encode so the codec round-trips.
const (
	IoctlNone IoctlDir = iota
	IoctlWrite
	IoctlRead
	IoctlReadWrite
)

func (d IoctlDir) String() string {
	switch d {
	case IoctlNone:
		return "none"
	case IoctlWrite:
		return "write"
	case IoctlRead:
		return "read"
	case IoctlReadWrite:
		return "read/write"
	}
	return fmt.Sprintf("IoctlDir(%d)", uint8(d))
}

const (
	IoctlNrBits   = 8
	IoctlTypeBits = 8
	IoctlSizeBits = 14
	IoctlDirBits  = 2

	IoctlNrShift   = 0
	IoctlTypeShift = IoctlNrShift + IoctlNrBits
	IoctlSizeShift = IoctlTypeShift + IoctlTypeBits
	IoctlDirShift  = IoctlSizeShift + IoctlSizeBits

	// largest payload an ioctl command can describe
	IoctlSizeMax = 1<<IoctlSizeBits - 1
)

type IoctlCmd struct {
	Dir   IoctlDir
	Magic uint8
	Nr    uint8
	Size  uint16
}

func (c IoctlCmd) String() string {
	return fmt.Sprintf("ioctl{%s magic=%#x nr=%d size=%d}", c.Dir, c.Magic, c.Nr, c.Size)
}

// NewIoctl builds a command. A size above IoctlSizeMax cannot be
// encoded and is a programming error at the call site, so it panics
// rather than returning an error.
func NewIoctl(dir IoctlDir, magic, nr uint8, size int) IoctlCmd {
	if size > IoctlSizeMax {
		panic(fmt.Sprintf("ioctl size too large: %d > %d", size, IoctlSizeMax))
	}
	return IoctlCmd{Dir: dir, Magic: magic, Nr: nr, Size: uint16(size)}
}

// IoctlFromRaw decodes a raw command word.
func IoctlFromRaw(raw uint64) IoctlCmd {
	return IoctlCmd{
		Nr:    uint8(raw >> IoctlNrShift),
		Magic: uint8(raw >> IoctlTypeShift),
		Size:  uint16(raw>>IoctlSizeShift) & IoctlSizeMax,
		Dir:   IoctlDir(raw>>IoctlDirShift) & 3,
	}
}

// Raw encodes the command back into a word. Exact inverse of
// IoctlFromRaw for any in-range command.
func (c IoctlCmd) Raw() uint64 {
	return uint64(c.Nr)<<IoctlNrShift |
		uint64(c.Magic)<<IoctlTypeShift |
		uint64(c.Size&IoctlSizeMax)<<IoctlSizeShift |
		uint64(c.Dir&3)<<IoctlDirShift
}

// Shorthand constructors mirroring the C _IO/_IOR/_IOW/_IOWR macros.
func IO(magic, nr uint8) uint64 { return NewIoctl(IoctlNone, magic, nr, 0).Raw() }

func IOR(magic, nr uint8, size int) uint64 { return NewIoctl(IoctlRead, magic, nr, size).Raw() }

func IOW(magic, nr uint8, size int) uint64 { return NewIoctl(IoctlWrite, magic, nr, size).Raw() }

func IOWR(magic, nr uint8, size int) uint64 { return NewIoctl(IoctlReadWrite, magic, nr, size).Raw() }
