package cpu

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

// Mem wraps MemSim with address masking and byte order. It is the user
// memory image every untrusted buffer address resolves through: no
// kernel code dereferences a user address directly.
type Mem struct {
	bits uint
	// methods reject addresses that do not fit inside mask,
	// calculated by NewMem using ^uint64(0) >> (64 - bits)
	mask uint64
	sim  *MemSim

	order binary.ByteOrder
}

func NewMem(bits uint, order binary.ByteOrder) *Mem {
	return &Mem{
		bits:  bits,
		mask:  ^uint64(0) >> (64 - bits),
		sim:   &MemSim{},
		order: order,
	}
}

func (m *Mem) ByteOrder() binary.ByteOrder {
	return m.order
}

func (m *Mem) MemMapProt(addr, size uint64, prot int) error {
	if (addr+size)&m.mask != addr+size {
		return errors.New("region outside memory range")
	}
	m.sim.Map(addr, size, prot, false)
	return nil
}

func (m *Mem) MemMap(addr, size uint64) error {
	return m.MemMapProt(addr, size, PROT_READ|PROT_WRITE)
}

func (m *Mem) MemProt(addr, size uint64, prot int) error {
	if mapped, _ := m.sim.RangeValid(addr, size, 0); !mapped {
		return errors.New("range not mapped")
	}
	m.sim.Prot(addr, size, prot)
	return nil
}

func (m *Mem) MemUnmap(addr, size uint64) error {
	if mapped, _ := m.sim.RangeValid(addr, size, 0); !mapped {
		return errors.New("range not mapped")
	}
	m.sim.Unmap(addr, size)
	return nil
}

func (m *Mem) Maps() Pages {
	return m.sim.Mem
}

func (m *Mem) MemReadInto(p []byte, addr uint64) error {
	return m.sim.Read(addr, p, 0)
}

func (m *Mem) MemRead(addr, size uint64) ([]byte, error) {
	p := make([]byte, size)
	if err := m.MemReadInto(p, addr); err != nil {
		return nil, err
	}
	return p, nil
}

func (m *Mem) MemWrite(addr uint64, p []byte) error {
	return m.sim.Write(addr, p, 0)
}

// RangeValid reports whether [addr, addr+size) fits the address space
// and is fully mapped with prot access. Untrusted sizes pass through
// here before anything is allocated from them.
func (m *Mem) RangeValid(addr, size uint64, prot int) bool {
	if size == 0 {
		return true
	}
	end := addr + size
	if end < addr || end&m.mask != end {
		return false
	}
	mapped, protOk := m.sim.RangeValid(addr, size, prot)
	if prot == 0 {
		return mapped
	}
	return mapped && protOk
}

// ReadStrAt reads a NUL-terminated string in small gulps, halving the
// gulp on a fault so a string near the end of a mapping still resolves.
func (m *Mem) ReadStrAt(addr uint64) (string, error) {
	var ret []byte
	var tmp [64]byte
	for {
		n := uint64(len(tmp))
		for n > 0 {
			if err := m.MemReadInto(tmp[:n], addr); err == nil {
				break
			}
			n /= 2
		}
		if n == 0 {
			return "", &MemError{Addr: addr, Size: len(tmp), Enum: MEM_READ_UNMAPPED}
		}
		for i := uint64(0); i < n; i++ {
			if tmp[i] == 0 {
				return string(append(ret, tmp[:i]...)), nil
			}
		}
		ret = append(ret, tmp[:n]...)
		addr += n
	}
}

func (m *Mem) ReadUint(addr uint64, size int) (uint64, error) {
	if size < 1 || size > 8 {
		return 0, errors.Errorf("unsupported uint size: %d", size)
	}
	p, err := m.MemRead(addr, uint64(size))
	if err != nil {
		return 0, err
	}
	switch size {
	case 8:
		return m.order.Uint64(p), nil
	case 4:
		return uint64(m.order.Uint32(p)), nil
	case 2:
		return uint64(m.order.Uint16(p)), nil
	case 1:
		return uint64(p[0]), nil
	}
	return 0, errors.Errorf("unsupported uint size: %d", size)
}

func (m *Mem) WriteUint(addr uint64, size int, val uint64) error {
	var buf [8]byte
	switch size {
	case 8:
		m.order.PutUint64(buf[:8], val)
	case 4:
		m.order.PutUint32(buf[:4], uint32(val))
	case 2:
		m.order.PutUint16(buf[:2], uint16(val))
	case 1:
		buf[0] = byte(val)
	default:
		return errors.Errorf("unsupported uint size: %d", size)
	}
	return m.MemWrite(addr, buf[:size])
}
