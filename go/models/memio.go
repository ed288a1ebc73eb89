package models

import (
	"github.com/substrate-os/substrate/go/models/cpu"
)

type MemReader struct {
	Mem  *cpu.Mem
	Addr uint64
}

func (m *MemReader) Read(p []byte) (int, error) {
	if err := m.Mem.MemReadInto(p, m.Addr); err != nil {
		return 0, err
	}
	m.Addr += uint64(len(p))
	return len(p), nil
}

type MemWriter struct {
	Mem  *cpu.Mem
	Addr uint64
}

func (m *MemWriter) Write(p []byte) (int, error) {
	if err := m.Mem.MemWrite(m.Addr, p); err != nil {
		return 0, err
	}
	m.Addr += uint64(len(p))
	return len(p), nil
}

type memReadWriter struct {
	*MemReader
	*MemWriter
}

// StrucAt returns a struc pack/unpack stream positioned at addr in mem.
func StrucAt(mem *cpu.Mem, addr uint64) *StrucStream {
	return &StrucStream{
		Stream: &memReadWriter{
			&MemReader{Mem: mem, Addr: addr},
			&MemWriter{Mem: mem, Addr: addr},
		},
		Order: mem.ByteOrder(),
	}
}
