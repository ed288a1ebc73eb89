// Package mock provides a minimal Machine for kernel tests: a real
// simulated memory with no hart behind it.
package mock

import (
	"encoding/binary"

	"github.com/substrate-os/substrate/go/models"
	"github.com/substrate-os/substrate/go/models/cpu"
)

type Machine struct {
	arch   *models.Arch
	mem    *cpu.Mem
	config *models.Config
}

func NewMachine(arch *models.Arch) *Machine {
	return &Machine{
		arch:   arch,
		mem:    cpu.NewMem(64, binary.LittleEndian),
		config: &models.Config{Strsize: 32},
	}
}

func (m *Machine) Arch() *models.Arch          { return m.arch }
func (m *Machine) Bits() uint                  { return 64 }
func (m *Machine) ByteOrder() binary.ByteOrder { return binary.LittleEndian }
func (m *Machine) Mem() *cpu.Mem               { return m.mem }
func (m *Machine) Config() *models.Config      { return m.config }

func (m *Machine) StrucAt(addr uint64) *models.StrucStream {
	return models.StrucAt(m.mem, addr)
}
