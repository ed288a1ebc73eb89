package models

import (
	"encoding/binary"

	"github.com/substrate-os/substrate/go/models/cpu"
)

// Machine is the hosted kernel instance as seen by syscall handlers:
// the registered architecture, the user memory image, and config.
type Machine interface {
	Arch() *Arch
	Bits() uint
	ByteOrder() binary.ByteOrder
	Mem() *cpu.Mem
	StrucAt(addr uint64) *StrucStream
	Config() *Config
}
