// Package substrate ties the pieces into a bootable machine: memory,
// the registered architecture, the syscall personality, and the trap
// entry point.
package substrate

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/pkg/errors"

	"github.com/substrate-os/substrate/go/arch"
	co "github.com/substrate-os/substrate/go/kernel/common"
	"github.com/substrate-os/substrate/go/kernel/posix"
	"github.com/substrate-os/substrate/go/kernel/task"
	"github.com/substrate-os/substrate/go/kernel/vfs"
	"github.com/substrate-os/substrate/go/models"
	"github.com/substrate-os/substrate/go/models/cpu"
	"github.com/substrate-os/substrate/go/models/trace"
	"github.com/substrate-os/substrate/go/native"
)

// mcause value for an environment call from user mode
const EcallUser = 8

type Machine struct {
	arch    *models.Arch
	mem     *cpu.Mem
	config  *models.Config
	kernel  *posix.PosixKernel
	status  *models.StatusDiff
	tracefd *trace.TraceWriter

	traceOut io.Writer

	nextTid uint64
	tasks   map[uint64]*task.Task
}

var registerOnce sync.Once

func NewMachine(archName string, config *models.Config) (*Machine, error) {
	a, err := arch.GetArch(archName)
	if err != nil {
		return nil, err
	}
	registerOnce.Do(func() { arch.Register(a) })
	if config == nil {
		config = models.NewConfig()
	}
	m := &Machine{
		arch:     a,
		mem:      cpu.NewMem(a.Bits, binary.LittleEndian),
		config:   config,
		status:   &models.StatusDiff{Arch: a},
		traceOut: os.Stderr,
		nextTid:  1,
		tasks:    make(map[uint64]*task.Task),
	}
	m.kernel = posix.NewKernel(m)
	m.kernel.CloneFn = m.clone
	if config.TraceFile != "" {
		f, err := os.Create(config.TraceFile)
		if err != nil {
			return nil, errors.Wrap(err, "failed to create trace file")
		}
		if m.tracefd, err = trace.NewWriter(f, m); err != nil {
			return nil, err
		}
	}
	if !vfs.InstallStdDevice("/dev/console") {
		return nil, errors.New("console device missing")
	}
	return m, nil
}

func (m *Machine) Arch() *models.Arch          { return m.arch }
func (m *Machine) Bits() uint                  { return m.arch.Bits }
func (m *Machine) ByteOrder() binary.ByteOrder { return m.mem.ByteOrder() }
func (m *Machine) Mem() *cpu.Mem               { return m.mem }
func (m *Machine) Config() *models.Config      { return m.config }

func (m *Machine) StrucAt(addr uint64) *models.StrucStream {
	return models.StrucAt(m.mem, addr)
}

// Boot creates and installs the initial task, entering user mode at
// entry on the next return from trap.
func (m *Machine) Boot(entry, userSP, userTLS uint64) *task.Task {
	t := task.Spawn(m.nextTid, entry, userSP, userTLS)
	m.tasks[t.ID] = t
	task.Adopt(t)
	return t
}

func (m *Machine) clone(flags, stack, tls uint64) uint64 {
	m.nextTid++
	child := task.Fork(m.nextTid, task.Current(), stack, tls)
	m.tasks[child.ID] = child
	return child.ID
}

// Exited reports whether the workload called exit.
func (m *Machine) Exited() (bool, int) {
	return m.kernel.Exited, m.kernel.ExitStatus
}

// Trap services the pending trap of the current task. Syscalls are
// dispatched and the saved pc stepped past the ecall; anything else is
// fatal to the workload.
func (m *Machine) Trap() error {
	regs := arch.CurrentTrapFrame()
	cause := arch.TrapFrameGetCause(regs)
	pc := arch.TrapFrameGetPC(regs)
	if cause == EcallUser {
		m.Syscall(regs)
		arch.TrapFrameSetPC(regs, pc+4)
		return nil
	}
	fault := arch.TrapFrameGetFault(regs)
	if m.tracefd != nil {
		m.tracefd.Pack(&trace.OpFault{PC: pc, Cause: cause, Addr: fault})
	}
	return errors.Errorf("unhandled trap: cause %d at %#x (addr %#x)", cause, pc, fault)
}

// Syscall dispatches the call described by a trap frame and writes the
// result back into it.
func (m *Machine) Syscall(regs []byte) {
	num := int(arch.TrapFrameGetNR(regs))
	args := make([]uint64, 6)
	for i := range args {
		args[i] = arch.TrapFrameGetArg(regs, i)
	}

	var sys *co.Syscall
	name := m.arch.SyscallName(num)
	if name != "" {
		sys = m.kernel.Lookup(name)
	}

	var ret uint64
	if sys == nil {
		ret = posix.Errno(native.ENOSYS)
		if m.config.TraceSys {
			fmt.Fprintf(m.traceOut, "%s(%d) = -ENOSYS\n", m.straceName("syscall"), num)
		}
	} else {
		if m.config.TraceSys {
			fmt.Fprint(m.traceOut, m.straceName(name)+sys.Trace(args)[len(name):])
		}
		ret = sys.Call(args)
		if m.config.TraceSys {
			fmt.Fprint(m.traceOut, sys.TraceRet(args, ret))
		}
	}
	arch.TrapFrameSetRet(regs, ret)

	if m.config.TraceSys && m.config.Verbose {
		fmt.Fprint(m.traceOut, m.status.Changes(regs, true).String(m.config.Color))
	}
	if m.tracefd != nil {
		m.tracefd.Pack(&trace.OpSyscall{
			PC:   arch.TrapFrameGetPC(regs),
			Num:  uint32(num),
			Ret:  ret,
			Args: args,
		})
	}
}

func (m *Machine) straceName(name string) string {
	if m.config.Color {
		return models.ColorName(name)
	}
	return name
}

func (m *Machine) Close() {
	if m.tracefd != nil {
		m.tracefd.Close()
		m.tracefd = nil
	}
}
