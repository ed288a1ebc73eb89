package vfs

import (
	"sync/atomic"

	"github.com/substrate-os/substrate/go/native"
)

const (
	MaxFds = 256

	// fds 0-2 carry the standard streams and are never handed out
	firstUserFd = 3
)

// openFile is one open device instance. Descriptors produced by dup
// share it; the device is released when the last one closes.
type openFile struct {
	dev  Device
	refs int
}

// Table is a file descriptor table. Descriptor allocation scans
// circularly from a hint so recently closed fds are not immediately
// reused.
type Table struct {
	files [MaxFds]*openFile
	hint  int
}

func NewTable() *Table {
	return &Table{hint: firstUserFd}
}

// InstallStd wires a device into the three standard descriptors.
// Boot-time only.
func (t *Table) InstallStd(dev Device) {
	of := &openFile{dev: dev, refs: 3}
	t.files[0] = of
	t.files[1] = of
	t.files[2] = of
}

func (t *Table) allocFd() int {
	start := t.hint
	if start < firstUserFd || start >= MaxFds {
		start = firstUserFd
	}
	fd := start
	for {
		if t.files[fd] == nil {
			t.hint = fd + 1
			if t.hint >= MaxFds {
				t.hint = firstUserFd
			}
			return fd
		}
		fd++
		if fd >= MaxFds {
			fd = firstUserFd
		}
		if fd == start {
			return -int(native.EMFILE)
		}
	}
}

func (t *Table) get(fd int) *openFile {
	if fd < 0 || fd >= MaxFds {
		return nil
	}
	return t.files[fd]
}

// Open resolves a registered device path and binds a fresh instance to
// a new descriptor.
func (t *Table) Open(path string) int64 {
	open := lookupFactory(path)
	if open == nil {
		return native.ENOENT.Neg()
	}
	fd := t.allocFd()
	if fd < 0 {
		return int64(fd)
	}
	t.files[fd] = &openFile{dev: open(), refs: 1}
	return int64(fd)
}

// Dup binds a second descriptor to the same open device.
func (t *Table) Dup(fd int) int64 {
	of := t.get(fd)
	if of == nil {
		return native.EBADF.Neg()
	}
	newFd := t.allocFd()
	if newFd < 0 {
		return int64(newFd)
	}
	of.refs++
	t.files[newFd] = of
	return int64(newFd)
}

func (t *Table) Read(fd int, p []byte) int64 {
	of := t.get(fd)
	if of == nil {
		return native.EBADF.Neg()
	}
	return of.dev.Read(p)
}

func (t *Table) Write(fd int, p []byte) int64 {
	of := t.get(fd)
	if of == nil {
		return native.EBADF.Neg()
	}
	return of.dev.Write(p)
}

func (t *Table) Seek(fd int, offset int64, whence int) int64 {
	of := t.get(fd)
	if of == nil {
		return native.EBADF.Neg()
	}
	return of.dev.Seek(offset, whence)
}

func (t *Table) Ioctl(fd int, cmd uint64, arg []byte) int64 {
	of := t.get(fd)
	if of == nil {
		return native.EBADF.Neg()
	}
	return of.dev.Ioctl(cmd, arg)
}

// Close drops a descriptor, releasing the device with the last
// reference. The standard streams stay open for the life of the
// process; closing them succeeds without releasing.
func (t *Table) Close(fd int) int64 {
	of := t.get(fd)
	if of == nil {
		return native.EBADF.Neg()
	}
	if fd < firstUserFd {
		return 0
	}
	t.files[fd] = nil
	of.refs--
	if of.refs == 0 {
		return of.dev.Release()
	}
	return 0
}

// Valid reports whether fd is bound in the process table.
func Valid(fd int) bool {
	enter()
	defer leave()
	return std.get(fd) != nil
}

// Registered reports whether a device path exists, without opening it.
func Registered(path string) bool {
	return lookupFactory(path) != nil
}

// Process-wide table. The guard cell catches reentry from a nested trap
// mid-operation, which the single-hart model forbids.

var (
	std   = NewTable()
	inUse int32
)

func enter() {
	if !atomic.CompareAndSwapInt32(&inUse, 0, 1) {
		panic("vfs: descriptor table reentered")
	}
}

func leave() {
	atomic.StoreInt32(&inUse, 0)
}

func InstallStd(dev Device) {
	enter()
	defer leave()
	std.InstallStd(dev)
}

// InstallStdDevice opens a registered path onto the standard
// descriptors. Boot wires the console through this.
func InstallStdDevice(path string) bool {
	enter()
	defer leave()
	open := lookupFactory(path)
	if open == nil {
		return false
	}
	std.InstallStd(open())
	return true
}

func Open(path string) int64 {
	enter()
	defer leave()
	return std.Open(path)
}

func Dup(fd int) int64 {
	enter()
	defer leave()
	return std.Dup(fd)
}

func Read(fd int, p []byte) int64 {
	enter()
	defer leave()
	return std.Read(fd, p)
}

func Write(fd int, p []byte) int64 {
	enter()
	defer leave()
	return std.Write(fd, p)
}

func Seek(fd int, offset int64, whence int) int64 {
	enter()
	defer leave()
	return std.Seek(fd, offset, whence)
}

func Ioctl(fd int, cmd uint64, arg []byte) int64 {
	enter()
	defer leave()
	return std.Ioctl(fd, cmd, arg)
}

func Close(fd int) int64 {
	enter()
	defer leave()
	return std.Close(fd)
}
