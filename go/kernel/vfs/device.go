// Package vfs is the device-dispatch layer: a fixed file descriptor
// table mapping fds to character devices, plus the named-device
// registry drivers hook into.
package vfs

import (
	"github.com/substrate-os/substrate/go/native"
)

// Device is one open character device. Methods return a byte count or
// result on success and a negated native.Errno on failure; they operate
// on kernel buffers, the syscall layer owns all user-memory copies.
type Device interface {
	Read(p []byte) int64
	Write(p []byte) int64
	Seek(offset int64, whence int) int64
	Ioctl(cmd uint64, arg []byte) int64
	Release() int64
}

// DefaultDevice supplies the conventional refusals for operations a
// driver does not implement. Embed it and override what the device
// supports.
type DefaultDevice struct{}

func (DefaultDevice) Read(p []byte) int64                 { return native.EBADF.Neg() }
func (DefaultDevice) Write(p []byte) int64                { return native.EBADF.Neg() }
func (DefaultDevice) Seek(offset int64, whence int) int64 { return native.ESPIPE.Neg() }
func (DefaultDevice) Ioctl(cmd uint64, arg []byte) int64  { return native.ENOTTY.Neg() }
func (DefaultDevice) Release() int64                      { return 0 }

// DeviceFactory opens a fresh device instance for one fd.
type DeviceFactory func() Device

type factoryEnt struct {
	path string
	open DeviceFactory
}

var factories []factoryEnt

// RegisterDevice binds a path to a driver. The first registration for a
// path wins; later ones for the same path are ignored.
func RegisterDevice(path string, open DeviceFactory) {
	for _, f := range factories {
		if f.path == path {
			return
		}
	}
	factories = append(factories, factoryEnt{path, open})
}

func lookupFactory(path string) DeviceFactory {
	for _, f := range factories {
		if f.path == path {
			return f.open
		}
	}
	return nil
}
