package vfs

import (
	"encoding/binary"
	"io"
	"os"

	"github.com/substrate-os/substrate/go/native"
)

// console ioctls
var (
	// window size query: rows, cols as two little-endian uint16
	ConsoleGetSize = native.IOR('t', 1, 4)
	// line discipline: 1 enables echo
	ConsoleSetEcho = native.IOW('t', 2, 1)
)

// consoleDevice is the hosted UART stand-in, bridged to the process
// streams.
type consoleDevice struct {
	DefaultDevice
	in   io.Reader
	out  io.Writer
	echo bool
}

func newConsole() *consoleDevice {
	return &consoleDevice{in: os.Stdin, out: os.Stdout, echo: true}
}

func (c *consoleDevice) Read(p []byte) int64 {
	n, err := c.in.Read(p)
	if n == 0 && err != nil {
		return 0
	}
	if c.echo {
		c.out.Write(p[:n])
	}
	return int64(n)
}

func (c *consoleDevice) Write(p []byte) int64 {
	n, err := c.out.Write(p)
	if err != nil {
		return native.EBADF.Neg()
	}
	return int64(n)
}

func (c *consoleDevice) Ioctl(cmd uint64, arg []byte) int64 {
	switch cmd {
	case ConsoleGetSize:
		if len(arg) < 4 {
			return native.EINVAL.Neg()
		}
		binary.LittleEndian.PutUint16(arg[0:], 24)
		binary.LittleEndian.PutUint16(arg[2:], 80)
		return 0
	case ConsoleSetEcho:
		if len(arg) < 1 {
			return native.EINVAL.Neg()
		}
		c.echo = arg[0] != 0
		return 0
	}
	return native.ENOTTY.Neg()
}

func init() {
	RegisterDevice("/dev/console", func() Device { return newConsole() })
}
