package common

import (
	"testing"

	"github.com/substrate-os/substrate/go/models"
	"github.com/substrate-os/substrate/go/models/cpu"
	"github.com/substrate-os/substrate/go/models/mock"
)

type testKernel struct {
	KernelBase
	exitCode int
	wrote    []byte
}

func (k *testKernel) Exit(code int) uint64 {
	k.exitCode = code
	return 44
}

func (k *testKernel) Write(fd Fd, buf Buf, size Len) uint64 {
	p := make([]byte, size)
	if err := k.M.Mem().MemReadInto(p, buf.Addr); err != nil {
		return 0
	}
	k.wrote = p
	return uint64(size)
}

func newTestKernel(m models.Machine) *testKernel {
	return &testKernel{KernelBase: KernelBase{M: m}}
}

func TestKernelDispatch(t *testing.T) {
	m := mock.NewMachine(nil)
	kernel := newTestKernel(m)
	sys := Lookup(m, kernel, "exit")
	if sys == nil {
		t.Fatal("exit not found in dispatch table")
	}
	ret := sys.Call([]uint64{43})
	if kernel.exitCode != 43 {
		t.Fatal("syscall failed")
	}
	if ret != 44 {
		t.Fatal("syscall return failed")
	}
}

func TestKernelLookupMiss(t *testing.T) {
	m := mock.NewMachine(nil)
	if sys := Lookup(m, newTestKernel(m), "no_such_call"); sys != nil {
		t.Fatal("bogus syscall resolved")
	}
}

func TestArgCodec(t *testing.T) {
	m := mock.NewMachine(nil)
	if err := m.Mem().MemMapProt(0x1000, 0x1000, cpu.PROT_ALL); err != nil {
		t.Fatal(err)
	}
	if err := m.Mem().MemWrite(0x1000, []byte("hello")); err != nil {
		t.Fatal(err)
	}
	kernel := newTestKernel(m)
	sys := Lookup(m, kernel, "write")
	if sys == nil {
		t.Fatal("write not found")
	}
	if ret := sys.Call([]uint64{1, 0x1000, 5}); ret != 5 {
		t.Fatalf("write returned %d", ret)
	}
	if string(kernel.wrote) != "hello" {
		t.Fatalf("handler saw %q", kernel.wrote)
	}
}

func TestCamelToSnake(t *testing.T) {
	for in, want := range map[string]string{
		"Exit":          "exit",
		"SetTidAddress": "set_tid_address",
		"Getdents64":    "getdents64",
		"Ioctl":         "ioctl",
	} {
		if got := camelToSnakeCase(in); got != want {
			t.Errorf("camelToSnakeCase(%q) = %q, want %q", in, got, want)
		}
	}
}
