package trace

import (
	"bytes"
	"io"
	"testing"

	"github.com/substrate-os/substrate/go/arch/riscv64"
	"github.com/substrate-os/substrate/go/models/mock"
)

type bufCloser struct {
	bytes.Buffer
}

func (b *bufCloser) Close() error { return nil }

func TestTraceRoundTrip(t *testing.T) {
	var buf bufCloser
	m := mock.NewMachine(riscv64.Arch)

	w, err := NewWriter(&buf, m)
	if err != nil {
		t.Fatal(err)
	}
	ops := []Op{
		&OpSyscall{PC: 0x80000000, Num: 64, Ret: 5, Args: []uint64{1, 0x1000, 5, 0, 0, 0}},
		&OpSyscall{PC: 0x80000004, Num: 93, Ret: 0, Args: []uint64{0}},
		&OpFault{PC: 0x80000010, Cause: 13, Addr: 0xbad0},
	}
	for _, op := range ops {
		if err := w.Pack(op); err != nil {
			t.Fatal(err)
		}
	}
	w.Close()

	r, err := NewReader(io.NopCloser(&buf.Buffer))
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	if r.Header.Version != 1 || r.Header.Arch != "riscv64" || r.Header.OrderName != "little" {
		t.Errorf("header = %+v", r.Header)
	}

	sys, err := r.Next()
	if err != nil {
		t.Fatal(err)
	}
	op, ok := sys.(*OpSyscall)
	if !ok {
		t.Fatalf("first op is %T", sys)
	}
	if op.Num != 64 || op.Ret != 5 || len(op.Args) != 6 || op.Args[1] != 0x1000 {
		t.Errorf("syscall op = %+v", op)
	}

	if _, err := r.Next(); err != nil {
		t.Fatal(err)
	}
	fault, err := r.Next()
	if err != nil {
		t.Fatal(err)
	}
	if f, ok := fault.(*OpFault); !ok || f.Cause != 13 || f.Addr != 0xbad0 {
		t.Errorf("fault op = %+v", fault)
	}

	if _, err := r.Next(); err != io.EOF {
		t.Errorf("tail read err = %v, want EOF", err)
	}
}

func TestBadMagic(t *testing.T) {
	junk := io.NopCloser(bytes.NewReader(append([]byte("NOPE"), make([]byte, 64)...)))
	if _, err := NewReader(junk); err == nil {
		t.Fatal("bogus header accepted")
	}
}
