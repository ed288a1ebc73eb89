package native

import (
	"testing"
)

func TestIoctlDecode(t *testing.T) {
	// hand-built read command: magic 'T', nr 0x13, 8-byte payload
	raw := uint64(2)<<IoctlDirShift | uint64(8)<<IoctlSizeShift | uint64('T')<<IoctlTypeShift | 0x13
	cmd := IoctlFromRaw(raw)
	if cmd.Dir != IoctlRead {
		t.Errorf("dir = %v, want read", cmd.Dir)
	}
	if cmd.Magic != 'T' {
		t.Errorf("magic = %#x, want %#x", cmd.Magic, 'T')
	}
	if cmd.Nr != 0x13 {
		t.Errorf("nr = %d, want %d", cmd.Nr, 0x13)
	}
	if cmd.Size != 8 {
		t.Errorf("size = %d, want 8", cmd.Size)
	}
}

func TestIoctlRoundTrip(t *testing.T) {
	// encode(decode(raw)) == raw over the interesting corners
	raws := []uint64{
		0,
		0xffffffff,
		IO('z', 1),
		IOR('z', 2, 64),
		IOW('z', 3, 1),
		IOWR('z', 4, IoctlSizeMax),
	}
	for _, raw := range raws {
		if got := IoctlFromRaw(raw).Raw(); got != raw {
			t.Errorf("encode(decode(%#x)) = %#x", raw, got)
		}
	}
	// decode(encode(cmd)) == cmd for every direction
	for dir := IoctlNone; dir <= IoctlReadWrite; dir++ {
		cmd := NewIoctl(dir, 0xab, 7, 16383)
		if got := IoctlFromRaw(cmd.Raw()); got != cmd {
			t.Errorf("decode(encode(%v)) = %v", cmd, got)
		}
	}
}

func TestIoctlSizeLimit(t *testing.T) {
	// 16383 is the boundary; it must encode
	cmd := NewIoctl(IoctlWrite, 'z', 9, IoctlSizeMax)
	if got := IoctlFromRaw(cmd.Raw()); got.Size != IoctlSizeMax {
		t.Errorf("boundary size lost: %d", got.Size)
	}
	defer func() {
		if recover() == nil {
			t.Error("NewIoctl accepted an oversized command")
		}
	}()
	NewIoctl(IoctlWrite, 'z', 9, IoctlSizeMax+1)
}

func TestIoctlDirMapping(t *testing.T) {
	// wire bits: 0=none, 1=write, 2=read, 3=read/write
	for _, tc := range []struct {
		bits uint64
		dir  IoctlDir
	}{
		{0, IoctlNone},
		{1, IoctlWrite},
		{2, IoctlRead},
		{3, IoctlReadWrite},
	} {
		cmd := IoctlFromRaw(tc.bits << IoctlDirShift)
		if cmd.Dir != tc.dir {
			t.Errorf("dir bits %d decoded as %v, want %v", tc.bits, cmd.Dir, tc.dir)
		}
		if back := cmd.Raw() >> IoctlDirShift; back != tc.bits {
			t.Errorf("dir %v encoded as %d, want %d", tc.dir, back, tc.bits)
		}
	}
}
