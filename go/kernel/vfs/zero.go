package vfs

type zeroDevice struct {
	DefaultDevice
}

func (zeroDevice) Read(p []byte) int64 {
	for i := range p {
		p[i] = 0
	}
	return int64(len(p))
}

func (zeroDevice) Write(p []byte) int64 { return int64(len(p)) }

func (zeroDevice) Seek(offset int64, whence int) int64 { return 0 }

func init() {
	RegisterDevice("/dev/zero", func() Device { return zeroDevice{} })
}
