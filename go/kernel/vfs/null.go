package vfs

type nullDevice struct {
	DefaultDevice
}

func (nullDevice) Read(p []byte) int64  { return 0 }
func (nullDevice) Write(p []byte) int64 { return int64(len(p)) }

func (nullDevice) Seek(offset int64, whence int) int64 { return 0 }

func init() {
	RegisterDevice("/dev/null", func() Device { return nullDevice{} })
}
