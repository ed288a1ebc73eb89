package native

import "fmt"

// Errno is a target-ABI error number (riscv64 generic values). Kernel
// paths return errors to userspace as the negated value in the return
// register.
type Errno int64

const (
	ENOENT       Errno = 2
	EBADF        Errno = 9
	EFAULT       Errno = 14
	EINVAL       Errno = 22
	EMFILE       Errno = 24
	ENOTTY       Errno = 25
	ESPIPE       Errno = 29
	ENAMETOOLONG Errno = 36
	ENOSYS       Errno = 38
)

var errnoNames = map[Errno]string{
	ENOENT:       "ENOENT",
	EBADF:        "EBADF",
	EFAULT:       "EFAULT",
	EINVAL:       "EINVAL",
	EMFILE:       "EMFILE",
	ENOTTY:       "ENOTTY",
	ESPIPE:       "ESPIPE",
	ENAMETOOLONG: "ENAMETOOLONG",
	ENOSYS:       "ENOSYS",
}

func (e Errno) Error() string {
	if name, ok := errnoNames[e]; ok {
		return name
	}
	return fmt.Sprintf("errno(%d)", int64(e))
}

// Neg is the syscall-return form.
func (e Errno) Neg() int64 {
	return -int64(e)
}
