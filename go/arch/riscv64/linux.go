package riscv64

// Generic-ABI syscall numbers, as used by the riscv64 Linux port.
var linuxSyscalls = map[int]string{
	17:  "getcwd",
	23:  "dup",
	25:  "fcntl",
	29:  "ioctl",
	34:  "mkdirat",
	35:  "unlinkat",
	48:  "faccessat",
	56:  "openat",
	57:  "close",
	61:  "getdents64",
	62:  "lseek",
	63:  "read",
	64:  "write",
	65:  "readv",
	66:  "writev",
	78:  "readlinkat",
	79:  "fstatat",
	80:  "fstat",
	93:  "exit",
	94:  "exit_group",
	96:  "set_tid_address",
	113: "clock_gettime",
	124: "sched_yield",
	172: "getpid",
	178: "gettid",
	214: "brk",
	215: "munmap",
	220: "clone",
	222: "mmap",
	226: "mprotect",
	261: "prlimit64",
	278: "getrandom",
}
