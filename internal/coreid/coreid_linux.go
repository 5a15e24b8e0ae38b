//go:build linux
// +build linux

// File: internal/coreid/coreid_linux.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Linux implementation using the getcpu(2) syscall via golang.org/x/sys/unix.
// No cgo is required, unlike the sched_getcpu() cgo call this package's
// ancestor used for the same purpose.

package coreid

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

func platformCurrentCPU() (int, bool) {
	var cpu, node uint32
	_, _, errno := unix.Syscall(unix.SYS_GETCPU, uintptr(unsafe.Pointer(&cpu)), uintptr(unsafe.Pointer(&node)), 0)
	if errno != 0 {
		return 0, false
	}
	return int(cpu), true
}
