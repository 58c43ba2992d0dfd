// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build linux && (amd64 || arm64)

package reaper

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"
)

const (
	signalDefault   = 0 // SIG_DFL
	saNoChildWait   = 0x2
	kernelSigsetLen = 8
)

// kernelSigaction is struct sigaction as rt_sigaction(2) reads it on
// amd64 and arm64.
type kernelSigaction struct {
	handler  uintptr
	flags    uint64
	restorer uintptr
	mask     uint64
}

// AutoReap installs SIG_DFL with SA_NOCLDWAIT for SIGCHLD.
func AutoReap() error {
	action := kernelSigaction{
		handler: signalDefault,
		flags:   saNoChildWait,
	}
	_, _, errno := unix.RawSyscall6(unix.SYS_RT_SIGACTION,
		uintptr(unix.SIGCHLD),
		uintptr(unsafe.Pointer(&action)),
		0,
		kernelSigsetLen,
		0, 0)
	if errno != 0 {
		return fmt.Errorf("rt_sigaction(SIGCHLD): %w", errno)
	}
	return nil
}
