// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build !linux || !(amd64 || arm64)

package reaper

import (
	"os/signal"
	"syscall"
)

// AutoReap ignores SIGCHLD, which stops the kernel from keeping zombie
// entries for exited children.
func AutoReap() error {
	signal.Ignore(syscall.SIGCHLD)
	return nil
}
