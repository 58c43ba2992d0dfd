// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package reaper makes the kernel discard terminated children.
//
// [AutoReap] sets the SIGCHLD disposition to SIG_DFL with SA_NOCLDWAIT.
// Children that exit never become zombies and the process never calls
// wait. The flip side is that waiting on a child no longer reports its
// status: wait4 blocks until the child is gone and then fails with
// ECHILD. Code that runs after AutoReap must start children and release
// them (os.Process.Release), never Wait.
//
// The Go runtime installs its own SIGCHLD handler at startup, and the
// os/signal package cannot express SA_NOCLDWAIT, so on linux/amd64 and
// linux/arm64 the disposition is installed with a raw rt_sigaction.
// Other platforms fall back to ignoring SIGCHLD, which has the same
// no-zombie effect on POSIX.1-2001 systems.
//
// Do not call signal.Notify for SIGCHLD after AutoReap: it would put
// the runtime handler back.
package reaper
