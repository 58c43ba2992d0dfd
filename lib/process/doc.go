// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package process holds the exit-code plumbing shared by NightOS
// binaries. Components that need to end the process early return an
// [ExitError] instead of calling os.Exit themselves; only main() turns
// the code into a real exit, which keeps every early-exit branch
// testable.
//
//   - [ExitError] carries a code whose diagnostic has already been
//     written.
//   - [ExitCode] maps any error to the code main() should exit with.
//   - [Fatal] reports an error on stderr and exits 1, for binaries
//     whose logger may not exist yet.
//   - [ExitAbort] is the status used for unrecoverable precondition
//     failures.
package process
