// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package watchdog reports liveness to an external supervisor over an
// inherited descriptor.
//
// The supervisor passes one end of a pipe or socket to the compositor.
// A [Heartbeat] writes newline-terminated sd_notify-style messages to
// it:
//
//	READY=1       once, when Run starts
//	WATCHDOG=1    every interval while the server loop is alive
//	STOPPING=1    once, when Run returns because the server is stopping
//
// A supervisor that sees no WATCHDOG=1 for a few intervals can assume
// the compositor hung and restart the session. A write failure (the
// supervisor went away) stops the heartbeat without affecting the
// server.
package watchdog
