// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package compositor is the headless NightOS server driven by the
// startup sequence.
//
// It owns the session resources a compositor owns (the display socket
// clients connect to, the per-instance control socket, the configuration
// and the exec_once children) but speaks no display protocol: display
// clients are accepted, counted and held open until they disconnect.
//
// Lifecycle:
//
//	New            validates options, reads XDG_RUNTIME_DIR
//	InitServer     loads configuration; unless verifying, binds the
//	               display socket, creates the instance directory and
//	               control socket, and exports the session variables
//	Run            serves until SIGINT, SIGTERM or an "exit" request
//	Cleanup        closes sockets, joins goroutines, removes the
//	               instance directory and socket files
//
// The display socket lives at $XDG_RUNTIME_DIR/<name> with an adjacent
// <name>.lock held by flock for the life of the server. Without an
// explicit name the first free wayland-1 through wayland-32 is taken.
package compositor
