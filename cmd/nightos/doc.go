// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Nightos is the NightOS compositor entry point.
//
// It wires the real process collaborators (environment, privilege
// probe, SIGCHLD reaper, real-time scheduler and the headless
// compositor) into the startup sequence and exits with its result:
//
//	nightos                     start a session on the first free wayland-N
//	nightos --socket night-0    start on $XDG_RUNTIME_DIR/night-0
//	nightos -c ~/nightos.yaml --verify-config
//
// Run "nightos --help" for the complete argument list.
package main
