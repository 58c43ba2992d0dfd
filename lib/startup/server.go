// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package startup

// ServerOptions is what the server needs at construction time.
type ServerOptions struct {
	// VerifyConfigOnly makes the server load and check its
	// configuration during InitServer and do nothing else.
	VerifyConfigOnly bool

	// ConfigPath is the canonical path from --config, or empty for the
	// server's default location.
	ConfigPath string
}

// Server is the capability surface the startup sequence drives.
type Server interface {
	// SetWatchdogFD hands over the inherited liveness descriptor.
	SetWatchdogFD(fd int)

	// SetSafeMode selects the reduced configuration profile.
	SetSafeMode(enabled bool)

	// InitServer loads configuration and, unless only verifying,
	// creates the display socket. socketName may be empty and socketFD
	// may be -1.
	InitServer(socketName string, socketFD int) error

	// ConfigVerified reports whether the configuration loaded by
	// InitServer was valid.
	ConfigVerified() bool

	// Run blocks until the server decides to stop.
	Run() error

	// Cleanup releases everything the server holds. Called once.
	Cleanup()
}

// Constructor creates the server. A returned error means nothing was
// created and nothing needs cleaning up.
type Constructor func(ServerOptions) (Server, error)
