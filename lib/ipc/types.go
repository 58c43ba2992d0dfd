// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ipc

import "path/filepath"

// Control protocol actions.
const (
	ActionVersion = "version"
	ActionStatus  = "status"
	ActionExit    = "exit"
)

// InstanceVariable names the variable carrying the instance signature.
const InstanceVariable = "NIGHTOS_INSTANCE_SIGNATURE"

// Request is sent by a control client.
type Request struct {
	// Action is ActionVersion, ActionStatus or ActionExit.
	Action string `cbor:"action"`
}

// Response answers a Request.
type Response struct {
	OK    bool   `cbor:"ok"`
	Error string `cbor:"error,omitempty"`

	// Version is the version request text (version and status).
	Version string `cbor:"version,omitempty"`

	// Status is set for ActionStatus.
	Status *Status `cbor:"status,omitempty"`
}

// Status describes a running instance.
type Status struct {
	Instance      string `cbor:"instance"`
	DisplaySocket string `cbor:"display_socket,omitempty"`
	SafeMode      bool   `cbor:"safe_mode"`
	ConfigPath    string `cbor:"config_path,omitempty"`
	ConfigDigest  string `cbor:"config_digest,omitempty"`
	ConfigValid   bool   `cbor:"config_valid"`
	Clients       int    `cbor:"clients"`
	Children      int    `cbor:"children"`
	Watchdog      bool   `cbor:"watchdog"`
}

// InstanceRoot is the directory holding every instance directory.
func InstanceRoot(runtimeDir string) string {
	return filepath.Join(runtimeDir, "nightos")
}

// InstanceDir is the directory of one instance.
func InstanceDir(runtimeDir, signature string) string {
	return filepath.Join(InstanceRoot(runtimeDir), signature)
}

// SocketPath is the control socket of one instance.
func SocketPath(runtimeDir, signature string) string {
	return filepath.Join(InstanceDir(runtimeDir, signature), ".socket.sock")
}
