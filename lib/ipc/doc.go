// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package ipc defines the compositor control protocol and its client.
//
// Each connection to an instance's control socket carries one CBOR
// [Request] and one CBOR [Response]. The socket lives at
// $XDG_RUNTIME_DIR/nightos/<signature>/.socket.sock (see [SocketPath]);
// the signature is exported to children as NIGHTOS_INSTANCE_SIGNATURE.
// lib/compositor serves the protocol and cmd/nightosctl uses [Call].
package ipc
