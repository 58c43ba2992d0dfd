// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec is the CBOR encoding used on the compositor control
// socket.
//
// Encoding follows RFC 8949 Core Deterministic Encoding (sorted map
// keys, shortest integers, no indefinite lengths), so identical values
// always produce identical bytes. Decoding ignores unknown fields, which
// lets the control client and compositor evolve independently, and
// decodes untyped maps as map[string]any.
//
// Consumers import this package rather than fxamacker/cbor directly;
// [Encoder] and [Decoder] are aliases for the stream types.
package codec
