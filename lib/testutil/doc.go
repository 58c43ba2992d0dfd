// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for NightOS packages.
//
// [RuntimeDir] creates a short temporary directory in /tmp that stands
// in for XDG_RUNTIME_DIR. Unix domain socket paths are limited to 108
// bytes (sun_path), and t.TempDir() paths under a deep TMPDIR can
// exceed that once a socket name is appended.
//
// [RequireReceive] and [RequireClosed] wrap the select-with-timeout
// pattern so tests of goroutine-driven code never hang forever and
// never call time.After directly.
//
// All helpers call t.Fatalf on failure rather than returning errors.
package testutil
