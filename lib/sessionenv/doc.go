// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package sessionenv guards and publishes the process environment a
// NightOS session depends on.
//
// [Require] asserts that XDG_RUNTIME_DIR is set before anything else
// runs; sockets and instance state live there. [Exports] is a pure
// function from the invocation argv to the variables the session
// publishes, and [Apply] performs the writes, so the set of variables
// can be tested without touching the real environment. Published
// variables are never removed: they live as long as the process and are
// inherited by every child it spawns.
//
// All access goes through the [Environment] interface. [OS] is the real
// process environment; [Map] is an in-memory stand-in for tests.
package sessionenv
