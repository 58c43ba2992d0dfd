// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package startup sequences the launch of a NightOS server process.
//
// A [Sequence] is the startup context: every collaborator the launch
// touches (environment, output streams, privilege and descriptor
// probes, the server constructor, signal and scheduling hooks) is a
// field, so the whole sequence runs against fakes in tests. [Sequence.Run]
// walks a fixed order of states and returns the process exit code:
//
//	ValidateEnvironment  XDG_RUNTIME_DIR present, session variables published
//	ParseArgs            cmdline.Parser; help/version/errors exit here
//	CheckPrivilege       refuse superuser unless --i-am-really-stupid
//	Banner               skipped in --verify-config mode
//	ConstructServer      error -> "NightOS Core Failure", exit 1
//	ApplyWatchdog/Safe   setters only
//	InstallReaper        SIGCHLD auto-reaping; failure is a warning
//	InitServer           socket name and descriptor handed over as parsed
//	VerifyConfig         exit !ConfigVerified(); run and cleanup skipped
//	Normal               real-time request (unless HYPRLAND_NO_RT), Run, Cleanup
//
// The server is only reached through the [Server] interface and is
// owned by Run from construction until Cleanup returns.
package startup
