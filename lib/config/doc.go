// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config loads and validates the compositor configuration file.
//
// The file is read from exactly one place: the path given with
// --config, or [DefaultPath] otherwise. There is no search and no
// merging of several files. The format follows the extension: .yaml and
// .yml are YAML, .json and .jsonc are JSON with comments and trailing
// commas allowed. Unknown keys are errors in both formats.
//
// Values absent from the file keep their [Default]. [Config.Validate]
// reports every problem at once, joined with errors.Join, so
// --verify-config can list them all.
//
// ${VAR} and ${VAR:-default} in env values are expanded against the
// environment the server was started with. No other field is expanded.
//
// Each load records a BLAKE3 digest of the raw bytes, so the control
// socket can report which revision of the file is active.
package config
