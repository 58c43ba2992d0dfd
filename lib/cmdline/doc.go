// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cmdline turns the nightos argument list into a [Config].
//
// The scan is a single left-to-right pass with one token of lookahead
// for flags that take a value. Tokens match by exact, case-sensitive
// equality: there are no abbreviations, no "--flag=value" forms and no
// positional arguments. -h/--help and -v/--version win over everything
// else, wherever they appear, and nothing else is reported when they
// are present.
//
// Every early exit comes back as a *process.ExitError whose diagnostic
// has already been written to the parser's Stdout or Stderr. Its Err
// field holds one of the sentinel errors ([ErrMissingValue],
// [ErrInvalidDescriptor], [ErrConfigNotFound], [ErrUnknownOption]) for
// failures and is nil for help and version.
//
// The usage text is rendered by a pflag FlagSet that declares the same
// surface. pflag never parses: its stop-at-first-error behavior does
// not match the rules above.
package cmdline
