// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"io"
	"log/slog"
	"os"

	"golang.org/x/term"
)

// newLogger writes text records when stderr is a terminal and JSON
// records otherwise, so session logs captured by a display manager stay
// machine-parseable.
func newLogger() *slog.Logger {
	return newLoggerFor(os.Stderr, term.IsTerminal(int(os.Stderr.Fd())))
}

func newLoggerFor(w io.Writer, terminal bool) *slog.Logger {
	options := &slog.HandlerOptions{Level: slog.LevelInfo}
	if terminal {
		return slog.New(slog.NewTextHandler(w, options))
	}
	return slog.New(slog.NewJSONHandler(w, options))
}
