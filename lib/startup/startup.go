// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package startup

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/night-dist/nightos/lib/cmdline"
	"github.com/night-dist/nightos/lib/privilege"
	"github.com/night-dist/nightos/lib/process"
	"github.com/night-dist/nightos/lib/sessionenv"
)

// Sequence is the startup context. Nil output streams default to
// os.Stdout/os.Stderr and a nil Logger to slog.Default(); every other
// field is required.
type Sequence struct {
	// Args is the full argv, program name first.
	Args []string

	Stdout io.Writer
	Stderr io.Writer

	// Environment is the only environment this sequence reads or
	// writes.
	Environment sessionenv.Environment

	Logger *slog.Logger

	// Construct creates the server after the privilege check.
	Construct Constructor

	// IsSuperuser reports whether the process runs privileged.
	IsSuperuser func() bool

	// DescriptorOpen and Canonicalize are handed to the argument
	// parser; nil selects its real probes.
	DescriptorOpen func(fd int) bool
	Canonicalize   func(path string) (string, error)

	// InstallReaper configures SIGCHLD auto-reaping.
	InstallReaper func() error

	// GainRealtime requests real-time scheduling and reports how many
	// threads were changed.
	GainRealtime func() (int, error)
}

// Run executes the startup sequence and returns the exit code. In
// --verify-config mode the code is 0 for a valid configuration and 1
// otherwise.
func (s *Sequence) Run() int {
	stdout, stderr, logger := s.streams()

	if _, err := sessionenv.Require(s.Environment); err != nil {
		fmt.Fprintf(stderr, "[ CRITICAL ] %s! NightOS cannot start.\n", err)
		return process.ExitAbort
	}
	if err := sessionenv.Apply(s.Environment, sessionenv.Exports(s.Args)); err != nil {
		fmt.Fprintf(stderr, "[ CRITICAL ] publishing session environment: %v\n", err)
		return process.ExitAbort
	}

	var tokens []string
	if len(s.Args) > 1 {
		tokens = s.Args[1:]
	}
	parser := cmdline.Parser{
		Stdout:         stdout,
		Stderr:         stderr,
		DescriptorOpen: s.DescriptorOpen,
		Canonicalize:   s.Canonicalize,
	}
	config, err := parser.Parse(tokens)
	if err != nil {
		return process.ExitCode(err)
	}

	if err := privilege.Check(config.IgnoreSudo, s.IsSuperuser()); err != nil {
		fmt.Fprintln(stderr, privilege.Refusal)
		return process.ExitFailure
	}

	if !config.VerifyConfigOnly {
		printBanner(stdout)
	}

	server, err := s.Construct(ServerOptions{
		VerifyConfigOnly: config.VerifyConfigOnly,
		ConfigPath:       config.ConfigPath,
	})
	if err != nil {
		fmt.Fprintf(stderr, "NightOS Core Failure: %v\n\n", err)
		return process.ExitFailure
	}

	return s.drive(server, config, stderr, logger)
}

// drive runs every state after construction. It is the only holder of
// server, and Cleanup is its last use.
func (s *Sequence) drive(server Server, config cmdline.Config, stderr io.Writer, logger *slog.Logger) int {
	if config.WatchdogFD > 0 {
		server.SetWatchdogFD(config.WatchdogFD)
	}
	if config.SafeMode {
		server.SetSafeMode(true)
	}

	if err := s.InstallReaper(); err != nil {
		logger.Warn("child auto-reaping unavailable", "error", err)
	}

	if err := server.InitServer(config.SocketName, config.SocketFD); err != nil {
		fmt.Fprintf(stderr, "NightOS init failure: %v\n", err)
		server.Cleanup()
		return process.ExitFailure
	}

	if config.VerifyConfigOnly {
		if server.ConfigVerified() {
			return process.ExitSuccess
		}
		return process.ExitFailure
	}

	if sessionenv.Enabled(s.Environment, sessionenv.NoRealtimeVariable) {
		logger.Info("real-time scheduling disabled", "variable", sessionenv.NoRealtimeVariable)
	} else if threads, err := s.GainRealtime(); err != nil {
		logger.Warn("failed to change process scheduling strategy", "error", err)
	} else {
		logger.Info("real-time scheduling enabled", "threads", threads)
	}

	logger.Info("NightOS init finished. Darkness engaged.")

	exitCode := process.ExitSuccess
	if err := server.Run(); err != nil {
		logger.Error("server stopped with an error", "error", err)
		exitCode = process.ExitFailure
	}
	server.Cleanup()

	logger.Info("NightOS has reached the end. Sleep well.")
	return exitCode
}

func (s *Sequence) streams() (io.Writer, io.Writer, *slog.Logger) {
	var stdout io.Writer = os.Stdout
	if s.Stdout != nil {
		stdout = s.Stdout
	}
	var stderr io.Writer = os.Stderr
	if s.Stderr != nil {
		stderr = s.Stderr
	}
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return stdout, stderr, logger
}
