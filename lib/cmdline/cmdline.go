// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cmdline

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/night-dist/nightos/lib/process"
	"github.com/night-dist/nightos/lib/version"
	"golang.org/x/sys/unix"
)

// NoDescriptor marks an absent file descriptor.
const NoDescriptor = -1

// RootWarning is printed the first time --i-am-really-stupid is seen.
const RootWarning = "[ NIGHT-WARN ] Running with root privileges is dangerous!"

var (
	// ErrMissingValue: a value-taking flag was the last token.
	ErrMissingValue = errors.New("missing option value")

	// ErrInvalidDescriptor: --wayland-fd was not an open descriptor.
	ErrInvalidDescriptor = errors.New("invalid wayland descriptor")

	// ErrConfigNotFound: the --config path could not be canonicalized.
	ErrConfigNotFound = errors.New("config not found")

	// ErrUnknownOption: a token matched no flag.
	ErrUnknownOption = errors.New("unknown option")
)

// Config is the startup configuration produced by [Parser.Parse]. It is
// returned by value and never modified afterwards.
type Config struct {
	// ConfigPath is the canonical absolute path given with -c/--config,
	// or empty for the server's default location.
	ConfigPath string

	// SocketName is the display socket name from --socket, or empty to
	// let the server pick one.
	SocketName string

	// SocketFD is the pre-opened display socket from --wayland-fd, or
	// NoDescriptor.
	SocketFD int

	// IgnoreSudo skips the superuser refusal.
	IgnoreSudo bool

	// VerifyConfigOnly checks the configuration and exits without
	// running the server.
	VerifyConfigOnly bool

	// SafeMode asks the server for its reduced configuration profile.
	SafeMode bool

	// WatchdogFD is the inherited liveness descriptor. No flag sets it
	// yet, so it is always NoDescriptor.
	WatchdogFD int
}

// Default returns the configuration of an empty argument list.
func Default() Config {
	return Config{SocketFD: NoDescriptor, WatchdogFD: NoDescriptor}
}

// Parser scans argument tokens. The zero value writes to os.Stdout and
// os.Stderr and probes the real process state.
type Parser struct {
	// Stdout receives usage (for --help), version output and the root
	// warning.
	Stdout io.Writer

	// Stderr receives diagnostics for failed parses.
	Stderr io.Writer

	// DescriptorOpen reports whether fd is currently open. Defaults to
	// fcntl(fd, F_GETFD).
	DescriptorOpen func(fd int) bool

	// Canonicalize resolves a path to its canonical absolute form and
	// fails when it does not exist. Defaults to filepath.Abs followed
	// by filepath.EvalSymlinks.
	Canonicalize func(path string) (string, error)
}

// Parse scans tokens (the arguments after the program name). On an
// early exit it returns a zero Config and a *process.ExitError.
func (p *Parser) Parse(tokens []string) (Config, error) {
	for _, token := range tokens {
		switch token {
		case "-h", "--help":
			p.printUsage(p.stdout())
			return Config{}, process.Exit(process.ExitSuccess)
		case "-v", "--version":
			fmt.Fprintln(p.stdout(), version.Identification)
			fmt.Fprintln(p.stdout(), version.Full())
			return Config{}, process.Exit(process.ExitSuccess)
		}
	}

	config := Default()
	for index := 0; index < len(tokens); index++ {
		token := tokens[index]
		switch token {
		case "--i-am-really-stupid":
			if !config.IgnoreSudo {
				fmt.Fprintln(p.stdout(), RootWarning)
				config.IgnoreSudo = true
			}

		case "--socket":
			if index+1 == len(tokens) {
				return Config{}, p.missingValue(token)
			}
			index++
			config.SocketName = tokens[index]

		case "--wayland-fd":
			if index+1 == len(tokens) {
				return Config{}, p.missingValue(token)
			}
			index++
			fd, err := strconv.Atoi(tokens[index])
			if err != nil || fd < 0 || !p.descriptorOpen(fd) {
				fmt.Fprintln(p.stderr(), "[ NIGHT-ERROR ] Invalid Wayland FD!")
				return Config{}, process.ExitWith(process.ExitFailure,
					fmt.Errorf("%w: %q", ErrInvalidDescriptor, tokens[index]))
			}
			config.SocketFD = fd

		case "-c", "--config":
			if index+1 == len(tokens) {
				return Config{}, p.missingValue(token)
			}
			index++
			path, err := p.canonicalize(tokens[index])
			if err != nil {
				fmt.Fprintf(p.stderr(), "[ NIGHT-ERROR ] Config '%s' not found!\n", tokens[index])
				return Config{}, process.ExitWith(process.ExitFailure,
					fmt.Errorf("%w: %s: %w", ErrConfigNotFound, tokens[index], err))
			}
			config.ConfigPath = path

		case "--verify-config":
			config.VerifyConfigOnly = true

		case "--safe-mode":
			config.SafeMode = true

		default:
			fmt.Fprintf(p.stderr(), "[ ERROR ] Unknown option '%s' !\n", token)
			return Config{}, process.ExitWith(process.ExitFailure,
				fmt.Errorf("%w: %s", ErrUnknownOption, token))
		}
	}
	return config, nil
}

func (p *Parser) missingValue(flag string) error {
	fmt.Fprintf(p.stderr(), "[ ERROR ] Option '%s' requires a value!\n", flag)
	p.printUsage(p.stderr())
	return process.ExitWith(process.ExitFailure, fmt.Errorf("%w: %s", ErrMissingValue, flag))
}

func (p *Parser) stdout() io.Writer {
	if p.Stdout != nil {
		return p.Stdout
	}
	return os.Stdout
}

func (p *Parser) stderr() io.Writer {
	if p.Stderr != nil {
		return p.Stderr
	}
	return os.Stderr
}

func (p *Parser) descriptorOpen(fd int) bool {
	if p.DescriptorOpen != nil {
		return p.DescriptorOpen(fd)
	}
	return DescriptorOpen(fd)
}

func (p *Parser) canonicalize(path string) (string, error) {
	if p.Canonicalize != nil {
		return p.Canonicalize(path)
	}
	return Canonicalize(path)
}

// DescriptorOpen reports whether fd names an open descriptor in this
// process.
func DescriptorOpen(fd int) bool {
	if fd < 0 {
		return false
	}
	_, err := unix.FcntlInt(uintptr(fd), unix.F_GETFD, 0)
	return err == nil
}

// Canonicalize returns the absolute, symlink-free form of path. It
// fails when path does not exist.
func Canonicalize(path string) (string, error) {
	absolute, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(absolute)
}
