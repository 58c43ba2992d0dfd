// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cmdline

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/night-dist/nightos/lib/process"
	"github.com/night-dist/nightos/lib/version"
)

// testParser returns a parser whose descriptor probe accepts only the
// listed descriptors and whose output is captured.
func testParser(openDescriptors ...int) (*Parser, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	open := make(map[int]bool)
	for _, fd := range openDescriptors {
		open[fd] = true
	}
	return &Parser{
		Stdout:         &stdout,
		Stderr:         &stderr,
		DescriptorOpen: func(fd int) bool { return open[fd] },
	}, &stdout, &stderr
}

func requireExit(t *testing.T, err error, code int) {
	t.Helper()
	var exit *process.ExitError
	if !errors.As(err, &exit) {
		t.Fatalf("Parse error = %v, want *process.ExitError", err)
	}
	if exit.Code != code {
		t.Fatalf("exit code = %d, want %d (error: %v)", exit.Code, code, err)
	}
}

func TestParseEmpty(t *testing.T) {
	parser, stdout, stderr := testParser()
	config, err := parser.Parse(nil)
	if err != nil {
		t.Fatalf("Parse(nil): %v", err)
	}
	if config != Default() {
		t.Errorf("config = %+v, want %+v", config, Default())
	}
	if config.SocketFD != NoDescriptor || config.WatchdogFD != NoDescriptor {
		t.Errorf("descriptors = %d/%d, want %d", config.SocketFD, config.WatchdogFD, NoDescriptor)
	}
	if stdout.Len() != 0 || stderr.Len() != 0 {
		t.Errorf("unexpected output: stdout=%q stderr=%q", stdout, stderr)
	}
}

func TestParseBooleanFlags(t *testing.T) {
	parser, _, _ := testParser()
	config, err := parser.Parse([]string{"--verify-config", "--safe-mode"})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !config.VerifyConfigOnly {
		t.Error("VerifyConfigOnly = false, want true")
	}
	if !config.SafeMode {
		t.Error("SafeMode = false, want true")
	}
	if config.IgnoreSudo {
		t.Error("IgnoreSudo = true, want false")
	}
}

func TestParseSocketName(t *testing.T) {
	parser, _, _ := testParser()
	config, err := parser.Parse([]string{"--socket", "wayland-7"})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if config.SocketName != "wayland-7" {
		t.Errorf("SocketName = %q, want %q", config.SocketName, "wayland-7")
	}
}

func TestHelpShortCircuits(t *testing.T) {
	tests := [][]string{
		{"-h"},
		{"--help"},
		{"--bogus", "--help"},
		{"--socket", "--help"},
		{"--wayland-fd", "9999", "-h"},
		{"-c", "/does/not/exist", "--help", "--bogus"},
		{"--safe-mode", "--socket", "-h"},
	}
	for _, tokens := range tests {
		t.Run(strings.Join(tokens, " "), func(t *testing.T) {
			parser, stdout, stderr := testParser()
			_, err := parser.Parse(tokens)
			requireExit(t, err, 0)
			if !strings.Contains(stdout.String(), "Usage: nightos") {
				t.Errorf("stdout = %q, want usage", stdout)
			}
			if stderr.Len() != 0 {
				t.Errorf("stderr = %q, want nothing", stderr)
			}
		})
	}
}

func TestVersionShortCircuits(t *testing.T) {
	for _, tokens := range [][]string{{"-v"}, {"--version"}, {"--bogus", "--version"}} {
		parser, stdout, stderr := testParser()
		_, err := parser.Parse(tokens)
		requireExit(t, err, 0)
		if !strings.HasPrefix(stdout.String(), version.Identification+"\n") {
			t.Errorf("%v: stdout = %q, want identification line first", tokens, stdout)
		}
		if !strings.Contains(stdout.String(), version.Version) {
			t.Errorf("%v: stdout = %q, missing version %q", tokens, stdout, version.Version)
		}
		if stderr.Len() != 0 {
			t.Errorf("%v: stderr = %q, want nothing", tokens, stderr)
		}
	}
}

func TestFirstShortCircuitWins(t *testing.T) {
	parser, stdout, _ := testParser()
	_, err := parser.Parse([]string{"--version", "--help"})
	requireExit(t, err, 0)
	if strings.Contains(stdout.String(), "Usage:") {
		t.Errorf("stdout = %q, want version output only", stdout)
	}
}

func TestMissingValueIsFatal(t *testing.T) {
	for _, flag := range []string{"--socket", "--wayland-fd", "-c", "--config"} {
		t.Run(flag, func(t *testing.T) {
			parser, _, stderr := testParser()
			_, err := parser.Parse([]string{"--safe-mode", flag})
			requireExit(t, err, 1)
			if !errors.Is(err, ErrMissingValue) {
				t.Errorf("error = %v, want ErrMissingValue", err)
			}
			if !strings.Contains(stderr.String(), "Usage: nightos") {
				t.Errorf("stderr = %q, want usage", stderr)
			}
		})
	}
}

func TestWaylandFD(t *testing.T) {
	parser, _, _ := testParser(5)
	config, err := parser.Parse([]string{"--wayland-fd", "5"})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if config.SocketFD != 5 {
		t.Errorf("SocketFD = %d, want 5", config.SocketFD)
	}
}

func TestWaylandFDInvalid(t *testing.T) {
	for _, value := range []string{"9999", "abc", "-3", "5x", ""} {
		t.Run(value, func(t *testing.T) {
			parser, _, stderr := testParser(5)
			_, err := parser.Parse([]string{"--wayland-fd", value})
			requireExit(t, err, 1)
			if !errors.Is(err, ErrInvalidDescriptor) {
				t.Errorf("error = %v, want ErrInvalidDescriptor", err)
			}
			if !strings.Contains(stderr.String(), "Invalid Wayland FD!") {
				t.Errorf("stderr = %q, want invalid descriptor diagnostic", stderr)
			}
		})
	}
}

func TestWaylandFDRealProbe(t *testing.T) {
	reader, writer, err := os.Pipe()
	if err != nil {
		t.Fatalf("Pipe: %v", err)
	}
	defer reader.Close()
	defer writer.Close()

	if !DescriptorOpen(int(reader.Fd())) {
		t.Errorf("DescriptorOpen(%d) = false for an open pipe", reader.Fd())
	}
	if DescriptorOpen(9999) {
		t.Error("DescriptorOpen(9999) = true, want false")
	}
	if DescriptorOpen(-1) {
		t.Error("DescriptorOpen(-1) = true, want false")
	}
}

func TestConfigPathCanonicalized(t *testing.T) {
	directory := t.TempDir()
	target := filepath.Join(directory, "nightos.yaml")
	if err := os.WriteFile(target, []byte("general: {}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	link := filepath.Join(directory, "link.yaml")
	if err := os.Symlink(target, link); err != nil {
		t.Fatal(err)
	}
	want, err := filepath.EvalSymlinks(target)
	if err != nil {
		t.Fatal(err)
	}

	parser, _, _ := testParser()
	config, err := parser.Parse([]string{"--config", link})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if config.ConfigPath != want {
		t.Errorf("ConfigPath = %q, want %q", config.ConfigPath, want)
	}
	if !filepath.IsAbs(config.ConfigPath) {
		t.Errorf("ConfigPath %q is not absolute", config.ConfigPath)
	}
}

func TestConfigPathLastWins(t *testing.T) {
	directory := t.TempDir()
	first := filepath.Join(directory, "first.yaml")
	second := filepath.Join(directory, "second.yaml")
	for _, path := range []string{first, second} {
		if err := os.WriteFile(path, nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	want, err := filepath.EvalSymlinks(second)
	if err != nil {
		t.Fatal(err)
	}

	parser, _, _ := testParser()
	config, err := parser.Parse([]string{"-c", first, "-c", second})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if config.ConfigPath != want {
		t.Errorf("ConfigPath = %q, want %q (last value wins)", config.ConfigPath, want)
	}
}

func TestConfigPathMissing(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "absent.yaml")
	parser, _, stderr := testParser()
	_, err := parser.Parse([]string{"-c", missing})
	requireExit(t, err, 1)
	if !errors.Is(err, ErrConfigNotFound) {
		t.Errorf("error = %v, want ErrConfigNotFound", err)
	}
	if want := "Config '" + missing + "' not found!"; !strings.Contains(stderr.String(), want) {
		t.Errorf("stderr = %q, want %q", stderr, want)
	}
}

func TestUnknownOption(t *testing.T) {
	parser, _, stderr := testParser()
	_, err := parser.Parse([]string{"--safe-mode", "--bogus", "--verify-config"})
	requireExit(t, err, 1)
	if !errors.Is(err, ErrUnknownOption) {
		t.Errorf("error = %v, want ErrUnknownOption", err)
	}
	if !strings.Contains(stderr.String(), "Unknown option '--bogus'") {
		t.Errorf("stderr = %q, want diagnostic naming --bogus", stderr)
	}
}

func TestMatchingIsExact(t *testing.T) {
	for _, token := range []string{"--Help", "--verify", "--safe-mode=true", "-C", "--socket=x", "-hv"} {
		parser, _, _ := testParser()
		_, err := parser.Parse([]string{token})
		if !errors.Is(err, ErrUnknownOption) {
			t.Errorf("Parse(%q) error = %v, want ErrUnknownOption", token, err)
		}
	}
}

func TestRootOverrideWarnsOnce(t *testing.T) {
	parser, stdout, _ := testParser()
	config, err := parser.Parse([]string{"--i-am-really-stupid", "--safe-mode", "--i-am-really-stupid"})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !config.IgnoreSudo {
		t.Error("IgnoreSudo = false, want true")
	}
	if got := strings.Count(stdout.String(), RootWarning); got != 1 {
		t.Errorf("warning printed %d times, want 1 (stdout %q)", got, stdout)
	}
}

func TestSocketValueIsTakenVerbatim(t *testing.T) {
	parser, _, _ := testParser()
	config, err := parser.Parse([]string{"--socket", "--safe-mode"})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if config.SocketName != "--safe-mode" {
		t.Errorf("SocketName = %q, want %q", config.SocketName, "--safe-mode")
	}
	if config.SafeMode {
		t.Error("a consumed value must not be interpreted as a flag")
	}
}

func TestUsageListsEveryFlag(t *testing.T) {
	usage := Usage()
	for _, want := range []string{
		"-h, --help", "-c, --config FILE", "--socket NAME", "--wayland-fd FD",
		"--safe-mode", "--i-am-really-stupid", "--verify-config", "-v, --version",
	} {
		if !strings.Contains(usage, want) {
			t.Errorf("usage missing %q:\n%s", want, usage)
		}
	}
	if strings.Contains(usage, "(default") {
		t.Errorf("usage should not print defaults:\n%s", usage)
	}
}
