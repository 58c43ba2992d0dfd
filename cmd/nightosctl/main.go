// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// nightosctl talks to a running NightOS instance over its control
// socket.
//
//	nightosctl status                 describe the current instance
//	nightosctl version                version of the running compositor
//	nightosctl --instance SIG exit    stop a specific instance
//
// The instance is taken from --instance, then NIGHTOS_INSTANCE_SIGNATURE
// (set for every process started inside a session), then the most
// recently started instance under $XDG_RUNTIME_DIR/nightos.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/spf13/pflag"

	"github.com/night-dist/nightos/lib/ipc"
	"github.com/night-dist/nightos/lib/process"
	"github.com/night-dist/nightos/lib/sessionenv"
	"github.com/night-dist/nightos/lib/version"
)

func main() {
	if err := run(os.Args[1:], sessionenv.OS(), os.Stdout, os.Stderr); err != nil {
		process.Fatal(err)
	}
}

func run(args []string, env sessionenv.Environment, stdout, stderr io.Writer) error {
	var (
		instance    string
		runtimeDir  string
		showVersion bool
	)
	flagSet := pflag.NewFlagSet("nightosctl", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.StringVarP(&instance, "instance", "i", "", "instance `signature` (default: $"+ipc.InstanceVariable+" or the newest instance)")
	flagSet.StringVar(&runtimeDir, "runtime-dir", "", "runtime `directory` (default: $"+sessionenv.RuntimeDirVariable+")")
	flagSet.BoolVar(&showVersion, "version", false, "print the nightosctl version and exit")
	flagSet.BoolP("help", "h", false, "show help")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			printHelp(stderr, flagSet)
			return nil
		}
		return err
	}
	if help, _ := flagSet.GetBool("help"); help {
		printHelp(stderr, flagSet)
		return nil
	}
	if showVersion {
		fmt.Fprintf(stdout, "nightosctl %s\n", version.Info())
		return nil
	}

	if flagSet.NArg() != 1 {
		printHelp(stderr, flagSet)
		return &process.ExitError{Code: process.ExitFailure, Err: errors.New("expected exactly one action")}
	}
	action := flagSet.Arg(0)
	switch action {
	case ipc.ActionVersion, ipc.ActionStatus, ipc.ActionExit:
	default:
		return fmt.Errorf("unknown action %q (want version, status or exit)", action)
	}

	if runtimeDir == "" {
		var err error
		if runtimeDir, err = sessionenv.Require(env); err != nil {
			return err
		}
	}
	if instance == "" {
		instance, _ = env.LookupEnv(ipc.InstanceVariable)
	}
	if instance == "" {
		var err error
		if instance, err = newestInstance(runtimeDir); err != nil {
			return err
		}
	}

	response, err := ipc.Call(context.Background(), ipc.SocketPath(runtimeDir, instance), ipc.Request{Action: action})
	if err != nil {
		return err
	}

	switch action {
	case ipc.ActionVersion:
		fmt.Fprintln(stdout, response.Version)
	case ipc.ActionStatus:
		printStatus(stdout, response)
	case ipc.ActionExit:
		fmt.Fprintln(stdout, "ok")
	}
	return nil
}

// newestInstance returns the instance directory with the latest
// modification time.
func newestInstance(runtimeDir string) (string, error) {
	root := ipc.InstanceRoot(runtimeDir)
	entries, err := os.ReadDir(root)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("no NightOS instance is running (%s does not exist)", root)
		}
		return "", err
	}

	type candidate struct {
		name    string
		modTime int64
	}
	var candidates []candidate
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		candidates = append(candidates, candidate{entry.Name(), info.ModTime().UnixNano()})
	}
	if len(candidates) == 0 {
		return "", fmt.Errorf("no NightOS instance is running (%s is empty)", root)
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].modTime != candidates[j].modTime {
			return candidates[i].modTime > candidates[j].modTime
		}
		return candidates[i].name > candidates[j].name
	})
	return candidates[0].name, nil
}

func printStatus(w io.Writer, response ipc.Response) {
	status := response.Status
	if status == nil {
		fmt.Fprintln(w, "no status returned")
		return
	}
	display := status.DisplaySocket
	if display == "" {
		display = "(inherited descriptor)"
	}
	validity := "valid"
	if !status.ConfigValid {
		validity = "invalid, running on defaults"
	}
	rows := [][2]string{
		{"instance", status.Instance},
		{"version", response.Version},
		{"display", display},
		{"config", status.ConfigPath + " (" + validity + ")"},
		{"digest", status.ConfigDigest},
		{"safe mode", yesNo(status.SafeMode)},
		{"watchdog", yesNo(status.Watchdog)},
		{"clients", fmt.Sprint(status.Clients)},
		{"children", fmt.Sprint(status.Children)},
	}
	for _, row := range rows {
		fmt.Fprintf(w, "%-10s %s\n", row[0]+":", strings.TrimSpace(row[1]))
	}
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}

func printHelp(w io.Writer, flagSet *pflag.FlagSet) {
	fmt.Fprintf(w, `nightosctl: control a running NightOS instance.

Usage:
  nightosctl [flags] <version|status|exit>

Flags:
`)
	flagSet.SetOutput(w)
	flagSet.PrintDefaults()
}
