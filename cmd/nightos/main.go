// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"log/slog"
	"os"

	"github.com/night-dist/nightos/lib/compositor"
	"github.com/night-dist/nightos/lib/privilege"
	"github.com/night-dist/nightos/lib/realtime"
	"github.com/night-dist/nightos/lib/reaper"
	"github.com/night-dist/nightos/lib/sessionenv"
	"github.com/night-dist/nightos/lib/startup"
)

func main() {
	os.Exit(newSequence(os.Args, sessionenv.OS(), newLogger()).Run())
}

func newSequence(args []string, env sessionenv.Environment, logger *slog.Logger) *startup.Sequence {
	return &startup.Sequence{
		Args:          args,
		Stdout:        os.Stdout,
		Stderr:        os.Stderr,
		Environment:   env,
		Logger:        logger,
		Construct:     compositorConstructor(env, logger),
		IsSuperuser:   privilege.IsSuperuser,
		InstallReaper: reaper.AutoReap,
		GainRealtime:  realtime.Gain,
	}
}

func compositorConstructor(env sessionenv.Environment, logger *slog.Logger) startup.Constructor {
	return func(options startup.ServerOptions) (startup.Server, error) {
		server, err := compositor.New(compositor.Options{
			VerifyConfigOnly: options.VerifyConfigOnly,
			ConfigPath:       options.ConfigPath,
			Environment:      env,
			Logger:           logger.With("component", "compositor"),
		})
		if err != nil {
			return nil, err
		}
		return server, nil
	}
}
