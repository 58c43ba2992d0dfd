// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"fmt"
	"runtime"
	"strings"
)

// Identification is the first line of --version output.
const Identification = "NightOS Engine based on Hyprland"

// These variables are set via -ldflags at build time, e.g.
//
//	go build -ldflags "-X github.com/night-dist/nightos/lib/version.GitCommit=$(git rev-parse --short HEAD)"
var (
	// GitCommit is the short git SHA of the build.
	GitCommit = "unknown"

	// GitDirty indicates whether there were uncommitted changes.
	GitDirty = "false"

	// BuildTime is the UTC timestamp of the build.
	BuildTime = "unknown"

	// Version is the semantic version. This is set manually for releases.
	Version = "0.1.0-dev"
)

// Info returns "0.1.0-dev (abc1234, 2026-...)" with a -dirty suffix on
// the commit when the tree was modified.
func Info() string {
	return fmt.Sprintf("%s (%s, %s)", Version, commit(), BuildTime)
}

// Full returns the version request text: version, commit, build time
// and the toolchain and platform the binary was built for.
func Full() string {
	var builder strings.Builder
	fmt.Fprintf(&builder, "NightOS %s built from commit %s\n", Version, commit())
	fmt.Fprintf(&builder, "Date: %s\n", BuildTime)
	fmt.Fprintf(&builder, "Go: %s\n", runtime.Version())
	fmt.Fprintf(&builder, "Platform: %s/%s", runtime.GOOS, runtime.GOARCH)
	return builder.String()
}

func commit() string {
	if GitDirty == "true" {
		return GitCommit + "-dirty"
	}
	return GitCommit
}
