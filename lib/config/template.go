// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Template is written to the default path on first start.
const Template = `# NightOS configuration.
# Check it with: nightos --verify-config

general:
  gaps_in: 5
  gaps_out: 20
  border_size: 2
  layout: dwindle # or master

monitors:
  - resolution: preferred
    position: auto
    scale: 1

# Commands run through /bin/sh once the compositor is up.
# exec_once:
#   - waybar

# Exported to every process the compositor starts.
# ${VAR} and ${VAR:-default} are expanded.
# env:
#   XCURSOR_SIZE: "24"
`

// WriteDefault creates path with Template unless it already exists.
// Returns true when the file was created.
func WriteDefault(path string) (bool, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("creating config directory: %w", err)
	}
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("creating default config: %w", err)
	}
	if _, err := file.WriteString(Template); err != nil {
		file.Close()
		return false, fmt.Errorf("writing default config: %w", err)
	}
	return true, file.Close()
}
