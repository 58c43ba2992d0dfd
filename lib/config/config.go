// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/tidwall/jsonc"
	"github.com/zeebo/blake3"
	"gopkg.in/yaml.v3"
)

// Layout names a tiling algorithm.
type Layout string

const (
	// Dwindle splits the focused window in alternating directions.
	Dwindle Layout = "dwindle"
	// Master keeps one large window beside a stack.
	Master Layout = "master"
)

// Config is the compositor configuration.
type Config struct {
	General  General           `yaml:"general" json:"general"`
	Monitors []Monitor         `yaml:"monitors" json:"monitors"`
	ExecOnce []string          `yaml:"exec_once" json:"exec_once"`
	Env      map[string]string `yaml:"env" json:"env"`
}

// General holds the layout settings.
type General struct {
	GapsIn     int    `yaml:"gaps_in" json:"gaps_in"`
	GapsOut    int    `yaml:"gaps_out" json:"gaps_out"`
	BorderSize int    `yaml:"border_size" json:"border_size"`
	Layout     Layout `yaml:"layout" json:"layout"`
}

// Monitor configures one output.
type Monitor struct {
	// Name is the connector name (DP-1, HDMI-A-1).
	Name string `yaml:"name" json:"name"`

	// Resolution is "WIDTHxHEIGHT", "WIDTHxHEIGHT@REFRESH" or
	// "preferred".
	Resolution string `yaml:"resolution" json:"resolution"`

	// Position is "XxY" in layout coordinates, or "auto".
	Position string `yaml:"position" json:"position"`

	// Scale must be positive.
	Scale float64 `yaml:"scale" json:"scale"`
}

// File is a loaded configuration with its provenance.
type File struct {
	Path   string
	Digest string
	Config *Config
}

// Default returns the configuration used when a value is absent, and in
// safe mode.
func Default() *Config {
	return &Config{
		General: General{
			GapsIn:     5,
			GapsOut:    20,
			BorderSize: 2,
			Layout:     Dwindle,
		},
		Monitors: []Monitor{{Resolution: "preferred", Position: "auto", Scale: 1}},
		Env:      map[string]string{},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/nightos/nightos.yaml, falling back
// to $HOME/.config when XDG_CONFIG_HOME is unset.
func DefaultPath(lookup func(string) (string, bool)) (string, error) {
	if directory, ok := lookup("XDG_CONFIG_HOME"); ok && directory != "" {
		return filepath.Join(directory, "nightos", "nightos.yaml"), nil
	}
	if home, ok := lookup("HOME"); ok && home != "" {
		return filepath.Join(home, ".config", "nightos", "nightos.yaml"), nil
	}
	return "", errors.New("neither XDG_CONFIG_HOME nor HOME is set")
}

// LoadFile reads, decodes and validates path. A decode or validation
// failure returns the error together with whatever was read, so callers
// can still report the digest.
func LoadFile(path string, lookup func(string) (string, bool)) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	digest := blake3.Sum256(data)
	file := &File{Path: path, Digest: hex.EncodeToString(digest[:])}

	config, err := Decode(data, filepath.Ext(path))
	if err != nil {
		return file, fmt.Errorf("%s: %w", path, err)
	}
	config.expandEnv(lookup)
	file.Config = config

	if err := config.Validate(); err != nil {
		return file, fmt.Errorf("%s: %w", path, err)
	}
	return file, nil
}

// Decode parses data in the format implied by extension on top of
// Default().
func Decode(data []byte, extension string) (*Config, error) {
	config := Default()
	switch strings.ToLower(extension) {
	case ".yaml", ".yml", "":
		decoder := yaml.NewDecoder(bytes.NewReader(data))
		decoder.KnownFields(true)
		if err := decoder.Decode(config); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parsing YAML: %w", err)
		}
	case ".json", ".jsonc":
		decoder := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(config); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parsing JSON: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q", extension)
	}
	if config.Env == nil {
		config.Env = map[string]string{}
	}
	return config, nil
}

var (
	resolutionPattern = regexp.MustCompile(`^([1-9][0-9]*)x([1-9][0-9]*)(@[0-9]+(\.[0-9]+)?)?$`)
	positionPattern   = regexp.MustCompile(`^-?[0-9]+x-?[0-9]+$`)
	envNamePattern    = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
)

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if c.General.GapsIn < 0 {
		errs = append(errs, fmt.Errorf("general.gaps_in must not be negative (got %d)", c.General.GapsIn))
	}
	if c.General.GapsOut < 0 {
		errs = append(errs, fmt.Errorf("general.gaps_out must not be negative (got %d)", c.General.GapsOut))
	}
	if c.General.BorderSize < 0 {
		errs = append(errs, fmt.Errorf("general.border_size must not be negative (got %d)", c.General.BorderSize))
	}
	if c.General.Layout != Dwindle && c.General.Layout != Master {
		errs = append(errs, fmt.Errorf("general.layout must be one of: %s, %s (got %q)", Dwindle, Master, c.General.Layout))
	}

	names := make(map[string]bool)
	for index, monitor := range c.Monitors {
		field := fmt.Sprintf("monitors[%d]", index)
		if monitor.Name != "" {
			if names[monitor.Name] {
				errs = append(errs, fmt.Errorf("%s: duplicate monitor %q", field, monitor.Name))
			}
			names[monitor.Name] = true
		}
		if monitor.Resolution != "preferred" && !resolutionPattern.MatchString(monitor.Resolution) {
			errs = append(errs, fmt.Errorf("%s.resolution must be WIDTHxHEIGHT[@HZ] or preferred (got %q)", field, monitor.Resolution))
		}
		if monitor.Position != "" && monitor.Position != "auto" && !positionPattern.MatchString(monitor.Position) {
			errs = append(errs, fmt.Errorf("%s.position must be XxY or auto (got %q)", field, monitor.Position))
		}
		if monitor.Scale <= 0 {
			errs = append(errs, fmt.Errorf("%s.scale must be positive (got %s)", field, strconv.FormatFloat(monitor.Scale, 'g', -1, 64)))
		}
	}

	for index, command := range c.ExecOnce {
		if strings.TrimSpace(command) == "" {
			errs = append(errs, fmt.Errorf("exec_once[%d] is empty", index))
		}
	}

	for _, name := range c.EnvNames() {
		if !envNamePattern.MatchString(name) {
			errs = append(errs, fmt.Errorf("env: invalid variable name %q", name))
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// EnvNames returns the env keys in sorted order.
func (c *Config) EnvNames() []string {
	names := make([]string, 0, len(c.Env))
	for name := range c.Env {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var variablePattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func (c *Config) expandEnv(lookup func(string) (string, bool)) {
	for name, value := range c.Env {
		c.Env[name] = expandVariables(value, lookup)
	}
}

// expandVariables replaces ${VAR} and ${VAR:-default}. An unset or empty
// variable without a default expands to "".
func expandVariables(s string, lookup func(string) (string, bool)) string {
	return variablePattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := variablePattern.FindStringSubmatch(match)
		name, defaultValue := parts[1], parts[2]
		if value, ok := lookup(name); ok && value != "" {
			return value
		}
		return defaultValue
	})
}
