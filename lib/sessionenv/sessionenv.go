// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package sessionenv

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

const (
	// RuntimeDirVariable names the per-user runtime directory.
	RuntimeDirVariable = "XDG_RUNTIME_DIR"

	// CommandVariable carries the reconstructed invocation.
	CommandVariable = "HYPRLAND_CMD"

	// NoRealtimeVariable disables the real-time scheduling request
	// when enabled.
	NoRealtimeVariable = "HYPRLAND_NO_RT"
)

// ErrRuntimeDirUnset is returned by Require when XDG_RUNTIME_DIR is
// missing or empty.
var ErrRuntimeDirUnset = errors.New(RuntimeDirVariable + " is not set")

// Environment is read and write access to environment variables.
type Environment interface {
	LookupEnv(name string) (string, bool)
	Setenv(name, value string) error
}

// Variable is one environment assignment.
type Variable struct {
	Name  string
	Value string
}

// OS returns the real process environment.
func OS() Environment { return osEnvironment{} }

type osEnvironment struct{}

func (osEnvironment) LookupEnv(name string) (string, bool) { return os.LookupEnv(name) }

func (osEnvironment) Setenv(name, value string) error { return os.Setenv(name, value) }

// Map is an in-memory Environment.
type Map map[string]string

func (m Map) LookupEnv(name string) (string, bool) {
	value, ok := m[name]
	return value, ok
}

func (m Map) Setenv(name, value string) error {
	m[name] = value
	return nil
}

// Require returns the runtime directory. An empty value counts as
// unset.
func Require(env Environment) (string, error) {
	directory, ok := env.LookupEnv(RuntimeDirVariable)
	if !ok || directory == "" {
		return "", ErrRuntimeDirUnset
	}
	return directory, nil
}

// Exports returns the variables a session publishes for argv (program
// name first), in write order. The command line is argv joined by single
// spaces with no quoting.
func Exports(argv []string) []Variable {
	return []Variable{
		{Name: CommandVariable, Value: strings.Join(argv, " ")},
		{Name: "XDG_BACKEND", Value: "wayland"},
		{Name: "XDG_SESSION_TYPE", Value: "wayland"},
		{Name: "_JAVA_AWT_WM_NONREPARENTING", Value: "1"},
		{Name: "MOZ_ENABLE_WAYLAND", Value: "1"},
	}
}

// Apply writes variables in order, overwriting existing values.
func Apply(env Environment, variables []Variable) error {
	for _, variable := range variables {
		if err := env.Setenv(variable.Name, variable.Value); err != nil {
			return fmt.Errorf("setting %s: %w", variable.Name, err)
		}
	}
	return nil
}

// Enabled reports whether name is set to something other than "" or
// "0".
func Enabled(env Environment, name string) bool {
	value, ok := env.LookupEnv(name)
	return ok && value != "" && value != "0"
}
