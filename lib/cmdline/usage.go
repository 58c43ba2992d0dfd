// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cmdline

import (
	"fmt"
	"io"

	"github.com/spf13/pflag"
)

// usageFlags declares the flag surface for help rendering only. Zero
// defaults keep pflag from printing "(default ...)" suffixes.
func usageFlags() *pflag.FlagSet {
	flags := pflag.NewFlagSet("nightos", pflag.ContinueOnError)
	flags.SortFlags = false
	flags.BoolP("help", "h", false, "Show this message")
	flags.StringP("config", "c", "", "Specify custom NightOS config `FILE`")
	flags.String("socket", "", "Sets the Wayland socket `NAME`")
	flags.Int("wayland-fd", 0, "Sets the Wayland socket `FD`")
	flags.Bool("safe-mode", false, "Starts NightOS in safe mode")
	flags.Bool("i-am-really-stupid", false, "Omits root user check")
	flags.Bool("verify-config", false, "Only check config for errors")
	flags.BoolP("version", "v", false, "Print NightOS Engine version")
	return flags
}

// Usage returns the full help text.
func Usage() string {
	return "NightOS (Night-Dist) - Usage: nightos [arg [...]].\n\nArguments:\n" +
		usageFlags().FlagUsages()
}

func (p *Parser) printUsage(w io.Writer) {
	fmt.Fprint(w, Usage())
}
