// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package startup

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const bannerWidth = 61

// renderBanner styles the welcome banner for w's color profile. Writers
// that are not terminals get plain text.
func renderBanner(w io.Writer) string {
	renderer := lipgloss.NewRenderer(w)
	rule := renderer.NewStyle().
		Foreground(lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7571F9"}).
		Render(strings.Repeat("━", bannerWidth))
	title := renderer.NewStyle().Bold(true).
		Render("  Welcome to NightOS (Night-Dist Project)")
	status := renderer.NewStyle().Faint(true).
		Render("  Engine Status: Operational | The night is yours.")
	return lipgloss.JoinVertical(lipgloss.Left, rule, title, status, rule)
}

func printBanner(w io.Writer) {
	fmt.Fprintln(w, renderBanner(w))
}
