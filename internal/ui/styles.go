// Package ui provides consistent styling for the inputgate CLI
package ui

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette - consistent across the application
var (
	ColorPrimary = lipgloss.Color("39")  // Bright blue
	ColorSuccess = lipgloss.Color("82")  // Green
	ColorWarning = lipgloss.Color("214") // Orange
	ColorError   = lipgloss.Color("196") // Red
	ColorInfo    = lipgloss.Color("86")  // Cyan

	ColorText   = lipgloss.Color("252") // Light gray
	ColorSubtle = lipgloss.Color("241") // Medium gray
	ColorMuted  = lipgloss.Color("238") // Dark gray
)

var (
	TextStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	SubtleStyle = lipgloss.NewStyle().
			Foreground(ColorSubtle)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	SubheaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError)

	InfoStyle = lipgloss.NewStyle().
			Foreground(ColorInfo)

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorSubtle).
			Padding(0, 2)

	KeyStyle = lipgloss.NewStyle().
			Foreground(ColorSubtle).
			Width(18)
)

var (
	IconSuccess = "✓"
	IconError   = "✗"
	IconActive  = "●"
	IconIdle    = "○"
)

// FormatAppHeader renders a title with a subtle subtitle and a separator
func FormatAppHeader(title, subtitle string) string {
	header := HeaderStyle.Render("inputgate") + " " + SubheaderStyle.Render(title)
	if subtitle != "" {
		header += " " + SubtleStyle.Render(subtitle)
	}
	return header + "\n" + CreateSeparator(50, "─")
}

// FormatStatus renders a state indicator followed by status
func FormatStatus(running bool, status string) string {
	if running {
		return SuccessStyle.Render(IconActive) + " " + status
	}
	return ErrorStyle.Render(IconIdle) + " " + status
}

// FormatField renders an aligned key/value line
func FormatField(key string, value any) string {
	return KeyStyle.Render(key) + TextStyle.Render(fmt.Sprint(value))
}

// FormatCounters renders one line per counter, sorted by name
func FormatCounters(counters map[string]uint64) string {
	if len(counters) == 0 {
		return MutedStyle.Italic(true).Render("nothing forwarded yet")
	}

	lines := make([]string, 0, len(counters))
	for _, name := range slices.Sorted(maps.Keys(counters)) {
		lines = append(lines, FormatField(name, counters[name]))
	}
	return strings.Join(lines, "\n")
}

// CreateSeparator creates a horizontal line separator
func CreateSeparator(width int, char string) string {
	if width <= 0 {
		width = 50
	}
	if char == "" {
		char = "─"
	}

	return lipgloss.NewStyle().
		Foreground(ColorSubtle).
		Render(strings.Repeat(char, width))
}
