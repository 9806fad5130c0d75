package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles contains all lipgloss styles for terminal output
type Styles struct {
	enabled bool

	// Outcome styles
	Good    lipgloss.Style
	Bad     lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style
	Success lipgloss.Style

	// Structural styles
	Header    lipgloss.Style
	Subheader lipgloss.Style
	Muted     lipgloss.Style
	Star      lipgloss.Style
	Tag       lipgloss.Style

	// Icons (degraded to ASCII when not interactive)
	IconPresent    string
	IconAbsent     string
	IconSuggestion string
	IconWarning    string
	IconSuccess    string
}

// NewStyles creates a new Styles instance
// When enabled is false, styles return text unchanged (for non-TTY output)
func NewStyles(enabled bool) *Styles {
	s := &Styles{enabled: enabled}

	if enabled {
		s.Good = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))   // Green
		s.Bad = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))     // Red
		s.Warning = lipgloss.NewStyle().Foreground(lipgloss.Color("11")) // Yellow
		s.Info = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))   // Blue
		s.Success = lipgloss.NewStyle().Foreground(lipgloss.Color("10")) // Green

		s.Header = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")) // White bold
		s.Subheader = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))          // Gray
		s.Muted = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))              // Gray
		s.Star = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))              // Yellow
		s.Tag = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))               // Cyan

		// Unicode icons
		s.IconPresent = "✓"    // ✓
		s.IconAbsent = "✗"     // ✗
		s.IconSuggestion = "→" // →
		s.IconWarning = "⚠"    // ⚠
		s.IconSuccess = "✓"    // ✓
	} else {
		s.Good = lipgloss.NewStyle()
		s.Bad = lipgloss.NewStyle()
		s.Warning = lipgloss.NewStyle()
		s.Info = lipgloss.NewStyle()
		s.Success = lipgloss.NewStyle()

		s.Header = lipgloss.NewStyle()
		s.Subheader = lipgloss.NewStyle()
		s.Muted = lipgloss.NewStyle()
		s.Star = lipgloss.NewStyle()
		s.Tag = lipgloss.NewStyle()

		s.IconPresent = "+"
		s.IconAbsent = "-"
		s.IconSuggestion = ">"
		s.IconWarning = "WARN:"
		s.IconSuccess = "OK:"
	}

	return s
}

// Enabled returns whether styling is enabled
func (s *Styles) Enabled() bool {
	return s.enabled
}

// Stars renders a 1-5 rating as filled and hollow stars, or a muted
// placeholder when unrated.
func (s *Styles) Stars(rating int) string {
	if rating < 1 || rating > 5 {
		return s.Muted.Render("--")
	}
	return s.Star.Render(strings.Repeat("★", rating) + strings.Repeat("☆", 5-rating))
}

// Bar renders a prevalence share as a fixed-width fill bar with the
// percentage, e.g. "[██████░░░░░░░░░░░░░░] 30%".
func (s *Styles) Bar(share float64, width int) string {
	if width <= 0 {
		width = 20
	}
	if share < 0 {
		share = 0
	}
	if share > 1 {
		share = 1
	}
	filled := int(share*float64(width) + 0.5)
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return fmt.Sprintf("[%s] %.0f%%", bar, share*100)
}
