package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles carries the render functions for every text role the views use.
// Keeping them as plain func(string) string keeps the render code free of
// lipgloss and easy to test with identity styles.
type Styles struct {
	Banner           func(string) string
	Header           func(string) string
	Normal           func(string) string
	Selected         func(string) string
	Disabled         func(string) string
	DisabledSelected func(string) string
	Secondary        func(string) string
	Error            func(string) string
	Warn             func(string) string
	Accent           func(string) string
}

var (
	bannerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFF7DB")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)
	headerStyle           = lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true)
	normalStyle           = lipgloss.NewStyle().Foreground(lipgloss.Color("251"))
	selectedStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("#7D56F4")).Bold(true)
	disabledStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	disabledSelectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#7D56F4")).Bold(true)
	secondaryStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	errStyle              = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	warnStyle             = lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true)
	accentStyle           = lipgloss.NewStyle().Foreground(lipgloss.Color("#7D56F4"))
)

func DefaultStyles() Styles {
	return Styles{
		Banner:           func(s string) string { return bannerStyle.Render(s) },
		Header:           func(s string) string { return headerStyle.Render(s) },
		Normal:           func(s string) string { return normalStyle.Render(s) },
		Selected:         func(s string) string { return selectedStyle.Render(s) },
		Disabled:         func(s string) string { return disabledStyle.Render(s) },
		DisabledSelected: func(s string) string { return disabledSelectedStyle.Render(s) },
		Secondary:        func(s string) string { return secondaryStyle.Render(s) },
		Error:            func(s string) string { return errStyle.Render(s) },
		Warn:             func(s string) string { return warnStyle.Render(s) },
		Accent:           func(s string) string { return accentStyle.Render(s) },
	}
}

// PlainStyles returns identity styles, used by tests that assert on layout.
func PlainStyles() Styles {
	id := func(s string) string { return s }
	return Styles{
		Banner:           id,
		Header:           id,
		Normal:           id,
		Selected:         id,
		Disabled:         id,
		DisabledSelected: id,
		Secondary:        id,
		Error:            id,
		Warn:             id,
		Accent:           id,
	}
}

// PadOrTrim fits s into exactly width cells, padding with spaces or cutting
// with a trailing ellipsis rune.
func PadOrTrim(s string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) == width {
		return s
	}
	if len(runes) < width {
		return s + strings.Repeat(" ", width-len(runes))
	}
	if width == 1 {
		return "…"
	}
	return string(runes[:width-1]) + "…"
}
