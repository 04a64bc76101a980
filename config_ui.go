package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	configBannerStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#FFF7DB")).
				Background(lipgloss.Color("#7D56F4")).
				Padding(0, 1)
	configInputStyle = lipgloss.NewStyle().Padding(0, 1)
	configErrorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
)

// configModel is the tiny prompt behind `wtree config`: one input for the
// editor command.
type configModel struct {
	input textinput.Model
	err   string
	done  bool
}

func newConfigModel() configModel {
	ti := textinput.New()
	ti.Placeholder = "code"
	if cfg, err := LoadConfig(); err == nil && cfg.EditorCommand != "" {
		ti.SetValue(cfg.EditorCommand)
	}
	ti.CharLimit = 200
	ti.Width = 40
	ti.Focus()
	return configModel{input: ti}
}

func (m configModel) Init() tea.Cmd {
	return tea.Batch(tea.ExitAltScreen, tea.ClearScreen)
}

func (m configModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "enter":
			cfg, err := LoadConfig()
			if err != nil {
				m.err = err.Error()
				return m, nil
			}
			cfg.EditorCommand = strings.TrimSpace(m.input.Value())
			if err := SaveConfig(cfg); err != nil {
				m.err = err.Error()
				return m, nil
			}
			m.done = true
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m configModel) View() string {
	if m.done {
		return ""
	}
	var b strings.Builder
	b.WriteString(configBannerStyle.Render("wtree"))
	b.WriteString("\n\n")
	b.WriteString("Editor command for \"Open in editor\":\n")
	b.WriteString(configInputStyle.Render(m.input.View()))
	b.WriteString("\n")
	b.WriteString("Press enter to save, esc to cancel.\n")
	if m.err != "" {
		b.WriteString("\n")
		b.WriteString(configErrorStyle.Render(fmt.Sprintf("Error: %s", m.err)))
		b.WriteString("\n")
	}
	return b.String()
}
