package main

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

func wtreeHuhTheme() *huh.Theme {
	t := *huh.ThemeCharm()
	t.Focused.FocusedButton = t.Focused.FocusedButton.Background(lipgloss.Color("#7D56F4"))
	t.Focused.Next = t.Focused.FocusedButton
	return &t
}

func newConfirmForm(title string, description string, result *bool) *huh.Form {
	confirm := huh.NewConfirm().
		Title(title).
		Description(description).
		Affirmative("Yes").
		Negative("No").
		Value(result)

	return huh.NewForm(huh.NewGroup(confirm)).
		WithTheme(wtreeHuhTheme()).
		WithShowHelp(false)
}

// confirmRemoval asks before `wtree rm` deletes anything.
func confirmRemoval(name string) (bool, error) {
	ok := false
	form := newConfirmForm(
		"Remove worktree `"+name+"`?",
		"The worktree directory will be deleted.",
		&ok,
	)
	if err := form.Run(); err != nil {
		return false, err
	}
	return ok, nil
}
