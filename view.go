package main

import (
	"fmt"

	"github.com/wtree-cli/wtree/ui"
)

var viewStyles = ui.DefaultStyles()

func (m model) View() string {
	return ui.Render(m.snapshot(), viewStyles)
}

// snapshot maps the model onto the pure render frame. The only I/O here is
// the injected describe hook building the detail panel for the selection.
func (m model) snapshot() ui.Frame {
	f := ui.Frame{
		Width:         m.width,
		Height:        m.height,
		Focus:         ui.Focus(m.focus),
		GlobalActions: globalActions,
		GlobalIndex:   m.globalIndex,
		Selected:      m.selected,
		ActionIndex:   m.actionIndex,
	}
	f.Worktrees = make([]string, 0, len(m.worktrees))
	for _, wt := range m.worktrees {
		f.Worktrees = append(f.Worktrees, wt.Name)
	}
	f.Actions = make([]string, 0, len(actionList))
	for _, a := range actionList {
		f.Actions = append(f.Actions, a.label())
	}
	if m.describe != nil {
		if entry, ok := m.selectedEntry(); ok {
			f.Detail = m.describe(entry)
		}
	}
	if m.status != nil {
		f.Status = &ui.Status{Text: m.status.Text, Error: m.status.Kind == StatusError}
	}
	f.Dialog = m.dialogFrame()
	return f
}

func (m model) dialogFrame() *ui.DialogFrame {
	switch d := m.dialog.(type) {
	case *removeDialog:
		name := ""
		if d.index >= 0 && d.index < len(m.worktrees) {
			name = m.worktrees[d.index].Name
		}
		return &ui.DialogFrame{
			Kind:           ui.DialogRemove,
			Title:          fmt.Sprintf("Remove worktree `%s`?", name),
			Message:        "The worktree directory will be deleted.",
			Options:        []ui.Checkbox{{Label: "Delete local branch", Checked: d.removeLocalBranch}},
			OptionIndex:    d.optionSelected,
			OptionsFocused: d.section == dialogSectionOptions,
			Buttons:        []string{"Cancel", "Remove"},
			ButtonIndex:    d.buttonSelected,
			ButtonsFocused: d.section == dialogSectionButtons,
		}
	case *mergeDialog:
		name := ""
		if d.index >= 0 && d.index < len(m.worktrees) {
			name = m.worktrees[d.index].Name
		}
		return &ui.DialogFrame{
			Kind:    ui.DialogMerge,
			Title:   fmt.Sprintf("Merge PR for `%s`?", name),
			Message: "The pull request will be merged via gh.",
			Options: []ui.Checkbox{
				{Label: "Delete local branch", Checked: d.removeLocalBranch},
				{Label: "Delete remote branch", Checked: d.removeRemoteBranch},
				{Label: "Remove worktree", Checked: d.removeWorktree},
			},
			OptionIndex:    d.optionSelected,
			OptionsFocused: d.section == dialogSectionOptions,
			Buttons:        []string{"Cancel", "Merge"},
			ButtonIndex:    d.buttonSelected,
			ButtonsFocused: d.section == dialogSectionButtons,
		}
	case *infoDialog:
		return &ui.DialogFrame{
			Kind:    ui.DialogInfo,
			Title:   "Done",
			Message: d.message,
			IsError: d.isError,
		}
	case *createDialog:
		picker := make([]ui.PickerLine, 0, len(d.view.lines))
		selLine := d.selectedLine()
		for i, line := range d.view.lines {
			pl := ui.PickerLine{Text: line.text}
			switch line.kind {
			case pickerGroupHeader:
				pl.Kind = ui.PickerGroupHeader
			case pickerBlankLine:
				pl.Kind = ui.PickerBlank
			case pickerOptionLine:
				pl.Kind = ui.PickerOption
				pl.Selected = i == selLine && d.focus == createFocusBase
			}
			picker = append(picker, pl)
		}
		return &ui.DialogFrame{
			Kind:           ui.DialogCreate,
			Title:          "Create worktree",
			ErrorText:      d.errText,
			NameView:       d.nameInput.View(),
			NameFocused:    d.focus == createFocusName,
			BaseFocused:    d.focus == createFocusBase,
			Picker:         picker,
			PickerOffset:   d.view.offset,
			PickerHeight:   d.view.viewHeight(),
			Buttons:        []string{"Create", "Cancel"},
			ButtonIndex:    d.buttonSelected,
			ButtonsFocused: d.focus == createFocusButtons,
		}
	}
	return nil
}
