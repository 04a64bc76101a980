package ui

import "strings"

// Render draws the whole interactive screen from a Frame.
func Render(f Frame, styles Styles) string {
	var b strings.Builder
	b.WriteString(styles.Banner("wtree"))
	b.WriteString("\n\n")
	if f.Dialog != nil {
		renderDialog(&b, *f.Dialog, styles)
	} else {
		renderMain(&b, f, styles)
	}
	b.WriteString("\n")
	renderStatus(&b, f, styles)
	return b.String()
}

func renderMain(b *strings.Builder, f Frame, styles Styles) {
	renderToolbar(b, f, styles)
	b.WriteString("\n")
	renderWorktreeList(b, f, styles)
	if len(f.Detail) > 0 {
		b.WriteString("\n")
		renderDetail(b, f.Detail, styles)
	}
	b.WriteString("\n")
	renderActions(b, f, styles)
}

func renderToolbar(b *strings.Builder, f Frame, styles Styles) {
	b.WriteString("  ")
	for i, label := range f.GlobalActions {
		if i > 0 {
			b.WriteString("   ")
		}
		if f.Focus == FocusGlobalActions && i == f.GlobalIndex {
			b.WriteString(styles.Selected("[ " + label + " ]"))
		} else {
			b.WriteString(styles.Normal("  " + label + "  "))
		}
	}
	b.WriteString("\n")
}

func renderWorktreeList(b *strings.Builder, f Frame, styles Styles) {
	b.WriteString("  ")
	b.WriteString(styles.Header("Worktrees"))
	b.WriteString("\n")
	if len(f.Worktrees) == 0 {
		b.WriteString("  ")
		b.WriteString(styles.Disabled("(no worktrees)"))
		b.WriteString("\n")
		return
	}
	for i, name := range f.Worktrees {
		cursor := "  "
		style := styles.Normal
		if i == f.Selected {
			style = styles.Selected
			if f.Focus == FocusWorktrees {
				cursor = "> "
			}
		}
		b.WriteString("  " + cursor + style(name))
		b.WriteString("\n")
	}
}

func renderDetail(b *strings.Builder, lines []DetailLine, styles Styles) {
	for _, line := range lines {
		style := styles.Normal
		switch line.Tone {
		case DetailMuted:
			style = styles.Secondary
		case DetailTitle:
			style = styles.Header
		case DetailAccent:
			style = styles.Accent
		case DetailWarn:
			style = styles.Warn
		case DetailError:
			style = styles.Error
		}
		b.WriteString("  " + style(line.Text))
		b.WriteString("\n")
	}
}

func renderActions(b *strings.Builder, f Frame, styles Styles) {
	b.WriteString("  ")
	b.WriteString(styles.Header("Actions"))
	b.WriteString("\n")
	for i, label := range f.Actions {
		cursor := "  "
		style := styles.Normal
		if f.Selected < 0 {
			style = styles.Disabled
		}
		if f.Focus == FocusActions && i == f.ActionIndex {
			cursor = "> "
			style = styles.Selected
			if f.Selected < 0 {
				style = styles.DisabledSelected
			}
		}
		b.WriteString("  " + cursor + style(label))
		b.WriteString("\n")
	}
}

func renderStatus(b *strings.Builder, f Frame, styles Styles) {
	if f.Status == nil {
		b.WriteString("  ")
		b.WriteString(styles.Secondary("tab: switch panel · enter: select · esc: quit"))
		b.WriteString("\n")
		return
	}
	style := styles.Secondary
	if f.Status.Error {
		style = styles.Error
	}
	b.WriteString("  ")
	b.WriteString(style(f.Status.Text))
	b.WriteString("\n")
}

func renderDialog(b *strings.Builder, d DialogFrame, styles Styles) {
	switch d.Kind {
	case DialogInfo:
		renderInfoDialog(b, d, styles)
	case DialogCreate:
		renderCreateDialog(b, d, styles)
	default:
		renderCheckboxDialog(b, d, styles)
	}
}

func renderInfoDialog(b *strings.Builder, d DialogFrame, styles Styles) {
	style := styles.Normal
	if d.IsError {
		style = styles.Error
	}
	b.WriteString("  " + styles.Header(d.Title))
	b.WriteString("\n\n")
	b.WriteString("  " + style(d.Message))
	b.WriteString("\n\n")
	b.WriteString("  " + styles.Selected("[ OK ]"))
	b.WriteString("\n")
	b.WriteString("  " + styles.Secondary("enter: continue"))
	b.WriteString("\n")
}

func renderCheckboxDialog(b *strings.Builder, d DialogFrame, styles Styles) {
	b.WriteString("  " + styles.Header(d.Title))
	b.WriteString("\n")
	if d.Message != "" {
		b.WriteString("  " + styles.Secondary(d.Message))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	for i, opt := range d.Options {
		mark := "[ ]"
		if opt.Checked {
			mark = "[x]"
		}
		cursor := "  "
		style := styles.Normal
		if d.OptionsFocused && i == d.OptionIndex {
			cursor = "> "
			style = styles.Selected
		}
		b.WriteString("  " + cursor + style(mark+" "+opt.Label))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	renderButtons(b, d, styles)
	b.WriteString("\n")
	b.WriteString("  " + styles.Secondary("space: toggle · tab: buttons · y: confirm · esc: cancel"))
	b.WriteString("\n")
}

func renderCreateDialog(b *strings.Builder, d DialogFrame, styles Styles) {
	b.WriteString("  " + styles.Header(d.Title))
	b.WriteString("\n\n")
	nameLabel := "  Name  "
	if d.NameFocused {
		b.WriteString(styles.Selected(">") + nameLabel[1:])
	} else {
		b.WriteString(nameLabel)
	}
	b.WriteString(d.NameView)
	b.WriteString("\n\n")
	baseHeader := "Base"
	if d.BaseFocused {
		b.WriteString("  " + styles.Selected("> "+baseHeader))
	} else {
		b.WriteString("    " + styles.Header(baseHeader))
	}
	b.WriteString("\n")
	b.WriteString(RenderPickerWindow(d.Picker, d.PickerOffset, d.PickerHeight, styles))
	if d.ErrorText != "" {
		b.WriteString("\n  " + styles.Error(d.ErrorText))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	renderButtons(b, d, styles)
	b.WriteString("\n")
	b.WriteString("  " + styles.Secondary("tab: next field · enter: advance · esc: cancel"))
	b.WriteString("\n")
}

func renderButtons(b *strings.Builder, d DialogFrame, styles Styles) {
	b.WriteString("  ")
	for i, label := range d.Buttons {
		if i > 0 {
			b.WriteString("   ")
		}
		if d.ButtonsFocused && i == d.ButtonIndex {
			b.WriteString(styles.Selected("[ " + label + " ]"))
		} else {
			b.WriteString(styles.Normal("  " + label + "  "))
		}
	}
	b.WriteString("\n")
}

// RenderPickerWindow draws the visible slice of the picker's flattened lines.
// Indicator rows are carved out of the window height before slicing, so the
// output never exceeds height lines.
func RenderPickerWindow(lines []PickerLine, offset int, height int, styles Styles) string {
	var b strings.Builder
	if height <= 0 || len(lines) == 0 {
		return ""
	}
	if offset < 0 {
		offset = 0
	}
	if offset > len(lines) {
		offset = len(lines)
	}
	content := height
	showAbove := offset > 0
	if showAbove {
		content--
	}
	end := offset + content
	showBelow := end < len(lines)
	if showBelow {
		content--
		end = offset + content
	}
	if end > len(lines) {
		end = len(lines)
	}
	if showAbove {
		b.WriteString("    " + styles.Secondary("▲ more above"))
		b.WriteString("\n")
	}
	for _, line := range lines[offset:end] {
		switch line.Kind {
		case PickerGroupHeader:
			b.WriteString("    " + styles.Header(line.Text))
		case PickerBlank:
			// keep the separator row
		case PickerOption:
			if line.Selected {
				b.WriteString("    " + styles.Selected("> "+line.Text))
			} else {
				b.WriteString("      " + styles.Normal(line.Text))
			}
		}
		b.WriteString("\n")
	}
	if showBelow {
		b.WriteString("    " + styles.Secondary("▼ more below"))
		b.WriteString("\n")
	}
	return b.String()
}
