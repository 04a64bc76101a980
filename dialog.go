package main

import (
	"sort"

	"github.com/charmbracelet/bubbles/textinput"
)

// dialog is the modal layered over the main screen. While one is active it
// receives every key; the panels underneath are frozen.
type dialog interface {
	isDialog()
}

type dialogSection int

const (
	dialogSectionOptions dialogSection = iota
	dialogSectionButtons
)

// removeDialog confirms removal of one worktree. The single checkbox controls
// whether the local branch goes with it.
type removeDialog struct {
	index             int
	removeLocalBranch bool
	section           dialogSection
	optionSelected    int
	buttonSelected    int
}

const (
	removeDialogCancelButton  = 0
	removeDialogConfirmButton = 1
)

func newRemoveDialog(index int) *removeDialog {
	return &removeDialog{
		index:             index,
		removeLocalBranch: true,
		section:           dialogSectionOptions,
		buttonSelected:    removeDialogConfirmButton,
	}
}

func (d *removeDialog) isDialog() {}

func (d *removeDialog) toggle() {
	if d.section == dialogSectionOptions {
		d.removeLocalBranch = !d.removeLocalBranch
	}
}

func (d *removeDialog) moveButton(delta int) {
	d.buttonSelected = clampInt(d.buttonSelected+delta, 0, 1)
}

// mergeDialog confirms a gh-backed PR merge with three cleanup choices.
type mergeDialog struct {
	index              int
	removeLocalBranch  bool
	removeRemoteBranch bool
	removeWorktree     bool
	section            dialogSection
	optionSelected     int
	buttonSelected     int
}

const (
	mergeDialogOptionCount   = 3
	mergeDialogCancelButton  = 0
	mergeDialogConfirmButton = 1
)

func newMergeDialog(index int) *mergeDialog {
	return &mergeDialog{
		index:             index,
		removeLocalBranch: true,
		section:           dialogSectionOptions,
		buttonSelected:    mergeDialogConfirmButton,
	}
}

func (d *mergeDialog) isDialog() {}

func (d *mergeDialog) toggle() {
	if d.section != dialogSectionOptions {
		return
	}
	switch d.optionSelected {
	case 0:
		d.removeLocalBranch = !d.removeLocalBranch
	case 1:
		d.removeRemoteBranch = !d.removeRemoteBranch
	case 2:
		d.removeWorktree = !d.removeWorktree
	}
}

func (d *mergeDialog) moveOption(delta int) {
	d.optionSelected = clampInt(d.optionSelected+delta, 0, mergeDialogOptionCount-1)
}

func (d *mergeDialog) moveButton(delta int) {
	d.buttonSelected = clampInt(d.buttonSelected+delta, 0, 1)
}

// infoDialog reports the outcome of a removal. When the removal pulled the
// directory out from under the calling shell, dismissing it exits to the
// repository root instead of returning to the list.
type infoDialog struct {
	message      string
	isError      bool
	repositioned bool
}

func (d *infoDialog) isDialog() {}

type createFocus int

const (
	createFocusName createFocus = iota
	createFocusBase
	createFocusButtons
)

const (
	createDialogSubmitButton = 0
	createDialogCancelButton = 1
)

type baseOption struct {
	label string
	// value is the ref handed to the create callback; empty means HEAD.
	value string
}

type baseGroup struct {
	title   string
	options []baseOption
}

// createDialog collects a worktree name and a base ref. The base picker is
// grouped (local branches, then existing worktrees) and virtualized through
// pickerViewport.
type createDialog struct {
	nameInput      textinput.Model
	focus          createFocus
	buttonSelected int
	groups         []baseGroup
	indices        [][2]int
	baseSelected   int
	errText        string
	view           pickerViewport
}

func newCreateDialog(branches []string, worktrees []WorktreeEntry, defaultBranch string, viewportHeight int) *createDialog {
	ti := textinput.New()
	ti.Placeholder = "feature/my-branch"
	ti.CharLimit = 200
	ti.Width = 40
	ti.Focus()

	groups := buildBaseGroups(branches, worktrees)
	d := &createDialog{
		nameInput: ti,
		focus:     createFocusName,
		groups:    groups,
		indices:   denseBaseIndices(groups),
		view: pickerViewport{
			lines:  flattenBaseGroups(groups),
			height: viewportHeight,
		},
	}
	if defaultBranch != "" {
		for i, idx := range d.indices {
			if d.groups[idx[0]].options[idx[1]].value == defaultBranch {
				d.baseSelected = i
				d.view.centerOn(d.selectedLine())
				break
			}
		}
	}
	return d
}

func (d *createDialog) isDialog() {}

func buildBaseGroups(branches []string, worktrees []WorktreeEntry) []baseGroup {
	var groups []baseGroup
	if len(branches) > 0 {
		opts := make([]baseOption, 0, len(branches))
		for _, b := range branches {
			opts = append(opts, baseOption{label: "branch: " + b, value: b})
		}
		groups = append(groups, baseGroup{title: "Branches", options: opts})
	}
	if len(worktrees) > 0 {
		opts := make([]baseOption, 0, len(worktrees))
		for _, wt := range worktrees {
			opts = append(opts, baseOption{label: "worktree: " + wt.Name, value: wt.Name})
		}
		sort.Slice(opts, func(i, j int) bool { return opts[i].label < opts[j].label })
		groups = append(groups, baseGroup{title: "Worktrees", options: opts})
	}
	if len(groups) == 0 {
		groups = append(groups, baseGroup{title: "General", options: []baseOption{{label: "HEAD"}}})
	}
	return groups
}

func (d *createDialog) selectedBase() baseOption {
	if len(d.indices) == 0 {
		return baseOption{label: "HEAD"}
	}
	idx := d.indices[d.baseSelected]
	return d.groups[idx[0]].options[idx[1]]
}

func (d *createDialog) selectedLine() int {
	if len(d.indices) == 0 {
		return 0
	}
	idx := d.indices[d.baseSelected]
	return lineForOption(d.view.lines, idx[0], idx[1])
}

func (d *createDialog) moveBase(delta int) {
	n := len(d.indices)
	if n == 0 {
		return
	}
	prev := d.baseSelected
	next := ((prev+delta)%n + n) % n
	d.baseSelected = next
	switch {
	case delta > 0 && next < prev:
		d.view.scrollToTop()
	case delta < 0 && next > prev:
		d.view.scrollToBottom()
	default:
		d.view.follow(d.selectedLine())
	}
}

func (d *createDialog) setViewportHeight(height int) {
	d.view.setHeight(height, d.selectedLine())
}

func (d *createDialog) setFocus(f createFocus) {
	d.focus = f
	if f == createFocusName {
		d.nameInput.Focus()
	} else {
		d.nameInput.Blur()
	}
	if f == createFocusButtons {
		d.buttonSelected = createDialogSubmitButton
	}
}

func (d *createDialog) focusNext() {
	switch d.focus {
	case createFocusName:
		d.setFocus(createFocusBase)
	case createFocusBase:
		d.setFocus(createFocusButtons)
	default:
		d.setFocus(createFocusName)
	}
}

func (d *createDialog) focusPrev() {
	switch d.focus {
	case createFocusName:
		d.setFocus(createFocusButtons)
	case createFocusBase:
		d.setFocus(createFocusName)
	default:
		d.setFocus(createFocusBase)
	}
}

func (d *createDialog) moveButton(delta int) {
	d.buttonSelected = clampInt(d.buttonSelected+delta, 0, 1)
}

func clampInt(v int, lo int, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
