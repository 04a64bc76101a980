package main

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/wtree-cli/wtree/ui"
)

// WorktreeEntry is one managed worktree: the branch name doubles as the
// directory name under the worktrees dir.
type WorktreeEntry struct {
	Name string
	Path string
}

type Focus int

const (
	FocusWorktrees Focus = iota
	FocusActions
	FocusGlobalActions
)

func (f Focus) next() Focus {
	switch f {
	case FocusWorktrees:
		return FocusActions
	case FocusActions:
		return FocusGlobalActions
	default:
		return FocusWorktrees
	}
}

func (f Focus) prev() Focus {
	switch f {
	case FocusWorktrees:
		return FocusGlobalActions
	case FocusActions:
		return FocusWorktrees
	default:
		return FocusActions
	}
}

type Action int

const (
	ActionOpen Action = iota
	ActionOpenEditor
	ActionRemove
	ActionPrGithub
	ActionMergePrGithub
)

var actionList = []Action{ActionOpen, ActionOpenEditor, ActionRemove, ActionPrGithub, ActionMergePrGithub}

func (a Action) label() string {
	switch a {
	case ActionOpen:
		return "Open"
	case ActionOpenEditor:
		return "Open in editor"
	case ActionRemove:
		return "Remove"
	case ActionPrGithub:
		return "PR (GitHub)"
	case ActionMergePrGithub:
		return "Merge PR (GitHub)"
	default:
		return ""
	}
}

// Every action operates on the selected worktree.
func (a Action) requiresSelection() bool { return true }

var globalActions = []string{"Create worktree", "Cd to root dir"}

const (
	globalActionCreate = 0
	globalActionCdRoot = 1
)

type StatusKind int

const (
	StatusInfo StatusKind = iota
	StatusError
)

type StatusMessage struct {
	Text string
	Kind StatusKind
}

func infoStatus(text string) *StatusMessage {
	return &StatusMessage{Text: text, Kind: StatusInfo}
}

func errorStatus(text string) *StatusMessage {
	return &StatusMessage{Text: text, Kind: StatusError}
}

type SelectionKind int

const (
	SelectWorktree SelectionKind = iota
	SelectPrGithub
	SelectMergePrGithub
	SelectRepoRoot
)

// Selection is what the interactive screen hands back to the CLI when the
// loop exits with a result. A nil *Selection means the user just quit.
type Selection struct {
	Kind               SelectionKind
	Name               string
	RemoveLocalBranch  bool
	RemoveRemoteBranch bool
	RemoveWorktree     bool
}

type LocalBranchStatus int

const (
	LocalBranchKept LocalBranchStatus = iota
	LocalBranchDeleted
	LocalBranchNotFound
)

// RemoveOutcome reports what a removal actually did. Repositioned is set when
// the calling process sat inside the removed directory.
type RemoveOutcome struct {
	LocalBranch  LocalBranchStatus
	Repositioned bool
}

// InteractiveCallbacks are the side-effecting collaborators the screen calls
// synchronously from Update. Errors are non-fatal: they become status lines
// or dialog errors.
type InteractiveCallbacks struct {
	OnRemove     func(name string, removeLocalBranch bool) (RemoveOutcome, error)
	OnCreate     func(name string, base string) error
	OnOpenEditor func(name string, path string) error
}

type model struct {
	worktrees     []WorktreeEntry
	branches      []string
	defaultBranch string
	worktreesDir  string

	selected    int
	focus       Focus
	actionIndex int
	globalIndex int
	status      *StatusMessage
	dialog      dialog

	callbacks InteractiveCallbacks
	describe  func(WorktreeEntry) []ui.DetailLine

	width  int
	height int

	selection *Selection
}

func newModel(worktrees []WorktreeEntry, branches []string, defaultBranch string, worktreesDir string, callbacks InteractiveCallbacks) model {
	wts := append([]WorktreeEntry(nil), worktrees...)
	sort.Slice(wts, func(i, j int) bool { return wts[i].Name < wts[j].Name })
	brs := sortedUnique(branches)
	if defaultBranch != "" && !containsString(brs, defaultBranch) {
		defaultBranch = ""
	}
	selected := -1
	if len(wts) > 0 {
		selected = 0
	}
	return model{
		worktrees:     wts,
		branches:      brs,
		defaultBranch: defaultBranch,
		worktreesDir:  worktreesDir,
		selected:      selected,
		callbacks:     callbacks,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if cd, ok := m.dialog.(*createDialog); ok {
			cd.setViewportHeight(createPickerHeight(m.height))
		}
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	switch d := m.dialog.(type) {
	case *removeDialog:
		return m.handleRemoveDialogKey(d, msg)
	case *mergeDialog:
		return m.handleMergeDialogKey(d, msg)
	case *infoDialog:
		return m.handleInfoDialogKey(d, msg)
	case *createDialog:
		return m.handleCreateDialogKey(d, msg)
	}

	switch msg.String() {
	case "esc", "q":
		return m, tea.Quit
	case "tab":
		m.focus = m.focus.next()
	case "shift+tab":
		m.focus = m.focus.prev()
	case "up", "k":
		m.handleUp()
	case "down", "j":
		m.handleDown()
	case "left", "h":
		m.handleHorizontal(-1)
	case "right", "l":
		m.handleHorizontal(1)
	case "enter":
		return m.handleEnter()
	}
	return m, nil
}

// handleUp implements the escape-to-toolbar rule: moving above the first
// worktree lands on the last global action.
func (m *model) handleUp() {
	switch m.focus {
	case FocusWorktrees:
		switch {
		case len(m.worktrees) == 0:
			m.focus = FocusGlobalActions
			m.globalIndex = 0
		case m.selected <= 0:
			m.focus = FocusGlobalActions
			m.globalIndex = len(globalActions) - 1
		default:
			m.selected--
		}
	case FocusActions:
		m.actionIndex = wrapIndex(m.actionIndex-1, len(actionList))
	case FocusGlobalActions:
		m.globalIndex = wrapIndex(m.globalIndex-1, len(globalActions))
	}
}

func (m *model) handleDown() {
	switch m.focus {
	case FocusWorktrees:
		if len(m.worktrees) == 0 {
			m.focus = FocusGlobalActions
			m.globalIndex = globalActionCreate
			m.openCreateDialog()
			return
		}
		if m.selected < 0 {
			m.selected = 0
			return
		}
		m.selected = (m.selected + 1) % len(m.worktrees)
	case FocusActions:
		m.actionIndex = wrapIndex(m.actionIndex+1, len(actionList))
	case FocusGlobalActions:
		m.globalIndex = wrapIndex(m.globalIndex+1, len(globalActions))
	}
}

func (m *model) handleHorizontal(delta int) {
	switch m.focus {
	case FocusActions:
		m.actionIndex = wrapIndex(m.actionIndex+delta, len(actionList))
	case FocusGlobalActions:
		m.globalIndex = wrapIndex(m.globalIndex+delta, len(globalActions))
	}
}

func (m model) handleEnter() (tea.Model, tea.Cmd) {
	switch m.focus {
	case FocusWorktrees:
		if entry, ok := m.selectedEntry(); ok {
			m.selection = &Selection{Kind: SelectWorktree, Name: entry.Name}
			return m, tea.Quit
		}
	case FocusActions:
		return m.dispatchAction(actionList[m.actionIndex])
	case FocusGlobalActions:
		switch m.globalIndex {
		case globalActionCreate:
			m.openCreateDialog()
		case globalActionCdRoot:
			m.selection = &Selection{Kind: SelectRepoRoot}
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m model) dispatchAction(action Action) (tea.Model, tea.Cmd) {
	entry, ok := m.selectedEntry()
	if action.requiresSelection() && !ok {
		m.status = infoStatus("No worktree selected.")
		return m, nil
	}
	switch action {
	case ActionOpen:
		m.selection = &Selection{Kind: SelectWorktree, Name: entry.Name}
		return m, tea.Quit
	case ActionOpenEditor:
		if m.callbacks.OnOpenEditor == nil {
			m.status = errorStatus("No editor configured.")
			return m, nil
		}
		if err := m.callbacks.OnOpenEditor(entry.Name, entry.Path); err != nil {
			m.status = errorStatus(fmt.Sprintf("Failed to open editor: %v", err))
		} else {
			m.status = infoStatus(fmt.Sprintf("Opened `%s` in editor.", entry.Name))
		}
	case ActionRemove:
		m.dialog = newRemoveDialog(m.selected)
	case ActionPrGithub:
		m.selection = &Selection{Kind: SelectPrGithub, Name: entry.Name}
		return m, tea.Quit
	case ActionMergePrGithub:
		m.dialog = newMergeDialog(m.selected)
	}
	return m, nil
}

func (m *model) openCreateDialog() {
	m.dialog = newCreateDialog(m.branches, m.worktrees, m.defaultBranch, createPickerHeight(m.height))
}

func (m model) handleRemoveDialogKey(d *removeDialog, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "n", "N":
		m.dialog = nil
		m.status = infoStatus("Removal cancelled.")
	case "y", "Y":
		m.confirmRemove(d)
	case "tab", "shift+tab":
		if d.section == dialogSectionOptions {
			d.section = dialogSectionButtons
		} else {
			d.section = dialogSectionOptions
		}
	case " ":
		d.toggle()
	case "up", "k", "down", "j":
		// Single option; vertical movement only swaps sections.
		if d.section == dialogSectionButtons {
			d.section = dialogSectionOptions
		}
	case "left", "h":
		if d.section == dialogSectionButtons {
			d.moveButton(-1)
		}
	case "right", "l":
		if d.section == dialogSectionButtons {
			d.moveButton(1)
		}
	case "enter":
		if d.section == dialogSectionOptions {
			d.section = dialogSectionButtons
			return m, nil
		}
		if d.buttonSelected == removeDialogConfirmButton {
			m.confirmRemove(d)
		} else {
			m.dialog = nil
			m.status = infoStatus("Removal cancelled.")
		}
	}
	return m, nil
}

func (m *model) confirmRemove(d *removeDialog) {
	if d.index < 0 || d.index >= len(m.worktrees) {
		m.dialog = nil
		return
	}
	entry := m.worktrees[d.index]
	if m.callbacks.OnRemove == nil {
		m.dialog = nil
		m.status = errorStatus("Removal is not available.")
		return
	}
	outcome, err := m.callbacks.OnRemove(entry.Name, d.removeLocalBranch)
	if err != nil {
		m.dialog = nil
		m.status = errorStatus(fmt.Sprintf("Failed to remove `%s`: %v", entry.Name, err))
		return
	}
	m.worktrees = append(m.worktrees[:d.index], m.worktrees[d.index+1:]...)
	m.selected = -1
	m.focus = FocusWorktrees
	m.status = nil
	m.dialog = &infoDialog{
		message:      removalMessage(entry, outcome),
		repositioned: outcome.Repositioned,
	}
}

func removalMessage(entry WorktreeEntry, outcome RemoveOutcome) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Removed worktree `%s` from `%s`.", entry.Name, filepath.Dir(entry.Path))
	switch outcome.LocalBranch {
	case LocalBranchDeleted:
		fmt.Fprintf(&b, " Deleted local branch `%s`.", entry.Name)
	case LocalBranchNotFound:
		fmt.Fprintf(&b, " Local branch `%s` not found.", entry.Name)
	}
	if outcome.Repositioned {
		b.WriteString(" You were inside it; continuing from the repository root.")
	}
	return b.String()
}

func (m model) handleMergeDialogKey(d *mergeDialog, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "n", "N":
		m.dialog = nil
		m.status = infoStatus("Merge cancelled.")
	case "y", "Y":
		return m.confirmMerge(d)
	case "tab", "shift+tab":
		if d.section == dialogSectionOptions {
			d.section = dialogSectionButtons
		} else {
			d.section = dialogSectionOptions
		}
	case " ":
		d.toggle()
	case "up", "k":
		if d.section == dialogSectionOptions {
			d.moveOption(-1)
		} else {
			d.section = dialogSectionOptions
			d.optionSelected = mergeDialogOptionCount - 1
		}
	case "down", "j":
		if d.section == dialogSectionOptions {
			if d.optionSelected == mergeDialogOptionCount-1 {
				d.section = dialogSectionButtons
			} else {
				d.moveOption(1)
			}
		}
	case "left", "h":
		if d.section == dialogSectionButtons {
			d.moveButton(-1)
		}
	case "right", "l":
		if d.section == dialogSectionButtons {
			d.moveButton(1)
		}
	case "enter":
		if d.section == dialogSectionOptions {
			d.section = dialogSectionButtons
			return m, nil
		}
		if d.buttonSelected == mergeDialogConfirmButton {
			return m.confirmMerge(d)
		}
		m.dialog = nil
		m.status = infoStatus("Merge cancelled.")
	}
	return m, nil
}

func (m model) confirmMerge(d *mergeDialog) (tea.Model, tea.Cmd) {
	if d.index < 0 || d.index >= len(m.worktrees) {
		m.dialog = nil
		return m, nil
	}
	entry := m.worktrees[d.index]
	m.selection = &Selection{
		Kind:               SelectMergePrGithub,
		Name:               entry.Name,
		RemoveLocalBranch:  d.removeLocalBranch,
		RemoveRemoteBranch: d.removeRemoteBranch,
		RemoveWorktree:     d.removeWorktree,
	}
	return m, tea.Quit
}

func (m model) handleInfoDialogKey(d *infoDialog, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc", " ":
		if d.repositioned {
			m.selection = &Selection{Kind: SelectRepoRoot}
			return m, tea.Quit
		}
		m.dialog = nil
	}
	return m, nil
}

func (m model) handleCreateDialogKey(d *createDialog, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.cancelCreate(d)
		return m, nil
	case "tab":
		d.focusNext()
		return m, nil
	case "shift+tab":
		d.focusPrev()
		return m, nil
	}

	switch d.focus {
	case createFocusName:
		if msg.String() == "enter" {
			d.setFocus(createFocusBase)
			return m, nil
		}
		var cmd tea.Cmd
		d.nameInput, cmd = d.nameInput.Update(msg)
		d.errText = ""
		return m, cmd
	case createFocusBase:
		switch msg.String() {
		case "up", "k":
			d.moveBase(-1)
		case "down", "j":
			d.moveBase(1)
		case "enter":
			d.setFocus(createFocusButtons)
		}
	case createFocusButtons:
		switch msg.String() {
		case "left", "h":
			d.moveButton(-1)
		case "right", "l":
			d.moveButton(1)
		case "enter":
			if d.buttonSelected == createDialogSubmitButton {
				m.submitCreate(d)
			} else {
				m.cancelCreate(d)
			}
		}
	}
	return m, nil
}

func (m *model) cancelCreate(d *createDialog) {
	d.nameInput.SetValue("")
	m.dialog = nil
	m.focus = FocusWorktrees
	m.status = infoStatus("Creation cancelled.")
}

func (m *model) submitCreate(d *createDialog) {
	d.errText = ""
	name := strings.TrimSpace(d.nameInput.Value())
	if name == "" {
		d.errText = "Worktree name cannot be empty."
		d.setFocus(createFocusName)
		return
	}
	for _, e := range m.worktrees {
		if e.Name == name {
			d.errText = fmt.Sprintf("Worktree `%s` already exists.", name)
			d.setFocus(createFocusName)
			return
		}
	}
	base := d.selectedBase()
	if m.callbacks.OnCreate == nil {
		d.errText = "Creation is not available."
		d.setFocus(createFocusName)
		return
	}
	if err := m.callbacks.OnCreate(name, base.value); err != nil {
		d.errText = err.Error()
		d.setFocus(createFocusName)
		return
	}

	m.worktrees = append(m.worktrees, WorktreeEntry{Name: name, Path: filepath.Join(m.worktreesDir, name)})
	sort.Slice(m.worktrees, func(i, j int) bool { return m.worktrees[i].Name < m.worktrees[j].Name })
	m.branches = sortedUnique(append(m.branches, name))
	for i, e := range m.worktrees {
		if e.Name == name {
			m.selected = i
			break
		}
	}
	m.focus = FocusWorktrees
	m.globalIndex = 0
	m.dialog = nil
	m.status = infoStatus(fmt.Sprintf("Created `%s` from %s.", name, base.label))
}

func (m model) selectedEntry() (WorktreeEntry, bool) {
	if m.selected < 0 || m.selected >= len(m.worktrees) {
		return WorktreeEntry{}, false
	}
	return m.worktrees[m.selected], true
}

// createPickerHeight derives the base-picker viewport height from the
// terminal height, leaving room for the dialog chrome around it.
func createPickerHeight(termHeight int) int {
	if termHeight <= 0 {
		return assumedPickerHeight
	}
	h := termHeight - 12
	if h < 3 {
		return 3
	}
	return h
}

func wrapIndex(i int, n int) int {
	if n == 0 {
		return 0
	}
	return ((i % n) + n) % n
}

func sortedUnique(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]bool, len(values))
	for _, v := range values {
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

func containsString(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}
