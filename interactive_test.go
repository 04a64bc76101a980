package main

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func keyMsg(key string) tea.KeyMsg {
	switch key {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
}

func press(t *testing.T, m model, keys ...string) model {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(keyMsg(k))
		var ok bool
		m, ok = next.(model)
		if !ok {
			t.Fatalf("Update returned %T, want model", next)
		}
	}
	return m
}

func typeText(t *testing.T, m model, text string) model {
	t.Helper()
	for _, r := range text {
		m = press(t, m, string(r))
	}
	return m
}

func testEntries(names ...string) []WorktreeEntry {
	entries := make([]WorktreeEntry, 0, len(names))
	for _, n := range names {
		entries = append(entries, WorktreeEntry{Name: n, Path: "/repo/.wtree/" + n})
	}
	return entries
}

func TestFocusCycles(t *testing.T) {
	m := newModel(testEntries("alpha"), []string{"main"}, "main", "/repo/.wtree", InteractiveCallbacks{})

	m = press(t, m, "tab")
	if m.focus != FocusActions {
		t.Fatalf("focus = %v, want FocusActions", m.focus)
	}
	m = press(t, m, "tab")
	if m.focus != FocusGlobalActions {
		t.Fatalf("focus = %v, want FocusGlobalActions", m.focus)
	}
	m = press(t, m, "tab")
	if m.focus != FocusWorktrees {
		t.Fatalf("focus = %v, want FocusWorktrees", m.focus)
	}
	m = press(t, m, "shift+tab")
	if m.focus != FocusGlobalActions {
		t.Fatalf("focus = %v, want FocusGlobalActions after shift+tab", m.focus)
	}
}

func TestUpAtFirstWorktreeJumpsToToolbar(t *testing.T) {
	m := newModel(testEntries("alpha", "beta"), nil, "", "/repo/.wtree", InteractiveCallbacks{})

	m = press(t, m, "up")
	if m.focus != FocusGlobalActions {
		t.Fatalf("focus = %v, want FocusGlobalActions", m.focus)
	}
	if m.globalIndex != len(globalActions)-1 {
		t.Fatalf("globalIndex = %d, want %d", m.globalIndex, len(globalActions)-1)
	}
}

func TestEmptyListNavigation(t *testing.T) {
	m := newModel(nil, []string{"main"}, "main", "/repo/.wtree", InteractiveCallbacks{})
	if m.selected != -1 {
		t.Fatalf("selected = %d, want -1", m.selected)
	}

	up := press(t, m, "up")
	if up.focus != FocusGlobalActions || up.globalIndex != 0 {
		t.Fatalf("up: focus=%v globalIndex=%d, want toolbar index 0", up.focus, up.globalIndex)
	}

	down := press(t, m, "down")
	if _, ok := down.dialog.(*createDialog); !ok {
		t.Fatalf("down on empty list should open the create dialog, got %T", down.dialog)
	}
	if down.focus != FocusGlobalActions || down.globalIndex != globalActionCreate {
		t.Fatalf("down: focus=%v globalIndex=%d", down.focus, down.globalIndex)
	}
}

func TestActionPanelWrapsAround(t *testing.T) {
	m := newModel(testEntries("alpha"), nil, "", "/repo/.wtree", InteractiveCallbacks{})
	m = press(t, m, "tab") // actions

	m = press(t, m, "up")
	if m.actionIndex != len(actionList)-1 {
		t.Fatalf("actionIndex = %d, want %d", m.actionIndex, len(actionList)-1)
	}
	m = press(t, m, "down")
	if m.actionIndex != 0 {
		t.Fatalf("actionIndex = %d, want 0", m.actionIndex)
	}

	m = press(t, m, "tab") // global actions
	m = press(t, m, "up")
	if m.globalIndex != len(globalActions)-1 {
		t.Fatalf("globalIndex = %d, want %d", m.globalIndex, len(globalActions)-1)
	}
	m = press(t, m, "down")
	if m.globalIndex != 0 {
		t.Fatalf("globalIndex = %d, want 0", m.globalIndex)
	}
}

func TestEnterOnWorktreeSelectsIt(t *testing.T) {
	m := newModel(testEntries("alpha", "beta"), nil, "", "/repo/.wtree", InteractiveCallbacks{})
	m = press(t, m, "down", "enter")

	if m.selection == nil {
		t.Fatal("selection is nil")
	}
	if m.selection.Kind != SelectWorktree || m.selection.Name != "beta" {
		t.Fatalf("selection = %+v, want worktree beta", m.selection)
	}
}

func TestActionWithoutSelectionSetsStatus(t *testing.T) {
	m := newModel(nil, nil, "", "/repo/.wtree", InteractiveCallbacks{})
	m = press(t, m, "tab", "enter")

	if m.status == nil || m.status.Kind != StatusInfo {
		t.Fatalf("status = %+v, want info", m.status)
	}
	if m.status.Text != "No worktree selected." {
		t.Fatalf("status text = %q", m.status.Text)
	}
	if m.selection != nil {
		t.Fatalf("selection = %+v, want nil", m.selection)
	}
}

func TestRemoveFlow(t *testing.T) {
	var removedName string
	var removedBranch bool
	calls := 0
	callbacks := InteractiveCallbacks{
		OnRemove: func(name string, removeLocalBranch bool) (RemoveOutcome, error) {
			calls++
			removedName = name
			removedBranch = removeLocalBranch
			return RemoveOutcome{LocalBranch: LocalBranchDeleted}, nil
		},
	}
	m := newModel(testEntries("alpha", "beta", "gamma"), nil, "", "/repo/.wtree", callbacks)

	// Select beta, move to Actions, land on Remove, open the dialog, confirm.
	m = press(t, m, "down", "tab", "down", "down", "enter")
	if _, ok := m.dialog.(*removeDialog); !ok {
		t.Fatalf("dialog = %T, want *removeDialog", m.dialog)
	}
	m = press(t, m, "y")

	if calls != 1 {
		t.Fatalf("OnRemove calls = %d, want 1", calls)
	}
	if removedName != "beta" || !removedBranch {
		t.Fatalf("OnRemove(%q, %v), want (beta, true)", removedName, removedBranch)
	}
	if len(m.worktrees) != 2 {
		t.Fatalf("worktrees = %d, want 2", len(m.worktrees))
	}
	if m.selected != -1 {
		t.Fatalf("selected = %d, want -1", m.selected)
	}
	info, ok := m.dialog.(*infoDialog)
	if !ok {
		t.Fatalf("dialog = %T, want *infoDialog", m.dialog)
	}
	if !strings.Contains(info.message, "Removed worktree `beta`") {
		t.Fatalf("info message = %q", info.message)
	}
	if !strings.Contains(info.message, "Deleted local branch `beta`") {
		t.Fatalf("info message = %q", info.message)
	}

	m = press(t, m, "enter")
	if m.dialog != nil {
		t.Fatalf("dialog = %T, want nil after dismiss", m.dialog)
	}
	if m.selection != nil {
		t.Fatalf("selection = %+v, want nil", m.selection)
	}
}

func TestRemoveUncheckedBranchKeepsIt(t *testing.T) {
	var removedBranch bool
	callbacks := InteractiveCallbacks{
		OnRemove: func(_ string, removeLocalBranch bool) (RemoveOutcome, error) {
			removedBranch = removeLocalBranch
			return RemoveOutcome{}, nil
		},
	}
	m := newModel(testEntries("alpha"), nil, "", "/repo/.wtree", callbacks)

	m = press(t, m, "tab", "down", "down", "enter", "space", "y")
	if removedBranch {
		t.Fatal("OnRemove got removeLocalBranch=true after unchecking")
	}
}

func TestRemoveCancelKeepsEntry(t *testing.T) {
	calls := 0
	callbacks := InteractiveCallbacks{
		OnRemove: func(string, bool) (RemoveOutcome, error) {
			calls++
			return RemoveOutcome{}, nil
		},
	}
	m := newModel(testEntries("alpha"), nil, "", "/repo/.wtree", callbacks)

	m = press(t, m, "tab", "down", "down", "enter", "n")
	if calls != 0 {
		t.Fatalf("OnRemove calls = %d, want 0", calls)
	}
	if m.dialog != nil {
		t.Fatalf("dialog = %T, want nil", m.dialog)
	}
	if len(m.worktrees) != 1 {
		t.Fatalf("worktrees = %d, want 1", len(m.worktrees))
	}
	if m.status == nil || m.status.Text != "Removal cancelled." {
		t.Fatalf("status = %+v", m.status)
	}
}

func TestRemoveFailureKeepsEntry(t *testing.T) {
	callbacks := InteractiveCallbacks{
		OnRemove: func(string, bool) (RemoveOutcome, error) {
			return RemoveOutcome{}, errors.New("worktree is dirty")
		},
	}
	m := newModel(testEntries("alpha"), nil, "", "/repo/.wtree", callbacks)

	m = press(t, m, "tab", "down", "down", "enter", "y")
	if len(m.worktrees) != 1 {
		t.Fatalf("worktrees = %d, want 1", len(m.worktrees))
	}
	if m.status == nil || m.status.Kind != StatusError {
		t.Fatalf("status = %+v, want error status", m.status)
	}
	if !strings.Contains(m.status.Text, "worktree is dirty") {
		t.Fatalf("status text = %q", m.status.Text)
	}
	if m.dialog != nil {
		t.Fatalf("dialog = %T, want nil", m.dialog)
	}
}

func TestRemoveRepositionedExitsToRoot(t *testing.T) {
	callbacks := InteractiveCallbacks{
		OnRemove: func(string, bool) (RemoveOutcome, error) {
			return RemoveOutcome{Repositioned: true}, nil
		},
	}
	m := newModel(testEntries("alpha"), nil, "", "/repo/.wtree", callbacks)

	m = press(t, m, "tab", "down", "down", "enter", "y")
	info, ok := m.dialog.(*infoDialog)
	if !ok || !info.repositioned {
		t.Fatalf("dialog = %+v, want repositioned info", m.dialog)
	}

	m = press(t, m, "enter")
	if m.selection == nil || m.selection.Kind != SelectRepoRoot {
		t.Fatalf("selection = %+v, want repo root", m.selection)
	}
}

func TestCreateFlow(t *testing.T) {
	var gotName, gotBase string
	callbacks := InteractiveCallbacks{
		OnCreate: func(name string, base string) error {
			gotName, gotBase = name, base
			return nil
		},
	}
	m := newModel(testEntries("alpha"), []string{"feature", "main"}, "main", "/repo/.wtree", callbacks)

	m = press(t, m, "tab", "tab", "enter") // toolbar -> create dialog
	if _, ok := m.dialog.(*createDialog); !ok {
		t.Fatalf("dialog = %T, want *createDialog", m.dialog)
	}

	m = typeText(t, m, "new")
	m = press(t, m, "enter", "enter", "enter") // name -> base -> buttons -> submit

	if gotName != "new" || gotBase != "main" {
		t.Fatalf("OnCreate(%q, %q), want (new, main)", gotName, gotBase)
	}
	if m.dialog != nil {
		t.Fatalf("dialog = %T, want nil", m.dialog)
	}
	if len(m.worktrees) != 2 {
		t.Fatalf("worktrees = %d, want 2", len(m.worktrees))
	}
	entry, ok := m.selectedEntry()
	if !ok || entry.Name != "new" {
		t.Fatalf("selected entry = %+v, want new", entry)
	}
	if !containsString(m.branches, "new") {
		t.Fatalf("branches = %v, missing new", m.branches)
	}
	if m.focus != FocusWorktrees {
		t.Fatalf("focus = %v, want FocusWorktrees", m.focus)
	}
	if m.status == nil || !strings.Contains(m.status.Text, "Created `new` from branch: main") {
		t.Fatalf("status = %+v", m.status)
	}
}

func TestCreateValidation(t *testing.T) {
	calls := 0
	callbacks := InteractiveCallbacks{
		OnCreate: func(string, string) error {
			calls++
			return nil
		},
	}
	m := newModel(testEntries("alpha"), []string{"main"}, "main", "/repo/.wtree", callbacks)
	m = press(t, m, "tab", "tab", "enter")

	// Empty name.
	m = press(t, m, "enter", "enter", "enter")
	d, ok := m.dialog.(*createDialog)
	if !ok {
		t.Fatalf("dialog = %T, want *createDialog", m.dialog)
	}
	if d.errText != "Worktree name cannot be empty." {
		t.Fatalf("errText = %q", d.errText)
	}
	if d.focus != createFocusName {
		t.Fatalf("focus = %v, want name field", d.focus)
	}
	if calls != 0 {
		t.Fatalf("OnCreate calls = %d, want 0", calls)
	}

	// Duplicate name.
	m = typeText(t, m, "alpha")
	m = press(t, m, "enter", "enter", "enter")
	d = m.dialog.(*createDialog)
	if d.errText != "Worktree `alpha` already exists." {
		t.Fatalf("errText = %q", d.errText)
	}
	if calls != 0 {
		t.Fatalf("OnCreate calls = %d, want 0", calls)
	}
}

func TestCreateCallbackErrorIsRetryable(t *testing.T) {
	fail := true
	callbacks := InteractiveCallbacks{
		OnCreate: func(string, string) error {
			if fail {
				return errors.New("ref not found")
			}
			return nil
		},
	}
	m := newModel(nil, []string{"main"}, "main", "/repo/.wtree", callbacks)
	m = press(t, m, "tab", "tab", "enter")
	m = typeText(t, m, "new")
	m = press(t, m, "enter", "enter", "enter")

	d, ok := m.dialog.(*createDialog)
	if !ok {
		t.Fatalf("dialog = %T, want *createDialog (dialog must stay open)", m.dialog)
	}
	if d.errText != "ref not found" {
		t.Fatalf("errText = %q", d.errText)
	}
	if d.nameInput.Value() != "new" {
		t.Fatalf("name input = %q, want preserved value", d.nameInput.Value())
	}

	// Same dialog, second attempt succeeds.
	fail = false
	m = press(t, m, "enter", "enter", "enter")
	if m.dialog != nil {
		t.Fatalf("dialog = %T, want nil after retry", m.dialog)
	}
	if len(m.worktrees) != 1 || m.worktrees[0].Name != "new" {
		t.Fatalf("worktrees = %+v", m.worktrees)
	}
}

func TestCreateCancel(t *testing.T) {
	calls := 0
	callbacks := InteractiveCallbacks{
		OnCreate: func(string, string) error {
			calls++
			return nil
		},
	}
	m := newModel(testEntries("alpha"), []string{"main"}, "main", "/repo/.wtree", callbacks)
	m = press(t, m, "tab", "tab", "enter")
	m = typeText(t, m, "half-typed")
	m = press(t, m, "esc")

	if calls != 0 {
		t.Fatalf("OnCreate calls = %d, want 0", calls)
	}
	if m.dialog != nil {
		t.Fatalf("dialog = %T, want nil", m.dialog)
	}
	if m.focus != FocusWorktrees {
		t.Fatalf("focus = %v, want FocusWorktrees", m.focus)
	}
	if m.status == nil || m.status.Text != "Creation cancelled." {
		t.Fatalf("status = %+v", m.status)
	}
}

func TestMergeDialogDefaultsAndConfirm(t *testing.T) {
	m := newModel(testEntries("alpha"), nil, "", "/repo/.wtree", InteractiveCallbacks{})

	// Actions panel: land on Merge PR (last entry via wrap-up).
	m = press(t, m, "tab", "up", "enter")
	d, ok := m.dialog.(*mergeDialog)
	if !ok {
		t.Fatalf("dialog = %T, want *mergeDialog", m.dialog)
	}
	if !d.removeLocalBranch || d.removeRemoteBranch || d.removeWorktree {
		t.Fatalf("defaults = %v %v %v, want true false false", d.removeLocalBranch, d.removeRemoteBranch, d.removeWorktree)
	}

	// Toggle remote branch on, worktree on, then confirm.
	m = press(t, m, "down", "space", "down", "space", "y")
	if m.selection == nil || m.selection.Kind != SelectMergePrGithub {
		t.Fatalf("selection = %+v, want merge selection", m.selection)
	}
	sel := m.selection
	if sel.Name != "alpha" || !sel.RemoveLocalBranch || !sel.RemoveRemoteBranch || !sel.RemoveWorktree {
		t.Fatalf("selection = %+v", sel)
	}
}

func TestMergeDialogCancel(t *testing.T) {
	m := newModel(testEntries("alpha"), nil, "", "/repo/.wtree", InteractiveCallbacks{})
	m = press(t, m, "tab", "up", "enter", "esc")

	if m.dialog != nil {
		t.Fatalf("dialog = %T, want nil", m.dialog)
	}
	if m.selection != nil {
		t.Fatalf("selection = %+v, want nil", m.selection)
	}
	if m.status == nil || m.status.Text != "Merge cancelled." {
		t.Fatalf("status = %+v", m.status)
	}
}

func TestOpenEditorAction(t *testing.T) {
	var gotPath string
	callbacks := InteractiveCallbacks{
		OnOpenEditor: func(_ string, path string) error {
			gotPath = path
			return nil
		},
	}
	m := newModel(testEntries("alpha"), nil, "", "/repo/.wtree", callbacks)

	m = press(t, m, "tab", "down", "enter")
	if gotPath != "/repo/.wtree/alpha" {
		t.Fatalf("OnOpenEditor path = %q", gotPath)
	}
	if m.status == nil || m.status.Kind != StatusInfo {
		t.Fatalf("status = %+v, want info", m.status)
	}
	if m.selection != nil {
		t.Fatalf("selection = %+v, want nil (screen stays open)", m.selection)
	}
}

func TestOpenEditorFailureBecomesErrorStatus(t *testing.T) {
	callbacks := InteractiveCallbacks{
		OnOpenEditor: func(string, string) error {
			return errors.New("editor missing")
		},
	}
	m := newModel(testEntries("alpha"), nil, "", "/repo/.wtree", callbacks)

	m = press(t, m, "tab", "down", "enter")
	if m.status == nil || m.status.Kind != StatusError {
		t.Fatalf("status = %+v, want error", m.status)
	}
	if !strings.Contains(m.status.Text, "editor missing") {
		t.Fatalf("status text = %q", m.status.Text)
	}
}

func TestPrActionQuitsWithSelection(t *testing.T) {
	m := newModel(testEntries("alpha"), nil, "", "/repo/.wtree", InteractiveCallbacks{})

	m = press(t, m, "tab", "down", "down", "down", "enter")
	if m.selection == nil || m.selection.Kind != SelectPrGithub || m.selection.Name != "alpha" {
		t.Fatalf("selection = %+v, want PR for alpha", m.selection)
	}
}

func TestCdRootGlobalAction(t *testing.T) {
	m := newModel(testEntries("alpha"), nil, "", "/repo/.wtree", InteractiveCallbacks{})
	m = press(t, m, "tab", "tab", "down", "enter")

	if m.selection == nil || m.selection.Kind != SelectRepoRoot {
		t.Fatalf("selection = %+v, want repo root", m.selection)
	}
}

func TestWindowSizeResizesPicker(t *testing.T) {
	m := newModel(nil, []string{"main"}, "main", "/repo/.wtree", InteractiveCallbacks{})
	m = press(t, m, "tab", "tab", "enter")

	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 40})
	m = next.(model)
	d := m.dialog.(*createDialog)
	if got := d.view.viewHeight(); got != createPickerHeight(40) {
		t.Fatalf("viewport height = %d, want %d", got, createPickerHeight(40))
	}
}

func TestRemovalMessage(t *testing.T) {
	entry := WorktreeEntry{Name: "beta", Path: "/repo/.wtree/beta"}

	msg := removalMessage(entry, RemoveOutcome{LocalBranch: LocalBranchNotFound})
	if !strings.Contains(msg, "Local branch `beta` not found.") {
		t.Fatalf("message = %q", msg)
	}
	msg = removalMessage(entry, RemoveOutcome{})
	if strings.Contains(msg, "branch") {
		t.Fatalf("message mentions branch when kept: %q", msg)
	}
}
