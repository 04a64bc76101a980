package main

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5/plumbing"
)

// WorktreeManager owns the worktree lifecycle. Branch reads and deletions go
// through go-git; worktree add/remove shells out to the git binary because
// go-git's linked-worktree support is incomplete.
type WorktreeManager struct {
	repo *Repo
}

func NewWorktreeManager(repo *Repo) *WorktreeManager {
	return &WorktreeManager{repo: repo}
}

// Entries lists the managed worktrees, sorted by name.
func (m *WorktreeManager) Entries() ([]WorktreeEntry, error) {
	dir := m.repo.WorktreesDir()
	dirents, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var entries []WorktreeEntry
	for _, de := range dirents {
		if !de.IsDir() {
			continue
		}
		entries = append(entries, WorktreeEntry{
			Name: de.Name(),
			Path: filepath.Join(dir, de.Name()),
		})
	}
	return entries, nil
}

// Branches returns the local branch names sorted, plus the checked-out branch
// as the default (empty when HEAD is detached).
func (m *WorktreeManager) Branches() ([]string, string, error) {
	iter, err := m.repo.git.Branches()
	if err != nil {
		return nil, "", err
	}
	var names []string
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		names = append(names, ref.Name().Short())
		return nil
	})
	if err != nil {
		return nil, "", err
	}
	names = sortedUnique(names)

	defaultBranch := ""
	if head, err := m.repo.git.Head(); err == nil && head.Name().IsBranch() {
		defaultBranch = head.Name().Short()
	}
	if defaultBranch != "" && !containsString(names, defaultBranch) {
		defaultBranch = ""
	}
	return names, defaultBranch, nil
}

// Create makes a new branch and a linked worktree for it under the managed
// dir. base is the start point; empty means the current HEAD.
func (m *WorktreeManager) Create(name string, base string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.New("worktree name required")
	}
	dir, err := m.repo.EnsureWorktreesDir()
	if err != nil {
		return err
	}
	target := filepath.Join(dir, name)
	if _, err := os.Stat(target); err == nil {
		return fmt.Errorf("worktree `%s` already exists", name)
	}
	args := []string{"worktree", "add", "-b", name, target}
	if base != "" {
		args = append(args, base)
	} else {
		args = append(args, "HEAD")
	}
	return m.runGit(args...)
}

// Remove tears down the worktree and optionally its local branch. The
// outcome notes whether the current directory was inside the removed tree so
// the caller can reposition the user.
func (m *WorktreeManager) Remove(name string, removeLocalBranch bool) (RemoveOutcome, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return RemoveOutcome{}, errors.New("worktree name required")
	}
	target := filepath.Join(m.repo.WorktreesDir(), name)

	outcome := RemoveOutcome{}
	if cwd, err := os.Getwd(); err == nil {
		outcome.Repositioned = pathWithin(cwd, target)
	}

	if _, err := os.Stat(target); err == nil {
		if err := m.runGit("worktree", "remove", target); err != nil {
			return RemoveOutcome{}, err
		}
	} else {
		// Directory already gone; drop the stale administrative files.
		if err := m.runGit("worktree", "prune"); err != nil {
			return RemoveOutcome{}, err
		}
	}

	if removeLocalBranch {
		status, err := m.DeleteLocalBranch(name)
		if err != nil {
			return outcome, err
		}
		outcome.LocalBranch = status
	}
	return outcome, nil
}

// DeleteLocalBranch removes the branch ref via go-git. A missing branch is
// reported, not an error.
func (m *WorktreeManager) DeleteLocalBranch(name string) (LocalBranchStatus, error) {
	ref := plumbing.NewBranchReferenceName(name)
	if _, err := m.repo.git.Reference(ref, false); err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return LocalBranchNotFound, nil
		}
		return LocalBranchKept, err
	}
	if err := m.repo.git.Storer.RemoveReference(ref); err != nil {
		return LocalBranchKept, err
	}
	return LocalBranchDeleted, nil
}

func (m *WorktreeManager) runGit(args ...string) error {
	gitPath, err := exec.LookPath("git")
	if err != nil {
		return err
	}
	cmd := exec.Command(gitPath, args...)
	cmd.Dir = m.repo.Root()
	out, err := cmd.CombinedOutput()
	if err != nil {
		msg := strings.TrimSpace(string(out))
		if msg == "" {
			return err
		}
		return fmt.Errorf("git %s: %s", args[0], msg)
	}
	return nil
}

// pathWithin reports whether path sits at or below root.
func pathWithin(path string, root string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel == "." || (!strings.HasPrefix(rel, "..") && !filepath.IsAbs(rel))
}
