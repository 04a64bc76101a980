package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	git "github.com/go-git/go-git/v5"
)

// worktreesDirName is the repo-local directory that holds all managed
// worktrees. It is kept out of git status via .git/info/exclude.
const worktreesDirName = ".wtree"

type Repo struct {
	root string
	git  *git.Repository
}

// DiscoverRepo walks up from the working directory to the enclosing git
// repository, the same way git itself resolves its context.
func DiscoverRepo() (*Repo, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	return openRepoAt(cwd)
}

func openRepoAt(dir string) (*Repo, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("not inside a git repository: %w", err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("repository has no working tree: %w", err)
	}
	return &Repo{root: wt.Filesystem.Root(), git: repo}, nil
}

func (r *Repo) Root() string {
	return r.root
}

func (r *Repo) WorktreesDir() string {
	return filepath.Join(r.root, worktreesDirName)
}

// EnsureWorktreesDir creates the worktrees dir on first use and registers it
// with .git/info/exclude so it never shows up as untracked.
func (r *Repo) EnsureWorktreesDir() (string, error) {
	dir := r.WorktreesDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	if err := r.ensureGitExclude(); err != nil {
		return "", err
	}
	return dir, nil
}

func (r *Repo) ensureGitExclude() error {
	gitDir := filepath.Join(r.root, ".git")
	info, err := os.Stat(gitDir)
	if err != nil || !info.IsDir() {
		// Linked worktrees carry a .git file; only the main checkout
		// owns info/exclude.
		return nil
	}
	excludePath := filepath.Join(gitDir, "info", "exclude")
	pattern := worktreesDirName + "/"
	data, err := os.ReadFile(excludePath)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	for _, line := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(line) == pattern {
			return nil
		}
	}
	if err := os.MkdirAll(filepath.Dir(excludePath), 0o755); err != nil {
		return err
	}
	content := string(data)
	if content != "" && !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	content += pattern + "\n"
	return os.WriteFile(excludePath, []byte(content), 0o644)
}
