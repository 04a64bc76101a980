package main

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// GHManager drives the gh binary for pull request creation and merging. The
// argument builders are pure so they can be tested without gh installed.
type GHManager struct{}

func NewGHManager() *GHManager {
	return &GHManager{}
}

// CreatePR pushes the branch and opens a pull request for it. gh runs with
// the caller's terminal so it can prompt.
func (g *GHManager) CreatePR(repoRoot string, branch string) error {
	branch = strings.TrimSpace(branch)
	if branch == "" {
		return errors.New("branch required")
	}
	gitPath, err := exec.LookPath("git")
	if err != nil {
		return err
	}
	if err := runAttached(repoRoot, gitPath, "push", "-u", "origin", branch); err != nil {
		return fmt.Errorf("push failed: %w", err)
	}
	ghPath, err := exec.LookPath("gh")
	if err != nil {
		return fmt.Errorf("gh not found: %w", err)
	}
	return runAttached(repoRoot, ghPath, buildPRCreateArgs(branch)...)
}

// MergePR merges the branch's pull request, optionally deleting the remote
// branch with it.
func (g *GHManager) MergePR(repoRoot string, branch string, deleteRemoteBranch bool) error {
	branch = strings.TrimSpace(branch)
	if branch == "" {
		return errors.New("branch required")
	}
	ghPath, err := exec.LookPath("gh")
	if err != nil {
		return fmt.Errorf("gh not found: %w", err)
	}
	return runAttached(repoRoot, ghPath, buildPRMergeArgs(branch, deleteRemoteBranch)...)
}

func buildPRCreateArgs(branch string) []string {
	return []string{"pr", "create", "--head", branch, "--fill"}
}

func buildPRMergeArgs(branch string, deleteRemoteBranch bool) []string {
	args := []string{"pr", "merge", branch, "--squash"}
	if deleteRemoteBranch {
		args = append(args, "--delete-branch")
	}
	return args
}

func runAttached(dir string, bin string, args ...string) error {
	cmd := exec.Command(bin, args...)
	cmd.Dir = dir
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
