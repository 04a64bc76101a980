package main

import (
	"fmt"
	"os"

	git "github.com/go-git/go-git/v5"

	"github.com/wtree-cli/wtree/ui"
)

// describeWorktree builds the detail panel for one worktree: branch, HEAD
// commit, and a working-tree status summary. Failures degrade to an error
// line rather than breaking the screen.
func describeWorktree(entry WorktreeEntry) []ui.DetailLine {
	lines := []ui.DetailLine{
		{Text: "Details", Tone: ui.DetailTitle},
		{Text: "path: " + entry.Path, Tone: ui.DetailMuted},
	}
	if _, err := os.Stat(entry.Path); err != nil {
		lines = append(lines, ui.DetailLine{Text: "directory missing", Tone: ui.DetailError})
		return lines
	}
	repo, err := git.PlainOpenWithOptions(entry.Path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		lines = append(lines, ui.DetailLine{Text: "unable to open repository: " + err.Error(), Tone: ui.DetailError})
		return lines
	}

	head, err := repo.Head()
	if err != nil {
		lines = append(lines, ui.DetailLine{Text: "unable to resolve HEAD: " + err.Error(), Tone: ui.DetailError})
		return lines
	}
	if head.Name().IsBranch() {
		lines = append(lines, ui.DetailLine{Text: "branch: " + head.Name().Short(), Tone: ui.DetailAccent})
	} else {
		lines = append(lines, ui.DetailLine{Text: "detached HEAD", Tone: ui.DetailWarn})
	}

	if commit, err := repo.CommitObject(head.Hash()); err == nil {
		summary := firstLine(commit.Message)
		lines = append(lines,
			ui.DetailLine{Text: fmt.Sprintf("commit: %s %s", head.Hash().String()[:8], summary), Tone: ui.DetailNormal},
			ui.DetailLine{Text: fmt.Sprintf("author: %s <%s>", commit.Author.Name, commit.Author.Email), Tone: ui.DetailMuted},
		)
	}

	if wt, err := repo.Worktree(); err == nil {
		if status, err := wt.Status(); err == nil {
			lines = append(lines, statusLine(status))
		}
	}
	return lines
}

func statusLine(status git.Status) ui.DetailLine {
	if status.IsClean() {
		return ui.DetailLine{Text: "status: clean", Tone: ui.DetailMuted}
	}
	staged, unstaged, untracked := 0, 0, 0
	for _, fs := range status {
		if fs.Staging == git.Untracked && fs.Worktree == git.Untracked {
			untracked++
			continue
		}
		if fs.Staging != git.Unmodified {
			staged++
		}
		if fs.Worktree != git.Unmodified {
			unstaged++
		}
	}
	return ui.DetailLine{
		Text: fmt.Sprintf("status: %d staged, %d unstaged, %d untracked", staged, unstaged, untracked),
		Tone: ui.DetailWarn,
	}
}

func firstLine(s string) string {
	for i, r := range s {
		if r == '\n' {
			return s[:i]
		}
	}
	return s
}
