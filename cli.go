package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "wtree",
		Short:         "Interactive Git worktree console",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runInteractive()
		},
	}

	root.AddCommand(
		newCreateCommand(),
		newLsCommand(),
		newCdCommand(),
		newRmCommand(),
		newOpenEditorCommand(),
		newPRCommand(),
		newMergePRCommand(),
		newConfigCommand(),
	)
	return root
}

func newCreateCommand() *cobra.Command {
	var base string
	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a branch and a worktree for it",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			repo, err := DiscoverRepo()
			if err != nil {
				return err
			}
			mgr := NewWorktreeManager(repo)
			if base == "" {
				if cfg, err := LoadConfig(); err == nil {
					base = cfg.BaseRef
				}
			}
			if err := mgr.Create(args[0], base); err != nil {
				return err
			}
			fmt.Printf("Created worktree `%s`.\n", args[0])
			return nil
		},
	}
	cmd.Flags().StringVar(&base, "base", "", "Base ref for the new branch (default: HEAD)")
	return cmd
}

func newLsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ls",
		Short: "List managed worktrees",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			repo, err := DiscoverRepo()
			if err != nil {
				return err
			}
			entries, err := NewWorktreeManager(repo).Entries()
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Println("No worktrees.")
				return nil
			}
			for _, e := range entries {
				fmt.Printf("%s\t%s\n", e.Name, e.Path)
			}
			return nil
		},
	}
}

func newCdCommand() *cobra.Command {
	var printOnly bool
	cmd := &cobra.Command{
		Use:               "cd <name>",
		Short:             "Open a shell in the worktree",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeWorktreeNames,
		RunE: func(_ *cobra.Command, args []string) error {
			repo, err := DiscoverRepo()
			if err != nil {
				return err
			}
			entry, err := findEntry(NewWorktreeManager(repo), args[0])
			if err != nil {
				return err
			}
			if printOnly {
				fmt.Println(entry.Path)
				return nil
			}
			setWorktreeTitle(entry.Name)
			return spawnShellIn(entry.Path)
		},
	}
	cmd.Flags().BoolVar(&printOnly, "print", false, "Print the worktree path instead of spawning a shell")
	return cmd
}

func newRmCommand() *cobra.Command {
	var force bool
	var keepBranch bool
	cmd := &cobra.Command{
		Use:               "rm <name>",
		Short:             "Remove a worktree",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeWorktreeNames,
		RunE: func(_ *cobra.Command, args []string) error {
			repo, err := DiscoverRepo()
			if err != nil {
				return err
			}
			mgr := NewWorktreeManager(repo)
			if _, err := findEntry(mgr, args[0]); err != nil {
				return err
			}
			if !force {
				ok, err := confirmRemoval(args[0])
				if err != nil {
					return err
				}
				if !ok {
					fmt.Println("Cancelled.")
					return nil
				}
			}
			outcome, err := mgr.Remove(args[0], !keepBranch)
			if err != nil {
				return err
			}
			fmt.Printf("Removed worktree `%s`.\n", args[0])
			switch outcome.LocalBranch {
			case LocalBranchDeleted:
				fmt.Printf("Deleted local branch `%s`.\n", args[0])
			case LocalBranchNotFound:
				fmt.Printf("Local branch `%s` not found.\n", args[0])
			}
			if outcome.Repositioned {
				setWorktreeTitle("")
				return spawnShellIn(repo.Root())
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Skip the confirmation prompt")
	cmd.Flags().BoolVar(&keepBranch, "keep-branch", false, "Keep the local branch")
	return cmd
}

func newOpenEditorCommand() *cobra.Command {
	return &cobra.Command{
		Use:               "open-editor <name>",
		Short:             "Open the worktree in the configured editor",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeWorktreeNames,
		RunE: func(_ *cobra.Command, args []string) error {
			repo, err := DiscoverRepo()
			if err != nil {
				return err
			}
			entry, err := findEntry(NewWorktreeManager(repo), args[0])
			if err != nil {
				return err
			}
			cfg, _ := LoadConfig()
			editor, err := resolveEditorCommand(cfg)
			if err != nil {
				return err
			}
			return launchEditor(editor, entry.Path)
		},
	}
}

func newPRCommand() *cobra.Command {
	return &cobra.Command{
		Use:               "pr <name>",
		Short:             "Push the branch and create a pull request via gh",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeWorktreeNames,
		RunE: func(_ *cobra.Command, args []string) error {
			repo, err := DiscoverRepo()
			if err != nil {
				return err
			}
			entry, err := findEntry(NewWorktreeManager(repo), args[0])
			if err != nil {
				return err
			}
			return NewGHManager().CreatePR(entry.Path, entry.Name)
		},
	}
}

func newMergePRCommand() *cobra.Command {
	var keepLocalBranch bool
	var deleteRemoteBranch bool
	var removeWorktree bool
	cmd := &cobra.Command{
		Use:               "merge-pr <name>",
		Short:             "Merge the branch's pull request via gh",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeWorktreeNames,
		RunE: func(_ *cobra.Command, args []string) error {
			repo, err := DiscoverRepo()
			if err != nil {
				return err
			}
			return executeMerge(repo, args[0], !keepLocalBranch, deleteRemoteBranch, removeWorktree)
		},
	}
	cmd.Flags().BoolVar(&keepLocalBranch, "keep-local-branch", false, "Keep the local branch after merging")
	cmd.Flags().BoolVar(&deleteRemoteBranch, "delete-remote-branch", false, "Delete the remote branch after merging")
	cmd.Flags().BoolVar(&removeWorktree, "remove-worktree", false, "Remove the worktree after merging")
	return cmd
}

func newConfigCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Open interactive configuration",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			p := tea.NewProgram(newConfigModel())
			_, err := p.Run()
			return err
		},
	}
}

func completeWorktreeNames(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	repo, err := DiscoverRepo()
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	entries, err := NewWorktreeManager(repo).Entries()
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name)
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}

func findEntry(mgr *WorktreeManager, name string) (WorktreeEntry, error) {
	entries, err := mgr.Entries()
	if err != nil {
		return WorktreeEntry{}, err
	}
	for _, e := range entries {
		if e.Name == name {
			return e, nil
		}
	}
	return WorktreeEntry{}, fmt.Errorf("worktree `%s` not found", name)
}

func runInteractive() error {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return fmt.Errorf("interactive mode needs a terminal; see `wtree --help`")
	}
	repo, err := DiscoverRepo()
	if err != nil {
		return err
	}
	mgr := NewWorktreeManager(repo)
	entries, err := mgr.Entries()
	if err != nil {
		return err
	}
	branches, defaultBranch, err := mgr.Branches()
	if err != nil {
		return err
	}
	cfg, _ := LoadConfig()

	callbacks := InteractiveCallbacks{
		OnRemove: func(name string, removeLocalBranch bool) (RemoveOutcome, error) {
			return mgr.Remove(name, removeLocalBranch)
		},
		OnCreate: func(name string, base string) error {
			return mgr.Create(name, base)
		},
		OnOpenEditor: func(_ string, path string) error {
			editor, err := resolveEditorCommand(cfg)
			if err != nil {
				return err
			}
			return launchEditor(editor, path)
		},
	}

	setTerminalTitle("wtree")
	m := newModel(entries, branches, defaultBranch, repo.WorktreesDir(), callbacks)
	m.describe = describeWorktree

	selection, err := runProgram(m)
	if err != nil {
		return err
	}
	if selection == nil {
		return nil
	}
	return executeSelection(repo, mgr, *selection)
}

// runProgram runs the TUI and extracts the terminal selection from the final
// model. A failed terminal restore is reported alongside the run error, not
// swallowed by it.
func runProgram(m model) (*Selection, error) {
	p := tea.NewProgram(m, tea.WithAltScreen())
	finalModel, runErr := p.Run()
	restoreErr := p.ReleaseTerminal()
	switch {
	case runErr != nil && restoreErr != nil:
		return nil, fmt.Errorf("interactive session failed (%v); terminal restore failed: %v", runErr, restoreErr)
	case runErr != nil:
		return nil, runErr
	case restoreErr != nil:
		return nil, fmt.Errorf("terminal restore failed: %w", restoreErr)
	}
	final, ok := finalModel.(model)
	if !ok {
		return nil, nil
	}
	return final.selection, nil
}

func executeSelection(repo *Repo, mgr *WorktreeManager, sel Selection) error {
	switch sel.Kind {
	case SelectWorktree:
		entry, err := findEntry(mgr, sel.Name)
		if err != nil {
			return err
		}
		setWorktreeTitle(entry.Name)
		return spawnShellIn(entry.Path)
	case SelectRepoRoot:
		setWorktreeTitle("")
		return spawnShellIn(repo.Root())
	case SelectPrGithub:
		entry, err := findEntry(mgr, sel.Name)
		if err != nil {
			return err
		}
		return NewGHManager().CreatePR(entry.Path, entry.Name)
	case SelectMergePrGithub:
		return executeMerge(repo, sel.Name, sel.RemoveLocalBranch, sel.RemoveRemoteBranch, sel.RemoveWorktree)
	}
	return nil
}

func executeMerge(repo *Repo, name string, removeLocalBranch bool, removeRemoteBranch bool, removeWorktree bool) error {
	mgr := NewWorktreeManager(repo)
	if err := NewGHManager().MergePR(repo.Root(), name, removeRemoteBranch); err != nil {
		return err
	}
	if removeWorktree {
		outcome, err := mgr.Remove(name, removeLocalBranch)
		if err != nil {
			return err
		}
		fmt.Printf("Removed worktree `%s`.\n", name)
		if outcome.Repositioned {
			setWorktreeTitle("")
			return spawnShellIn(repo.Root())
		}
		return nil
	}
	if removeLocalBranch {
		status, err := mgr.DeleteLocalBranch(name)
		if err != nil {
			return err
		}
		if status == LocalBranchDeleted {
			fmt.Printf("Deleted local branch `%s`.\n", name)
		}
	}
	return nil
}
