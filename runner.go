package main

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

const loginShellCommand = "exec \"${SHELL:-/bin/sh}\" -l"

// spawnShellIn replaces the screen with a login shell rooted in dir. The
// shell inherits the terminal; wtree exits when the shell does.
func spawnShellIn(dir string) error {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return errors.New("target directory required")
	}
	info, err := os.Stat(dir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("not a directory: %s", dir)
	}
	cmd := shellCommand(dir, loginShellCommand)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("shell exited: %w", err)
	}
	return nil
}

func shellCommand(dir string, runCmd string) *exec.Cmd {
	cmd := exec.Command("/bin/sh", "-lc", runCmd)
	cmd.Dir = dir
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd
}
