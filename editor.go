package main

import (
	"errors"
	"os"
	"os/exec"
	"strings"
)

// resolveEditorCommand picks the editor: config first, then $VISUAL, then
// $EDITOR.
func resolveEditorCommand(cfg Config) (string, error) {
	if cfg.EditorCommand != "" {
		return cfg.EditorCommand, nil
	}
	if v := strings.TrimSpace(os.Getenv("VISUAL")); v != "" {
		return v, nil
	}
	if v := strings.TrimSpace(os.Getenv("EDITOR")); v != "" {
		return v, nil
	}
	return "", errors.New("no editor configured; set editor_command via `wtree config` or export $EDITOR")
}

// launchEditor starts the editor on the given path without waiting for it.
// The command may carry flags ("code -n", "subl -w").
func launchEditor(command string, path string) error {
	parts := strings.Fields(command)
	if len(parts) == 0 {
		return errors.New("empty editor command")
	}
	bin, err := exec.LookPath(parts[0])
	if err != nil {
		return err
	}
	cmd := exec.Command(bin, append(parts[1:], path)...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Start()
}
