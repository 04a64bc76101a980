package main

import (
	"os"
	"strings"

	"github.com/muesli/termenv"
)

// setTerminalTitle updates the window/tab title via OSC. tmux manages titles
// itself, so skip it there.
func setTerminalTitle(title string) {
	if strings.TrimSpace(os.Getenv("TMUX")) != "" {
		return
	}
	title = strings.TrimSpace(title)
	if title == "" {
		title = "wtree"
	}
	out := termenv.NewOutput(os.Stdout)
	out.SetWindowTitle(title)
}

func setWorktreeTitle(name string) {
	name = strings.TrimSpace(name)
	if name == "" {
		setTerminalTitle("wtree")
		return
	}
	setTerminalTitle("wtree - " + name)
}
