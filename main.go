package main

import (
	"context"
	"os"

	"charm.land/lipgloss/v2"

	"github.com/synapt/synapt/cmd"
	"github.com/synapt/synapt/internal/render"
)

func main() {
	if err := cmd.Execute(context.Background()); err != nil {
		lipgloss.Fprintln(os.Stderr, render.FailureLine(err))
		os.Exit(1)
	}
}
