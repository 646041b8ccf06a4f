// Package controller provides console output for seq2many runs.
package controller

import (
	"context"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	m "seq2many.dev/pkg/seq2many/internal/model"
)

// UI defines what the workflow reports to the user.
// Implementations decide how it is rendered.
type UI interface {
	DisplayReference(ctx context.Context, path m.Path, ref m.Sequence)
	DisplayMutant(ctx context.Context, mode m.Mode, ref, mutant m.Sequence, written []m.Path)
	DisplayScan(ctx context.Context, summaries []m.ScanSummary)
	DisplayDistance(ctx context.Context, a, b m.Path, distance int)
	DisplayInvalidMode(ctx context.Context, mode string)
}

// NewUI returns a SimpleUI writing to cmd's output, with styling enabled
// when the output is a terminal.
func NewUI(cmd *cobra.Command, tty bool) UI {
	if tty {
		return NewStyledUI(cmd)
	}

	return NewSimpleUI(cmd)
}

// IsTTY reports whether f is attached to a terminal.
func IsTTY(f *os.File) bool {
	if f == nil {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
