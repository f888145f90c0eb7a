// Package tui provides the interactive terminal caller for the
// automation worker. The caller and the worker are connected only by
// the command and event queues: key presses become commands, and the
// UI redraws from events drained on a short poll tick.
//
// The TUI codebase is split into multiple files for better organization:
// - executor.go: Main executor implementation and program lifecycle
// - model.go: Core model structure and state
// - update.go: Bubble Tea Update function and message handling
// - view.go: Bubble Tea View function and rendering
// - events.go: Worker event processing
// - validate.go: Input validation before commands are enqueued
// - styles.go: Color schemes and styling
package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/epfokit/extractor/pkg/worker"
)

// Executor runs the TUI against a worker.
type Executor struct {
	worker  *worker.Worker
	program *tea.Program
	header  string
}

// NewExecutor creates a new TUI executor for the given worker.
func NewExecutor(w *worker.Worker, headerText string) *Executor {
	return &Executor{
		worker: w,
		header: headerText,
	}
}

// Run starts the worker and the TUI and blocks until the user exits.
func (e *Executor) Run(ctx context.Context) error {
	if err := e.worker.Start(ctx); err != nil {
		return fmt.Errorf("failed to start worker: %w", err)
	}

	m := initialModel()
	m.channels = e.worker.Channels()
	m.header = e.header

	e.program = tea.NewProgram(
		&m,
		tea.WithAltScreen(),
	)

	if _, err := e.program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI program: %w", err)
	}

	return nil
}
