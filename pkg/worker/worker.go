// Package worker provides the long-lived automation worker that owns
// the exclusive browser session. The worker is the single consumer of
// the command queue and the single producer of the event queue; it
// parks on the command channel between tasks and runs exactly one task
// at a time.
package worker

import (
	"context"
	"fmt"
	"sync"

	"github.com/epfokit/extractor/pkg/logging"
	"github.com/epfokit/extractor/pkg/portal"
	"github.com/epfokit/extractor/pkg/tasks"
	"github.com/epfokit/extractor/pkg/types"
)

// State is the worker lifecycle phase, observable by tests.
type State string

const (
	StateUninitialized State = "uninitialized"
	StateReady         State = "ready"
	StateIdle          State = "idle"
	StateBusy          State = "busy"
	StateShuttingDown  State = "shutting_down"
	StateTerminated    State = "terminated"
)

// SessionDriver abstracts the browser lifecycle so the loop can be
// exercised without a real browser.
type SessionDriver interface {
	// OpenLoginPage launches the browser if needed and shows the portal
	// login page. The returned page drives all subsequent tasks.
	OpenLoginPage() (portal.Page, error)

	// VerifyLogin probes the live session for an authenticated state.
	VerifyLogin() bool

	// Close tears down the browser and the automation runtime.
	Close() error
}

// Worker runs the automation loop. Create it with New, start it once
// with Start, and communicate only through its channels.
type Worker struct {
	channels *types.WorkerChannels
	driver   SessionDriver
	taskCfg  tasks.Config
	logger   *logging.Logger

	// page is the live portal page. Only the worker goroutine touches
	// it after Start.
	page portal.Page

	mu      sync.Mutex
	state   State
	running bool
}

// Option is a function that configures a worker.
type Option func(*Worker)

// WithTaskConfig sets the tuning shared by the extraction tasks.
func WithTaskConfig(cfg tasks.Config) Option {
	return func(w *Worker) {
		w.taskCfg = cfg
	}
}

// WithLogger routes worker diagnostics to the given logger.
func WithLogger(logger *logging.Logger) Option {
	return func(w *Worker) {
		w.logger = logger
	}
}

// WithBufferSize sets the command and event queue capacity.
func WithBufferSize(size int) Option {
	return func(w *Worker) {
		w.channels = types.NewWorkerChannels(size)
	}
}

// New creates a worker bound to the given session driver.
func New(driver SessionDriver, opts ...Option) *Worker {
	w := &Worker{
		channels: types.NewWorkerChannels(0),
		driver:   driver,
		state:    StateUninitialized,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Channels returns the communication channels for this worker.
func (w *Worker) Channels() *types.WorkerChannels {
	return w.channels
}

// State returns the current lifecycle phase.
func (w *Worker) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Start begins the worker loop in a goroutine.
func (w *Worker) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return fmt.Errorf("worker is already running")
	}
	w.running = true
	w.mu.Unlock()

	go w.run(ctx)
	return nil
}

// Shutdown submits a shutdown command and waits for the loop to
// terminate or the context to be canceled.
func (w *Worker) Shutdown(ctx context.Context) error {
	w.channels.Submit(types.NewShutdownCommand())

	select {
	case <-w.channels.Done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// run is the main processing loop. A single task failure never kills
// the loop; only shutdown, context cancellation and a failed browser
// launch do.
func (w *Worker) run(ctx context.Context) {
	defer w.teardown()

	w.setState(StateReady)
	w.emit(types.NewStatusUpdateEvent("Ready. Please log in to begin."))
	w.setState(StateIdle)

	for {
		select {
		case <-ctx.Done():
			w.setState(StateShuttingDown)
			return

		case cmd := <-w.channels.Command:
			if cmd == nil {
				// Channel closed
				w.setState(StateShuttingDown)
				return
			}

			if cmd.IsShutdown() {
				w.emit(types.NewStatusUpdateEvent("Shutting down..."))
				w.setState(StateShuttingDown)
				return
			}

			if fatal := w.handleCommand(cmd); fatal {
				w.emit(types.NewStatusUpdateEvent("Shutting down..."))
				w.setState(StateShuttingDown)
				return
			}
		}
	}
}

// handleCommand runs one command to completion. It reports whether the
// failure is fatal to the whole worker. A panic inside a task is
// recovered here and surfaced as an error report.
func (w *Worker) handleCommand(cmd *types.Command) (fatal bool) {
	w.setState(StateBusy)
	defer w.setState(StateIdle)

	defer func() {
		if r := recover(); r != nil {
			w.errorf("recovered from panic while handling %s: %v", cmd.Type, r)
			w.emit(types.NewErrorReportEvent(fmt.Errorf("internal error while handling %s: %v", cmd.Type, r)))
		}
	}()

	switch cmd.Type {
	case types.CommandTypeOpenLogin:
		return w.openLogin()

	case types.CommandTypeVerifyLogin:
		w.emit(types.NewLoginVerifiedEvent(w.driver.VerifyLogin()))
		return false

	default:
		w.runTask(cmd)
		return false
	}
}

// openLogin launches the browser and opens the portal entry page.
// A launch failure is the one unrecoverable error.
func (w *Worker) openLogin() (fatal bool) {
	page, err := w.driver.OpenLoginPage()
	if err != nil {
		w.errorf("could not open the login page: %v", err)
		w.emit(types.NewErrorReportEvent(err))
		return portal.IsLaunchError(err)
	}

	w.page = page
	w.emit(types.NewBrowserOpenedEvent())
	return false
}

// runTask builds and runs one extraction task against the live page.
func (w *Worker) runTask(cmd *types.Command) {
	if w.page == nil {
		w.emit(types.NewErrorReportEvent(fmt.Errorf("no active browser session; open the login page first")))
		return
	}

	task := w.buildTask(cmd)
	if task == nil {
		w.emit(types.NewErrorReportEvent(fmt.Errorf("unknown command type %q", cmd.Type)))
		return
	}

	w.infof("starting task %s", task.Name())
	if err := task.Run(w.page, w.emit); err != nil {
		w.errorf("task %s failed: %v", task.Name(), err)
		w.emit(types.NewErrorReportEvent(err))
		return
	}
	w.infof("task %s finished", task.Name())
}

// buildTask maps a task command to its extraction protocol.
func (w *Worker) buildTask(cmd *types.Command) tasks.Task {
	switch cmd.Type {
	case types.CommandTypeRunUan:
		return tasks.NewProfileLookup(cmd.UANs, cmd.OutputPath, w.taskCfg)
	case types.CommandTypeRunEcr:
		return tasks.NewStatementDownload(cmd.Start, cmd.End, w.taskCfg)
	case types.CommandTypeRunMsd:
		return tasks.NewServiceDetail(cmd.UANs, w.taskCfg)
	default:
		return nil
	}
}

// teardown closes the browser exactly once and marks the queues done.
func (w *Worker) teardown() {
	if err := w.driver.Close(); err != nil {
		w.errorf("error closing the browser session: %v", err)
	}

	w.setState(StateTerminated)
	w.channels.Close()

	w.mu.Lock()
	w.running = false
	w.mu.Unlock()
}

// emit queues one event for the caller. The event queue is buffered;
// the caller drains it on a short poll interval.
func (w *Worker) emit(ev *types.Event) {
	w.channels.Event <- ev
}

func (w *Worker) setState(s State) {
	w.mu.Lock()
	w.state = s
	w.mu.Unlock()
}

func (w *Worker) infof(format string, v ...interface{}) {
	if w.logger != nil {
		w.logger.Infof(format, v...)
	}
}

func (w *Worker) errorf(format string, v ...interface{}) {
	if w.logger != nil {
		w.logger.Errorf(format, v...)
	}
}
