package batch

import (
	"context"
	"fmt"
	"time"

	"github.com/epfokit/extractor/pkg/logging"
	"github.com/epfokit/extractor/pkg/types"
	"github.com/epfokit/extractor/pkg/worker"
)

// verifyInterval is how often the executor re-probes the login state
// while waiting for the operator.
const verifyInterval = 3 * time.Second

// JobResult records the outcome of one job.
type JobResult struct {
	Job     Job
	Success bool
	Message string
}

// Executor runs a batch job list against a worker.
type Executor struct {
	worker *worker.Worker
	config *Config
	logger *logging.Logger

	progress func(string)
}

// NewExecutor creates a batch executor.
func NewExecutor(w *worker.Worker, cfg *Config, logger *logging.Logger) *Executor {
	return &Executor{
		worker: w,
		config: cfg,
		logger: logger,
	}
}

// SetProgress installs a callback for human-readable progress lines.
func (e *Executor) SetProgress(fn func(string)) {
	e.progress = fn
}

// Run starts the worker, waits for the manual login, runs every job in
// order and shuts the worker down. It returns the per-job results; a
// failed job is an error only when StopOnError is set.
func (e *Executor) Run(ctx context.Context) ([]JobResult, error) {
	if err := e.worker.Start(ctx); err != nil {
		return nil, fmt.Errorf("failed to start worker: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := e.worker.Shutdown(shutdownCtx); err != nil {
			e.logf("worker shutdown: %v", err)
		}
	}()

	if err := e.waitForLogin(ctx); err != nil {
		return nil, err
	}

	results := make([]JobResult, 0, len(e.config.Jobs))
	for i, job := range e.config.Jobs {
		e.say(fmt.Sprintf("Running job %d of %d (%s)...", i+1, len(e.config.Jobs), job.Type))

		result, err := e.runJob(ctx, job)
		if err != nil {
			return results, err
		}
		results = append(results, result)

		if !result.Success && e.config.StopOnError {
			return results, fmt.Errorf("job %d failed: %s", i+1, result.Message)
		}
	}
	return results, nil
}

// waitForLogin opens the login page and polls until the operator has
// logged in or the timeout elapses.
func (e *Executor) waitForLogin(ctx context.Context) error {
	e.submit(types.NewOpenLoginCommand())
	if _, err := e.awaitEvent(ctx, types.EventTypeBrowserOpened); err != nil {
		return err
	}
	e.say("Browser opened. Log in to the portal; extraction starts automatically.")

	deadline := time.Now().Add(e.config.LoginTimeout)
	for {
		if time.Now().After(deadline) {
			return fmt.Errorf("timed out after %s waiting for login", e.config.LoginTimeout)
		}

		e.submit(types.NewVerifyLoginCommand())
		ev, err := e.awaitEvent(ctx, types.EventTypeLoginVerified)
		if err != nil {
			return err
		}
		if ev.LoggedIn {
			e.say("Login verified.")
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(verifyInterval):
		}
	}
}

// runJob submits one job and consumes events until its terminal report.
func (e *Executor) runJob(ctx context.Context, job Job) (JobResult, error) {
	e.submit(job.command())

	for {
		ev, err := e.nextEvent(ctx)
		if err != nil {
			return JobResult{}, err
		}

		switch ev.Type {
		case types.EventTypeStatusUpdate:
			e.say(ev.Message)
		case types.EventTypeInfoReport:
			e.say(ev.Message)
			return JobResult{Job: job, Success: true, Message: ev.Message}, nil
		case types.EventTypeErrorReport:
			e.say("Error: " + ev.Message)
			return JobResult{Job: job, Success: false, Message: ev.Message}, nil
		}
	}
}

// awaitEvent consumes events until one of the wanted type arrives.
// An error report while waiting aborts the wait.
func (e *Executor) awaitEvent(ctx context.Context, want types.EventType) (*types.Event, error) {
	for {
		ev, err := e.nextEvent(ctx)
		if err != nil {
			return nil, err
		}
		if ev.Type == want {
			return ev, nil
		}
		if ev.IsError() {
			return nil, fmt.Errorf("worker error: %s", ev.Message)
		}
		if ev.Type == types.EventTypeStatusUpdate {
			e.say(ev.Message)
		}
	}
}

// nextEvent blocks for the next worker event. Unlike the interactive
// caller, batch mode has nothing else to do, so it may block.
func (e *Executor) nextEvent(ctx context.Context) (*types.Event, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case ev, ok := <-e.worker.Channels().Event:
		if !ok {
			return nil, fmt.Errorf("worker terminated unexpectedly")
		}
		return ev, nil
	}
}

func (e *Executor) submit(cmd *types.Command) {
	// The queue is far larger than a batch run ever needs; a full
	// queue here means the worker died, which the event loop surfaces.
	e.worker.Channels().Submit(cmd)
}

func (e *Executor) say(line string) {
	e.logf("%s", line)
	if e.progress != nil {
		e.progress(line)
	}
}

func (e *Executor) logf(format string, v ...interface{}) {
	if e.logger != nil {
		e.logger.Infof(format, v...)
	}
}
