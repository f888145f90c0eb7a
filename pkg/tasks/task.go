// Package tasks contains the three extraction protocols that operate
// the portal session: the UAN profile lookup, the ECR statement
// downloader and the member service detail scraper. Each protocol is a
// purpose-built state machine over the portal.Page driver surface; they
// share no pipeline beyond "take a page, emit events, return an error".
package tasks

import (
	"time"

	"github.com/epfokit/extractor/pkg/config"
	"github.com/epfokit/extractor/pkg/logging"
	"github.com/epfokit/extractor/pkg/portal"
	"github.com/epfokit/extractor/pkg/types"
)

// EmitFunc delivers a result event to the caller's queue. Tasks emit
// progress and completion events through it; returned errors become
// error reports at the worker boundary.
type EmitFunc func(*types.Event)

// Task is one dispatchable extraction protocol.
type Task interface {
	// Name identifies the task in log lines.
	Name() string

	// Run executes the protocol against the page. Run blocks the
	// worker until the protocol finishes; there is no mid-task
	// cancellation, shutdown is honored between tasks.
	Run(page portal.Page, emit EmitFunc) error
}

// Config carries the task tuning shared by all three protocols.
type Config struct {
	// GridSettle is the fixed wait after a profile grid search.
	GridSettle time.Duration

	// ListSettle is the fixed wait for the slow claim list to fill.
	ListSettle time.Duration

	// PagerSettle is the small wait after the service grid reloads.
	PagerSettle time.Duration

	// NavTimeoutMs bounds the slow portal view transitions.
	NavTimeoutMs float64

	// GridTimeoutMs bounds grid loads and loader waits.
	GridTimeoutMs float64

	// DownloadDir collects statement PDFs before archiving.
	DownloadDir string

	// WorkDir collects per-member spreadsheets before archiving.
	WorkDir string

	// ArchiveDir receives the final zip artifacts.
	ArchiveDir string

	// Logger receives row-level skip diagnostics. May be nil.
	Logger *logging.Logger
}

// ConfigFromSettings builds a task config from the extraction settings
// section, with the portal section's navigation timeout.
func ConfigFromSettings(extraction *config.ExtractionSection, portalCfg *config.PortalSection, logger *logging.Logger) Config {
	return Config{
		GridSettle:    time.Duration(extraction.GetGridSettleMs()) * time.Millisecond,
		ListSettle:    time.Duration(extraction.GetListSettleMs()) * time.Millisecond,
		PagerSettle:   time.Duration(extraction.GetPagerSettleMs()) * time.Millisecond,
		NavTimeoutMs:  portalCfg.GetNavigationTimeoutMs(),
		GridTimeoutMs: 60000,
		DownloadDir:   extraction.GetDownloadDir(),
		WorkDir:       extraction.GetWorkDir(),
		ArchiveDir:    ".",
		Logger:        logger,
	}
}

func (c Config) warnf(format string, v ...interface{}) {
	if c.Logger != nil {
		c.Logger.Warnf(format, v...)
	}
}

func (c Config) errorf(format string, v ...interface{}) {
	if c.Logger != nil {
		c.Logger.Errorf(format, v...)
	}
}

func (c Config) infof(format string, v ...interface{}) {
	if c.Logger != nil {
		c.Logger.Infof(format, v...)
	}
}
