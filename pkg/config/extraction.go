package config

import (
	"fmt"
	"sync"
)

const (
	// SectionIDExtraction is the identifier for the extraction settings section
	SectionIDExtraction = "extraction"

	// DefaultGridSettleMs is the fixed wait after a profile grid search
	DefaultGridSettleMs = 2000

	// DefaultListSettleMs is the fixed wait for the slow claim list to fill
	DefaultListSettleMs = 20000

	// DefaultPagerSettleMs is the small wait after the service grid reloads
	DefaultPagerSettleMs = 1000

	// DefaultDownloadDir collects statement PDFs before archiving
	DefaultDownloadDir = "ecr_downloads"

	// DefaultWorkDir collects per-member spreadsheets before archiving
	DefaultWorkDir = "msd_excel_files"
)

// ExtractionSection manages task tuning: the fixed settle delays that
// tolerate the portal's asynchronous grid refreshes, and the working
// directories for intermediate artifacts.
//
// The settle delays are a compatibility shim for grids with no reliable
// readiness signal; lower them only against a faster portal.
type ExtractionSection struct {
	GridSettleMs  float64
	ListSettleMs  float64
	PagerSettleMs float64
	DownloadDir   string
	WorkDir       string
	ChannelBuffer int
	mu            sync.RWMutex
}

// NewExtractionSection creates an extraction section with default settings.
func NewExtractionSection() *ExtractionSection {
	s := &ExtractionSection{}
	s.Reset()
	return s
}

// ID returns the section identifier.
func (s *ExtractionSection) ID() string {
	return SectionIDExtraction
}

// Title returns the section title.
func (s *ExtractionSection) Title() string {
	return "Extraction Settings"
}

// Description returns the section description.
func (s *ExtractionSection) Description() string {
	return "Settle delays and working directories for the extraction tasks."
}

// Data returns the current configuration data.
func (s *ExtractionSection) Data() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return map[string]interface{}{
		"grid_settle_ms":  s.GridSettleMs,
		"list_settle_ms":  s.ListSettleMs,
		"pager_settle_ms": s.PagerSettleMs,
		"download_dir":    s.DownloadDir,
		"work_dir":        s.WorkDir,
		"channel_buffer":  s.ChannelBuffer,
	}
}

// SetData updates the configuration from the provided data.
func (s *ExtractionSection) SetData(data map[string]interface{}) error {
	if data == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if ms, ok := asMillis(data["grid_settle_ms"]); ok {
		s.GridSettleMs = ms
	}
	if ms, ok := asMillis(data["list_settle_ms"]); ok {
		s.ListSettleMs = ms
	}
	if ms, ok := asMillis(data["pager_settle_ms"]); ok {
		s.PagerSettleMs = ms
	}
	if dir, ok := data["download_dir"].(string); ok && dir != "" {
		s.DownloadDir = dir
	}
	if dir, ok := data["work_dir"].(string); ok && dir != "" {
		s.WorkDir = dir
	}
	if buf, ok := asMillis(data["channel_buffer"]); ok && buf > 0 {
		s.ChannelBuffer = int(buf)
	}

	return nil
}

// Validate checks the current settings for consistency.
func (s *ExtractionSection) Validate() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.GridSettleMs < 0 || s.ListSettleMs < 0 || s.PagerSettleMs < 0 {
		return fmt.Errorf("settle delays must not be negative")
	}
	if s.DownloadDir == "" || s.WorkDir == "" {
		return fmt.Errorf("working directories must not be empty")
	}
	return nil
}

// Reset restores the section's defaults.
func (s *ExtractionSection) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.GridSettleMs = DefaultGridSettleMs
	s.ListSettleMs = DefaultListSettleMs
	s.PagerSettleMs = DefaultPagerSettleMs
	s.DownloadDir = DefaultDownloadDir
	s.WorkDir = DefaultWorkDir
	s.ChannelBuffer = 64
}

// GetGridSettleMs returns the profile grid settle delay.
func (s *ExtractionSection) GetGridSettleMs() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.GridSettleMs
}

// GetListSettleMs returns the claim list settle delay.
func (s *ExtractionSection) GetListSettleMs() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ListSettleMs
}

// GetPagerSettleMs returns the service grid settle delay.
func (s *ExtractionSection) GetPagerSettleMs() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.PagerSettleMs
}

// GetDownloadDir returns the statement download directory.
func (s *ExtractionSection) GetDownloadDir() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.DownloadDir
}

// GetWorkDir returns the per-member spreadsheet directory.
func (s *ExtractionSection) GetWorkDir() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.WorkDir
}

// GetChannelBuffer returns the command/event queue capacity.
func (s *ExtractionSection) GetChannelBuffer() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ChannelBuffer
}
