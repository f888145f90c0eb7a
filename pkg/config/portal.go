package config

import (
	"fmt"
	"strings"
	"sync"
)

const (
	// SectionIDPortal is the identifier for the portal settings section
	SectionIDPortal = "portal"

	// DefaultEntryURL is the employer portal entry point
	DefaultEntryURL = "https://unifiedportal-emp.epfindia.gov.in/epfo/"

	// DefaultLoginMarker is the element that only appears after login
	DefaultLoginMarker = `a:has-text("Member")`

	// DefaultNavigationTimeoutMs bounds slow portal page loads
	DefaultNavigationTimeoutMs = 200000

	// DefaultVerifyTimeoutMs bounds the login probe
	DefaultVerifyTimeoutMs = 5000
)

// PortalSection manages the portal endpoint and navigation settings.
type PortalSection struct {
	EntryURL            string
	LoginMarker         string
	NavigationTimeoutMs float64
	VerifyTimeoutMs     float64
	mu                  sync.RWMutex
}

// NewPortalSection creates a portal section with default settings.
func NewPortalSection() *PortalSection {
	s := &PortalSection{}
	s.Reset()
	return s
}

// ID returns the section identifier.
func (s *PortalSection) ID() string {
	return SectionIDPortal
}

// Title returns the section title.
func (s *PortalSection) Title() string {
	return "Portal Settings"
}

// Description returns the section description.
func (s *PortalSection) Description() string {
	return "Portal entry URL, login detection marker and navigation timeouts. The long navigation timeout tolerates the portal's slow page loads."
}

// Data returns the current configuration data.
func (s *PortalSection) Data() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return map[string]interface{}{
		"entry_url":             s.EntryURL,
		"login_marker":          s.LoginMarker,
		"navigation_timeout_ms": s.NavigationTimeoutMs,
		"verify_timeout_ms":     s.VerifyTimeoutMs,
	}
}

// SetData updates the configuration from the provided data.
func (s *PortalSection) SetData(data map[string]interface{}) error {
	if data == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if url, ok := data["entry_url"].(string); ok && url != "" {
		s.EntryURL = url
	}
	if marker, ok := data["login_marker"].(string); ok && marker != "" {
		s.LoginMarker = marker
	}
	if ms, ok := asMillis(data["navigation_timeout_ms"]); ok {
		s.NavigationTimeoutMs = ms
	}
	if ms, ok := asMillis(data["verify_timeout_ms"]); ok {
		s.VerifyTimeoutMs = ms
	}

	return nil
}

// Validate checks the current settings for consistency.
func (s *PortalSection) Validate() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !strings.HasPrefix(s.EntryURL, "http") {
		return fmt.Errorf("entry_url must be an absolute URL, got %q", s.EntryURL)
	}
	if s.NavigationTimeoutMs <= 0 {
		return fmt.Errorf("navigation_timeout_ms must be positive")
	}
	if s.VerifyTimeoutMs <= 0 {
		return fmt.Errorf("verify_timeout_ms must be positive")
	}
	return nil
}

// Reset restores the section's defaults.
func (s *PortalSection) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.EntryURL = DefaultEntryURL
	s.LoginMarker = DefaultLoginMarker
	s.NavigationTimeoutMs = DefaultNavigationTimeoutMs
	s.VerifyTimeoutMs = DefaultVerifyTimeoutMs
}

// GetEntryURL returns the portal entry URL.
func (s *PortalSection) GetEntryURL() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.EntryURL
}

// GetLoginMarker returns the post-login marker selector.
func (s *PortalSection) GetLoginMarker() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.LoginMarker
}

// GetNavigationTimeoutMs returns the page navigation timeout.
func (s *PortalSection) GetNavigationTimeoutMs() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.NavigationTimeoutMs
}

// GetVerifyTimeoutMs returns the login probe timeout.
func (s *PortalSection) GetVerifyTimeoutMs() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.VerifyTimeoutMs
}

// asMillis coerces JSON numbers (decoded as float64) and Go ints to a
// millisecond value.
func asMillis(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	default:
		return 0, false
	}
}
