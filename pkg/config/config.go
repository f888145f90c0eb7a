package config

import (
	"sync"
)

var (
	// globalManager is the singleton configuration manager instance
	globalManager *Manager
	globalMu      sync.Mutex
)

// Initialize creates and initializes the global configuration manager.
// This should be called once at application startup.
func Initialize(configPath string) error {
	globalMu.Lock()
	defer globalMu.Unlock()

	store, err := NewFileStore(configPath)
	if err != nil {
		return err
	}

	manager := NewManager(store)

	if err := manager.RegisterSection(NewPortalSection()); err != nil {
		return err
	}

	if err := manager.RegisterSection(NewExtractionSection()); err != nil {
		return err
	}

	if err := manager.LoadAll(); err != nil {
		return err
	}

	globalManager = manager
	return nil
}

// Global returns the global configuration manager.
// Panics if Initialize has not been called.
func Global() *Manager {
	globalMu.Lock()
	defer globalMu.Unlock()

	if globalManager == nil {
		panic("config not initialized: call config.Initialize first")
	}

	return globalManager
}

// IsInitialized returns true if the global configuration has been initialized.
func IsInitialized() bool {
	globalMu.Lock()
	defer globalMu.Unlock()
	return globalManager != nil
}

// GetPortal returns the portal section from global config.
// Returns nil if config is not initialized.
func GetPortal() *PortalSection {
	if !IsInitialized() {
		return nil
	}

	section, ok := Global().GetSection(SectionIDPortal)
	if !ok {
		return nil
	}

	portal, ok := section.(*PortalSection)
	if !ok {
		return nil
	}

	return portal
}

// GetExtraction returns the extraction section from global config.
// Returns nil if config is not initialized.
func GetExtraction() *ExtractionSection {
	if !IsInitialized() {
		return nil
	}

	section, ok := Global().GetSection(SectionIDExtraction)
	if !ok {
		return nil
	}

	extraction, ok := section.(*ExtractionSection)
	if !ok {
		return nil
	}

	return extraction
}
