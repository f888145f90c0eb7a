package config

import (
	"fmt"
	"sync"
)

// Section is a named group of related settings. Each component of the
// extractor registers one section with the manager.
type Section interface {
	// ID returns the unique section identifier used as the storage key
	ID() string

	// Title returns a short human-readable section name
	Title() string

	// Description explains what the section configures
	Description() string

	// Data returns the current settings as a serializable map
	Data() map[string]interface{}

	// SetData updates the settings from stored data
	SetData(data map[string]interface{}) error

	// Validate checks the current settings for consistency
	Validate() error

	// Reset restores the section's defaults
	Reset()
}

// Manager coordinates configuration sections and their persistence.
type Manager struct {
	store    Store
	sections map[string]Section
	order    []string
	mu       sync.RWMutex
}

// NewManager creates a manager backed by the given store.
func NewManager(store Store) *Manager {
	return &Manager{
		store:    store,
		sections: make(map[string]Section),
	}
}

// Store returns the underlying persistence store.
func (m *Manager) Store() Store {
	return m.store
}

// RegisterSection adds a section to the manager. Section IDs must be unique.
func (m *Manager) RegisterSection(section Section) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := section.ID()
	if _, exists := m.sections[id]; exists {
		return fmt.Errorf("section %q already registered", id)
	}

	m.sections[id] = section
	m.order = append(m.order, id)
	return nil
}

// GetSection retrieves a registered section by ID.
func (m *Manager) GetSection(id string) (Section, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	section, ok := m.sections[id]
	return section, ok
}

// GetSections returns all sections in registration order.
func (m *Manager) GetSections() []Section {
	m.mu.RLock()
	defer m.mu.RUnlock()

	sections := make([]Section, 0, len(m.order))
	for _, id := range m.order {
		sections = append(sections, m.sections[id])
	}
	return sections
}

// LoadAll loads every registered section from the store.
func (m *Manager) LoadAll() error {
	if err := m.store.Load(); err != nil {
		return fmt.Errorf("failed to load config store: %w", err)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, id := range m.order {
		data, err := m.store.GetSection(id)
		if err != nil {
			return fmt.Errorf("failed to read section %q: %w", id, err)
		}
		if err := m.sections[id].SetData(data); err != nil {
			return fmt.Errorf("failed to apply section %q: %w", id, err)
		}
	}
	return nil
}

// SaveAll validates and persists every registered section.
func (m *Manager) SaveAll() error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, id := range m.order {
		section := m.sections[id]
		if err := section.Validate(); err != nil {
			return fmt.Errorf("section %q failed validation: %w", id, err)
		}
		if err := m.store.SetSection(id, section.Data()); err != nil {
			return fmt.Errorf("failed to stage section %q: %w", id, err)
		}
	}

	if err := m.store.Save(); err != nil {
		return fmt.Errorf("failed to save config store: %w", err)
	}
	return nil
}
