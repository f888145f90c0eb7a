package portal

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/playwright-community/playwright-go"
)

// SessionManager owns the Playwright runtime and the single browser
// session. Exactly one session may exist at a time; a second
// StartSession while one is live is a programming error.
type SessionManager struct {
	mu          sync.Mutex
	playwright  *playwright.Playwright
	session     *Session
	initialized bool
}

// NewSessionManager creates a new session manager.
func NewSessionManager() *SessionManager {
	return &SessionManager{}
}

// Initialize installs and starts the Playwright runtime.
// This must be called before starting the session.
func (m *SessionManager) Initialize() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}

	// Install and run Playwright with verbose=false and discard output to avoid interfering with TUI
	opts := &playwright.RunOptions{
		Verbose: false,
		Stdout:  io.Discard,
		Stderr:  io.Discard,
	}

	if err := playwright.Install(opts); err != nil {
		return LaunchError(fmt.Errorf("failed to install playwright: %w", err))
	}

	pw, err := playwright.Run(opts)
	if err != nil {
		return LaunchError(fmt.Errorf("failed to start playwright: %w", err))
	}

	m.playwright = pw
	m.initialized = true
	return nil
}

// StartSession launches the browser and creates the session.
func (m *SessionManager) StartSession(opts SessionOptions) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session != nil {
		return nil, fmt.Errorf("a session is already active")
	}
	if !m.initialized {
		return nil, fmt.Errorf("session manager not initialized")
	}

	// Set defaults
	if opts.Viewport == nil {
		opts.Viewport = &Viewport{
			Width:  DefaultViewportWidth,
			Height: DefaultViewportHeight,
		}
	}
	if opts.Timeout == 0 {
		opts.Timeout = DefaultTimeout
	}

	launchOpts := playwright.BrowserTypeLaunchOptions{
		Headless: &opts.Headless,
	}
	browser, err := m.playwright.Chromium.Launch(launchOpts)
	if err != nil {
		return nil, LaunchError(fmt.Errorf("failed to launch browser: %w", err))
	}

	contextOpts := playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{
			Width:  opts.Viewport.Width,
			Height: opts.Viewport.Height,
		},
	}
	context, err := browser.NewContext(contextOpts)
	if err != nil {
		browser.Close()
		return nil, LaunchError(fmt.Errorf("failed to create context: %w", err))
	}

	page, err := context.NewPage()
	if err != nil {
		context.Close()
		browser.Close()
		return nil, LaunchError(fmt.Errorf("failed to create page: %w", err))
	}

	page.SetDefaultTimeout(opts.Timeout)

	m.session = &Session{
		Browser:    browser,
		Context:    context,
		Page:       page,
		Headless:   opts.Headless,
		CreatedAt:  time.Now(),
		CurrentURL: "about:blank",
	}
	return m.session, nil
}

// ActiveSession returns the live session, if any.
func (m *SessionManager) ActiveSession() (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session, m.session != nil
}

// CloseSession closes the session's browser resources. Closing when no
// session is live is a no-op.
func (m *SessionManager) CloseSession() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session == nil {
		return nil
	}

	// Continue cleanup past individual close errors
	_ = m.session.Page.Close()
	_ = m.session.Context.Close()
	_ = m.session.Browser.Close()

	m.session = nil
	return nil
}

// Shutdown closes the session and stops the Playwright runtime.
func (m *SessionManager) Shutdown() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session != nil {
		m.session.Page.Close()
		m.session.Context.Close()
		m.session.Browser.Close()
		m.session = nil
	}

	if m.initialized && m.playwright != nil {
		if err := m.playwright.Stop(); err != nil {
			return fmt.Errorf("failed to stop playwright: %w", err)
		}
		m.initialized = false
	}

	return nil
}
