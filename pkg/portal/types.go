package portal

import (
	"time"

	"github.com/playwright-community/playwright-go"
)

// Session is the one live browser session. The worker owns it
// exclusively for its whole lifetime; there is never more than one.
type Session struct {
	// Browser is the Playwright browser instance
	Browser playwright.Browser

	// Context is the browser context (isolated session)
	Context playwright.BrowserContext

	// Page is the current active page
	Page playwright.Page

	// Headless indicates if the browser is running in headless mode
	Headless bool

	// CreatedAt is the timestamp when the session was created
	CreatedAt time.Time

	// CurrentURL is the URL of the current page
	CurrentURL string
}

// SessionOptions configures the browser session.
type SessionOptions struct {
	// Headless controls whether the browser runs without a visible
	// window. The login flow needs a visible window, so this defaults
	// to false.
	Headless bool

	// Viewport sets the initial viewport size
	Viewport *Viewport

	// Timeout sets the default timeout for operations (in milliseconds)
	Timeout float64
}

// Viewport represents the browser viewport dimensions.
type Viewport struct {
	Width  int
	Height int
}

// Default values for session setup
const (
	DefaultTimeout        = 60000.0 // 60 seconds in milliseconds
	DefaultViewportWidth  = 1280
	DefaultViewportHeight = 720
)
