package portal

import (
	"errors"
	"fmt"
)

// Error kinds, ordered by blast radius. Launch failures end the worker's
// useful lifetime; navigation failures abort one task; row-level failures
// are logged and skipped inside the task loops.
var (
	// ErrLaunch means the browser session could not be created.
	ErrLaunch = errors.New("browser launch failed")

	// ErrNavigation means a required page or element did not appear
	// within its timeout.
	ErrNavigation = errors.New("portal navigation failed")
)

// LaunchError wraps err as a fatal launch failure.
func LaunchError(err error) error {
	return fmt.Errorf("%w: %v", ErrLaunch, err)
}

// NavigationError wraps a navigation failure with context about the
// step that failed.
func NavigationError(step string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrNavigation, step, err)
}

// IsLaunchError reports whether err is a fatal launch failure.
func IsLaunchError(err error) bool {
	return errors.Is(err, ErrLaunch)
}

// IsNavigationError reports whether err is a navigation failure.
func IsNavigationError(err error) bool {
	return errors.Is(err, ErrNavigation)
}
