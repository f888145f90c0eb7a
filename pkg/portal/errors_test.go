package portal

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorKinds(t *testing.T) {
	launch := LaunchError(fmt.Errorf("chromium not installed"))
	assert.True(t, IsLaunchError(launch))
	assert.False(t, IsNavigationError(launch))
	assert.True(t, errors.Is(launch, ErrLaunch))

	nav := NavigationError("claim list did not load", fmt.Errorf("timeout"))
	assert.True(t, IsNavigationError(nav))
	assert.False(t, IsLaunchError(nav))
	assert.Contains(t, nav.Error(), "claim list did not load")
}

func TestErrorKindsSurviveWrapping(t *testing.T) {
	nav := NavigationError("grid", fmt.Errorf("detached"))
	wrapped := fmt.Errorf("task failed: %w", nav)
	assert.True(t, IsNavigationError(wrapped))
}
