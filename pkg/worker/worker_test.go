package worker

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/epfokit/extractor/pkg/portal"
	"github.com/epfokit/extractor/pkg/types"
)

// stubPage is a portal.Page whose first interaction fails or panics on
// demand. Worker tests only need the failure paths; the happy paths of
// the protocols are covered in their own package.
type stubPage struct {
	clickTextErr error
	panicOnClick bool
}

func (p *stubPage) Navigate(url string, timeoutMs float64) error { return nil }

func (p *stubPage) ClickText(text string) error {
	if p.panicOnClick {
		panic("page handle detached")
	}
	return p.clickTextErr
}

func (p *stubPage) Click(selector string) error              { return nil }
func (p *stubPage) Fill(selector, value string) error        { return nil }
func (p *stubPage) Press(selector, key string) error         { return nil }
func (p *stubPage) WaitFixed(d time.Duration)                {}
func (p *stubPage) InnerText(selector string) (string, error) { return "", nil }

func (p *stubPage) WaitForSelector(selector, state string, timeoutMs float64) error {
	return nil
}

func (p *stubPage) AllInnerTexts(selector string) ([]string, error) { return nil, nil }
func (p *stubPage) IsVisible(selector string) (bool, error)         { return false, nil }
func (p *stubPage) Attribute(selector, name string) (string, error) { return "", nil }
func (p *stubPage) Rows(selector string) ([]portal.Row, error)      { return nil, nil }

// stubDriver scripts the session lifecycle.
type stubDriver struct {
	page     *stubPage
	openErr  error
	loggedIn bool
	closed   bool
}

func (d *stubDriver) OpenLoginPage() (portal.Page, error) {
	if d.openErr != nil {
		return nil, d.openErr
	}
	if d.page == nil {
		d.page = &stubPage{}
	}
	return d.page, nil
}

func (d *stubDriver) VerifyLogin() bool { return d.loggedIn }

func (d *stubDriver) Close() error {
	d.closed = true
	return nil
}

// nextEvent receives the next queued event or fails the test.
func nextEvent(t *testing.T, w *Worker) *types.Event {
	t.Helper()
	select {
	case ev := <-w.Channels().Event:
		require.NotNil(t, ev)
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for an event")
		return nil
	}
}

// waitDone waits for the worker loop to terminate.
func waitDone(t *testing.T, w *Worker) {
	t.Helper()
	select {
	case <-w.Channels().Done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not terminate")
	}
}

func TestWorkerEmitsReadyOnStart(t *testing.T) {
	driver := &stubDriver{}
	w := New(driver)
	require.NoError(t, w.Start(context.Background()))

	ev := nextEvent(t, w)
	assert.Equal(t, types.EventTypeStatusUpdate, ev.Type)
	assert.Equal(t, "Ready. Please log in to begin.", ev.Message)

	require.NoError(t, w.Shutdown(context.Background()))
	assert.True(t, driver.closed)
}

func TestWorkerDoubleStartRejected(t *testing.T) {
	w := New(&stubDriver{})
	require.NoError(t, w.Start(context.Background()))
	assert.Error(t, w.Start(context.Background()))
	require.NoError(t, w.Shutdown(context.Background()))
}

func TestWorkerLoginFlowInOrder(t *testing.T) {
	driver := &stubDriver{loggedIn: true}
	w := New(driver)
	require.NoError(t, w.Start(context.Background()))

	// Commands are consumed strictly in submission order.
	require.True(t, w.Channels().Submit(types.NewOpenLoginCommand()))
	require.True(t, w.Channels().Submit(types.NewVerifyLoginCommand()))

	assert.Equal(t, types.EventTypeStatusUpdate, nextEvent(t, w).Type)

	opened := nextEvent(t, w)
	assert.Equal(t, types.EventTypeBrowserOpened, opened.Type)

	verified := nextEvent(t, w)
	assert.Equal(t, types.EventTypeLoginVerified, verified.Type)
	assert.True(t, verified.LoggedIn)

	require.NoError(t, w.Shutdown(context.Background()))
}

func TestWorkerLaunchFailureIsFatal(t *testing.T) {
	driver := &stubDriver{
		openErr: portal.LaunchError(fmt.Errorf("chromium missing")),
	}
	w := New(driver)
	require.NoError(t, w.Start(context.Background()))
	require.True(t, w.Channels().Submit(types.NewOpenLoginCommand()))

	assert.Equal(t, types.EventTypeStatusUpdate, nextEvent(t, w).Type)

	report := nextEvent(t, w)
	assert.Equal(t, types.EventTypeErrorReport, report.Type)

	assert.Equal(t, "Shutting down...", nextEvent(t, w).Message)
	waitDone(t, w)
	assert.True(t, driver.closed)
	assert.Equal(t, StateTerminated, w.State())
}

func TestWorkerNavigationFailureIsNotFatal(t *testing.T) {
	driver := &stubDriver{
		openErr: portal.NavigationError("could not open the portal login page", fmt.Errorf("timeout")),
	}
	w := New(driver)
	require.NoError(t, w.Start(context.Background()))
	require.True(t, w.Channels().Submit(types.NewOpenLoginCommand()))
	require.True(t, w.Channels().Submit(types.NewVerifyLoginCommand()))

	assert.Equal(t, types.EventTypeStatusUpdate, nextEvent(t, w).Type)
	assert.Equal(t, types.EventTypeErrorReport, nextEvent(t, w).Type)

	// The loop keeps serving commands after the navigation failure.
	assert.Equal(t, types.EventTypeLoginVerified, nextEvent(t, w).Type)

	require.NoError(t, w.Shutdown(context.Background()))
}

func TestWorkerTaskErrorDoesNotKillLoop(t *testing.T) {
	driver := &stubDriver{
		page: &stubPage{clickTextErr: fmt.Errorf("menu missing")},
	}
	w := New(driver)
	require.NoError(t, w.Start(context.Background()))

	require.True(t, w.Channels().Submit(types.NewOpenLoginCommand()))
	require.True(t, w.Channels().Submit(types.NewRunUanCommand([]string{"100000000001"}, "out.xlsx")))
	require.True(t, w.Channels().Submit(types.NewVerifyLoginCommand()))

	assert.Equal(t, types.EventTypeStatusUpdate, nextEvent(t, w).Type)
	assert.Equal(t, types.EventTypeBrowserOpened, nextEvent(t, w).Type)

	// The task announces itself, fails, and the failure is reported.
	assert.Equal(t, "Starting UAN extraction...", nextEvent(t, w).Message)
	assert.Equal(t, types.EventTypeErrorReport, nextEvent(t, w).Type)

	assert.Equal(t, types.EventTypeLoginVerified, nextEvent(t, w).Type)

	require.NoError(t, w.Shutdown(context.Background()))
}

func TestWorkerRecoversFromTaskPanic(t *testing.T) {
	driver := &stubDriver{
		page: &stubPage{panicOnClick: true},
	}
	w := New(driver)
	require.NoError(t, w.Start(context.Background()))

	require.True(t, w.Channels().Submit(types.NewOpenLoginCommand()))
	require.True(t, w.Channels().Submit(types.NewRunMsdCommand([]string{"100000000001"})))
	require.True(t, w.Channels().Submit(types.NewVerifyLoginCommand()))

	assert.Equal(t, types.EventTypeStatusUpdate, nextEvent(t, w).Type)
	assert.Equal(t, types.EventTypeBrowserOpened, nextEvent(t, w).Type)

	assert.Equal(t, "Starting Member Service Detail extraction...", nextEvent(t, w).Message)
	report := nextEvent(t, w)
	assert.Equal(t, types.EventTypeErrorReport, report.Type)
	assert.Contains(t, report.Message, "internal error")

	assert.Equal(t, types.EventTypeLoginVerified, nextEvent(t, w).Type)

	require.NoError(t, w.Shutdown(context.Background()))
}

func TestWorkerTaskWithoutSessionIsRejected(t *testing.T) {
	w := New(&stubDriver{})
	require.NoError(t, w.Start(context.Background()))
	require.True(t, w.Channels().Submit(types.NewRunUanCommand([]string{"100000000001"}, "out.xlsx")))

	assert.Equal(t, types.EventTypeStatusUpdate, nextEvent(t, w).Type)

	report := nextEvent(t, w)
	assert.Equal(t, types.EventTypeErrorReport, report.Type)
	assert.Contains(t, report.Message, "open the login page first")

	require.NoError(t, w.Shutdown(context.Background()))
}

func TestWorkerShutdownEmitsStatusAndCloses(t *testing.T) {
	driver := &stubDriver{}
	w := New(driver)
	require.NoError(t, w.Start(context.Background()))

	assert.Equal(t, types.EventTypeStatusUpdate, nextEvent(t, w).Type)

	require.True(t, w.Channels().Submit(types.NewShutdownCommand()))
	assert.Equal(t, "Shutting down...", nextEvent(t, w).Message)

	waitDone(t, w)
	assert.True(t, driver.closed)
	assert.Equal(t, StateTerminated, w.State())
}

func TestWorkerContextCancellationStopsLoop(t *testing.T) {
	driver := &stubDriver{}
	w := New(driver)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, w.Start(ctx))
	assert.Equal(t, types.EventTypeStatusUpdate, nextEvent(t, w).Type)

	cancel()
	waitDone(t, w)
	assert.True(t, driver.closed)
}
