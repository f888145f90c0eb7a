package tui

import "github.com/epfokit/extractor/pkg/types"

// drainEvents consumes every pending worker event. Called on each poll
// tick; the queue is usually empty or one deep.
func (m *model) drainEvents() {
	for {
		ev := m.channels.Poll()
		if ev == nil {
			return
		}
		m.applyEvent(ev)
	}
}

// applyEvent folds one worker event into the UI state.
func (m *model) applyEvent(ev *types.Event) {
	switch ev.Type {
	case types.EventTypeStatusUpdate:
		m.statusLine = ev.Message
		m.appendLog(statusStyle.Render(ev.Message))

	case types.EventTypeErrorReport:
		m.busy = false
		m.statusLine = "Error."
		m.appendLog(errorStyle.Render("✗ " + ev.Message))

	case types.EventTypeInfoReport:
		m.busy = false
		m.statusLine = "Done."
		m.appendLog(successStyle.Render("✓ " + ev.Message))

	case types.EventTypeBrowserOpened:
		m.busy = false
		m.browserOpened = true
		m.statusLine = "Browser opened. Log in, then press v to verify."
		m.appendLog(logStyle.Render("Browser opened for manual login."))

	case types.EventTypeLoginVerified:
		m.busy = false
		if ev.LoggedIn {
			m.loggedIn = true
			m.statusLine = "Login verified. Choose a task."
			m.appendLog(successStyle.Render("✓ Login verified."))
		} else {
			m.statusLine = "Not logged in yet. Finish logging in and press v again."
			m.appendLog(errorStyle.Render("✗ Login not detected."))
		}
	}
}
