package types

// EventType defines the type of event emitted by the automation worker.
type EventType string

const (
	EventTypeStatusUpdate  EventType = "status_update"  // EventTypeStatusUpdate carries a transient progress message.
	EventTypeErrorReport   EventType = "error_report"   // EventTypeErrorReport carries a human-readable task failure.
	EventTypeInfoReport    EventType = "info_report"    // EventTypeInfoReport carries a task completion summary.
	EventTypeBrowserOpened EventType = "browser_opened" // EventTypeBrowserOpened indicates the login page is ready for manual login.
	EventTypeLoginVerified EventType = "login_verified" // EventTypeLoginVerified carries the result of a login probe.
)

// Event represents an asynchronous result produced by the worker and
// consumed by the caller. Each event is produced once and queued once.
type Event struct {
	// Type indicates the kind of event.
	Type EventType

	// Message holds the human-readable text for status, error and info events.
	Message string

	// LoggedIn holds the probe result for login_verified events.
	LoggedIn bool
}

// NewStatusUpdateEvent creates a progress status event.
func NewStatusUpdateEvent(message string) *Event {
	return &Event{Type: EventTypeStatusUpdate, Message: message}
}

// NewErrorReportEvent creates an error report event from an error.
func NewErrorReportEvent(err error) *Event {
	return &Event{Type: EventTypeErrorReport, Message: err.Error()}
}

// NewInfoReportEvent creates an informational completion event.
func NewInfoReportEvent(message string) *Event {
	return &Event{Type: EventTypeInfoReport, Message: message}
}

// NewBrowserOpenedEvent creates a browser opened event.
func NewBrowserOpenedEvent() *Event {
	return &Event{Type: EventTypeBrowserOpened}
}

// NewLoginVerifiedEvent creates a login verification result event.
func NewLoginVerifiedEvent(loggedIn bool) *Event {
	return &Event{Type: EventTypeLoginVerified, LoggedIn: loggedIn}
}

// IsError returns true if this is an error report.
func (e *Event) IsError() bool {
	return e.Type == EventTypeErrorReport
}

// IsTerminalForTask returns true if this event concludes a task
// (info and error reports both end a task from the caller's view).
func (e *Event) IsTerminalForTask() bool {
	return e.Type == EventTypeInfoReport || e.Type == EventTypeErrorReport
}
