package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/epfokit/extractor/pkg/types"
)

// pollInterval is how often the caller drains the event queue. The
// caller never blocks on the worker; it samples the queue on this tick.
const pollInterval = 100 * time.Millisecond

// maxLogLines bounds the scrollback kept in memory.
const maxLogLines = 200

// screen identifies which view the model is rendering.
type screen int

const (
	screenMenu screen = iota
	screenUanForm
	screenEcrForm
	screenMsdForm
)

// model represents the state of the TUI application.
type model struct {
	// Bubble Tea components
	spinner spinner.Model
	inputs  []textinput.Model
	focus   int

	// Worker integration
	channels *types.WorkerChannels

	// Customization
	header string

	// UI state
	screen        screen
	statusLine    string
	validationErr string
	logLines      []string

	// Worker state as observed through events
	busy          bool
	browserOpened bool
	loggedIn      bool
	shuttingDown  bool

	// Window dimensions
	width  int
	height int
}

// pollMsg fires on every poll tick.
type pollMsg time.Time

// workerDoneMsg signals that the worker loop has terminated.
type workerDoneMsg struct{}

func initialModel() model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = statusStyle

	return model{
		spinner:    sp,
		screen:     screenMenu,
		statusLine: "Starting...",
	}
}

// Init starts the poll tick and the spinner.
func (m *model) Init() tea.Cmd {
	return tea.Batch(m.pollTick(), m.spinner.Tick, m.waitDone())
}

// pollTick schedules the next event queue drain.
func (m *model) pollTick() tea.Cmd {
	return tea.Tick(pollInterval, func(t time.Time) tea.Msg {
		return pollMsg(t)
	})
}

// waitDone resolves when the worker loop terminates.
func (m *model) waitDone() tea.Cmd {
	ch := m.channels
	return func() tea.Msg {
		if ch != nil {
			<-ch.Done
		}
		return workerDoneMsg{}
	}
}

// appendLog adds one line to the scrollback, trimming old lines.
func (m *model) appendLog(line string) {
	m.logLines = append(m.logLines, line)
	if len(m.logLines) > maxLogLines {
		m.logLines = m.logLines[len(m.logLines)-maxLogLines:]
	}
}
