package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/epfokit/extractor/pkg/types"
)

// Update handles all Bubble Tea messages.
func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case pollMsg:
		m.drainEvents()
		return m, m.pollTick()

	case workerDoneMsg:
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// handleKey routes a key press to the active screen.
func (m *model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m.requestShutdown()
	}

	if m.screen == screenMenu {
		return m.handleMenuKey(msg)
	}
	return m.handleFormKey(msg)
}

// handleMenuKey handles the top-level menu.
func (m *model) handleMenuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.validationErr = ""

	switch msg.String() {
	case "q":
		return m.requestShutdown()

	case "o":
		if m.busy {
			m.validationErr = "The worker is busy; wait for the current step to finish."
			return m, nil
		}
		m.submit(types.NewOpenLoginCommand(), "Opening browser...")
		return m, nil

	case "v":
		if m.busy {
			m.validationErr = "The worker is busy; wait for the current step to finish."
			return m, nil
		}
		if !m.browserOpened {
			m.validationErr = "Open the login page first (press o)."
			return m, nil
		}
		m.submit(types.NewVerifyLoginCommand(), "Verifying login...")
		return m, nil

	case "1":
		return m.openForm(screenUanForm)
	case "2":
		return m.openForm(screenEcrForm)
	case "3":
		return m.openForm(screenMsdForm)
	}

	return m, nil
}

// openForm switches to a task form, building its inputs.
func (m *model) openForm(s screen) (tea.Model, tea.Cmd) {
	if m.busy {
		m.validationErr = "The worker is busy; wait for the current task to finish."
		return m, nil
	}
	if !m.loggedIn {
		m.validationErr = "Verify your login before starting a task (press v)."
		return m, nil
	}

	newInput := func(placeholder string) textinput.Model {
		in := textinput.New()
		in.Placeholder = placeholder
		in.CharLimit = 512
		in.Width = 60
		return in
	}

	switch s {
	case screenUanForm:
		m.inputs = []textinput.Model{
			newInput("UANs, comma or space separated"),
			newInput("output file, e.g. profiles.xlsx"),
		}
	case screenEcrForm:
		m.inputs = []textinput.Model{
			newInput("start wage month, e.g. Jan-2024"),
			newInput("end wage month, e.g. Mar-2024"),
		}
	case screenMsdForm:
		m.inputs = []textinput.Model{
			newInput("UANs, comma or space separated"),
		}
	}

	m.screen = s
	m.focus = 0
	m.validationErr = ""
	m.inputs[0].Focus()
	return m, textinput.Blink
}

// handleFormKey handles field navigation and submission inside a form.
func (m *model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.screen = screenMenu
		m.inputs = nil
		m.validationErr = ""
		return m, nil

	case tea.KeyTab, tea.KeyDown:
		m.setFocus(m.focus + 1)
		return m, textinput.Blink

	case tea.KeyShiftTab, tea.KeyUp:
		m.setFocus(m.focus - 1)
		return m, textinput.Blink

	case tea.KeyEnter:
		if m.focus < len(m.inputs)-1 {
			m.setFocus(m.focus + 1)
			return m, textinput.Blink
		}
		return m.submitForm()
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

// setFocus moves field focus, wrapping around.
func (m *model) setFocus(next int) {
	if next < 0 {
		next = len(m.inputs) - 1
	}
	if next >= len(m.inputs) {
		next = 0
	}
	m.inputs[m.focus].Blur()
	m.focus = next
	m.inputs[m.focus].Focus()
}

// submitForm validates the active form and enqueues its command.
// Invalid input never reaches the worker.
func (m *model) submitForm() (tea.Model, tea.Cmd) {
	switch m.screen {
	case screenUanForm:
		uans, err := parseUANList(m.inputs[0].Value())
		if err != nil {
			m.validationErr = err.Error()
			return m, nil
		}
		path, err := validateOutputPath(m.inputs[1].Value())
		if err != nil {
			m.validationErr = err.Error()
			return m, nil
		}
		m.submit(types.NewRunUanCommand(uans, path), "Starting UAN extraction...")

	case screenEcrForm:
		start, end, err := parseMonthRange(m.inputs[0].Value(), m.inputs[1].Value())
		if err != nil {
			m.validationErr = err.Error()
			return m, nil
		}
		m.submit(types.NewRunEcrCommand(start, end), "Starting ECR extraction...")

	case screenMsdForm:
		uans, err := parseUANList(m.inputs[0].Value())
		if err != nil {
			m.validationErr = err.Error()
			return m, nil
		}
		m.submit(types.NewRunMsdCommand(uans), "Starting Member Service Detail extraction...")
	}

	m.screen = screenMenu
	m.inputs = nil
	m.validationErr = ""
	return m, nil
}

// submit enqueues one command without blocking.
func (m *model) submit(cmd *types.Command, status string) {
	if !m.channels.Submit(cmd) {
		m.validationErr = "The command queue is full; try again in a moment."
		return
	}
	m.busy = true
	m.statusLine = status
}

// requestShutdown asks the worker to stop; the program quits when the
// Done channel closes.
func (m *model) requestShutdown() (tea.Model, tea.Cmd) {
	if !m.shuttingDown {
		m.shuttingDown = true
		m.channels.Submit(types.NewShutdownCommand())
		m.statusLine = "Shutting down..."
	}
	return m, nil
}
