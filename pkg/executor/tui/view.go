package tui

import (
	"fmt"
	"strings"
)

// defaultHeader is shown when no custom header is configured.
const defaultHeader = "EPFO Extractor"

// View renders the active screen.
func (m *model) View() string {
	var b strings.Builder

	header := m.header
	if header == "" {
		header = defaultHeader
	}
	b.WriteString(headerStyle.Render(header))
	b.WriteString("\n\n")

	b.WriteString(m.renderStatus())
	b.WriteString("\n\n")

	if m.screen == screenMenu {
		b.WriteString(m.renderMenu())
	} else {
		b.WriteString(m.renderForm())
	}

	if m.validationErr != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(m.validationErr))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.renderLog())
	return b.String()
}

// renderStatus shows the worker's latest status line, with a spinner
// while a command is in flight.
func (m *model) renderStatus() string {
	if m.busy || m.shuttingDown {
		return fmt.Sprintf("%s %s", m.spinner.View(), statusStyle.Render(m.statusLine))
	}
	return statusStyle.Render(m.statusLine)
}

// renderMenu shows the top-level actions, dimming the ones that are
// not available yet.
func (m *model) renderMenu() string {
	var b strings.Builder

	line := func(key, label string, enabled bool) {
		entry := fmt.Sprintf("  %s  %s", labelStyle.Render(key), label)
		if !enabled {
			entry = helpStyle.Render(fmt.Sprintf("  %s  %s", key, label))
		}
		b.WriteString(entry)
		b.WriteString("\n")
	}

	line("o", "Open portal login page", !m.busy)
	line("v", "Verify login", m.browserOpened && !m.busy)
	line("1", "UAN profile lookup", m.loggedIn && !m.busy)
	line("2", "ECR statement download", m.loggedIn && !m.busy)
	line("3", "Member service details", m.loggedIn && !m.busy)
	line("q", "Quit", true)

	return b.String()
}

// renderForm shows the active task form.
func (m *model) renderForm() string {
	var title string
	var labels []string

	switch m.screen {
	case screenUanForm:
		title = "UAN Profile Lookup"
		labels = []string{"UANs", "Output file"}
	case screenEcrForm:
		title = "ECR Statement Download"
		labels = []string{"Start month", "End month"}
	case screenMsdForm:
		title = "Member Service Details"
		labels = []string{"UANs"}
	}

	var b strings.Builder
	b.WriteString(labelStyle.Render(title))
	b.WriteString("\n\n")
	for i, in := range m.inputs {
		b.WriteString(fmt.Sprintf("  %s\n  %s\n", helpStyle.Render(labels[i]), inputBoxStyle.Render(in.View())))
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("  enter: next/submit · tab: switch field · esc: back"))
	b.WriteString("\n")
	return b.String()
}

// renderLog shows the most recent worker output lines.
func (m *model) renderLog() string {
	visible := 10
	if m.height > 24 {
		visible = m.height - 16
	}
	lines := m.logLines
	if len(lines) > visible {
		lines = lines[len(lines)-visible:]
	}
	if len(lines) == 0 {
		return ""
	}
	return logStyle.Render(strings.Join(lines, "\n"))
}
