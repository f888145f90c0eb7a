package types

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCommandConstructors(t *testing.T) {
	tests := []struct {
		name     string
		command  *Command
		expected CommandType
		isTask   bool
	}{
		{name: "open login", command: NewOpenLoginCommand(), expected: CommandTypeOpenLogin},
		{name: "verify login", command: NewVerifyLoginCommand(), expected: CommandTypeVerifyLogin},
		{name: "run uan", command: NewRunUanCommand([]string{"1001"}, "out.xlsx"), expected: CommandTypeRunUan, isTask: true},
		{name: "run ecr", command: NewRunEcrCommand(YearMonth{2024, time.January}, YearMonth{2024, time.March}), expected: CommandTypeRunEcr, isTask: true},
		{name: "run msd", command: NewRunMsdCommand([]string{"1001", "1002"}), expected: CommandTypeRunMsd, isTask: true},
		{name: "shutdown", command: NewShutdownCommand(), expected: CommandTypeShutdown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.command.Type)
			assert.Equal(t, tt.isTask, tt.command.IsTask())
			assert.Equal(t, tt.expected == CommandTypeShutdown, tt.command.IsShutdown())
		})
	}
}

func TestRunUanCommandFields(t *testing.T) {
	cmd := NewRunUanCommand([]string{"1001", "1002"}, "members.xlsx")
	assert.Equal(t, []string{"1001", "1002"}, cmd.UANs)
	assert.Equal(t, "members.xlsx", cmd.OutputPath)
}

func TestEventConstructors(t *testing.T) {
	assert.Equal(t, EventTypeStatusUpdate, NewStatusUpdateEvent("working").Type)
	assert.Equal(t, EventTypeBrowserOpened, NewBrowserOpenedEvent().Type)

	ev := NewErrorReportEvent(errors.New("boom"))
	assert.Equal(t, EventTypeErrorReport, ev.Type)
	assert.Equal(t, "boom", ev.Message)
	assert.True(t, ev.IsError())
	assert.True(t, ev.IsTerminalForTask())

	verified := NewLoginVerifiedEvent(true)
	assert.Equal(t, EventTypeLoginVerified, verified.Type)
	assert.True(t, verified.LoggedIn)
	assert.False(t, verified.IsTerminalForTask())
}

func TestServiceDetailTableArity(t *testing.T) {
	table := &ServiceDetailTable{UAN: "1001", Headers: []string{"A", "B"}}

	assert.True(t, table.AppendRow([]string{"1", "2"}))
	assert.False(t, table.AppendRow([]string{"only one"}))
	assert.False(t, table.AppendRow([]string{"1", "2", "3"}))
	assert.Len(t, table.Rows, 1)
	assert.False(t, table.IsEmpty())
}
