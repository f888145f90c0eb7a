package types

// CommandType defines the type of command submitted to the automation worker.
type CommandType string

const (
	CommandTypeOpenLogin   CommandType = "open_login"   // CommandTypeOpenLogin asks the worker to open the portal login page.
	CommandTypeVerifyLogin CommandType = "verify_login" // CommandTypeVerifyLogin asks the worker to probe for a logged-in session.
	CommandTypeRunUan      CommandType = "run_uan"      // CommandTypeRunUan starts a UAN profile lookup task.
	CommandTypeRunEcr      CommandType = "run_ecr"      // CommandTypeRunEcr starts an ECR statement download task.
	CommandTypeRunMsd      CommandType = "run_msd"      // CommandTypeRunMsd starts a member service detail scrape task.
	CommandTypeShutdown    CommandType = "shutdown"     // CommandTypeShutdown terminates the worker loop and tears down the session.
)

// Command represents a single unit of work submitted to the worker.
// Commands are immutable once enqueued and consumed exactly once.
type Command struct {
	// Type indicates the kind of command.
	Type CommandType

	// UANs is the ordered list of account numbers to process.
	// Only populated for run_uan and run_msd commands.
	UANs []string

	// OutputPath is the destination spreadsheet path.
	// Only populated for run_uan commands.
	OutputPath string

	// Start and End bound the inclusive wage-month range.
	// Only populated for run_ecr commands.
	Start YearMonth
	End   YearMonth
}

// NewOpenLoginCommand creates a command that opens the portal login page.
func NewOpenLoginCommand() *Command {
	return &Command{Type: CommandTypeOpenLogin}
}

// NewVerifyLoginCommand creates a command that checks the login state.
func NewVerifyLoginCommand() *Command {
	return &Command{Type: CommandTypeVerifyLogin}
}

// NewRunUanCommand creates a command that runs a UAN profile lookup
// over the given account numbers, writing the result to outputPath.
func NewRunUanCommand(uans []string, outputPath string) *Command {
	return &Command{
		Type:       CommandTypeRunUan,
		UANs:       uans,
		OutputPath: outputPath,
	}
}

// NewRunEcrCommand creates a command that downloads confirmed ECR
// statements whose wage month falls within [start, end].
func NewRunEcrCommand(start, end YearMonth) *Command {
	return &Command{
		Type:  CommandTypeRunEcr,
		Start: start,
		End:   end,
	}
}

// NewRunMsdCommand creates a command that scrapes member service
// details for the given account numbers.
func NewRunMsdCommand(uans []string) *Command {
	return &Command{
		Type: CommandTypeRunMsd,
		UANs: uans,
	}
}

// NewShutdownCommand creates a command that stops the worker.
func NewShutdownCommand() *Command {
	return &Command{Type: CommandTypeShutdown}
}

// IsShutdown returns true if this is a shutdown command.
func (c *Command) IsShutdown() bool {
	return c.Type == CommandTypeShutdown
}

// IsTask returns true if this command dispatches an extraction task.
func (c *Command) IsTask() bool {
	return c.Type == CommandTypeRunUan ||
		c.Type == CommandTypeRunEcr ||
		c.Type == CommandTypeRunMsd
}
