// Package batch provides a non-interactive executor that runs a fixed
// job list from a YAML file. Login is still manual: the browser opens,
// the operator logs in, and the executor polls until the session is
// authenticated before running the jobs in order.
package batch

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/epfokit/extractor/pkg/types"
)

// JobType selects which extraction a job runs.
type JobType string

const (
	JobTypeUan JobType = "uan"
	JobTypeEcr JobType = "ecr"
	JobTypeMsd JobType = "msd"
)

// Job is one extraction to run.
type Job struct {
	// Type selects the extraction: uan, ecr or msd.
	Type JobType `yaml:"type"`

	// UANs lists the account numbers for uan and msd jobs.
	UANs []string `yaml:"uans,omitempty"`

	// Output is the spreadsheet path for uan jobs.
	Output string `yaml:"output,omitempty"`

	// Start and End bound the inclusive wage-month range for ecr jobs,
	// in "Mon-YYYY" form.
	Start string `yaml:"start,omitempty"`
	End   string `yaml:"end,omitempty"`
}

// Config is the parsed batch job file.
type Config struct {
	// LoginTimeout bounds how long the executor waits for the operator
	// to finish logging in.
	LoginTimeout time.Duration `yaml:"login_timeout"`

	// StopOnError aborts the remaining jobs after the first failure.
	StopOnError bool `yaml:"stop_on_error"`

	// Jobs run in order, one at a time.
	Jobs []Job `yaml:"jobs"`
}

// DefaultLoginTimeout is used when the job file does not set one.
const DefaultLoginTimeout = 5 * time.Minute

// LoadConfig reads and validates a batch job file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read job file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse job file: %w", err)
	}

	if cfg.LoginTimeout == 0 {
		cfg.LoginTimeout = DefaultLoginTimeout
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks every job is complete before anything runs.
func (c *Config) Validate() error {
	if len(c.Jobs) == 0 {
		return fmt.Errorf("job file has no jobs")
	}

	for i, job := range c.Jobs {
		if err := job.validate(); err != nil {
			return fmt.Errorf("job %d: %w", i+1, err)
		}
	}
	return nil
}

func (j *Job) validate() error {
	switch j.Type {
	case JobTypeUan:
		if len(j.UANs) == 0 {
			return fmt.Errorf("uan job needs at least one UAN")
		}
		if j.Output == "" {
			return fmt.Errorf("uan job needs an output path")
		}
	case JobTypeEcr:
		if _, _, err := j.monthRange(); err != nil {
			return err
		}
	case JobTypeMsd:
		if len(j.UANs) == 0 {
			return fmt.Errorf("msd job needs at least one UAN")
		}
	default:
		return fmt.Errorf("unknown job type %q", j.Type)
	}
	return nil
}

// monthRange parses and orders the ecr job's wage-month range.
func (j *Job) monthRange() (types.YearMonth, types.YearMonth, error) {
	start, err := types.ParseWageMonth(j.Start)
	if err != nil {
		return types.YearMonth{}, types.YearMonth{}, fmt.Errorf("start month: %w", err)
	}
	end, err := types.ParseWageMonth(j.End)
	if err != nil {
		return types.YearMonth{}, types.YearMonth{}, fmt.Errorf("end month: %w", err)
	}
	if start.Compare(end) > 0 {
		return types.YearMonth{}, types.YearMonth{}, fmt.Errorf("start month %s is after end month %s", start, end)
	}
	return start, end, nil
}

// command maps a validated job to its worker command.
func (j *Job) command() *types.Command {
	switch j.Type {
	case JobTypeUan:
		return types.NewRunUanCommand(j.UANs, j.Output)
	case JobTypeEcr:
		start, end, _ := j.monthRange()
		return types.NewRunEcrCommand(start, end)
	case JobTypeMsd:
		return types.NewRunMsdCommand(j.UANs)
	default:
		return nil
	}
}
