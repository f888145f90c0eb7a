package batch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/epfokit/extractor/pkg/portal"
	"github.com/epfokit/extractor/pkg/types"
	"github.com/epfokit/extractor/pkg/worker"
)

func writeJobFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "jobs.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeJobFile(t, `
login_timeout: 1m
stop_on_error: true
jobs:
  - type: uan
    uans: ["100000000001", "100000000002"]
    output: profiles.xlsx
  - type: ecr
    start: Jan-2024
    end: Mar-2024
  - type: msd
    uans: ["100000000001"]
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, time.Minute, cfg.LoginTimeout)
	assert.True(t, cfg.StopOnError)
	require.Len(t, cfg.Jobs, 3)
	assert.Equal(t, JobTypeUan, cfg.Jobs[0].Type)
	assert.Equal(t, "profiles.xlsx", cfg.Jobs[0].Output)
}

func TestLoadConfigDefaultsLoginTimeout(t *testing.T) {
	path := writeJobFile(t, `
jobs:
  - type: msd
    uans: ["100000000001"]
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultLoginTimeout, cfg.LoginTimeout)
}

func TestLoadConfigRejectsBadJobs(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "no jobs",
			content: "jobs: []\n",
		},
		{
			name: "uan job without output",
			content: `
jobs:
  - type: uan
    uans: ["100000000001"]
`,
		},
		{
			name: "ecr job with inverted range",
			content: `
jobs:
  - type: ecr
    start: Mar-2024
    end: Jan-2024
`,
		},
		{
			name: "ecr job with malformed month",
			content: `
jobs:
  - type: ecr
    start: January-2024
    end: Mar-2024
`,
		},
		{
			name: "unknown type",
			content: `
jobs:
  - type: pdf
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeJobFile(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestJobCommandMapping(t *testing.T) {
	job := Job{Type: JobTypeEcr, Start: "Jan-2024", End: "Mar-2024"}
	cmd := job.command()
	require.NotNil(t, cmd)
	assert.Equal(t, types.CommandTypeRunEcr, cmd.Type)
	assert.Equal(t, types.YearMonth{Year: 2024, Month: time.January}, cmd.Start)
	assert.Equal(t, types.YearMonth{Year: 2024, Month: time.March}, cmd.End)
}

// loginDriver is a session driver that reports logged in after a set
// number of verification probes.
type loginDriver struct {
	probesUntilLogin int
	probes           int
	closed           bool
}

func (d *loginDriver) OpenLoginPage() (portal.Page, error) { return &noopPage{}, nil }

func (d *loginDriver) VerifyLogin() bool {
	d.probes++
	return d.probes > d.probesUntilLogin
}

func (d *loginDriver) Close() error {
	d.closed = true
	return nil
}

// noopPage satisfies portal.Page with blank answers so a job can run
// end to end without a browser.
type noopPage struct{}

func (p *noopPage) Navigate(url string, timeoutMs float64) error                { return nil }
func (p *noopPage) ClickText(text string) error                                 { return nil }
func (p *noopPage) Click(selector string) error                                 { return nil }
func (p *noopPage) Fill(selector, value string) error                           { return nil }
func (p *noopPage) Press(selector, key string) error                            { return nil }
func (p *noopPage) WaitForSelector(selector, state string, timeout float64) error { return nil }
func (p *noopPage) WaitFixed(d time.Duration)                                   {}
func (p *noopPage) InnerText(selector string) (string, error)                   { return "", nil }
func (p *noopPage) AllInnerTexts(selector string) ([]string, error)             { return nil, nil }
func (p *noopPage) IsVisible(selector string) (bool, error)                     { return false, nil }
func (p *noopPage) Attribute(selector, name string) (string, error) {
	return "ui-state-disabled", nil
}
func (p *noopPage) Rows(selector string) ([]portal.Row, error) { return nil, nil }

func TestExecutorRunsJobsAfterLogin(t *testing.T) {
	driver := &loginDriver{probesUntilLogin: 0}
	w := worker.New(driver)

	cfg := &Config{
		LoginTimeout: 30 * time.Second,
		Jobs: []Job{
			{Type: JobTypeUan, UANs: []string{"100000000001"}, Output: filepath.Join(t.TempDir(), "out.xlsx")},
		},
	}

	var progress []string
	exec := NewExecutor(w, cfg, nil)
	exec.SetProgress(func(line string) { progress = append(progress, line) })

	results, err := exec.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 1)

	assert.True(t, results[0].Success)
	assert.Contains(t, results[0].Message, "UAN data extracted and saved to")
	assert.True(t, driver.closed)
	assert.NotEmpty(t, progress)
}
