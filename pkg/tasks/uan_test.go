package tasks

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v3"

	"github.com/epfokit/extractor/pkg/portal"
	"github.com/epfokit/extractor/pkg/types"
)

// profilePage scripts the member profile grid: the last searched UAN
// selects which profile the first-row cells render.
func profilePage(profiles map[string][3]string) *fakePage {
	page := &fakePage{}
	var current string
	page.onFill = func(selector, value string) error {
		current = value
		return nil
	}
	page.onInnerText = func(selector string) (string, error) {
		profile, ok := profiles[current]
		if !ok {
			return "", fmt.Errorf("no result row for %q", current)
		}
		switch selector {
		case memberListCell(2):
			return profile[0], nil
		case memberListCell(6):
			return profile[1], nil
		case memberListCell(7):
			return profile[2], nil
		}
		return "", fmt.Errorf("unexpected selector %q", selector)
	}
	return page
}

func TestProfileLookupWritesWorkbook(t *testing.T) {
	dir := t.TempDir()
	page := profilePage(map[string][3]string{
		"100000000001": {" Asha Verma ", "01-04-2019", "NOT AVAILABLE"},
		"100000000003": {"Ravi Kumar", "15-07-2021", "31-01-2024"},
	})

	outputPath := filepath.Join(dir, "profiles.xlsx")
	emit, events := collectEvents()

	// The middle UAN has no result row; it must be skipped, not fatal.
	task := NewProfileLookup([]string{"100000000001", "100000000002", "100000000003"}, outputPath, testConfig(dir))
	require.NoError(t, task.Run(page, emit))

	wb, err := xlsx.OpenFile(outputPath)
	require.NoError(t, err)
	sheet := wb.Sheets[0]
	require.Equal(t, 3, sheet.MaxRow)

	header, err := sheet.Row(0)
	require.NoError(t, err)
	for i, want := range types.UanRecordHeaders {
		assert.Equal(t, want, header.GetCell(i).Value)
	}

	first, err := sheet.Row(1)
	require.NoError(t, err)
	assert.Equal(t, "100000000001", first.GetCell(0).Value)
	assert.Equal(t, "Asha Verma", first.GetCell(1).Value, "cell text should be trimmed")
	assert.Equal(t, "01-04-2019", first.GetCell(2).Value)
	assert.Equal(t, "NOT AVAILABLE", first.GetCell(3).Value)

	second, err := sheet.Row(2)
	require.NoError(t, err)
	assert.Equal(t, "100000000003", second.GetCell(0).Value)

	msgs := eventMessages(*events)
	assert.Contains(t, msgs, "Starting UAN extraction...")
	assert.Contains(t, msgs, "Extracting data for UAN: 100000000002...")
	assert.Contains(t, msgs, fmt.Sprintf("UAN data extracted and saved to %s", outputPath))
	assert.Equal(t, "UAN extraction finished.", msgs[len(msgs)-1])
}

func TestProfileLookupPreservesInputOrder(t *testing.T) {
	dir := t.TempDir()
	page := profilePage(map[string][3]string{
		"200000000002": {"B", "02-02-2022", ""},
		"200000000001": {"A", "01-01-2021", ""},
	})

	outputPath := filepath.Join(dir, "profiles.xlsx")
	emit, _ := collectEvents()

	task := NewProfileLookup([]string{"200000000002", "200000000001"}, outputPath, testConfig(dir))
	require.NoError(t, task.Run(page, emit))
	assert.Equal(t, []string{"200000000002", "200000000001"}, page.filled)

	wb, err := xlsx.OpenFile(outputPath)
	require.NoError(t, err)
	row, err := wb.Sheets[0].Row(1)
	require.NoError(t, err)
	assert.Equal(t, "200000000002", row.GetCell(0).Value)
}

func TestProfileLookupNoResults(t *testing.T) {
	dir := t.TempDir()
	page := profilePage(nil)

	outputPath := filepath.Join(dir, "profiles.xlsx")
	emit, events := collectEvents()

	task := NewProfileLookup([]string{"300000000001"}, outputPath, testConfig(dir))
	require.NoError(t, task.Run(page, emit))

	_, err := os.Stat(outputPath)
	assert.True(t, os.IsNotExist(err), "no workbook should be written without records")
	assert.Contains(t, eventMessages(*events), "No UAN data was extracted.")
}

func TestProfileLookupNavigationFailure(t *testing.T) {
	dir := t.TempDir()
	page := &fakePage{
		onWait: func(selector, state string) error {
			return fmt.Errorf("timeout waiting for %s", selector)
		},
	}
	emit, _ := collectEvents()

	task := NewProfileLookup([]string{"400000000001"}, filepath.Join(dir, "out.xlsx"), testConfig(dir))
	err := task.Run(page, emit)
	require.Error(t, err)
	assert.True(t, portal.IsNavigationError(err))
	assert.Empty(t, page.filled, "no search should run when the grid never loads")
}
