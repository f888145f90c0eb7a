// Package export provides the storage sinks for extracted data:
// spreadsheet serialization and archive packaging. The sinks know
// nothing about the portal; they take ordered headers, rows and paths.
package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/tealeg/xlsx/v3"
)

// sheetName is the single worksheet written to every export file.
const sheetName = "Sheet1"

// WriteTable serializes one table to a spreadsheet file at path. The
// header row comes first, then the data rows in order. Every row must
// have the same arity as headers; the caller enforces that policy.
func WriteTable(path string, headers []string, rows [][]string) error {
	if len(headers) == 0 {
		return fmt.Errorf("cannot write table without headers")
	}
	for i, row := range rows {
		if len(row) != len(headers) {
			return fmt.Errorf("row %d has %d cells, expected %d", i, len(row), len(headers))
		}
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	file := xlsx.NewFile()
	sheet, err := file.AddSheet(sheetName)
	if err != nil {
		return fmt.Errorf("failed to add sheet: %w", err)
	}

	headerRow := sheet.AddRow()
	for _, h := range headers {
		headerRow.AddCell().SetString(h)
	}

	for _, row := range rows {
		dataRow := sheet.AddRow()
		for _, cell := range row {
			dataRow.AddCell().SetString(cell)
		}
	}

	if err := file.Save(path); err != nil {
		return fmt.Errorf("failed to save spreadsheet: %w", err)
	}
	return nil
}
