package tui

import (
	"fmt"
	"strings"

	"github.com/epfokit/extractor/pkg/types"
)

// Input validation happens here, before a command is ever enqueued.
// The worker trusts its commands; a bad field is the operator's typo
// and is reported immediately instead of round-tripping to the worker.

// parseUANList splits a free-form UAN field on commas and whitespace,
// checks every entry is numeric and drops duplicates, keeping first
// occurrence order.
func parseUANList(raw string) ([]string, error) {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
	if len(fields) == 0 {
		return nil, fmt.Errorf("enter at least one UAN")
	}

	seen := make(map[string]bool, len(fields))
	uans := make([]string, 0, len(fields))
	for _, f := range fields {
		for _, r := range f {
			if r < '0' || r > '9' {
				return nil, fmt.Errorf("UAN %q is not numeric", f)
			}
		}
		if !seen[f] {
			seen[f] = true
			uans = append(uans, f)
		}
	}
	return uans, nil
}

// parseMonthRange parses and orders an inclusive "Mon-YYYY" range.
func parseMonthRange(startRaw, endRaw string) (types.YearMonth, types.YearMonth, error) {
	start, err := types.ParseWageMonth(startRaw)
	if err != nil {
		return types.YearMonth{}, types.YearMonth{}, fmt.Errorf("start month: %v", err)
	}
	end, err := types.ParseWageMonth(endRaw)
	if err != nil {
		return types.YearMonth{}, types.YearMonth{}, fmt.Errorf("end month: %v", err)
	}
	if start.Compare(end) > 0 {
		return types.YearMonth{}, types.YearMonth{}, fmt.Errorf("start month %s is after end month %s", start, end)
	}
	return start, end, nil
}

// validateOutputPath checks the spreadsheet destination looks sane.
func validateOutputPath(raw string) (string, error) {
	path := strings.TrimSpace(raw)
	if path == "" {
		return "", fmt.Errorf("enter an output file path")
	}
	if !strings.HasSuffix(strings.ToLower(path), ".xlsx") {
		path += ".xlsx"
	}
	return path, nil
}
