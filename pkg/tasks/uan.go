package tasks

import (
	"fmt"
	"strings"

	"github.com/epfokit/extractor/pkg/export"
	"github.com/epfokit/extractor/pkg/portal"
	"github.com/epfokit/extractor/pkg/types"
)

// Member profile view selectors.
const (
	memberLinkText        = "Member"
	memberProfileLinkText = "Member Profile"
	memberListSelector    = "#memberList"
	memberSearchSelector  = `input[type="search"][aria-controls="memberList"]`
)

// memberListCell addresses a column of the first result row.
func memberListCell(column int) string {
	return fmt.Sprintf("#memberList tbody tr:first-child td:nth-child(%d)", column)
}

// ProfileLookup extracts name and joining/exit dates for an ordered
// list of UANs from the member profile grid, then serializes the found
// records to one spreadsheet. A UAN that cannot be read is skipped and
// simply absent from the output; it never aborts the remaining UANs.
type ProfileLookup struct {
	uans       []string
	outputPath string
	cfg        Config
}

// NewProfileLookup creates a profile lookup over the given UANs.
func NewProfileLookup(uans []string, outputPath string, cfg Config) *ProfileLookup {
	return &ProfileLookup{uans: uans, outputPath: outputPath, cfg: cfg}
}

// Name identifies the task in log lines.
func (t *ProfileLookup) Name() string {
	return "uan_profile_lookup"
}

// Run executes the lookup. The session must already be authenticated.
func (t *ProfileLookup) Run(page portal.Page, emit EmitFunc) error {
	emit(types.NewStatusUpdateEvent("Starting UAN extraction..."))

	if err := t.openProfileView(page); err != nil {
		return err
	}

	var records []types.UanRecord
	for _, uan := range t.uans {
		emit(types.NewStatusUpdateEvent(fmt.Sprintf("Extracting data for UAN: %s...", uan)))

		record, err := t.lookupOne(page, uan)
		if err != nil {
			t.cfg.errorf("could not extract all data for UAN %s: %v", uan, err)
			continue
		}
		records = append(records, record)
	}

	if len(records) > 0 {
		rows := make([][]string, 0, len(records))
		for _, r := range records {
			rows = append(rows, r.Cells())
		}
		if err := export.WriteTable(t.outputPath, types.UanRecordHeaders, rows); err != nil {
			return err
		}
		emit(types.NewInfoReportEvent(fmt.Sprintf("UAN data extracted and saved to %s", t.outputPath)))
	} else {
		emit(types.NewInfoReportEvent("No UAN data was extracted."))
	}

	emit(types.NewStatusUpdateEvent("UAN extraction finished."))
	return nil
}

// openProfileView walks the fixed two-click path to the profile grid.
func (t *ProfileLookup) openProfileView(page portal.Page) error {
	if err := page.ClickText(memberLinkText); err != nil {
		return portal.NavigationError("could not open 'Member' menu", err)
	}
	if err := page.ClickText(memberProfileLinkText); err != nil {
		return portal.NavigationError("could not open 'Member Profile'", err)
	}
	if err := page.WaitForSelector(memberListSelector, portal.StateVisible, t.cfg.GridTimeoutMs); err != nil {
		return portal.NavigationError("member profile grid did not load", err)
	}
	return nil
}

// lookupOne searches the grid for one UAN and reads the first result row.
func (t *ProfileLookup) lookupOne(page portal.Page, uan string) (types.UanRecord, error) {
	if err := page.Fill(memberSearchSelector, uan); err != nil {
		return types.UanRecord{}, err
	}
	if err := page.Press(memberSearchSelector, "Enter"); err != nil {
		return types.UanRecord{}, err
	}

	// The grid refreshes asynchronously with no readiness signal.
	page.WaitFixed(t.cfg.GridSettle)

	name, err := page.InnerText(memberListCell(2))
	if err != nil {
		return types.UanRecord{}, err
	}
	joiningDate, err := page.InnerText(memberListCell(6))
	if err != nil {
		return types.UanRecord{}, err
	}
	exitDate, err := page.InnerText(memberListCell(7))
	if err != nil {
		return types.UanRecord{}, err
	}

	return types.UanRecord{
		UAN:         uan,
		Name:        strings.TrimSpace(name),
		JoiningDate: strings.TrimSpace(joiningDate),
		ExitDate:    strings.TrimSpace(exitDate),
	}, nil
}
