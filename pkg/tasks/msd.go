package tasks

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/epfokit/extractor/pkg/export"
	"github.com/epfokit/extractor/pkg/portal"
	"github.com/epfokit/extractor/pkg/types"
)

// Member service detail grid selectors.
const (
	dashboardsLinkText    = "Dashboards"
	serviceDetailLinkText = "MEMBER SERVICE DETAILS"

	msdSearchInput  = "input#uanNo"
	msdSearchButton = `button:has-text("Search")`
	msdLoader       = "#load_profileService"
	msdHeaderCells  = ".ui-jqgrid-htable .ui-jqgrid-labels th"
	msdDataRows     = "table#profileService tbody tr.jqgrow"
	msdPagerRight   = "#profileServicePager_right"
	msdNextButton   = "#next_profileServicePager"

	pagerDisabledClass = "ui-state-disabled"
	memberNotFoundText = "Member not found"

	msdArchiveName = "Member_Service_Details.zip"
)

// ServiceDetail scrapes the paginated service history grid for a set
// of UANs, writes one spreadsheet per UAN and archives them into a
// single zip. The per-UAN workbooks and their directory are removed
// after archiving.
type ServiceDetail struct {
	uans []string
	cfg  Config
}

// NewServiceDetail creates a service detail scrape over the given UANs.
func NewServiceDetail(uans []string, cfg Config) *ServiceDetail {
	return &ServiceDetail{uans: uans, cfg: cfg}
}

// Name identifies the task in log lines.
func (t *ServiceDetail) Name() string {
	return "member_service_detail"
}

// Run executes the scrape. The session must already be authenticated.
func (t *ServiceDetail) Run(page portal.Page, emit EmitFunc) error {
	emit(types.NewStatusUpdateEvent("Starting Member Service Detail extraction..."))

	if err := t.openServiceDetailView(page); err != nil {
		return err
	}

	if err := os.MkdirAll(t.cfg.WorkDir, 0750); err != nil {
		return fmt.Errorf("could not create working directory: %w", err)
	}

	var written []string
	for _, uan := range t.uans {
		emit(types.NewStatusUpdateEvent(fmt.Sprintf("Processing UAN: %s", uan)))

		table, err := t.scrapeOne(page, uan, emit)
		if err != nil {
			return err
		}
		if table.IsEmpty() {
			t.cfg.infof("no service details found for UAN %s", uan)
			continue
		}

		path := filepath.Join(t.cfg.WorkDir, uan+".xlsx")
		if err := export.WriteTable(path, table.Headers, table.Rows); err != nil {
			t.cfg.errorf("could not write workbook for UAN %s: %v", uan, err)
			continue
		}
		written = append(written, path)
	}

	return t.finish(written, emit)
}

// openServiceDetailView navigates to the service detail search form.
func (t *ServiceDetail) openServiceDetailView(page portal.Page) error {
	if err := page.ClickText(dashboardsLinkText); err != nil {
		return portal.NavigationError("could not open 'Dashboards' menu", err)
	}
	if err := page.ClickText(serviceDetailLinkText); err != nil {
		return portal.NavigationError("could not open 'MEMBER SERVICE DETAILS'", err)
	}
	if err := page.WaitForSelector(msdSearchInput, portal.StateVisible, t.cfg.GridTimeoutMs); err != nil {
		return portal.NavigationError("service detail search did not load", err)
	}
	return nil
}

// scrapeOne searches one UAN and collects every page of its grid.
// A driver failure aborts the whole task; "Member not found" on the
// first page is a normal empty result.
func (t *ServiceDetail) scrapeOne(page portal.Page, uan string, emit EmitFunc) (*types.ServiceDetailTable, error) {
	if err := page.Fill(msdSearchInput, uan); err != nil {
		return nil, portal.NavigationError("could not fill the UAN search box", err)
	}
	if err := page.Click(msdSearchButton); err != nil {
		return nil, portal.NavigationError("could not submit the UAN search", err)
	}

	table := &types.ServiceDetailTable{}
	firstPage := true
	for {
		if err := t.waitForGrid(page); err != nil {
			return nil, err
		}

		if len(table.Headers) == 0 {
			headers, err := t.readHeaders(page)
			if err != nil {
				return nil, err
			}
			table.Headers = headers
		}

		rows, err := page.Rows(msdDataRows)
		if err != nil {
			return nil, portal.NavigationError("could not read the service detail grid", err)
		}

		if len(rows) == 0 && firstPage {
			notFound, err := t.memberNotFound(page)
			if err != nil {
				return nil, err
			}
			if notFound {
				return table, nil
			}
		}

		for _, row := range rows {
			cells, err := row.Texts("td")
			if err != nil {
				return nil, portal.NavigationError("could not read a service detail row", err)
			}
			if len(cells) > 0 {
				// First cell is the jqGrid row number, not data.
				cells = cells[1:]
			}
			if !table.AppendRow(cells) {
				t.cfg.warnf("dropping malformed service detail row for UAN %s (%d cells, want %d)",
					uan, len(cells), len(table.Headers))
			}
		}
		firstPage = false

		done, err := t.lastPage(page)
		if err != nil {
			return nil, err
		}
		if done {
			return table, nil
		}

		emit(types.NewStatusUpdateEvent(fmt.Sprintf("UAN %s: Found multiple pages, going to next page...", uan)))
		if err := page.Click(msdNextButton); err != nil {
			return nil, portal.NavigationError("could not open the next grid page", err)
		}
	}
}

// waitForGrid waits for the jqGrid loading overlay to disappear and
// gives the grid a moment to repaint.
func (t *ServiceDetail) waitForGrid(page portal.Page) error {
	if err := page.WaitForSelector(msdLoader, portal.StateHidden, t.cfg.GridTimeoutMs); err != nil {
		return portal.NavigationError("service detail grid did not finish loading", err)
	}
	page.WaitFixed(t.cfg.PagerSettle)
	return nil
}

// readHeaders collects the grid header labels, dropping blanks and the
// leading row-number column.
func (t *ServiceDetail) readHeaders(page portal.Page) ([]string, error) {
	raw, err := page.AllInnerTexts(msdHeaderCells)
	if err != nil {
		return nil, portal.NavigationError("could not read the grid headers", err)
	}
	headers := make([]string, 0, len(raw))
	for _, h := range raw {
		h = strings.TrimSpace(h)
		if h != "" {
			headers = append(headers, h)
		}
	}
	if len(headers) > 0 {
		headers = headers[1:]
	}
	return headers, nil
}

// memberNotFound reports whether the pager shows the portal's
// "Member not found" message.
func (t *ServiceDetail) memberNotFound(page portal.Page) (bool, error) {
	text, err := page.InnerText(msdPagerRight)
	if err != nil {
		return false, portal.NavigationError("could not read the grid pager", err)
	}
	return strings.Contains(text, memberNotFoundText), nil
}

// lastPage reports whether the pager's next control is disabled.
func (t *ServiceDetail) lastPage(page portal.Page) (bool, error) {
	class, err := page.Attribute(msdNextButton, "class")
	if err != nil {
		return false, portal.NavigationError("could not inspect the grid pager", err)
	}
	return strings.Contains(class, pagerDisabledClass), nil
}

// finish archives the workbooks, removes the working copies and reports.
func (t *ServiceDetail) finish(written []string, emit EmitFunc) error {
	if len(written) == 0 {
		emit(types.NewInfoReportEvent("No data was extracted or saved."))
		emit(types.NewStatusUpdateEvent("Member Service Detail extraction finished."))
		return nil
	}

	emit(types.NewStatusUpdateEvent(fmt.Sprintf("Zipping %d Excel files...", len(written))))

	zipPath := filepath.Join(t.cfg.ArchiveDir, msdArchiveName)
	if err := export.ArchiveFiles(zipPath, written); err != nil {
		return err
	}
	for _, f := range written {
		if err := os.Remove(f); err != nil {
			t.cfg.warnf("could not remove archived workbook %s: %v", f, err)
		}
	}
	if err := os.Remove(t.cfg.WorkDir); err != nil {
		t.cfg.warnf("could not remove working directory %s: %v", t.cfg.WorkDir, err)
	}

	emit(types.NewInfoReportEvent(fmt.Sprintf("Task complete. All service details saved to %s", zipPath)))
	emit(types.NewStatusUpdateEvent("Member Service Detail extraction finished."))
	return nil
}
