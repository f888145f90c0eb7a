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

// ECR claim list selectors and the status that marks a downloadable row.
const (
	paymentsLinkText   = "Payments"
	paymentEcrLinkText = "Payment (ECR)"
	ecrUploadLinkText  = "ECR Upload"
	ecrUploadLink      = `a:has-text("ECR Upload")`
	claimListSelector  = "table#tbRecentClaimList"
	claimRowSelector   = "table#tbRecentClaimList tbody tr"
	claimNextSelector  = `a:has-text("Next")`

	claimWageMonthCell = "td:nth-child(3)"
	claimTrrnCell      = "td:nth-child(2)"
	claimStatusCell    = "td:nth-child(8)"
	claimPdfLink       = "td:nth-child(10) a"

	statusPaymentConfirmed = "Payment Confirmed"
)

// StatementDownload walks the paginated ECR claim list and downloads
// the statement PDF of every row whose status is exactly "Payment
// Confirmed" and whose wage month falls within the inclusive range.
// Downloads are archived into one zip named by the range; the
// originals are deleted after archiving.
type StatementDownload struct {
	start types.YearMonth
	end   types.YearMonth
	cfg   Config
}

// NewStatementDownload creates a statement download over [start, end].
func NewStatementDownload(start, end types.YearMonth, cfg Config) *StatementDownload {
	return &StatementDownload{start: start, end: end, cfg: cfg}
}

// Name identifies the task in log lines.
func (t *StatementDownload) Name() string {
	return "ecr_statement_download"
}

// Run executes the download. The session must already be authenticated.
func (t *StatementDownload) Run(page portal.Page, emit EmitFunc) error {
	emit(types.NewStatusUpdateEvent("Starting ECR PDF extraction..."))

	if err := t.openClaimList(page); err != nil {
		return err
	}

	if err := os.MkdirAll(t.cfg.DownloadDir, 0750); err != nil {
		return fmt.Errorf("could not create download directory: %w", err)
	}

	var downloaded []string
	for {
		// Late-loading rows; the list has no readiness signal.
		page.WaitFixed(t.cfg.ListSettle)

		rows, err := page.Rows(claimRowSelector)
		if err != nil {
			return portal.NavigationError("could not read the claim list", err)
		}

		for _, row := range rows {
			path, ok := t.processRow(row, emit)
			if ok {
				downloaded = append(downloaded, path)
			}
		}

		visible, err := page.IsVisible(claimNextSelector)
		if err != nil {
			return portal.NavigationError("could not check for the next page", err)
		}
		if !visible {
			break
		}
		if err := page.Click(claimNextSelector); err != nil {
			return portal.NavigationError("could not open the next claim page", err)
		}
	}

	return t.finish(downloaded, emit)
}

// openClaimList navigates to the ECR upload view.
func (t *StatementDownload) openClaimList(page portal.Page) error {
	if err := page.ClickText(paymentsLinkText); err != nil {
		return portal.NavigationError("could not open 'Payments' menu", err)
	}
	if err := page.ClickText(paymentEcrLinkText); err != nil {
		return portal.NavigationError("could not open 'Payment (ECR)'", err)
	}
	if err := page.WaitForSelector(ecrUploadLink, portal.StateVisible, t.cfg.NavTimeoutMs); err != nil {
		return portal.NavigationError("'ECR Upload' link did not appear", err)
	}
	if err := page.ClickText(ecrUploadLinkText); err != nil {
		return portal.NavigationError("could not open 'ECR Upload'", err)
	}
	if err := page.WaitForSelector(claimListSelector, portal.StateVisible, t.cfg.NavTimeoutMs); err != nil {
		return portal.NavigationError("claim list did not load", err)
	}
	return nil
}

// processRow downloads one qualifying row. Any per-row failure is
// logged and the row is skipped; the page loop always continues.
func (t *StatementDownload) processRow(row portal.Row, emit EmitFunc) (string, bool) {
	wageMonthStr, err := row.Text(claimWageMonthCell)
	if err != nil {
		t.cfg.errorf("error processing a claim row: %v", err)
		return "", false
	}
	wageMonthStr = strings.TrimSpace(wageMonthStr)

	status, err := row.Text(claimStatusCell)
	if err != nil {
		t.cfg.errorf("error processing a claim row: %v", err)
		return "", false
	}
	if strings.TrimSpace(status) != statusPaymentConfirmed {
		return "", false
	}

	wageMonth, err := types.ParseWageMonth(wageMonthStr)
	if err != nil {
		t.cfg.errorf("skipping claim row with unparseable wage month: %v", err)
		return "", false
	}
	if !wageMonth.In(t.start, t.end) {
		return "", false
	}

	trrn, err := row.Text(claimTrrnCell)
	if err != nil {
		t.cfg.errorf("error processing a claim row: %v", err)
		return "", false
	}
	trrn = strings.TrimSpace(trrn)

	hasLink, err := row.Has(claimPdfLink)
	if err != nil || !hasLink {
		if err != nil {
			t.cfg.errorf("error probing the PDF link for %s: %v", trrn, err)
		}
		return "", false
	}

	emit(types.NewStatusUpdateEvent(fmt.Sprintf("Downloading PDF for %s...", trrn)))

	dest := filepath.Join(t.cfg.DownloadDir, fmt.Sprintf("%s_%s.pdf", trrn, wageMonthStr))
	if err := row.DownloadTo(claimPdfLink, dest); err != nil {
		t.cfg.errorf("download failed for %s: %v", trrn, err)
		return "", false
	}
	return dest, true
}

// finish archives the downloads, deletes the originals and reports.
func (t *StatementDownload) finish(downloaded []string, emit EmitFunc) error {
	if len(downloaded) == 0 {
		emit(types.NewInfoReportEvent("No matching ECR statements found."))
		emit(types.NewStatusUpdateEvent("ECR extraction finished."))
		return nil
	}

	zipName := fmt.Sprintf("ECR_Statements_%s_to_%s.zip", t.start.Compact(), t.end.Compact())
	zipPath := filepath.Join(t.cfg.ArchiveDir, zipName)
	if err := export.ArchiveFiles(zipPath, downloaded); err != nil {
		return err
	}
	for _, f := range downloaded {
		if err := os.Remove(f); err != nil {
			t.cfg.warnf("could not remove archived statement %s: %v", f, err)
		}
	}

	emit(types.NewInfoReportEvent(fmt.Sprintf("ECR PDFs zipped to %s", zipPath)))
	emit(types.NewStatusUpdateEvent("ECR extraction finished."))
	return nil
}
