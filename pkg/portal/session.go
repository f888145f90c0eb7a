package portal

import (
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"
)

// Session implements Page against the live browser.
var _ Page = (*Session)(nil)

// Navigate loads a URL and waits for the DOM to be ready.
func (s *Session) Navigate(url string, timeoutMs float64) error {
	opts := playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
	}
	if timeoutMs > 0 {
		opts.Timeout = &timeoutMs
	}

	if _, err := s.Page.Goto(url, opts); err != nil {
		return fmt.Errorf("navigation failed: %w", err)
	}

	s.CurrentURL = s.Page.URL()
	return nil
}

// ClickText clicks the link with the given visible text.
func (s *Session) ClickText(text string) error {
	return s.Click(fmt.Sprintf(`a:has-text(%q)`, text))
}

// Click clicks the element matching the selector.
func (s *Session) Click(selector string) error {
	if err := s.Page.Click(selector); err != nil {
		return fmt.Errorf("click failed: %w", err)
	}

	// Update current URL in case click caused navigation
	s.CurrentURL = s.Page.URL()
	return nil
}

// Fill replaces the value of the input matching the selector.
func (s *Session) Fill(selector, value string) error {
	if err := s.Page.Fill(selector, value); err != nil {
		return fmt.Errorf("fill failed: %w", err)
	}
	return nil
}

// Press sends a key to the element matching the selector.
func (s *Session) Press(selector, key string) error {
	if err := s.Page.Press(selector, key); err != nil {
		return fmt.Errorf("press failed: %w", err)
	}
	return nil
}

// WaitForSelector blocks until the element reaches the given state or
// the timeout elapses.
func (s *Session) WaitForSelector(selector, state string, timeoutMs float64) error {
	waitState := playwright.WaitForSelectorState(state)
	opts := playwright.PageWaitForSelectorOptions{
		State: &waitState,
	}
	if timeoutMs > 0 {
		opts.Timeout = &timeoutMs
	}

	if _, err := s.Page.WaitForSelector(selector, opts); err != nil {
		return fmt.Errorf("wait failed: %w", err)
	}
	return nil
}

// WaitFixed blocks for a fixed settle delay.
func (s *Session) WaitFixed(d time.Duration) {
	s.Page.WaitForTimeout(float64(d.Milliseconds()))
}

// InnerText returns the rendered text of the first match.
func (s *Session) InnerText(selector string) (string, error) {
	text, err := s.Page.InnerText(selector)
	if err != nil {
		return "", fmt.Errorf("text extraction failed: %w", err)
	}
	return text, nil
}

// AllInnerTexts returns the rendered text of every match.
func (s *Session) AllInnerTexts(selector string) ([]string, error) {
	texts, err := s.Page.Locator(selector).AllInnerTexts()
	if err != nil {
		return nil, fmt.Errorf("text extraction failed: %w", err)
	}
	return texts, nil
}

// IsVisible reports whether the first match is currently visible.
// An absent element is a normal false.
func (s *Session) IsVisible(selector string) (bool, error) {
	return s.Page.Locator(selector).First().IsVisible()
}

// Attribute returns the named attribute of the first match.
func (s *Session) Attribute(selector, name string) (string, error) {
	value, err := s.Page.GetAttribute(selector, name)
	if err != nil {
		return "", fmt.Errorf("attribute read failed: %w", err)
	}
	return value, nil
}

// Rows returns handles to every element matching the selector.
func (s *Session) Rows(selector string) ([]Row, error) {
	locators, err := s.Page.Locator(selector).All()
	if err != nil {
		return nil, fmt.Errorf("row query failed: %w", err)
	}

	rows := make([]Row, 0, len(locators))
	for _, loc := range locators {
		rows = append(rows, &rowHandle{page: s.Page, loc: loc})
	}
	return rows, nil
}

// rowHandle adapts a row locator to the Row surface. Selectors resolve
// relative to the row element.
type rowHandle struct {
	page playwright.Page
	loc  playwright.Locator
}

var _ Row = (*rowHandle)(nil)

// Text returns the rendered text of the first matching cell.
func (r *rowHandle) Text(selector string) (string, error) {
	text, err := r.loc.Locator(selector).First().InnerText()
	if err != nil {
		return "", fmt.Errorf("cell text extraction failed: %w", err)
	}
	return text, nil
}

// Texts returns the rendered text of every matching cell.
func (r *rowHandle) Texts(selector string) ([]string, error) {
	texts, err := r.loc.Locator(selector).AllInnerTexts()
	if err != nil {
		return nil, fmt.Errorf("cell text extraction failed: %w", err)
	}
	return texts, nil
}

// Has reports whether the row contains a match for the selector.
func (r *rowHandle) Has(selector string) (bool, error) {
	count, err := r.loc.Locator(selector).Count()
	if err != nil {
		return false, fmt.Errorf("cell query failed: %w", err)
	}
	return count > 0, nil
}

// DownloadTo clicks the matching link, intercepts the download and
// persists it at destPath.
func (r *rowHandle) DownloadTo(selector, destPath string) error {
	download, err := r.page.ExpectDownload(func() error {
		return r.loc.Locator(selector).First().Click()
	})
	if err != nil {
		return fmt.Errorf("download failed: %w", err)
	}
	if err := download.SaveAs(destPath); err != nil {
		return fmt.Errorf("could not save download: %w", err)
	}
	return nil
}
