package portal

import "time"

// Selector states accepted by Page.WaitForSelector.
const (
	StateVisible = "visible"
	StateHidden  = "hidden"
)

// Page is the narrow driver surface the extraction protocols operate
// on. *Session implements it against a live browser; tests substitute
// a scripted fake.
type Page interface {
	// Navigate loads a URL, bounded by timeoutMs.
	Navigate(url string, timeoutMs float64) error

	// ClickText clicks the link with the given visible text.
	ClickText(text string) error

	// Click clicks the element matching the selector.
	Click(selector string) error

	// Fill replaces the value of the input matching the selector.
	Fill(selector, value string) error

	// Press sends a key to the element matching the selector.
	Press(selector, key string) error

	// WaitForSelector blocks until the element reaches the given state
	// or timeoutMs elapses.
	WaitForSelector(selector, state string, timeoutMs float64) error

	// WaitFixed blocks for a fixed settle delay.
	WaitFixed(d time.Duration)

	// InnerText returns the rendered text of the first match.
	InnerText(selector string) (string, error)

	// AllInnerTexts returns the rendered text of every match, in
	// document order.
	AllInnerTexts(selector string) ([]string, error)

	// IsVisible reports whether the first match is currently visible.
	// Absence is a normal false, not an error.
	IsVisible(selector string) (bool, error)

	// Attribute returns the named attribute of the first match, or ""
	// when the attribute is absent.
	Attribute(selector, name string) (string, error)

	// Rows returns handles to every element matching the selector, in
	// document order.
	Rows(selector string) ([]Row, error)
}

// Row is a handle to one result-grid row. Selectors are resolved
// relative to the row.
type Row interface {
	// Text returns the rendered text of the first matching cell.
	Text(selector string) (string, error)

	// Texts returns the rendered text of every matching cell, in order.
	Texts(selector string) ([]string, error)

	// Has reports whether the row contains a match for the selector.
	Has(selector string) (bool, error)

	// DownloadTo clicks the matching link, intercepts the resulting
	// download and persists it at destPath.
	DownloadTo(selector, destPath string) error
}
