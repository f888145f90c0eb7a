package tasks

import (
	"fmt"
	"os"
	"time"

	"github.com/epfokit/extractor/pkg/portal"
	"github.com/epfokit/extractor/pkg/types"
)

// fakePage is a scripted portal.Page. Every behavior defaults to a
// recorded no-op success; tests override the hooks they care about.
type fakePage struct {
	clickedTexts []string
	clicked      []string
	filled       []string
	pressed      []string
	waitedFor    []string
	waitBounds   []float64
	settles      []time.Duration

	onClickText func(text string) error
	onClick     func(selector string) error
	onFill      func(selector, value string) error
	onWait      func(selector, state string) error
	onInnerText func(selector string) (string, error)
	onAllTexts  func(selector string) ([]string, error)
	onVisible   func(selector string) (bool, error)
	onAttribute func(selector, name string) (string, error)
	onRows      func(selector string) ([]portal.Row, error)
}

func (p *fakePage) Navigate(url string, timeoutMs float64) error { return nil }

func (p *fakePage) ClickText(text string) error {
	p.clickedTexts = append(p.clickedTexts, text)
	if p.onClickText != nil {
		return p.onClickText(text)
	}
	return nil
}

func (p *fakePage) Click(selector string) error {
	p.clicked = append(p.clicked, selector)
	if p.onClick != nil {
		return p.onClick(selector)
	}
	return nil
}

func (p *fakePage) Fill(selector, value string) error {
	p.filled = append(p.filled, value)
	if p.onFill != nil {
		return p.onFill(selector, value)
	}
	return nil
}

func (p *fakePage) Press(selector, key string) error {
	p.pressed = append(p.pressed, key)
	return nil
}

func (p *fakePage) WaitForSelector(selector, state string, timeoutMs float64) error {
	p.waitedFor = append(p.waitedFor, selector)
	p.waitBounds = append(p.waitBounds, timeoutMs)
	if p.onWait != nil {
		return p.onWait(selector, state)
	}
	return nil
}

func (p *fakePage) WaitFixed(d time.Duration) {
	p.settles = append(p.settles, d)
}

func (p *fakePage) InnerText(selector string) (string, error) {
	if p.onInnerText != nil {
		return p.onInnerText(selector)
	}
	return "", nil
}

func (p *fakePage) AllInnerTexts(selector string) ([]string, error) {
	if p.onAllTexts != nil {
		return p.onAllTexts(selector)
	}
	return nil, nil
}

func (p *fakePage) IsVisible(selector string) (bool, error) {
	if p.onVisible != nil {
		return p.onVisible(selector)
	}
	return false, nil
}

func (p *fakePage) Attribute(selector, name string) (string, error) {
	if p.onAttribute != nil {
		return p.onAttribute(selector, name)
	}
	return "", nil
}

func (p *fakePage) Rows(selector string) ([]portal.Row, error) {
	if p.onRows != nil {
		return p.onRows(selector)
	}
	return nil, nil
}

// fakeRow is a scripted portal.Row backed by literal cell values.
type fakeRow struct {
	texts map[string]string // Text by selector
	cells []string          // Texts("td")
	has   map[string]bool

	downloadErr error
	downloads   []string
}

func (r *fakeRow) Text(selector string) (string, error) {
	if v, ok := r.texts[selector]; ok {
		return v, nil
	}
	return "", fmt.Errorf("no cell matches %q", selector)
}

func (r *fakeRow) Texts(selector string) ([]string, error) {
	return r.cells, nil
}

func (r *fakeRow) Has(selector string) (bool, error) {
	return r.has[selector], nil
}

// DownloadTo persists a stand-in PDF so the archive step has a real
// file to collect.
func (r *fakeRow) DownloadTo(selector, destPath string) error {
	if r.downloadErr != nil {
		return r.downloadErr
	}
	r.downloads = append(r.downloads, destPath)
	return os.WriteFile(destPath, []byte("%PDF-1.4 stub"), 0600)
}

// collectEvents returns an EmitFunc that appends into the returned slice.
func collectEvents() (EmitFunc, *[]*types.Event) {
	var events []*types.Event
	emit := func(e *types.Event) {
		events = append(events, e)
	}
	return emit, &events
}

// eventMessages flattens captured events to their messages.
func eventMessages(events []*types.Event) []string {
	msgs := make([]string, 0, len(events))
	for _, e := range events {
		msgs = append(msgs, e.Message)
	}
	return msgs
}

// testConfig returns a task config with zero settle delays rooted in dir.
func testConfig(dir string) Config {
	return Config{
		NavTimeoutMs:  1000,
		GridTimeoutMs: 1000,
		DownloadDir:   dir + "/downloads",
		WorkDir:       dir + "/work",
		ArchiveDir:    dir,
	}
}
