package worker

import (
	"github.com/epfokit/extractor/pkg/config"
	"github.com/epfokit/extractor/pkg/portal"
)

// PortalDriver is the production SessionDriver. It owns the Playwright
// runtime through a portal.SessionManager and keeps the browser headful
// so the operator can log in by hand.
type PortalDriver struct {
	manager *portal.SessionManager

	entryURL        string
	loginMarker     string
	navTimeoutMs    float64
	verifyTimeoutMs float64
}

// NewPortalDriver builds a driver from the portal settings section.
func NewPortalDriver(cfg *config.PortalSection) *PortalDriver {
	return &PortalDriver{
		manager:         portal.NewSessionManager(),
		entryURL:        cfg.GetEntryURL(),
		loginMarker:     cfg.GetLoginMarker(),
		navTimeoutMs:    cfg.GetNavigationTimeoutMs(),
		verifyTimeoutMs: cfg.GetVerifyTimeoutMs(),
	}
}

// OpenLoginPage starts the runtime and browser on first use and
// navigates to the portal entry page. Reissuing the command reuses the
// live session and just navigates again.
func (d *PortalDriver) OpenLoginPage() (portal.Page, error) {
	if err := d.manager.Initialize(); err != nil {
		return nil, err
	}

	session, ok := d.manager.ActiveSession()
	if !ok {
		var err error
		session, err = d.manager.StartSession(portal.SessionOptions{Headless: false})
		if err != nil {
			return nil, err
		}
	}

	if err := session.OpenLoginPage(d.entryURL, d.navTimeoutMs); err != nil {
		return nil, err
	}
	return session, nil
}

// VerifyLogin probes the live session for the post-login marker.
// Without a session there is nothing to probe.
func (d *PortalDriver) VerifyLogin() bool {
	session, ok := d.manager.ActiveSession()
	if !ok {
		return false
	}
	return session.VerifyLogin(d.loginMarker, d.verifyTimeoutMs)
}

// Close tears down the browser and stops the runtime.
func (d *PortalDriver) Close() error {
	return d.manager.Shutdown()
}
