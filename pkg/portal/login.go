package portal

// Login is manual: the session opens the portal entry page in a
// visible window, the operator types their credentials and solves the
// captcha, and the caller then asks for verification. The session never
// touches credentials.

// OpenLoginPage navigates to the portal entry page so the operator can
// log in by hand.
func (s *Session) OpenLoginPage(url string, timeoutMs float64) error {
	if err := s.Navigate(url, timeoutMs); err != nil {
		return NavigationError("could not open the portal login page", err)
	}
	return nil
}

// VerifyLogin probes for a marker that only renders after
// authentication. A probe that times out means the operator has not
// finished logging in; it is a normal false, never an error.
func (s *Session) VerifyLogin(marker string, timeoutMs float64) bool {
	return s.WaitForSelector(marker, StateVisible, timeoutMs) == nil
}
