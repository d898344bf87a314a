package session

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

const (
	// transient secrets only need to survive the round trip to the provider
	transientMaxAge = 600
	// refresh-capable cookies outlive browser restarts so silent refresh
	// keeps working
	refreshMaxAge = 7 * 24 * 3600
	// the gate page flag is advisory and short-lived
	accessFlagMaxAge = 2 * 3600
)

// Jar provides typed get/set/delete over the session cookies of one request.
// All session state is round-tripped through cookies; there is no server-side
// record to keep in sync.
type Jar struct {
	c      echo.Context
	secure bool
}

func NewJar(c echo.Context) *Jar {
	return &Jar{c: c, secure: c.Scheme() == "https"}
}

// Get returns the named cookie value, or "" when it is absent.
func (j *Jar) Get(name string) string {
	cookie, err := j.c.Cookie(name)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// SetTransient stores a single-login-attempt secret (verifier, state, nonce).
func (j *Jar) SetTransient(name, value string) {
	j.set(name, value, transientMaxAge, true)
}

// WriteSession persists the full session cookie set. accessMaxAge is the
// provider access-token TTL in seconds.
func (j *Jar) WriteSession(s *Session, accessMaxAge int) {
	j.set(CookieCustomerToken, s.AccessToken, accessMaxAge, true)
	j.set(CookieRefreshToken, s.RefreshToken, refreshMaxAge, true)
	j.set(CookieIDToken, s.IDToken, refreshMaxAge, true)
	j.set(CookieExpiresAt, strconv.FormatInt(s.ExpiresAt, 10), refreshMaxAge, true)
}

// ReadSession reconstructs the session from cookies. ExpiresAt is left zero
// when the expiry cookie is missing or unparseable; callers decide what an
// incomplete session means.
func (j *Jar) ReadSession() *Session {
	s := &Session{
		AccessToken:  j.Get(CookieCustomerToken),
		RefreshToken: j.Get(CookieRefreshToken),
		IDToken:      j.Get(CookieIDToken),
	}
	if raw := j.Get(CookieExpiresAt); raw != "" {
		if ms, err := strconv.ParseInt(raw, 10, 64); err == nil {
			s.ExpiresAt = ms
		}
	}
	return s
}

// SetAccessFlag records the coarse allowed/denied outcome for the gate page.
// The flag carries no credential, so it stays readable by page scripts.
func (j *Jar) SetAccessFlag(value string) {
	j.set(CookieAccess, value, accessFlagMaxAge, false)
}

// DeleteTransient removes the single-use login secrets. Called as the first
// action after a successful token exchange so they cannot be replayed.
func (j *Jar) DeleteTransient() {
	j.Delete(CookieVerifier)
	j.Delete(CookieState)
	j.Delete(CookieNonce)
}

// Clear removes every session cookie as one logical operation. The loop never
// aborts early; a partial clear that leaves a bearer cookie behind is the
// failure mode to avoid.
func (j *Jar) Clear() {
	for _, name := range SessionCookies {
		j.Delete(name)
	}
}

func (j *Jar) Delete(name string) {
	j.c.SetCookie(&http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   j.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (j *Jar) set(name, value string, maxAge int, httpOnly bool) {
	j.c.SetCookie(&http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: httpOnly,
		Secure:   j.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
