package authn

import (
	"crypto/sha256"
	"encoding/base64"
	"log/slog"
	"net/http"

	"github.com/jthernandez999/pineapple-pier-sub000/pkg/oauth2"
	"github.com/jthernandez999/pineapple-pier-sub000/pkg/session"
	"github.com/labstack/echo/v4"
)

// LoginEndpoint starts a customer login attempt. It generates the PKCE
// verifier and the anti-forgery state/nonce pair, persists them as transient
// cookies and redirects to the provider authorization URL. Each attempt gets
// fresh secrets; starting a new attempt supersedes the previous one.
func (h *Handler) LoginEndpoint(c echo.Context) error {
	verifier := oauth2.GenerateCodeVerifier()
	state := oauth2.GenerateOpaqueToken()
	nonce := oauth2.GenerateOpaqueToken()

	jar := session.NewJar(c)
	jar.SetTransient(session.CookieVerifier, verifier)
	jar.SetTransient(session.CookieState, state)
	jar.SetTransient(session.CookieNonce, nonce)

	authURL := h.client.AuthCodeURL(state, nonce, verifier)
	slog.Info("starting customer login", "attempt_id", attemptID(state), "remote_addr", c.RealIP())

	return c.Redirect(http.StatusFound, authURL)
}

// attemptID derives a loggable correlation id for one login attempt from the
// state secret, the only value present at both ends of the redirect round
// trip. The secret itself never appears in logs.
func attemptID(state string) string {
	if state == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(state))
	return base64.RawURLEncoding.EncodeToString(sum[:9])
}
