package authn

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/jthernandez999/pineapple-pier-sub000/pkg/session"
	"github.com/labstack/echo/v4"
)

// HeaderCustomerToken is the downstream header contract: page-rendering code
// trusts this header and does not re-validate the session.
const HeaderCustomerToken = "x-shop-customer-token"

// Gatekeeper decides, for every request to a protected path, whether it
// proceeds with a valid customer token, proceeds with a freshly refreshed
// one, or is redirected to the logged-out entry point with the session
// stripped. This is the only place that decision is made.
func (h *Handler) Gatekeeper() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !h.policy.Protected(c.Request().URL.Path) {
				return next(c)
			}

			jar := session.NewJar(c)
			sess := jar.ReadSession()

			// access and refresh tokens always co-exist; anything else is a
			// logged-out session
			if sess.AccessToken == "" || sess.RefreshToken == "" {
				return h.denyRequest(c, jar)
			}

			expiresRaw := jar.Get(session.CookieExpiresAt)
			if expiresRaw == "" {
				return h.denyRequest(c, jar)
			}
			expiresAt, err := session.ParseExpiresAt(expiresRaw)
			if err != nil {
				return h.denyRequest(c, jar)
			}

			if session.IsExpired(expiresAt, time.Now(), h.buffer) {
				fresh, expiresIn, err := h.refreshSession(c.Request().Context(), sess)
				if err != nil {
					slog.Warn("session refresh failed", "error", err, "path", c.Request().URL.Path)
					return h.denyRequest(c, jar)
				}
				jar.WriteSession(fresh, expiresIn)
				sess = fresh
			}

			c.Request().Header.Set(HeaderCustomerToken, sess.AccessToken)
			return next(c)
		}
	}
}

// denyRequest is terminal for the request: strip the session and send the
// browser back to the unauthenticated origin.
func (h *Handler) denyRequest(c echo.Context, jar *session.Jar) error {
	jar.Clear()
	return c.Redirect(http.StatusFound, h.client.Origin()+h.policy.LoggedOutPath)
}
