package authn

import (
	"log/slog"
	"net/http"

	"github.com/jthernandez999/pineapple-pier-sub000/pkg/session"
	"github.com/labstack/echo/v4"
)

// LogoutEndpoint clears the session unconditionally. When an ID token is
// still around it is passed to the provider logout endpoint as a hint so the
// provider session ends too; provider reachability never blocks the local
// logout.
func (h *Handler) LogoutEndpoint(c echo.Context) error {
	jar := session.NewJar(c)
	idToken := jar.Get(session.CookieIDToken)

	jar.Clear()
	slog.Info("customer logged out", "remote_addr", c.RealIP())

	if idToken != "" {
		return c.Redirect(http.StatusFound, h.client.LogoutURL(idToken))
	}
	return c.Redirect(http.StatusFound, h.client.Origin())
}
