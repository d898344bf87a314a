// Package authn is the HTTP surface of the customer identity subsystem: the
// login initiator, the authorization callback, logout, the silent token
// refresh engine and the gatekeeper middleware for protected routes.
package authn

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/jthernandez999/pineapple-pier-sub000/pkg/customer"
	"github.com/jthernandez999/pineapple-pier-sub000/pkg/session"
	"github.com/labstack/echo/v4"
	"golang.org/x/sync/singleflight"
)

type Handler struct {
	client *customer.Client
	policy *RoutePolicy
	buffer time.Duration

	// deduplicates concurrent refreshes of the same session
	refreshGroup singleflight.Group
}

type Option func(*Handler)

// WithExpiryBuffer overrides the safety buffer applied to token expiry.
func WithExpiryBuffer(buffer time.Duration) Option {
	return func(h *Handler) {
		h.buffer = buffer
	}
}

func NewHandler(client *customer.Client, policy *RoutePolicy, opts ...Option) *Handler {
	h := &Handler{
		client: client,
		policy: policy,
		buffer: session.DefaultExpiryBuffer,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Handler) MountRoutes(e *echo.Echo) {
	e.GET("/login", h.LoginEndpoint)
	// the provider may deliver the callback as GET or form POST
	e.GET("/authorize", h.CallbackEndpoint)
	e.POST("/authorize", h.CallbackEndpoint)
	e.GET("/logout", h.LogoutEndpoint)
}

func ErrorLogMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		err := next(c)
		if err != nil {
			slog.Error("request failed",
				"error", err,
				"path", c.Path(),
				"request_id", c.Response().Header().Get(echo.HeaderXRequestID),
				"remote_addr", c.RealIP())
		}
		return err
	}
}

// deny terminates a login attempt: no partial session survives, the gate page
// sees a short-lived denied flag, and the user lands on the logged-out entry
// point. Provider details stay in the log, never in the response.
func (h *Handler) deny(c echo.Context, jar *session.Jar, err error) error {
	slog.Warn("customer authorization denied",
		"error", err,
		"attempt_id", attemptID(jar.Get(session.CookieState)),
		"remote_addr", c.RealIP())
	jar.Clear()
	jar.SetAccessFlag(session.AccessDenied)
	return c.Redirect(http.StatusFound, h.client.Origin()+h.policy.LoggedOutPath)
}
