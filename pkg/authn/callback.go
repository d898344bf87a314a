package authn

import (
	"crypto/subtle"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jthernandez999/pineapple-pier-sub000/pkg/customer"
	"github.com/jthernandez999/pineapple-pier-sub000/pkg/oauth2"
	"github.com/jthernandez999/pineapple-pier-sub000/pkg/session"
	"github.com/labstack/echo/v4"
)

// CallbackEndpoint is the provider's redirect target. Every step fails
// closed: any validation or exchange failure short-circuits to a denied
// state, leaving no partial session behind.
func (h *Handler) CallbackEndpoint(c echo.Context) error {
	jar := session.NewJar(c)

	// FormValue covers both the GET query and the form_post response mode
	if errCode := c.FormValue("error"); errCode != "" {
		return h.deny(c, jar, &oauth2.Error{Code: errCode, Description: c.FormValue("error_description")})
	}

	code := c.FormValue("code")
	if code == "" {
		return h.deny(c, jar, ErrMissingCode)
	}

	state := c.FormValue("state")
	if state == "" {
		return h.deny(c, jar, ErrMissingState)
	}

	storedState := jar.Get(session.CookieState)
	if storedState == "" {
		return h.deny(c, jar, ErrMissingStoredState)
	}

	// defeats CSRF-style injection of a foreign authorization code
	if subtle.ConstantTimeCompare([]byte(state), []byte(storedState)) != 1 {
		return h.deny(c, jar, ErrStateMismatch)
	}

	verifier := jar.Get(session.CookieVerifier)
	if verifier == "" {
		return h.deny(c, jar, ErrMissingVerifier)
	}

	tokenResp, err := h.client.Exchange(c.Request().Context(), code, verifier)
	if err != nil {
		return h.deny(c, jar, fmt.Errorf("%w: %w", ErrTokenExchangeFailed, err))
	}

	claims, err := customer.DecodeClaims(tokenResp.IDToken)
	if err != nil {
		return h.deny(c, jar, err)
	}

	// defeats substitution of an identity token from an unrelated session; an
	// absent stored nonce must not pass by comparing equal to an absent claim
	storedNonce := jar.Get(session.CookieNonce)
	if storedNonce == "" {
		return h.deny(c, jar, ErrMissingStoredNonce)
	}
	if subtle.ConstantTimeCompare([]byte(claims.Nonce), []byte(storedNonce)) != 1 {
		return h.deny(c, jar, ErrNonceMismatch)
	}

	// scope the provider token into an API-usable customer token, the same
	// way the refresh engine does
	customerResp, err := h.client.ExchangeCustomerToken(c.Request().Context(), tokenResp.AccessToken)
	if err != nil {
		return h.deny(c, jar, fmt.Errorf("%w: %w", ErrTokenExchangeFailed, err))
	}

	// the single-use secrets served their purpose, close the replay window
	jar.DeleteTransient()

	sess := &session.Session{
		AccessToken:  customerResp.AccessToken,
		RefreshToken: tokenResp.RefreshToken,
		IDToken:      tokenResp.IDToken,
		ExpiresAt:    session.ComputeExpiresAt(time.Now(), tokenResp.ExpiresIn, h.buffer),
	}
	jar.WriteSession(sess, tokenResp.ExpiresIn)
	jar.SetAccessFlag(session.AccessAllowed)

	slog.Info("customer login complete", "customer", claims.Subject, "attempt_id", attemptID(storedState))

	return c.Redirect(http.StatusFound, "/account")
}
