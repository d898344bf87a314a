// Package session defines the customer session as it lives in cookies: the
// fixed cookie names other collaborators rely on, a typed jar over them, and
// the access-token expiry arithmetic.
package session

// Cookie names are the wire contract of the session subsystem. Page-rendering
// code and the gate page read these names verbatim.
const (
	// transient, one login attempt each
	CookieVerifier = "shop_verifier"
	CookieState    = "shop_state"
	CookieNonce    = "shop_nonce"

	// the session proper
	CookieCustomerToken = "shop_customer_token"
	CookieRefreshToken  = "shop_refresh_token"
	CookieIDToken       = "shop_id_token"
	CookieExpiresAt     = "shop_expires_at"

	// coarse allow/deny flag consumed by the gate page
	CookieAccess = "shop_access"
)

const (
	AccessAllowed = "allowed"
	AccessDenied  = "denied"
)

// SessionCookies lists every cookie that carries session state. Clearing the
// session means deleting all of them; leaving a stray bearer cookie behind is
// worse than a redundant delete.
var SessionCookies = []string{
	CookieVerifier,
	CookieState,
	CookieNonce,
	CookieCustomerToken,
	CookieRefreshToken,
	CookieIDToken,
	CookieExpiresAt,
}

// Session is the logical entity reconstructed from cookies. AccessToken and
// RefreshToken always co-exist; a session with only one of them is invalid
// and must be treated as logged out.
type Session struct {
	// AccessToken is the API-scoped customer bearer token
	AccessToken string
	// RefreshToken mints new access tokens, nothing else
	RefreshToken string
	// IDToken is kept only as a logout hint
	IDToken string
	// ExpiresAt is the epoch-millisecond instant the access token is
	// considered expired, safety buffer already applied
	ExpiresAt int64
}
