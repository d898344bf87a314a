package authn

import "errors"

// Protocol validation and provider communication failures. All of them are
// treated uniformly as "authorization denied": no session is created and no
// partial cookies survive beyond the coarse denied flag.
var (
	ErrMissingCode         = errors.New("missing authorization code")
	ErrMissingState        = errors.New("missing state parameter")
	ErrMissingStoredState  = errors.New("missing stored state cookie")
	ErrStateMismatch       = errors.New("state mismatch")
	ErrMissingVerifier     = errors.New("missing stored verifier cookie")
	ErrMissingStoredNonce  = errors.New("missing stored nonce cookie")
	ErrTokenExchangeFailed = errors.New("token exchange failed")
	ErrNonceMismatch       = errors.New("nonce mismatch")
	ErrNoRefreshToken      = errors.New("no refresh token")
	ErrRefreshFailed       = errors.New("token refresh failed")
)
