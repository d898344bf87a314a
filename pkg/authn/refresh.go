package authn

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/jthernandez999/pineapple-pier-sub000/pkg/session"
)

type refreshOutcome struct {
	sess      *session.Session
	expiresIn int
}

// refreshSession mints a new session from the stored refresh token: refresh
// grant, then the same API-scoping exchange as the initial login, then a
// recomputed expiry. Concurrent requests that observe the same near-expired
// token share one in-flight refresh instead of racing the provider; cookies
// written afterwards are last-write-wins.
func (h *Handler) refreshSession(ctx context.Context, current *session.Session) (*session.Session, int, error) {
	if current.RefreshToken == "" {
		return nil, 0, ErrNoRefreshToken
	}

	key := refreshKey(current.RefreshToken)
	v, err, _ := h.refreshGroup.Do(key, func() (interface{}, error) {
		resp, err := h.client.Refresh(ctx, current.RefreshToken)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrRefreshFailed, err)
		}

		customerResp, err := h.client.ExchangeCustomerToken(ctx, resp.AccessToken)
		if err != nil {
			// a session whose token cannot be scoped is as dead as one
			// without a refresh token
			return nil, fmt.Errorf("%w: %w", ErrNoRefreshToken, err)
		}

		// the provider may rotate the refresh token; the old value is no
		// longer authoritative once a new one arrives
		rotated := resp.RefreshToken
		if rotated == "" {
			rotated = current.RefreshToken
		}
		idToken := resp.IDToken
		if idToken == "" {
			idToken = current.IDToken
		}

		return &refreshOutcome{
			sess: &session.Session{
				AccessToken:  customerResp.AccessToken,
				RefreshToken: rotated,
				IDToken:      idToken,
				ExpiresAt:    session.ComputeExpiresAt(time.Now(), resp.ExpiresIn, h.buffer),
			},
			expiresIn: resp.ExpiresIn,
		}, nil
	})
	if err != nil {
		return nil, 0, err
	}

	outcome := v.(*refreshOutcome)
	return outcome.sess, outcome.expiresIn, nil
}

// refreshKey hashes the refresh token so the bearer value itself never sits
// in the singleflight key map.
func refreshKey(refreshToken string) string {
	sum := sha256.Sum256([]byte(refreshToken))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}
