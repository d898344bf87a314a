package customer

import (
	"errors"
	"fmt"

	"github.com/lestrrat-go/jwx/v2/jwt"
)

// ErrMalformedToken indicates an identity token that could not be decoded.
// Callers treat this as an authorization failure, never as "claims absent".
var ErrMalformedToken = errors.New("malformed identity token")

// Claims are the identity-token claims the storefront cares about: the
// anti-replay nonce and the customer account identifier.
type Claims struct {
	Nonce   string
	Subject string
}

// DecodeClaims decodes the payload of a compact identity token without
// verifying its signature. The token arrives over a direct TLS exchange with
// the provider, decoding is only used to extract the nonce for the
// anti-forgery comparison and the subject for personalization. Tokens from
// any other path must not be fed through here without signature verification.
func DecodeClaims(raw string) (*Claims, error) {
	token, err := jwt.ParseInsecure([]byte(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}

	claims := &Claims{Subject: token.Subject()}
	if nonce, ok := token.PrivateClaims()["nonce"].(string); ok {
		claims.Nonce = nonce
	}
	return claims, nil
}
