// Package oauth2 holds the OAuth 2.0 wire types and the PKCE / anti-forgery
// token primitives shared by the customer login flows.
package oauth2

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
)

// TokenResponse is the body returned by the provider token endpoint for the
// authorization_code, refresh_token and token-exchange grants.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	Scope        string `json:"scope"`
	RefreshToken string `json:"refresh_token"`
	IDToken      string `json:"id_token"`
}

type CodeChallengeMethod string

const (
	CodeChallengeMethodS256 CodeChallengeMethod = "S256"
)

type Error struct {
	Code        string `json:"error"`
	Description string `json:"error_description"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// verifierLength is the number of random bytes behind a code verifier. 32
// bytes encode to 43 base64url characters, the minimum allowed by RFC 7636.
const verifierLength = 32

// GenerateCodeVerifier returns a fresh PKCE code verifier. It panics when the
// platform random source fails; a weaker fallback would silently break the
// security of the whole login flow.
func GenerateCodeVerifier() string {
	return randomURLSafeString(verifierLength)
}

// GenerateOpaqueToken returns a single-use random token for the state and
// nonce parameters. Uniqueness relies on entropy alone, there is no registry.
func GenerateOpaqueToken() string {
	return randomURLSafeString(32)
}

func S256ChallengeFromVerifier(verifier string) string {
	hash := sha256.Sum256([]byte(verifier))
	return base64.RawURLEncoding.EncodeToString(hash[:])
}

func randomURLSafeString(n int) string {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		// if random does not work, we have a big problem
		panic(err)
	}
	return base64.RawURLEncoding.EncodeToString(b)
}
