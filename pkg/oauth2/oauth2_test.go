package oauth2_test

import (
	"crypto/sha256"
	"encoding/base64"
	"regexp"
	"testing"

	"github.com/jthernandez999/pineapple-pier-sub000/pkg/oauth2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateCodeVerifier(t *testing.T) {
	verifier := oauth2.GenerateCodeVerifier()

	// RFC 7636 requires 43-128 characters from the unreserved set
	require.Len(t, verifier, 43)
	assert.Regexp(t, regexp.MustCompile(`^[A-Za-z0-9\-_]+$`), verifier)

	other := oauth2.GenerateCodeVerifier()
	assert.NotEqual(t, verifier, other)
}

func TestS256ChallengeFromVerifier(t *testing.T) {
	verifier := oauth2.GenerateCodeVerifier()

	challenge := oauth2.S256ChallengeFromVerifier(verifier)

	// the provider computes the same digest independently
	hash := sha256.Sum256([]byte(verifier))
	expected := base64.RawURLEncoding.EncodeToString(hash[:])
	assert.Equal(t, expected, challenge)

	// deterministic for the same verifier
	assert.Equal(t, challenge, oauth2.S256ChallengeFromVerifier(verifier))
}

func TestGenerateOpaqueToken(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		token := oauth2.GenerateOpaqueToken()
		require.NotEmpty(t, token)
		require.False(t, seen[token], "opaque tokens must not repeat")
		seen[token] = true
	}
}

func TestErrorString(t *testing.T) {
	err := &oauth2.Error{Code: "invalid_grant", Description: "code expired"}
	assert.Equal(t, "invalid_grant: code expired", err.Error())
}
