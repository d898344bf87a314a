package customer_test

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"testing"

	"github.com/jthernandez999/pineapple-pier-sub000/pkg/customer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildIDToken assembles a compact token with the given claims and a dummy
// signature. Decoding never verifies, so the signature content is irrelevant.
func buildIDToken(t *testing.T, claims map[string]any) string {
	t.Helper()
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"none","typ":"JWT"}`))
	payload, err := json.Marshal(claims)
	require.NoError(t, err)
	return header + "." + base64.RawURLEncoding.EncodeToString(payload) + ".c2ln"
}

func TestDecodeClaims(t *testing.T) {
	raw := buildIDToken(t, map[string]any{
		"sub":   "gid://shopify/Customer/12345",
		"nonce": "N1",
	})

	claims, err := customer.DecodeClaims(raw)
	require.NoError(t, err)
	assert.Equal(t, "N1", claims.Nonce)
	assert.Equal(t, "gid://shopify/Customer/12345", claims.Subject)
}

func TestDecodeClaimsWithoutNonce(t *testing.T) {
	raw := buildIDToken(t, map[string]any{"sub": "gid://shopify/Customer/12345"})

	claims, err := customer.DecodeClaims(raw)
	require.NoError(t, err)
	assert.Empty(t, claims.Nonce)
}

func TestDecodeClaimsMalformed(t *testing.T) {
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"none","typ":"JWT"}`))

	for name, raw := range map[string]string{
		"empty":            "",
		"no segments":      "not-a-token",
		"two segments":     "aGVhZGVy.cGF5bG9hZA",
		"invalid base64":   "!!!.!!!.!!!",
		"payload not json": header + ".bm90LWpzb24.c2ln",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := customer.DecodeClaims(raw)
			require.Error(t, err)
			assert.True(t, errors.Is(err, customer.ErrMalformedToken))
		})
	}
}
