package session

import (
	"fmt"
	"strconv"
	"time"
)

// DefaultExpiryBuffer is how long before the real expiry a token is already
// treated as expired, so refresh happens before the API starts rejecting it.
const DefaultExpiryBuffer = 120 * time.Second

// ComputeExpiresAt derives the stored expiry instant from the provider's
// expires_in. The same formula applies at initial login and at refresh:
//
//	expiresAt = now + (expiresIn - buffer) seconds
//
// The value is never trusted from the client; it is recomputed on every
// token issuance.
func ComputeExpiresAt(now time.Time, expiresIn int, buffer time.Duration) int64 {
	return now.UnixMilli() + int64(expiresIn)*1000 - buffer.Milliseconds()
}

// IsExpired reports whether the token behind expiresAt is inside the safety
// buffer of its expiry and should be refreshed.
func IsExpired(expiresAt int64, now time.Time, buffer time.Duration) bool {
	return expiresAt-buffer.Milliseconds() < now.UnixMilli()
}

// ParseExpiresAt parses the stored epoch-millisecond string.
func ParseExpiresAt(raw string) (int64, error) {
	ms, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid expiry record %q: %w", raw, err)
	}
	return ms, nil
}
