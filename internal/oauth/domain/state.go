package domain

import (
	"encoding/base64"
	"strings"

	"github.com/google/uuid"
)

// stateDelimiter separates the redirect target from the nonce inside the
// state value. The nonce is a uuid and can never contain it.
const stateDelimiter = "#"

// DefaultRedirectTarget is used when the caller supplied no post-login
// destination, or when the round-tripped state cannot be decoded.
const DefaultRedirectTarget = "/"

// NewStateNonce generates the single-use CSRF nonce embedded in the
// authorization state. uuid v4 is backed by crypto/rand.
func NewStateNonce() string {
	return uuid.NewString()
}

// EncodeState packs the desired post-login redirect target and a nonce into
// an opaque value safe to round-trip through the external provider. The
// encoding is URL-safe base64 so an uncontrolled third party cannot corrupt
// it in transit.
func EncodeState(redirectTarget, nonce string) string {
	if strings.TrimSpace(redirectTarget) == "" {
		redirectTarget = DefaultRedirectTarget
	}
	raw := redirectTarget + stateDelimiter + nonce
	return base64.URLEncoding.EncodeToString([]byte(raw))
}

// DecodeState recovers the redirect target from a state value returned by the
// provider. Decoding failures are not fatal: a missing, malformed or blank
// state falls back to the default target rather than erroring the login.
func DecodeState(state string) string {
	if state == "" {
		return DefaultRedirectTarget
	}

	raw, err := base64.URLEncoding.DecodeString(state)
	if err != nil {
		return DefaultRedirectTarget
	}

	target, _, _ := strings.Cut(string(raw), stateDelimiter)
	if strings.TrimSpace(target) == "" {
		return DefaultRedirectTarget
	}

	return target
}
