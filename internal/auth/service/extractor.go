package service

import (
	"net/http"
	"strings"

	authDomain "github.com/restboard/restboard/internal/auth/domain"
)

// ExtractCredentials parses the credential pair (long-lived API key,
// short-lived access token) out of an incoming request.
//
// If an Authorization header is present it must match exactly
// "Bearer <apiKey> <accessToken>"; anything else is a hard failure with
// authDomain.ErrMalformedAuthHeader. Header presence fully overrides cookies,
// there is no merging. Without a header, the apiKey and accessToken cookies
// are read; a missing cookie yields an empty string, which is not an error.
func ExtractCredentials(r *http.Request) (apiKey, accessToken string, err error) {
	header := r.Header.Get(authDomain.AuthorizationHeaderName)
	if header != "" {
		parts := strings.Split(header, " ")
		if len(parts) != 3 || parts[0] != authDomain.BearerScheme || parts[1] == "" || parts[2] == "" {
			return "", "", authDomain.ErrMalformedAuthHeader
		}
		return parts[1], parts[2], nil
	}

	if cookie, cookieErr := r.Cookie(authDomain.APIKeyCookieName); cookieErr == nil {
		apiKey = cookie.Value
	}
	if cookie, cookieErr := r.Cookie(authDomain.AccessTokenCookieName); cookieErr == nil {
		accessToken = cookie.Value
	}

	return apiKey, accessToken, nil
}
