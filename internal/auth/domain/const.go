package domain

// Credential transport names shared by the middleware and the login handlers.
const (
	// APIKeyCookieName carries the account's long-lived API key.
	APIKeyCookieName = "apiKey"
	// AccessTokenCookieName carries the short-lived signed access token.
	AccessTokenCookieName = "accessToken"
	// AuthorizationHeaderName is read on requests ("Bearer <apiKey> <accessToken>")
	// and written on responses when a replacement token is minted.
	AuthorizationHeaderName = "Authorization"
	// BearerScheme is the only accepted authorization scheme.
	BearerScheme = "Bearer"
)
