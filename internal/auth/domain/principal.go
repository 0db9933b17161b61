// Package domain defines the request authentication domain models.
//
// Authentication is credential-pair based: every account owns a long-lived
// API key that never expires, and clients additionally carry a short-lived
// signed access token minted at login or transparently refreshed by the
// authentication middleware.
package domain

// Reserved bootstrap usernames. Accounts with these usernames carry the admin
// role; every other account has no elevated role.
const (
	SystemUsername = "system"
	AdminUsername  = "admin"
)

// Principal is the authenticated identity attached to a request. It is
// constructed fresh per request, either from decoded token claims or from a
// stored account, and is never persisted.
type Principal struct {
	ID       int64
	Username string
	Nickname string
}

// IsAdmin reports whether the principal carries the admin role. The role set
// is derived from the username, not stored per principal.
func (p *Principal) IsAdmin() bool {
	return p.Username == SystemUsername || p.Username == AdminUsername
}
