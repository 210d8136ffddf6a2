package service

// Claims are the authenticated identity carried by an access token.
type Claims struct {
	Email string // The account email, which is also the store key.
	Role  string // "admin" or "user".
}

// TokenService defines the interface for generating and validating access
// tokens. This abstracts the details of token creation from the handlers.
type TokenService interface {
	// Generate creates a signed access token for the given account.
	Generate(email string, isAdmin bool) (string, error)

	// Validate checks a token string and returns its claims.
	Validate(tokenString string) (*Claims, error)
}

// TokenBlacklist records tokens invalidated by logout. Entries live for the
// process lifetime, matching the flat-file deployment model.
type TokenBlacklist interface {
	// Revoke marks a token string as invalid.
	Revoke(token string)

	// IsRevoked reports whether the token string has been revoked.
	IsRevoked(token string) bool
}
