package types

// TokenClaims carries the identity extracted from a validated bearer token
type TokenClaims struct {
	UserID  uint
	TokenID string
}
