package domain

import "time"

// Session is the authenticated caller of one request. The role is resolved
// from the store once per request.
type Session struct {
	UserID    string
	SessionID string
	Role      Role
}

// TokenPair is what a successful sign in hands to the client.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    time.Duration
	SessionID    string
}

type RefreshToken struct {
	ID        string
	UserID    string
	TokenHash string
	SessionID string
	Method    LoginMethod
	ExpiresAt time.Time
	Revoked   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
