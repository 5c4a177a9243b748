package domain

import "time"

type LoginMethod string

const (
	LoginMethodQR       LoginMethod = "qr"
	LoginMethodStaffID  LoginMethod = "staff_id"
	LoginMethodPassword LoginMethod = "email"
)

func (m LoginMethod) Valid() bool {
	switch m {
	case LoginMethodQR, LoginMethodStaffID, LoginMethodPassword:
		return true
	}
	return false
}

// LinkType discriminates what a one-time link can be redeemed for.
type LinkType string

const (
	LinkTypeMagicLink LinkType = "magiclink"
	LinkTypeRecovery  LinkType = "recovery"
)

// LoginLink is a single use credential. Only the fingerprint of the token
// handed to the client is kept.
type LoginLink struct {
	ID        string
	UserID    string
	Email     string
	TokenHash string
	Type      LinkType
	Method    LoginMethod
	ExpiresAt time.Time
	UsedAt    *time.Time
	CreatedAt time.Time
}

// LoginGrant is the result of a successful credential check: enough for the
// client to redeem the one-time token without another lookup.
type LoginGrant struct {
	UserID    string
	Email     string
	TokenHash string
	Type      LinkType
	FullName  string
	Role      Role
}

// LoginActivity is one audit entry of a sign in attempt.
type LoginActivity struct {
	ID            string
	UserID        string // empty when the credential matched nobody
	Method        LoginMethod
	IPAddress     string
	UserAgent     string
	DeviceInfo    string
	Success       bool
	FailureReason string
	LoginAt       time.Time

	// Joined from profiles when listing
	FullName    string
	Email       string
	StaffNumber string
}

// ActivityFilter narrows the admin login activity listing.
type ActivityFilter struct {
	Method LoginMethod // empty for all
	Since  *time.Time
	Limit  int
	Offset int
}
