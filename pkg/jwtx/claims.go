package jwtx

import (
	"crypto/rand"
	"encoding/base64"
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	DefaultAccessTokenTTL  = 15 * time.Minute
	DefaultRefreshTokenTTL = 7 * 24 * time.Hour
)

// Claims are the access token claims shared by every clockin endpoint.
type Claims struct {
	jwt.RegisteredClaims

	// Session ID, shared by every access token minted from one login
	SID string `json:"sid,omitempty"`

	// Role at the time the token was minted. Handlers that make
	// authorization decisions reload the role instead of trusting this.
	Role string `json:"role,omitempty"`

	// Authentication method references: the login method, plus "refresh"
	// once the token has been rotated
	AMR []string `json:"amr,omitempty"`

	Name string `json:"name,omitempty"`
}

// AccessParams describes the token being minted.
type AccessParams struct {
	Subject   string
	SessionID string
	Role      string
	Name      string
	AMR       []string
	Issuer    string
	Audience  []string
	TTL       time.Duration
	Now       time.Time
}

// NewAccessClaims builds claims from p, defaulting TTL and Now.
func NewAccessClaims(p AccessParams) Claims {
	if p.TTL <= 0 {
		p.TTL = DefaultAccessTokenTTL
	}
	if p.Now.IsZero() {
		p.Now = time.Now().UTC()
	}

	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    p.Issuer,
			Subject:   p.Subject,
			Audience:  jwt.ClaimStrings(p.Audience),
			IssuedAt:  jwt.NewNumericDate(p.Now),
			NotBefore: jwt.NewNumericDate(p.Now),
			ExpiresAt: jwt.NewNumericDate(p.Now.Add(p.TTL)),
			ID:        NewJTI(),
		},
		SID:  p.SessionID,
		Role: p.Role,
		AMR:  p.AMR,
		Name: p.Name,
	}
}

// NewJTI returns a random URL safe token identifier.
func NewJTI() string {
	var b [20]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}

func (c *Claims) ValidateIssuer(expected string) error {
	if expected != "" && c.Issuer != expected {
		return ErrIssuer
	}
	return nil
}

// ValidateAudience passes when any expected audience is present.
func (c *Claims) ValidateAudience(expected []string) error {
	if len(expected) == 0 {
		return nil
	}
	for _, want := range expected {
		if slices.Contains(c.Audience, want) {
			return nil
		}
	}
	return ErrAudience
}

// ValidateExpiry checks exp and nbf, allowing leeway for clock skew.
func (c *Claims) ValidateExpiry(leeway time.Duration) error {
	now := time.Now().UTC()
	if c.ExpiresAt != nil && now.After(c.ExpiresAt.Add(leeway)) {
		return ErrExpired
	}
	if c.NotBefore != nil && now.Before(c.NotBefore.Add(-leeway)) {
		return ErrNotYetValid
	}
	return nil
}
