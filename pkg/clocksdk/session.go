package clocksdk

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"
)

// refreshBuffer refreshes the access token a little before it expires.
const refreshBuffer = 30 * time.Second

// Session represents a signed in staff member with automatic token refresh.
// All Session methods refresh the access token when it is about to expire.
type Session struct {
	client *Client

	mu           sync.RWMutex
	accessToken  string
	refreshToken string
	expiresAt    time.Time
	userID       string
	role         string
	route        string
}

func newSession(client *Client, resp SessionResponse) *Session {
	s := &Session{client: client}
	s.apply(resp)
	return s
}

// apply stores a token response. Callers hold the write lock or own s.
func (s *Session) apply(resp SessionResponse) {
	s.accessToken = resp.AccessToken
	s.refreshToken = resp.RefreshToken
	s.expiresAt = time.Now().Add(time.Duration(resp.ExpiresIn)*time.Second - refreshBuffer)
	s.userID = resp.UserID
	s.role = resp.Role
	s.route = resp.Redirect
}

// UserID returns the signed in user's id.
func (s *Session) UserID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userID
}

// Role returns the role the session was issued for.
func (s *Session) Role() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.role
}

// Route returns the client route for the session's role, /admin or
// /dashboard.
func (s *Session) Route() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.route
}

// AccessToken returns the current access token without checking expiration.
func (s *Session) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

// RefreshToken returns the current refresh token.
func (s *Session) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refreshToken
}

// getValidToken returns a valid access token, automatically refreshing if expired.
func (s *Session) getValidToken(ctx context.Context) (string, error) {
	s.mu.RLock()
	if time.Now().Before(s.expiresAt) {
		token := s.accessToken
		s.mu.RUnlock()
		return token, nil
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	// Another goroutine may have refreshed while we waited
	if time.Now().Before(s.expiresAt) {
		return s.accessToken, nil
	}
	if s.refreshToken == "" {
		return "", errors.New("clocksdk: access token expired and no refresh token available")
	}

	resp, err := s.client.Refresh(ctx, s.refreshToken)
	if err != nil {
		return "", fmt.Errorf("failed to refresh token: %w", err)
	}
	s.apply(*resp)

	return s.accessToken, nil
}

// call performs an authenticated request.
func (s *Session) call(ctx context.Context, method, path string, in, out any, expectedStatus int) error {
	token, err := s.getValidToken(ctx)
	if err != nil {
		return err
	}
	return s.client.call(ctx, method, path, token, in, out, expectedStatus)
}

// Logout ends the session on the server. Its refresh token stops working.
func (s *Session) Logout(ctx context.Context) error {
	if err := s.call(ctx, http.MethodPost, "/v1/logout", nil, nil, http.StatusOK); err != nil {
		return err
	}

	s.mu.Lock()
	s.refreshToken = ""
	s.mu.Unlock()
	return nil
}
