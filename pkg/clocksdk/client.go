package clocksdk

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client is a client for the clockin service. It provides access to the
// unauthenticated operations and creates authenticated Sessions.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a new clockin service client.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// LoginWithQR signs in with the token scanned from a staff badge. It checks
// the badge and then redeems the one-time token it yields.
func (c *Client) LoginWithQR(ctx context.Context, qrToken string) (*Session, error) {
	grant, err := c.RequestQRLogin(ctx, qrToken)
	if err != nil {
		return nil, err
	}
	return c.redeem(ctx, grant)
}

// LoginWithStaffNumber signs in with a staff number.
func (c *Client) LoginWithStaffNumber(ctx context.Context, staffNumber string) (*Session, error) {
	grant, err := c.RequestStaffNumberLogin(ctx, staffNumber)
	if err != nil {
		return nil, err
	}
	return c.redeem(ctx, grant)
}

// LoginWithPassword signs in with email and password.
func (c *Client) LoginWithPassword(ctx context.Context, email, password string) (*Session, error) {
	var resp SessionResponse
	err := c.call(ctx, http.MethodPost, "/v1/login/password", "",
		PasswordLoginRequest{Email: email, Password: password}, &resp, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return c.NewSessionFromTokens(resp), nil
}

// RequestQRLogin exchanges a badge token for a one-time login token.
func (c *Client) RequestQRLogin(ctx context.Context, qrToken string) (*LoginGrantResponse, error) {
	var grant LoginGrantResponse
	err := c.call(ctx, http.MethodPost, "/v1/login/qr", "",
		QRLoginRequest{QRToken: qrToken}, &grant, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return &grant, nil
}

// RequestStaffNumberLogin exchanges a staff number for a one-time login
// token.
func (c *Client) RequestStaffNumberLogin(ctx context.Context, staffNumber string) (*LoginGrantResponse, error) {
	var grant LoginGrantResponse
	err := c.call(ctx, http.MethodPost, "/v1/login/staff-number", "",
		StaffNumberLoginRequest{StaffNumber: staffNumber}, &grant, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return &grant, nil
}

// Verify redeems a one-time login token. A rejected token surfaces as
// ErrVerificationFailed.
func (c *Client) Verify(ctx context.Context, req VerifyRequest) (*SessionResponse, error) {
	var resp SessionResponse
	err := c.call(ctx, http.MethodPost, "/v1/login/verify", "", req, &resp, http.StatusOK)
	if err != nil {
		if IsStatus(err, http.StatusUnauthorized) {
			return nil, ErrVerificationFailed
		}
		return nil, err
	}
	return &resp, nil
}

func (c *Client) redeem(ctx context.Context, grant *LoginGrantResponse) (*Session, error) {
	resp, err := c.Verify(ctx, VerifyRequest{
		Email:     grant.Email,
		TokenHash: grant.TokenHash,
		Type:      grant.Type,
	})
	if err != nil {
		return nil, err
	}
	return c.NewSessionFromTokens(*resp), nil
}

// Refresh exchanges a refresh token for a new token pair. The old refresh
// token stops working.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*SessionResponse, error) {
	var resp SessionResponse
	err := c.call(ctx, http.MethodPost, "/v1/token/refresh", "",
		RefreshRequest{RefreshToken: refreshToken}, &resp, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Register creates an account that an admin has to approve before it can
// sign in.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	var resp RegisterResponse
	if err := c.call(ctx, http.MethodPost, "/v1/register", "", req, &resp, http.StatusCreated); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ResetPassword redeems the recovery link of a password reset email.
func (c *Client) ResetPassword(ctx context.Context, req PasswordResetRequest) error {
	return c.call(ctx, http.MethodPost, "/v1/password/reset", "", req, nil, http.StatusOK)
}

// ResetRequestFromLink pulls the recovery token out of the link in a reset
// email.
func ResetRequestFromLink(link, password string) (PasswordResetRequest, error) {
	u, err := url.Parse(link)
	if err != nil {
		return PasswordResetRequest{}, err
	}
	q := u.Query()
	if q.Get("token_hash") == "" || q.Get("type") != "recovery" {
		return PasswordResetRequest{}, errors.New("clocksdk: not a password reset link")
	}
	return PasswordResetRequest{
		Email:     q.Get("email"),
		TokenHash: q.Get("token_hash"),
		Password:  password,
	}, nil
}

// ListDepartments returns the departments offered at registration.
func (c *Client) ListDepartments(ctx context.Context) ([]DepartmentResponse, error) {
	var resp ListDepartmentsResponse
	if err := c.call(ctx, http.MethodGet, "/v1/departments", "", nil, &resp, http.StatusOK); err != nil {
		return nil, err
	}
	return resp.Departments, nil
}

// Bootstrap creates the first admin of a fresh install.
func (c *Client) Bootstrap(ctx context.Context, token string, req BootstrapRequest) (*BootstrapResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/v1/bootstrap", "", req,
		map[string]string{"X-Bootstrap-Token": token})
	if err != nil {
		return nil, err
	}

	var out BootstrapResponse
	if err := decodeJSON(resp, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// NewSessionFromTokens creates an authenticated session from a session
// response, for example one kept by the caller between runs. The session
// still refreshes itself when the access token expires.
func (c *Client) NewSessionFromTokens(resp SessionResponse) *Session {
	return newSession(c, resp)
}
