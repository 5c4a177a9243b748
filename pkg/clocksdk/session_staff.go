package clocksdk

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
)

// Me returns the caller's profile.
func (s *Session) Me(ctx context.Context) (*ProfileResponse, error) {
	var p ProfileResponse
	if err := s.call(ctx, http.MethodGet, "/v1/me", nil, &p, http.StatusOK); err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdateMe changes the caller's name, department or staff number. Nil fields
// are left alone.
func (s *Session) UpdateMe(ctx context.Context, req ProfileUpdateRequest) (*ProfileResponse, error) {
	var p ProfileResponse
	if err := s.call(ctx, http.MethodPatch, "/v1/me", req, &p, http.StatusOK); err != nil {
		return nil, err
	}
	return &p, nil
}

// Badge returns the caller's login badge as a PNG. A size of zero lets the
// server pick.
func (s *Session) Badge(ctx context.Context, size int) ([]byte, error) {
	token, err := s.getValidToken(ctx)
	if err != nil {
		return nil, err
	}

	path := "/v1/me/badge.png"
	if size > 0 {
		path += "?size=" + strconv.Itoa(size)
	}
	resp, err := s.client.doRequest(ctx, http.MethodGet, path, token, nil, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if err := parseErrorResponse(resp, body); err != nil {
		return nil, err
	}
	return body, nil
}

// ClockStatus returns whether the caller is clocked in and today's records.
func (s *Session) ClockStatus(ctx context.Context) (*ClockStatusResponse, error) {
	var st ClockStatusResponse
	if err := s.call(ctx, http.MethodGet, "/v1/attendance/status", nil, &st, http.StatusOK); err != nil {
		return nil, err
	}
	return &st, nil
}

// ClockIn starts an activity.
func (s *Session) ClockIn(ctx context.Context, req ClockInRequest) (*AttendanceRecordResponse, error) {
	var rec AttendanceRecordResponse
	if err := s.call(ctx, http.MethodPost, "/v1/attendance/clock-in", req, &rec, http.StatusOK); err != nil {
		return nil, err
	}
	return &rec, nil
}

// ClockOut closes the open activity.
func (s *Session) ClockOut(ctx context.Context) (*AttendanceRecordResponse, error) {
	var rec AttendanceRecordResponse
	if err := s.call(ctx, http.MethodPost, "/v1/attendance/clock-out", nil, &rec, http.StatusOK); err != nil {
		return nil, err
	}
	return &rec, nil
}

// History returns the caller's attendance grouped by day. from and to are
// YYYY-MM-DD dates and may be empty.
func (s *Session) History(ctx context.Context, from, to string) ([]DaySummaryResponse, error) {
	var h HistoryResponse
	if err := s.call(ctx, http.MethodGet, "/v1/attendance/history"+rangeQuery(from, to), nil, &h, http.StatusOK); err != nil {
		return nil, err
	}
	return h.Days, nil
}

// RequestPasswordReset asks the admins for a password reset.
func (s *Session) RequestPasswordReset(ctx context.Context, reason string) (*PasswordRequestResponse, error) {
	var pr PasswordRequestResponse
	err := s.call(ctx, http.MethodPost, "/v1/password-requests",
		CreatePasswordRequest{Reason: reason}, &pr, http.StatusCreated)
	if err != nil {
		return nil, err
	}
	return &pr, nil
}

// ListPasswordRequests returns the caller's own password requests.
func (s *Session) ListPasswordRequests(ctx context.Context) ([]PasswordRequestResponse, error) {
	var l ListPasswordRequestsResponse
	if err := s.call(ctx, http.MethodGet, "/v1/password-requests", nil, &l, http.StatusOK); err != nil {
		return nil, err
	}
	return l.Requests, nil
}

func rangeQuery(from, to string) string {
	q := url.Values{}
	if from != "" {
		q.Set("from", from)
	}
	if to != "" {
		q.Set("to", to)
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}
