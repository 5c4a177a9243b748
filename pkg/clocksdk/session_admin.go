package clocksdk

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// Admin operations. The server answers 403 for callers without the admin
// role.

// ListStaff returns every profile with its clock status.
func (s *Session) ListStaff(ctx context.Context) ([]StaffMemberResponse, error) {
	var l ListStaffResponse
	if err := s.call(ctx, http.MethodGet, "/v1/admin/staff", nil, &l, http.StatusOK); err != nil {
		return nil, err
	}
	return l.Staff, nil
}

// ApproveStaff lets a registered user sign in.
func (s *Session) ApproveStaff(ctx context.Context, userID string) error {
	return s.call(ctx, http.MethodPost, staffPath(userID, "/approve"), nil, nil, http.StatusOK)
}

// SetWorkStatus changes a staff member's work status.
func (s *Session) SetWorkStatus(ctx context.Context, userID, status string) error {
	return s.call(ctx, http.MethodPut, staffPath(userID, "/work-status"),
		WorkStatusRequest{WorkStatus: status}, nil, http.StatusOK)
}

// SetRole changes a staff member's role.
func (s *Session) SetRole(ctx context.Context, userID, role string) error {
	return s.call(ctx, http.MethodPut, staffPath(userID, "/role"),
		RoleRequest{Role: role}, nil, http.StatusOK)
}

// UpdateStaff edits a staff member's profile.
func (s *Session) UpdateStaff(ctx context.Context, userID string, req ProfileUpdateRequest) (*ProfileResponse, error) {
	var p ProfileResponse
	if err := s.call(ctx, http.MethodPatch, staffPath(userID, ""), req, &p, http.StatusOK); err != nil {
		return nil, err
	}
	return &p, nil
}

// RotateQR issues a staff member a new badge and returns its token.
func (s *Session) RotateQR(ctx context.Context, userID string) (string, error) {
	var r RotateQRResponse
	if err := s.call(ctx, http.MethodPost, staffPath(userID, "/qr/rotate"), nil, &r, http.StatusOK); err != nil {
		return "", err
	}
	return r.QRCode, nil
}

// DeleteStaff removes a staff member and everything they own.
func (s *Session) DeleteStaff(ctx context.Context, userID string) error {
	return s.call(ctx, http.MethodDelete, staffPath(userID, ""), nil, nil, http.StatusNoContent)
}

// StaffAttendance returns a staff member's attendance grouped by day.
func (s *Session) StaffAttendance(ctx context.Context, userID, from, to string) ([]DaySummaryResponse, error) {
	var h HistoryResponse
	if err := s.call(ctx, http.MethodGet, staffPath(userID, "/attendance")+rangeQuery(from, to), nil, &h, http.StatusOK); err != nil {
		return nil, err
	}
	return h.Days, nil
}

// ListAllPasswordRequests returns every password request, optionally only
// those with the given status.
func (s *Session) ListAllPasswordRequests(ctx context.Context, status string) ([]PasswordRequestResponse, error) {
	path := "/v1/admin/password-requests"
	if status != "" {
		path += "?status=" + url.QueryEscape(status)
	}

	var l ListPasswordRequestsResponse
	if err := s.call(ctx, http.MethodGet, path, nil, &l, http.StatusOK); err != nil {
		return nil, err
	}
	return l.Requests, nil
}

// ProcessPasswordRequest approves or rejects a password request and returns
// the server's message.
func (s *Session) ProcessPasswordRequest(ctx context.Context, req ProcessPasswordRequest) (string, error) {
	var m MessageResponse
	err := s.call(ctx, http.MethodPost, "/v1/admin/password-requests/process", req, &m, http.StatusOK)
	if err != nil {
		return "", err
	}
	return m.Message, nil
}

// LoginActivityQuery filters the login audit trail. Zero values mean no
// filter.
type LoginActivityQuery struct {
	Method string
	Range  string
	Page   int
}

// LoginActivity returns one page of the login audit trail.
func (s *Session) LoginActivity(ctx context.Context, q LoginActivityQuery) (*LoginActivityPage, error) {
	v := url.Values{}
	if q.Method != "" {
		v.Set("method", q.Method)
	}
	if q.Range != "" {
		v.Set("range", q.Range)
	}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	path := "/v1/admin/login-activity"
	if len(v) > 0 {
		path += "?" + v.Encode()
	}

	var page LoginActivityPage
	if err := s.call(ctx, http.MethodGet, path, nil, &page, http.StatusOK); err != nil {
		return nil, err
	}
	return &page, nil
}

// CreateDepartment adds a department.
func (s *Session) CreateDepartment(ctx context.Context, name string) (*DepartmentResponse, error) {
	var d DepartmentResponse
	err := s.call(ctx, http.MethodPost, "/v1/admin/departments", DepartmentRequest{Name: name}, &d, http.StatusCreated)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// RenameDepartment renames a department.
func (s *Session) RenameDepartment(ctx context.Context, id, name string) error {
	return s.call(ctx, http.MethodPut, "/v1/admin/departments/"+url.PathEscape(id),
		DepartmentRequest{Name: name}, nil, http.StatusOK)
}

// DeleteDepartment removes a department.
func (s *Session) DeleteDepartment(ctx context.Context, id string) error {
	return s.call(ctx, http.MethodDelete, "/v1/admin/departments/"+url.PathEscape(id), nil, nil, http.StatusNoContent)
}

func staffPath(userID, suffix string) string {
	return "/v1/admin/staff/" + url.PathEscape(userID) + suffix
}
