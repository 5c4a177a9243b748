package clocksdk

import (
	"time"

	"github.com/aussiebroadwan/clockin/pkg/jwtx"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse acknowledges a write that returns no resource.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// ============================================================================
// Login
// ============================================================================

// QRLoginRequest is the body of POST /v1/login/qr.
type QRLoginRequest struct {
	QRToken string `json:"qr_token"`
}

// StaffNumberLoginRequest is the body of POST /v1/login/staff-number.
type StaffNumberLoginRequest struct {
	StaffNumber string `json:"staff_number"`
}

// LoginGrantResponse carries a one-time token the client redeems with
// POST /v1/login/verify. UserID is only set by the staff number login.
type LoginGrantResponse struct {
	Success   bool   `json:"success"`
	Email     string `json:"email"`
	TokenHash string `json:"token_hash"`
	Type      string `json:"type"`
	FullName  string `json:"full_name"`
	Role      string `json:"role"`
	UserID    string `json:"user_id,omitempty"`
}

// VerifyRequest redeems a one-time login token.
type VerifyRequest struct {
	Email     string `json:"email"`
	TokenHash string `json:"token_hash"`
	Type      string `json:"type"`
}

// PasswordLoginRequest is the body of POST /v1/login/password.
type PasswordLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SessionResponse is returned by every endpoint that starts or refreshes a
// session. Redirect is the client route for the caller's role.
type SessionResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"` // seconds
	UserID       string `json:"user_id"`
	Role         string `json:"role"`
	Redirect     string `json:"redirect"`
}

// RefreshRequest is the body of POST /v1/token/refresh.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// ============================================================================
// Registration & profile
// ============================================================================

type RegisterRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	FullName    string `json:"full_name"`
	Department  string `json:"department,omitempty"`
	StaffNumber string `json:"staff_number,omitempty"`
}

type RegisterResponse struct {
	UserID string `json:"user_id"`
	QRCode string `json:"qr_code"`
}

// ProfileResponse is a staff member as the API shows it. The QR token is
// never part of it.
type ProfileResponse struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	FullName    string    `json:"full_name"`
	Department  string    `json:"department,omitempty"`
	StaffNumber string    `json:"staff_number,omitempty"`
	QRCode      string    `json:"qr_code"`
	IsApproved  bool      `json:"is_approved"`
	WorkStatus  string    `json:"work_status"`
	Role        string    `json:"role"`
	CreatedAt   time.Time `json:"created_at"`
}

// ProfileUpdateRequest changes the fields that are set.
type ProfileUpdateRequest struct {
	FullName    *string `json:"full_name,omitempty"`
	Department  *string `json:"department,omitempty"`
	StaffNumber *string `json:"staff_number,omitempty"`
}

// ============================================================================
// Admin
// ============================================================================

// StaffMemberResponse is one row of the admin staff list.
type StaffMemberResponse struct {
	ProfileResponse
	ClockStatus string  `json:"clock_status"`
	Activity    string  `json:"activity,omitempty"`
	TodayHours  float64 `json:"today_hours"`
}

type ListStaffResponse struct {
	Staff []StaffMemberResponse `json:"staff"`
}

type WorkStatusRequest struct {
	WorkStatus string `json:"work_status"`
}

type RoleRequest struct {
	Role string `json:"role"`
}

type RotateQRResponse struct {
	QRCode string `json:"qr_code"`
}

// ProcessPasswordRequest is an admin decision on a password request.
type ProcessPasswordRequest struct {
	RequestID  string `json:"requestId"`
	Action     string `json:"action"` // approve or reject
	AdminNotes string `json:"adminNotes,omitempty"`
}

// LoginActivityResponse is one audit entry.
type LoginActivityResponse struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id,omitempty"`
	FullName      string    `json:"full_name,omitempty"`
	Email         string    `json:"email,omitempty"`
	StaffNumber   string    `json:"staff_number,omitempty"`
	Method        string    `json:"login_method"`
	IPAddress     string    `json:"ip_address,omitempty"`
	UserAgent     string    `json:"user_agent,omitempty"`
	DeviceInfo    string    `json:"device_info"`
	Success       bool      `json:"success"`
	FailureReason string    `json:"failure_reason,omitempty"`
	LoginAt       time.Time `json:"login_at"`
}

type LoginActivityPage struct {
	Entries    []LoginActivityResponse `json:"entries"`
	Page       int                     `json:"page"`
	PageSize   int                     `json:"page_size"`
	Total      int64                   `json:"total"`
	TotalPages int                     `json:"total_pages"`
}

// ============================================================================
// Departments
// ============================================================================

type DepartmentRequest struct {
	Name string `json:"name"`
}

type DepartmentResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type ListDepartmentsResponse struct {
	Departments []DepartmentResponse `json:"departments"`
}

// ============================================================================
// Attendance
// ============================================================================

type ClockInRequest struct {
	Activity string `json:"activity"`
	Notes    string `json:"notes,omitempty"`
	Location string `json:"location,omitempty"`
}

// AttendanceRecordResponse is one stretch of a single activity. ClockOut is
// nil while the record is open.
type AttendanceRecordResponse struct {
	ID       string     `json:"id"`
	Activity string     `json:"activity"`
	Notes    string     `json:"notes,omitempty"`
	Location string     `json:"location,omitempty"`
	ClockIn  time.Time  `json:"clock_in"`
	ClockOut *time.Time `json:"clock_out,omitempty"`
	Hours    float64    `json:"hours"`
}

// ClockStatusResponse is the caller's current position on the clock.
type ClockStatusResponse struct {
	Status       string                     `json:"status"`
	Activity     string                     `json:"activity,omitempty"`
	ClockInTime  *time.Time                 `json:"clock_in_time,omitempty"`
	TodayHours   float64                    `json:"today_hours"`
	TodayRecords []AttendanceRecordResponse `json:"today_records"`
}

// DaySummaryResponse totals one calendar day. WorkedHours excludes breaks.
type DaySummaryResponse struct {
	Date        string                     `json:"date"`
	WorkedHours float64                    `json:"worked_hours"`
	BreakHours  float64                    `json:"break_hours"`
	Records     []AttendanceRecordResponse `json:"records"`
}

type HistoryResponse struct {
	Days []DaySummaryResponse `json:"days"`
}

// ============================================================================
// Password requests
// ============================================================================

type CreatePasswordRequest struct {
	Reason string `json:"reason"`
}

type PasswordRequestResponse struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	FullName    string     `json:"full_name,omitempty"`
	Email       string     `json:"email,omitempty"`
	Reason      string     `json:"reason"`
	Status      string     `json:"status"`
	RequestedAt time.Time  `json:"requested_at"`
	ResolvedAt  *time.Time `json:"resolved_at,omitempty"`
	ResolvedBy  string     `json:"resolved_by,omitempty"`
	AdminNotes  string     `json:"admin_notes,omitempty"`
}

type ListPasswordRequestsResponse struct {
	Requests []PasswordRequestResponse `json:"requests"`
}

// PasswordResetRequest redeems the recovery link from a reset email.
type PasswordResetRequest struct {
	Email     string `json:"email"`
	TokenHash string `json:"token_hash"`
	Password  string `json:"password"`
}

// ============================================================================
// System
// ============================================================================

// BootstrapRequest creates the first admin. It needs the X-Bootstrap-Token
// header.
type BootstrapRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

type BootstrapResponse struct {
	AdminUserID string `json:"admin_user_id"`
}

// HealthResponse is returned by /livez and /readyz.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime,omitempty"`
	Version string        `json:"version,omitempty"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

type HealthChecks struct {
	Database string `json:"database"`
	Signer   string `json:"signer"`
}

// JWKSResponse is the public key set access tokens verify against.
type JWKSResponse jwtx.JWKS
