package domain

import "time"

type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestApproved RequestStatus = "approved"
	RequestRejected RequestStatus = "rejected"
)

func (s RequestStatus) Valid() bool {
	switch s {
	case RequestPending, RequestApproved, RequestRejected:
		return true
	}
	return false
}

type RequestAction string

const (
	ActionApprove RequestAction = "approve"
	ActionReject  RequestAction = "reject"
)

// Status is the terminal status the action moves a request to.
func (a RequestAction) Status() (RequestStatus, bool) {
	switch a {
	case ActionApprove:
		return RequestApproved, true
	case ActionReject:
		return RequestRejected, true
	}
	return "", false
}

// PasswordRequest is a staff member asking an admin for a password reset.
// It moves from pending to approved or rejected exactly once.
type PasswordRequest struct {
	ID          string
	UserID      string
	Reason      string
	Status      RequestStatus
	RequestedAt time.Time
	ResolvedAt  *time.Time
	ResolvedBy  string
	AdminNotes  string

	// Joined from profiles when listing
	FullName string
	Email    string
}

// Resolution is the admin decision written onto a pending request.
type Resolution struct {
	RequestID  string
	Status     RequestStatus
	ResolvedBy string
	AdminNotes string
	ResolvedAt time.Time
}
