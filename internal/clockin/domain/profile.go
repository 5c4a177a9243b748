package domain

import "time"

type WorkStatus string

const (
	WorkStatusActive  WorkStatus = "active"
	WorkStatusOnLeave WorkStatus = "on-leave"
	WorkStatusOffDuty WorkStatus = "off-duty"
	WorkStatusOffWork WorkStatus = "off-work"
)

func (s WorkStatus) Valid() bool {
	switch s {
	case WorkStatusActive, WorkStatusOnLeave, WorkStatusOffDuty, WorkStatusOffWork:
		return true
	}
	return false
}

// Profile is one staff member. QRToken is a login secret and must never be
// logged or serialised.
type Profile struct {
	ID           string
	Email        string
	FullName     string
	Department   string // empty until assigned
	StaffNumber  string // stored uppercase, empty when unset
	QRCode       string
	QRToken      string
	PasswordHash string
	IsApproved   bool
	WorkStatus   WorkStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ProfileUpdate carries the editable profile fields, nil meaning unchanged.
type ProfileUpdate struct {
	FullName    *string
	Department  *string
	StaffNumber *string
}

// QRPair is a badge's public display code and its matching secret.
type QRPair struct {
	Code  string
	Token string
}
