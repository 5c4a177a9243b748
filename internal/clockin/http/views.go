package http

import (
	"math"
	"time"

	"github.com/aussiebroadwan/clockin/internal/clockin/domain"
	"github.com/aussiebroadwan/clockin/internal/clockin/service"
	"github.com/aussiebroadwan/clockin/pkg/clocksdk"
)

// hours rounds d to hundredths of an hour.
func hours(d time.Duration) float64 {
	return math.Round(d.Hours()*100) / 100
}

func profileView(p domain.Profile, role domain.Role) clocksdk.ProfileResponse {
	return clocksdk.ProfileResponse{
		ID:          p.ID,
		Email:       p.Email,
		FullName:    p.FullName,
		Department:  p.Department,
		StaffNumber: p.StaffNumber,
		QRCode:      p.QRCode,
		IsApproved:  p.IsApproved,
		WorkStatus:  string(p.WorkStatus),
		Role:        string(role),
		CreatedAt:   p.CreatedAt,
	}
}

func sessionView(s service.Session) clocksdk.SessionResponse {
	return clocksdk.SessionResponse{
		AccessToken:  s.Tokens.AccessToken,
		RefreshToken: s.Tokens.RefreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int(s.Tokens.ExpiresIn / time.Second),
		UserID:       s.UserID,
		Role:         string(s.Role),
		Redirect:     s.Redirect(),
	}
}

func recordViews(records []domain.AttendanceRecord, now time.Time) []clocksdk.AttendanceRecordResponse {
	out := make([]clocksdk.AttendanceRecordResponse, 0, len(records))
	for _, r := range records {
		out = append(out, clocksdk.AttendanceRecordResponse{
			ID:       r.ID,
			Activity: string(r.Activity),
			Notes:    r.Notes,
			Location: r.Location,
			ClockIn:  r.ClockIn,
			ClockOut: r.ClockOut,
			Hours:    hours(r.Duration(now)),
		})
	}
	return out
}

func dayViews(days []domain.DaySummary, now time.Time) clocksdk.HistoryResponse {
	out := clocksdk.HistoryResponse{Days: make([]clocksdk.DaySummaryResponse, 0, len(days))}
	for _, d := range days {
		out.Days = append(out.Days, clocksdk.DaySummaryResponse{
			Date:        d.Date,
			WorkedHours: hours(d.Worked),
			BreakHours:  hours(d.Breaks),
			Records:     recordViews(d.Records, now),
		})
	}
	return out
}

func requestViews(reqs []domain.PasswordRequest) clocksdk.ListPasswordRequestsResponse {
	out := clocksdk.ListPasswordRequestsResponse{Requests: make([]clocksdk.PasswordRequestResponse, 0, len(reqs))}
	for _, r := range reqs {
		out.Requests = append(out.Requests, requestView(r))
	}
	return out
}

func requestView(r domain.PasswordRequest) clocksdk.PasswordRequestResponse {
	return clocksdk.PasswordRequestResponse{
		ID:          r.ID,
		UserID:      r.UserID,
		FullName:    r.FullName,
		Email:       r.Email,
		Reason:      r.Reason,
		Status:      string(r.Status),
		RequestedAt: r.RequestedAt,
		ResolvedAt:  r.ResolvedAt,
		ResolvedBy:  r.ResolvedBy,
		AdminNotes:  r.AdminNotes,
	}
}

func activityView(page service.ActivityPage) clocksdk.LoginActivityPage {
	out := clocksdk.LoginActivityPage{
		Entries:    make([]clocksdk.LoginActivityResponse, 0, len(page.Entries)),
		Page:       page.Page,
		PageSize:   page.PageSize,
		Total:      page.Total,
		TotalPages: page.TotalPages,
	}
	for _, a := range page.Entries {
		out.Entries = append(out.Entries, clocksdk.LoginActivityResponse{
			ID:            a.ID,
			UserID:        a.UserID,
			FullName:      a.FullName,
			Email:         a.Email,
			StaffNumber:   a.StaffNumber,
			Method:        string(a.Method),
			IPAddress:     a.IPAddress,
			UserAgent:     a.UserAgent,
			DeviceInfo:    a.DeviceInfo,
			Success:       a.Success,
			FailureReason: a.FailureReason,
			LoginAt:       a.LoginAt,
		})
	}
	return out
}
