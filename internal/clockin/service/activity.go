package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/clockin/internal/clockin/domain"
	"github.com/aussiebroadwan/clockin/internal/clockin/store"
	"github.com/aussiebroadwan/clockin/pkg/idx"
	"github.com/aussiebroadwan/clockin/pkg/slogx"
	"github.com/mssola/useragent"
)

// ActivityPageSize is the number of login activity entries per page.
const ActivityPageSize = 10

// ClientInfo describes where a sign in came from.
type ClientInfo struct {
	IP        string
	UserAgent string
}

// ActivityService keeps the login audit trail.
type ActivityService struct {
	Store store.Store

	// Now is overridden in tests.
	Now func() time.Time
}

func (s *ActivityService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// Record writes one entry. Failures are logged and otherwise ignored so the
// audit trail never blocks a sign in.
func (s *ActivityService) Record(
	ctx context.Context,
	userID string,
	method domain.LoginMethod,
	client ClientInfo,
	success bool,
	reason string,
) {
	if s == nil {
		return
	}
	now := s.now()
	err := s.Store.LoginActivity().RecordActivity(ctx, domain.LoginActivity{
		ID:            idx.NewAt(now).String(),
		UserID:        userID,
		Method:        method,
		IPAddress:     client.IP,
		UserAgent:     client.UserAgent,
		DeviceInfo:    DeviceInfo(client.UserAgent),
		Success:       success,
		FailureReason: reason,
		LoginAt:       now,
	})
	if err != nil {
		slogx.FromContext(ctx).Error("failed to record login activity",
			slog.String("user_id", userID),
			slog.String("method", string(method)),
			slog.Any("error", err),
		)
	}
}

// ActivityRange is a look back window for the activity listing.
type ActivityRange string

const (
	RangeToday  ActivityRange = "today"
	Range7Days  ActivityRange = "7days"
	Range30Days ActivityRange = "30days"
	RangeAll    ActivityRange = "all"
)

// ActivityQuery selects one page of login activity.
type ActivityQuery struct {
	Method domain.LoginMethod // empty for every method
	Range  ActivityRange
	Page   int // 1 based

	// Location decides where "today" starts. Defaults to UTC.
	Location *time.Location
}

type ActivityPage struct {
	Entries    []domain.LoginActivity
	Page       int
	PageSize   int
	Total      int64
	TotalPages int
}

// List returns one page of login activity, newest first.
func (s *ActivityService) List(ctx context.Context, q ActivityQuery) (ActivityPage, error) {
	if q.Method != "" && !q.Method.Valid() {
		return ActivityPage{}, invalid("Invalid login method")
	}
	since, err := rangeStart(q.Range, s.now(), q.Location)
	if err != nil {
		return ActivityPage{}, err
	}
	if q.Page < 1 {
		q.Page = 1
	}

	f := domain.ActivityFilter{
		Method: q.Method,
		Since:  since,
		Limit:  ActivityPageSize,
		Offset: (q.Page - 1) * ActivityPageSize,
	}
	total, err := s.Store.LoginActivity().CountActivity(ctx, f)
	if err != nil {
		return ActivityPage{}, upstream(msgInternal, err)
	}
	entries, err := s.Store.LoginActivity().ListActivity(ctx, f)
	if err != nil {
		return ActivityPage{}, upstream(msgInternal, err)
	}

	pages := int((total + ActivityPageSize - 1) / ActivityPageSize)
	return ActivityPage{
		Entries:    entries,
		Page:       q.Page,
		PageSize:   ActivityPageSize,
		Total:      total,
		TotalPages: pages,
	}, nil
}

func rangeStart(r ActivityRange, now time.Time, loc *time.Location) (*time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	local := now.In(loc)
	midnight := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)

	var start time.Time
	switch r {
	case RangeAll, "":
		return nil, nil
	case RangeToday:
		start = midnight
	case Range7Days:
		start = now.AddDate(0, 0, -7)
	case Range30Days:
		start = now.AddDate(0, 0, -30)
	default:
		return nil, invalid("Invalid range")
	}
	start = start.UTC()
	return &start, nil
}

// DeviceInfo reduces a user agent to a coarse "Class / Browser / OS"
// descriptor for the audit listing.
func DeviceInfo(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return "Unknown"
	}
	ua := useragent.New(raw)
	return deviceClass(ua) + " / " + browserName(ua) + " / " + osName(ua)
}

// browserNames folds the parser's names into the ones shown to admins.
var browserNames = map[string]string{
	"Chrome":            "Chrome",
	"Chromium":          "Chrome",
	"Edge":              "Edge",
	"Firefox":           "Firefox",
	"Safari":            "Safari",
	"Opera":             "Opera",
	"Samsung Browser":   "Samsung Internet",
	"SamsungBrowser":    "Samsung Internet",
	"Internet Explorer": "Internet Explorer",
}

func browserName(ua *useragent.UserAgent) string {
	name, _ := ua.Browser()
	if n, ok := browserNames[name]; ok {
		return n
	}
	return "Other browser"
}

func osName(ua *useragent.UserAgent) string {
	sys, platform := ua.OS(), ua.Platform()
	switch {
	case platform == "iPhone" || platform == "iPod":
		return "iOS"
	case platform == "iPad":
		return "iPadOS"
	case strings.HasPrefix(sys, "Android"):
		return "Android"
	case platform == "Windows" || strings.HasPrefix(sys, "Windows"):
		return "Windows"
	case platform == "Macintosh":
		return "macOS"
	case strings.HasPrefix(sys, "CrOS"):
		return "ChromeOS"
	case platform == "Linux" || platform == "X11" || strings.HasPrefix(sys, "Linux"):
		return "Linux"
	}
	return "Other OS"
}

// deviceClass treats Android without a Mobile token as a tablet.
func deviceClass(ua *useragent.UserAgent) string {
	switch {
	case ua.Platform() == "iPad":
		return "Tablet"
	case strings.HasPrefix(ua.OS(), "Android") && !ua.Mobile():
		return "Tablet"
	case ua.Mobile() || ua.Platform() == "iPhone" || ua.Platform() == "iPod":
		return "Mobile"
	}
	return "Desktop"
}
