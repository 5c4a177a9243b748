package domain

import (
	"sort"
	"time"
)

type Activity string

const (
	ActivityGuidedTour     Activity = "guided-tour"
	ActivityExhibition     Activity = "exhibition"
	ActivityAdministrative Activity = "administrative"
	ActivityMaintenance    Activity = "maintenance"
	ActivityFieldWork      Activity = "field-work"
	ActivityOffSite        Activity = "off-site"
	ActivityBreak          Activity = "break"
	ActivityMeeting        Activity = "meeting"
	ActivityTraining       Activity = "training"
	ActivityOther          Activity = "other"
)

// Activities lists every activity in display order.
var Activities = []Activity{
	ActivityGuidedTour,
	ActivityExhibition,
	ActivityAdministrative,
	ActivityMaintenance,
	ActivityFieldWork,
	ActivityOffSite,
	ActivityMeeting,
	ActivityTraining,
	ActivityBreak,
	ActivityOther,
}

func (a Activity) Valid() bool {
	for _, known := range Activities {
		if a == known {
			return true
		}
	}
	return false
}

type ClockStatus string

const (
	ClockedIn  ClockStatus = "clocked-in"
	ClockedOut ClockStatus = "clocked-out"
	OnBreak    ClockStatus = "on-break"
)

// AttendanceRecord is one stretch of a single activity. ClockOut is nil
// while the record is open; a user has at most one open record.
type AttendanceRecord struct {
	ID       string
	UserID   string
	Activity Activity
	Notes    string
	Location string
	ClockIn  time.Time
	ClockOut *time.Time
}

// Duration is the worked time of r, measured up to now while open.
func (r AttendanceRecord) Duration(now time.Time) time.Duration {
	end := now
	if r.ClockOut != nil {
		end = *r.ClockOut
	}
	if end.Before(r.ClockIn) {
		return 0
	}
	return end.Sub(r.ClockIn)
}

// StatusOf derives the clock status from the user's open record.
func StatusOf(open *AttendanceRecord) ClockStatus {
	switch {
	case open == nil:
		return ClockedOut
	case open.Activity == ActivityBreak:
		return OnBreak
	default:
		return ClockedIn
	}
}

// DaySummary totals one calendar day of records.
type DaySummary struct {
	Date    string // YYYY-MM-DD in the summary location
	Records []AttendanceRecord
	Worked  time.Duration // excludes breaks
	Breaks  time.Duration
}

// Summarise groups records by the local date of their clock in, newest day
// first. Break records count towards Breaks rather than Worked.
func Summarise(records []AttendanceRecord, loc *time.Location, now time.Time) []DaySummary {
	byDay := make(map[string]*DaySummary)
	for _, r := range records {
		day := r.ClockIn.In(loc).Format(time.DateOnly)
		s, ok := byDay[day]
		if !ok {
			s = &DaySummary{Date: day}
			byDay[day] = s
		}
		s.Records = append(s.Records, r)
		if r.Activity == ActivityBreak {
			s.Breaks += r.Duration(now)
		} else {
			s.Worked += r.Duration(now)
		}
	}

	out := make([]DaySummary, 0, len(byDay))
	for _, s := range byDay {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out
}
