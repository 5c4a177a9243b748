package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/clockin/internal/clockin/domain"
	"github.com/aussiebroadwan/clockin/internal/clockin/store"
	"github.com/aussiebroadwan/clockin/pkg/idx"
	"github.com/aussiebroadwan/clockin/pkg/slogx"
)

// DefaultHistoryDays is how far back history goes without an explicit range.
const DefaultHistoryDays = 30

// AttendanceService clocks staff in and out.
type AttendanceService struct {
	Store store.Store

	// Location decides where a working day starts. Defaults to UTC.
	Location *time.Location

	// Now is overridden in tests.
	Now func() time.Time
}

func (s *AttendanceService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// CurrentTime is the instant the service measures open records against.
func (s *AttendanceService) CurrentTime() time.Time {
	return s.now()
}

func (s *AttendanceService) loc() *time.Location {
	if s.Location != nil {
		return s.Location
	}
	return time.UTC
}

// startOfDay returns local midnight of t in UTC.
func startOfDay(t time.Time, loc *time.Location) time.Time {
	l := t.In(loc)
	return time.Date(l.Year(), l.Month(), l.Day(), 0, 0, 0, 0, loc).UTC()
}

// ClockState is a user's current position on the clock.
type ClockState struct {
	Status       domain.ClockStatus
	Activity     domain.Activity // empty when clocked out
	ClockIn      *time.Time
	TodayWorked  time.Duration
	TodayRecords []domain.AttendanceRecord
}

func (s *AttendanceService) Status(ctx context.Context, userID string) (ClockState, error) {
	now := s.now()
	records, err := s.Store.Attendance().ListRecords(ctx, userID, startOfDay(now, s.loc()), now.Add(time.Second))
	if err != nil {
		return ClockState{}, upstream(msgInternal, err)
	}

	open, err := s.openRecord(ctx, userID)
	if err != nil {
		return ClockState{}, err
	}
	return clockState(open, records, now), nil
}

func clockState(open *domain.AttendanceRecord, today []domain.AttendanceRecord, now time.Time) ClockState {
	st := ClockState{Status: domain.StatusOf(open), TodayRecords: today}
	if open != nil {
		st.Activity = open.Activity
		in := open.ClockIn
		st.ClockIn = &in
	}
	for _, r := range today {
		if r.Activity != domain.ActivityBreak {
			st.TodayWorked += r.Duration(now)
		}
	}
	return st
}

func (s *AttendanceService) openRecord(ctx context.Context, userID string) (*domain.AttendanceRecord, error) {
	r, err := s.Store.Attendance().GetOpenRecord(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil
		}
		return nil, upstream(msgInternal, err)
	}
	return &r, nil
}

type ClockInInput struct {
	Activity domain.Activity
	Notes    string
	Location string
}

// ClockIn opens a record for the activity. When the user is already on the
// clock the open record is closed first, which is how activities are
// switched and breaks are taken.
func (s *AttendanceService) ClockIn(ctx context.Context, userID string, in ClockInInput) (domain.AttendanceRecord, error) {
	if !in.Activity.Valid() {
		return domain.AttendanceRecord{}, invalid("Invalid activity")
	}

	now := s.now()
	rec := domain.AttendanceRecord{
		ID:       idx.NewAt(now).String(),
		UserID:   userID,
		Activity: in.Activity,
		Notes:    strings.TrimSpace(in.Notes),
		Location: strings.TrimSpace(in.Location),
		ClockIn:  now,
	}

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		open, err := tx.Attendance().GetOpenRecord(ctx, userID)
		switch {
		case err == nil:
			if err := tx.Attendance().CloseRecord(ctx, open.ID, now); err != nil {
				return err
			}
		case !errors.Is(err, store.ErrNotFound):
			return err
		}
		return tx.Attendance().OpenRecord(ctx, rec)
	})
	if err != nil {
		// A concurrent clock in won the partial unique index
		if errors.Is(err, store.ErrAlreadyExists) || errors.Is(err, store.ErrConflict) {
			return domain.AttendanceRecord{}, conflict("Clock state changed, try again")
		}
		return domain.AttendanceRecord{}, upstream(msgInternal, err)
	}

	slogx.FromContext(ctx).Info("clocked in",
		slog.String("user_id", userID),
		slog.String("activity", string(rec.Activity)),
	)
	return rec, nil
}

// ClockOut closes the open record.
func (s *AttendanceService) ClockOut(ctx context.Context, userID string) (domain.AttendanceRecord, error) {
	open, err := s.openRecord(ctx, userID)
	if err != nil {
		return domain.AttendanceRecord{}, err
	}
	if open == nil {
		return domain.AttendanceRecord{}, conflict("You are not clocked in")
	}

	now := s.now()
	if err := s.Store.Attendance().CloseRecord(ctx, open.ID, now); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return domain.AttendanceRecord{}, conflict("You are not clocked in")
		}
		return domain.AttendanceRecord{}, upstream(msgInternal, err)
	}
	open.ClockOut = &now

	slogx.FromContext(ctx).Info("clocked out", slog.String("user_id", userID))
	return *open, nil
}

// History summarises userID's records in [from, to) by day. Zero bounds
// default to the last DefaultHistoryDays days.
func (s *AttendanceService) History(ctx context.Context, userID string, from, to time.Time) ([]domain.DaySummary, error) {
	now := s.now()
	if to.IsZero() {
		to = now.Add(time.Second)
	}
	if from.IsZero() {
		from = startOfDay(now, s.loc()).AddDate(0, 0, -DefaultHistoryDays)
	}
	if !from.Before(to) {
		return nil, invalid("Invalid date range")
	}

	records, err := s.Store.Attendance().ListRecords(ctx, userID, from.UTC(), to.UTC())
	if err != nil {
		return nil, upstream(msgInternal, err)
	}
	return domain.Summarise(records, s.loc(), now), nil
}

// Today returns every record clocked in since local midnight plus any still
// open, grouped by user.
func (s *AttendanceService) Today(ctx context.Context) (map[string][]domain.AttendanceRecord, error) {
	records, err := s.Store.Attendance().ListRecordsSince(ctx, startOfDay(s.now(), s.loc()))
	if err != nil {
		return nil, upstream(msgInternal, err)
	}
	byUser := make(map[string][]domain.AttendanceRecord)
	for _, r := range records {
		byUser[r.UserID] = append(byUser[r.UserID], r)
	}
	return byUser, nil
}
