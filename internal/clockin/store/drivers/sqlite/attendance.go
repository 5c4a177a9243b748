package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/clockin/internal/clockin/domain"
	"github.com/aussiebroadwan/clockin/internal/clockin/store"
	"github.com/aussiebroadwan/clockin/internal/clockin/store/drivers/sqlite/gen"
)

type attendanceRepo struct {
	q *gen.Queries
}

func (r *attendanceRepo) OpenRecord(ctx context.Context, rec domain.AttendanceRecord) error {
	return mapConstraint(r.q.CreateAttendanceRecord(ctx, gen.CreateAttendanceRecordParams{
		ID:          rec.ID,
		UserID:      rec.UserID,
		Activity:    string(rec.Activity),
		Notes:       mapStringNull(rec.Notes),
		Location:    mapStringNull(rec.Location),
		ClockInTime: rec.ClockIn,
	}))
}

func (r *attendanceRepo) GetOpenRecord(ctx context.Context, userID string) (domain.AttendanceRecord, error) {
	row, err := r.q.GetOpenAttendanceRecord(ctx, userID)
	if err != nil {
		return domain.AttendanceRecord{}, mapNotFound(err)
	}
	return mapAttendanceRecord(row), nil
}

func (r *attendanceRepo) CloseRecord(ctx context.Context, id string, at time.Time) error {
	n, err := r.q.CloseAttendanceRecord(ctx, gen.CloseAttendanceRecordParams{
		ClockOutTime: mapOptionalTime(&at),
		ID:           id,
	})
	return expectOne(n, err, store.ErrConflict)
}

func (r *attendanceRepo) ListRecords(
	ctx context.Context,
	userID string,
	from, to time.Time,
) ([]domain.AttendanceRecord, error) {
	rows, err := r.q.ListAttendanceRecords(ctx, gen.ListAttendanceRecordsParams{
		UserID: userID,
		From:   from,
		To:     to,
	})
	if err != nil {
		return nil, err
	}
	return mapAttendanceRecords(rows), nil
}

func (r *attendanceRepo) ListRecordsSince(ctx context.Context, since time.Time) ([]domain.AttendanceRecord, error) {
	rows, err := r.q.ListAttendanceRecordsSince(ctx, since)
	if err != nil {
		return nil, err
	}
	return mapAttendanceRecords(rows), nil
}

func mapAttendanceRecords(rows []gen.AttendanceRecord) []domain.AttendanceRecord {
	out := make([]domain.AttendanceRecord, len(rows))
	for i, row := range rows {
		out[i] = mapAttendanceRecord(row)
	}
	return out
}
