package sqlite

import (
	"context"

	"github.com/aussiebroadwan/clockin/internal/clockin/domain"
	"github.com/aussiebroadwan/clockin/internal/clockin/store/drivers/sqlite/gen"
)

type loginActivityRepo struct {
	q *gen.Queries
}

func (r *loginActivityRepo) RecordActivity(ctx context.Context, a domain.LoginActivity) error {
	return r.q.CreateLoginActivity(ctx, gen.CreateLoginActivityParams{
		ID:            a.ID,
		UserID:        mapStringNull(a.UserID),
		LoginMethod:   string(a.Method),
		IpAddress:     a.IPAddress,
		UserAgent:     a.UserAgent,
		DeviceInfo:    a.DeviceInfo,
		Success:       a.Success,
		FailureReason: mapStringNull(a.FailureReason),
		LoginAt:       a.LoginAt,
	})
}

func (r *loginActivityRepo) ListActivity(
	ctx context.Context,
	f domain.ActivityFilter,
) ([]domain.LoginActivity, error) {
	rows, err := r.q.ListLoginActivity(ctx, gen.ListLoginActivityParams{
		Method: string(f.Method),
		Since:  mapOptionalTime(f.Since),
		Limit:  int64(f.Limit),
		Offset: int64(f.Offset),
	})
	if err != nil {
		return nil, err
	}

	out := make([]domain.LoginActivity, len(rows))
	for i, row := range rows {
		out[i] = domain.LoginActivity{
			ID:            row.ID,
			UserID:        mapNullString(row.UserID),
			Method:        domain.LoginMethod(row.LoginMethod),
			IPAddress:     row.IpAddress,
			UserAgent:     row.UserAgent,
			DeviceInfo:    row.DeviceInfo,
			Success:       row.Success,
			FailureReason: mapNullString(row.FailureReason),
			LoginAt:       row.LoginAt,
			FullName:      mapNullString(row.FullName),
			Email:         mapNullString(row.Email),
			StaffNumber:   mapNullString(row.StaffNumber),
		}
	}
	return out, nil
}

func (r *loginActivityRepo) CountActivity(ctx context.Context, f domain.ActivityFilter) (int64, error) {
	return r.q.CountLoginActivity(ctx, gen.CountLoginActivityParams{
		Method: string(f.Method),
		Since:  mapOptionalTime(f.Since),
	})
}
