package sqlite

import (
	"context"

	"github.com/aussiebroadwan/clockin/internal/clockin/domain"
	"github.com/aussiebroadwan/clockin/internal/clockin/store"
	"github.com/aussiebroadwan/clockin/internal/clockin/store/drivers/sqlite/gen"
)

type passwordRequestsRepo struct {
	q *gen.Queries
}

// CreateRequest relies on the partial unique index over pending rows, so two
// racing submissions cannot both succeed.
func (r *passwordRequestsRepo) CreateRequest(ctx context.Context, req domain.PasswordRequest) error {
	return mapConstraint(r.q.CreatePasswordRequest(ctx, gen.CreatePasswordRequestParams{
		ID:          req.ID,
		UserID:      req.UserID,
		Reason:      req.Reason,
		RequestedAt: req.RequestedAt,
	}))
}

func (r *passwordRequestsRepo) GetRequest(ctx context.Context, id string) (domain.PasswordRequest, error) {
	row, err := r.q.GetPasswordRequest(ctx, id)
	if err != nil {
		return domain.PasswordRequest{}, mapNotFound(err)
	}
	return mapPasswordRequest(row), nil
}

func (r *passwordRequestsRepo) HasPendingRequest(ctx context.Context, userID string) (bool, error) {
	n, err := r.q.CountPendingPasswordRequests(ctx, userID)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *passwordRequestsRepo) ListRequestsForUser(
	ctx context.Context,
	userID string,
) ([]domain.PasswordRequest, error) {
	rows, err := r.q.ListPasswordRequestsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]domain.PasswordRequest, len(rows))
	for i, row := range rows {
		out[i] = mapPasswordRequest(row)
	}
	return out, nil
}

func (r *passwordRequestsRepo) ListRequests(
	ctx context.Context,
	status domain.RequestStatus,
) ([]domain.PasswordRequest, error) {
	rows, err := r.q.ListPasswordRequests(ctx, string(status))
	if err != nil {
		return nil, err
	}

	out := make([]domain.PasswordRequest, len(rows))
	for i, row := range rows {
		out[i] = mapPasswordRequest(gen.PasswordChangeRequest{
			ID:          row.ID,
			UserID:      row.UserID,
			Reason:      row.Reason,
			Status:      row.Status,
			RequestedAt: row.RequestedAt,
			ResolvedAt:  row.ResolvedAt,
			ResolvedBy:  row.ResolvedBy,
			AdminNotes:  row.AdminNotes,
		})
		out[i].FullName = row.FullName
		out[i].Email = row.Email
	}
	return out, nil
}

// ResolveRequest only touches rows still pending. Zero rows affected means
// the request was resolved by someone else in the meantime.
func (r *passwordRequestsRepo) ResolveRequest(ctx context.Context, res domain.Resolution) error {
	n, err := r.q.ResolvePasswordRequest(ctx, gen.ResolvePasswordRequestParams{
		Status:     string(res.Status),
		ResolvedAt: mapTimeNull(res.ResolvedAt),
		ResolvedBy: mapStringNull(res.ResolvedBy),
		AdminNotes: mapStringNull(res.AdminNotes),
		ID:         res.RequestID,
	})
	return expectOne(n, err, store.ErrConflict)
}
