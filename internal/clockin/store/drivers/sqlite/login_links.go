package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/clockin/internal/clockin/domain"
	"github.com/aussiebroadwan/clockin/internal/clockin/store/drivers/sqlite/gen"
)

type loginLinksRepo struct {
	q *gen.Queries
}

func (r *loginLinksRepo) CreateLink(ctx context.Context, l domain.LoginLink) error {
	return mapConstraint(r.q.CreateLoginLink(ctx, gen.CreateLoginLinkParams{
		ID:        l.ID,
		UserID:    l.UserID,
		Email:     l.Email,
		TokenHash: l.TokenHash,
		Type:      string(l.Type),
		Method:    string(l.Method),
		ExpiresAt: l.ExpiresAt,
		CreatedAt: l.CreatedAt,
	}))
}

// ConsumeLink is a single UPDATE ... RETURNING so a replayed token never
// matches once the first redemption has set used_at.
func (r *loginLinksRepo) ConsumeLink(ctx context.Context, tokenHash string, now time.Time) (domain.LoginLink, error) {
	row, err := r.q.ConsumeLoginLink(ctx, gen.ConsumeLoginLinkParams{
		UsedAt:    mapTimeNull(now),
		TokenHash: tokenHash,
	})
	if err != nil {
		return domain.LoginLink{}, mapNotFound(err)
	}
	return mapLoginLink(row), nil
}

func (r *loginLinksRepo) DeleteStaleLinks(ctx context.Context, now time.Time) (int64, error) {
	return r.q.DeleteStaleLoginLinks(ctx, now)
}
