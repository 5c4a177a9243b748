package sqlite

import (
	"context"
	"fmt"

	"github.com/aussiebroadwan/clockin/internal/clockin/domain"
	"github.com/aussiebroadwan/clockin/internal/clockin/store/drivers/sqlite/gen"
)

type rolesRepo struct {
	q *gen.Queries
}

func (r *rolesRepo) GetRole(ctx context.Context, userID string) (domain.Role, error) {
	name, err := r.q.GetUserRole(ctx, userID)
	if err != nil {
		return "", mapNotFound(err)
	}
	role, ok := domain.ParseRole(name)
	if !ok {
		return "", fmt.Errorf("unknown role %q stored for user", name)
	}
	return role, nil
}

func (r *rolesRepo) SetRole(ctx context.Context, userID string, role domain.Role) error {
	return r.q.UpsertUserRole(ctx, gen.UpsertUserRoleParams{
		UserID: userID,
		Role:   string(role),
	})
}
