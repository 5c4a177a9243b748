package sqlite

import (
	"context"

	"github.com/aussiebroadwan/clockin/internal/clockin/domain"
	"github.com/aussiebroadwan/clockin/internal/clockin/store"
	"github.com/aussiebroadwan/clockin/internal/clockin/store/drivers/sqlite/gen"
)

type departmentsRepo struct {
	q *gen.Queries
}

func (r *departmentsRepo) ListDepartments(ctx context.Context) ([]domain.Department, error) {
	rows, err := r.q.ListDepartments(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Department, len(rows))
	for i, row := range rows {
		out[i] = mapDepartment(row)
	}
	return out, nil
}

func (r *departmentsRepo) CreateDepartment(ctx context.Context, d domain.Department) error {
	return mapConstraint(r.q.CreateDepartment(ctx, gen.CreateDepartmentParams{
		ID:        d.ID,
		Name:      d.Name,
		CreatedAt: d.CreatedAt,
	}))
}

func (r *departmentsRepo) RenameDepartment(ctx context.Context, id, name string) error {
	n, err := r.q.RenameDepartment(ctx, gen.RenameDepartmentParams{Name: name, ID: id})
	return expectOne(n, mapConstraint(err), store.ErrNotFound)
}

func (r *departmentsRepo) DeleteDepartment(ctx context.Context, id string) error {
	n, err := r.q.DeleteDepartment(ctx, id)
	return expectOne(n, err, store.ErrNotFound)
}
