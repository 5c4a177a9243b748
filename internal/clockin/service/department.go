package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/aussiebroadwan/clockin/internal/clockin/domain"
	"github.com/aussiebroadwan/clockin/internal/clockin/store"
	"github.com/aussiebroadwan/clockin/pkg/idx"
)

const (
	msgDepartmentNotFound = "Department not found"
	msgDepartmentExists   = "A department with this name already exists"
)

type DepartmentService struct {
	Store store.Store
}

func (s *DepartmentService) List(ctx context.Context) ([]domain.Department, error) {
	depts, err := s.Store.Departments().ListDepartments(ctx)
	if err != nil {
		return nil, upstream(msgInternal, err)
	}
	return depts, nil
}

func (s *DepartmentService) Create(ctx context.Context, name string) (domain.Department, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Department{}, invalid("Department name is required")
	}

	now := time.Now().UTC()
	d := domain.Department{ID: idx.NewAt(now).String(), Name: name, CreatedAt: now}
	if err := s.Store.Departments().CreateDepartment(ctx, d); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.Department{}, conflict(msgDepartmentExists)
		}
		return domain.Department{}, upstream(msgInternal, err)
	}
	return d, nil
}

// Rename changes a department's name. Profiles keep the name they were
// assigned.
func (s *DepartmentService) Rename(ctx context.Context, id, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return invalid("Department name is required")
	}
	if err := s.Store.Departments().RenameDepartment(ctx, id, name); err != nil {
		switch {
		case errors.Is(err, store.ErrAlreadyExists):
			return conflict(msgDepartmentExists)
		case errors.Is(err, store.ErrNotFound):
			return notFound(msgDepartmentNotFound)
		}
		return upstream(msgInternal, err)
	}
	return nil
}

func (s *DepartmentService) Delete(ctx context.Context, id string) error {
	if err := s.Store.Departments().DeleteDepartment(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return notFound(msgDepartmentNotFound)
		}
		return upstream(msgInternal, err)
	}
	return nil
}
