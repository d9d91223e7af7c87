package repository

import (
	"context"

	"go-clinic-scheduling/internal/domain/entity"
)

type DepartmentRepository interface {
	Create(ctx context.Context, department *entity.Department) error
	FindAll(ctx context.Context, limit, offset int) ([]entity.Department, int64, error)
	FindByID(ctx context.Context, id int) (*entity.Department, error)
	Update(ctx context.Context, department *entity.Department) error
	Delete(ctx context.Context, id int) error
}
