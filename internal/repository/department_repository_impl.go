package repository

import (
	"context"
	"errors"

	"go-clinic-scheduling/internal/domain/entity"
	domainRepo "go-clinic-scheduling/internal/domain/repository"

	"gorm.io/gorm"
)

type departmentRepository struct {
	db *gorm.DB
}

func NewDepartmentRepository(db *gorm.DB) domainRepo.DepartmentRepository {
	return &departmentRepository{db: db}
}

func (r *departmentRepository) Create(ctx context.Context, department *entity.Department) error {
	return r.db.WithContext(ctx).Create(department).Error
}

func (r *departmentRepository) FindAll(ctx context.Context, limit, offset int) ([]entity.Department, int64, error) {
	var departments []entity.Department
	var total int64

	if err := r.db.WithContext(ctx).Model(&entity.Department{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).Limit(limit).Offset(offset).Order("name ASC").Find(&departments).Error; err != nil {
		return nil, 0, err
	}

	return departments, total, nil
}

func (r *departmentRepository) FindByID(ctx context.Context, id int) (*entity.Department, error) {
	var department entity.Department
	err := r.db.WithContext(ctx).Preload("Rule").Where("id = ?", id).First(&department).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &department, nil
}

func (r *departmentRepository) Update(ctx context.Context, department *entity.Department) error {
	return r.db.WithContext(ctx).Omit("Doctors", "Rule").Save(department).Error
}

func (r *departmentRepository) Delete(ctx context.Context, id int) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Department{}).Error
}
