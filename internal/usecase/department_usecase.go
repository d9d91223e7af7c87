package usecase

import (
	"context"

	"go-clinic-scheduling/internal/converter"
	"go-clinic-scheduling/internal/delivery/dto"
	"go-clinic-scheduling/internal/domain/entity"
	"go-clinic-scheduling/internal/domain/repository"
)

type DepartmentUsecase interface {
	Create(ctx context.Context, req *dto.CreateDepartmentRequest) (*dto.DepartmentResponse, error)
	GetAll(ctx context.Context, page, limit int) (*dto.DepartmentListResponse, error)
	GetByID(ctx context.Context, id int) (*dto.DepartmentResponse, error)
	Update(ctx context.Context, id int, req *dto.UpdateDepartmentRequest) (*dto.DepartmentResponse, error)
	Delete(ctx context.Context, id int) error
}

type departmentUsecase struct {
	departmentRepo repository.DepartmentRepository
}

func NewDepartmentUsecase(departmentRepo repository.DepartmentRepository) DepartmentUsecase {
	return &departmentUsecase{departmentRepo: departmentRepo}
}

func (u *departmentUsecase) Create(ctx context.Context, req *dto.CreateDepartmentRequest) (*dto.DepartmentResponse, error) {
	department := &entity.Department{
		Name:            req.Name,
		Description:     req.Description,
		ConsultationFee: req.ConsultationFee,
	}

	if err := u.departmentRepo.Create(ctx, department); err != nil {
		return nil, err
	}

	return converter.DepartmentToResponse(department), nil
}

func (u *departmentUsecase) GetAll(ctx context.Context, page, limit int) (*dto.DepartmentListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	offset := (page - 1) * limit

	departments, total, err := u.departmentRepo.FindAll(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	return &dto.DepartmentListResponse{
		Departments: converter.DepartmentsToResponses(departments),
		Total:       total,
	}, nil
}

func (u *departmentUsecase) GetByID(ctx context.Context, id int) (*dto.DepartmentResponse, error) {
	department, err := u.departmentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if department == nil {
		return nil, ErrDepartmentNotFound
	}

	return converter.DepartmentToResponse(department), nil
}

func (u *departmentUsecase) Update(ctx context.Context, id int, req *dto.UpdateDepartmentRequest) (*dto.DepartmentResponse, error) {
	department, err := u.departmentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if department == nil {
		return nil, ErrDepartmentNotFound
	}

	department.Name = req.Name
	department.Description = req.Description
	department.ConsultationFee = req.ConsultationFee
	if req.IsActive != nil {
		department.IsActive = req.IsActive
	}

	if err := u.departmentRepo.Update(ctx, department); err != nil {
		return nil, err
	}

	return converter.DepartmentToResponse(department), nil
}

func (u *departmentUsecase) Delete(ctx context.Context, id int) error {
	department, err := u.departmentRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if department == nil {
		return ErrDepartmentNotFound
	}

	return u.departmentRepo.Delete(ctx, id)
}
