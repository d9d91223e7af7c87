package usecase

import (
	"context"
	"errors"
	"strconv"

	"go-clinic-scheduling/internal/converter"
	"go-clinic-scheduling/internal/delivery/dto"
	"go-clinic-scheduling/internal/delivery/http/middleware"
	"go-clinic-scheduling/internal/domain/entity"
	"go-clinic-scheduling/internal/domain/repository"
	"go-clinic-scheduling/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrRuleNotFound       = errors.New("appointment rule not found")
	ErrDepartmentNotFound = errors.New("department not found")
)

type RuleUsecase interface {
	Upsert(ctx context.Context, req *dto.UpsertRuleRequest) (*dto.RuleResponse, error)
	GetAll(ctx context.Context) (*dto.RuleListResponse, error)
	GetByDepartment(ctx context.Context, departmentID int) (*dto.RuleResponse, error)
	Delete(ctx context.Context, departmentID int) error
}

type ruleUsecase struct {
	db             *gorm.DB
	log            *logrus.Logger
	ruleRepo       repository.AppointmentRuleRepository
	departmentRepo repository.DepartmentRepository
	auditService   service.AuditService
}

func NewRuleUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	ruleRepo repository.AppointmentRuleRepository,
	departmentRepo repository.DepartmentRepository,
	auditService service.AuditService,
) RuleUsecase {
	return &ruleUsecase{
		db:             db,
		log:            log,
		ruleRepo:       ruleRepo,
		departmentRepo: departmentRepo,
		auditService:   auditService,
	}
}

// Upsert creates or replaces the department's rule. Thresholds of zero
// leave that bound unrestricted.
func (u *ruleUsecase) Upsert(ctx context.Context, req *dto.UpsertRuleRequest) (*dto.RuleResponse, error) {
	department, err := u.departmentRepo.FindByID(ctx, req.DepartmentID)
	if err != nil {
		u.log.Warnf("Failed to find department %d: %+v", req.DepartmentID, err)
		return nil, err
	}
	if department == nil {
		return nil, ErrDepartmentNotFound
	}

	oldRule, err := u.ruleRepo.FindByDepartmentID(u.db.WithContext(ctx), req.DepartmentID)
	if err != nil {
		u.log.Warnf("Failed to find rule for department %d: %+v", req.DepartmentID, err)
		return nil, err
	}

	rule := &entity.AppointmentRule{
		DepartmentID:          req.DepartmentID,
		MinHoursBeforeBooking: req.MinHoursBeforeBooking,
		MaxDaysAdvanceBooking: req.MaxDaysAdvanceBooking,
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.ruleRepo.Upsert(tx, rule); err != nil {
		u.log.Warnf("Failed to upsert rule for department %d: %+v", req.DepartmentID, err)
		return nil, err
	}

	userID, _ := middleware.GetUserIDFromContext(ctx)
	if err := u.auditService.LogUpdate(ctx, tx, &userID, entity.AuditActionRuleUpsert, "appointment_rule", strconv.Itoa(req.DepartmentID), converter.RuleToResponse(oldRule), converter.RuleToResponse(rule)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.RuleToResponse(rule), nil
}

func (u *ruleUsecase) GetAll(ctx context.Context) (*dto.RuleListResponse, error) {
	rules, err := u.ruleRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to find rules: %+v", err)
		return nil, err
	}

	return &dto.RuleListResponse{
		Rules: converter.RulesToResponses(rules),
		Total: len(rules),
	}, nil
}

func (u *ruleUsecase) GetByDepartment(ctx context.Context, departmentID int) (*dto.RuleResponse, error) {
	rule, err := u.ruleRepo.FindByDepartmentID(u.db.WithContext(ctx), departmentID)
	if err != nil {
		u.log.Warnf("Failed to find rule for department %d: %+v", departmentID, err)
		return nil, err
	}
	if rule == nil {
		return nil, ErrRuleNotFound
	}

	return converter.RuleToResponse(rule), nil
}

func (u *ruleUsecase) Delete(ctx context.Context, departmentID int) error {
	rule, err := u.ruleRepo.FindByDepartmentID(u.db.WithContext(ctx), departmentID)
	if err != nil {
		u.log.Warnf("Failed to find rule for department %d: %+v", departmentID, err)
		return err
	}
	if rule == nil {
		return ErrRuleNotFound
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	affected, err := u.ruleRepo.DeleteByDepartmentID(tx, departmentID)
	if err != nil {
		u.log.Warnf("Failed to delete rule for department %d: %+v", departmentID, err)
		return err
	}
	if affected == 0 {
		return ErrRuleNotFound
	}

	userID, _ := middleware.GetUserIDFromContext(ctx)
	if err := u.auditService.LogDelete(ctx, tx, &userID, entity.AuditActionRuleDelete, "appointment_rule", strconv.Itoa(departmentID), converter.RuleToResponse(rule)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	return tx.Commit().Error
}
