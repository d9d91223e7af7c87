package usecase

import (
	"context"
	"errors"
	"time"

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
	ErrHolidayNotFound     = errors.New("holiday not found")
	ErrInvalidHolidayRange = errors.New("end date must not be before start date")
)

type HolidayUsecase interface {
	Create(ctx context.Context, req *dto.CreateHolidayRequest) (*dto.HolidayResponse, error)
	GetAll(ctx context.Context) (*dto.HolidayListResponse, error)
	Delete(ctx context.Context, id int) error
}

type holidayUsecase struct {
	db                *gorm.DB
	log               *logrus.Logger
	holidayRepo       repository.HolidayRepository
	doctorProfileRepo repository.DoctorProfileRepository
	auditService      service.AuditService
}

func NewHolidayUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	holidayRepo repository.HolidayRepository,
	doctorProfileRepo repository.DoctorProfileRepository,
	auditService service.AuditService,
) HolidayUsecase {
	return &holidayUsecase{
		db:                db,
		log:               log,
		holidayRepo:       holidayRepo,
		doctorProfileRepo: doctorProfileRepo,
		auditService:      auditService,
	}
}

func (u *holidayUsecase) Create(ctx context.Context, req *dto.CreateHolidayRequest) (*dto.HolidayResponse, error) {
	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}
	endDate, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}
	if endDate.Before(startDate) {
		return nil, ErrInvalidHolidayRange
	}

	if req.DoctorID != nil {
		doctor, err := u.doctorProfileRepo.FindByUserID(u.db.WithContext(ctx), *req.DoctorID)
		if err != nil {
			u.log.Warnf("Failed to find doctor %s: %+v", *req.DoctorID, err)
			return nil, err
		}
		if doctor == nil {
			return nil, ErrDoctorNotFound
		}
	}

	holiday := &entity.Holiday{
		DoctorID:  req.DoctorID,
		StartDate: startDate,
		EndDate:   endDate,
		Notes:     req.Notes,
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.holidayRepo.Create(tx, holiday); err != nil {
		u.log.Warnf("Failed to create holiday: %+v", err)
		return nil, err
	}

	userID, _ := middleware.GetUserIDFromContext(ctx)
	if err := u.auditService.LogCreate(ctx, tx, &userID, entity.AuditActionHolidayCreate, "holiday", holiday.StartDate.Format("2006-01-02"), converter.HolidayToResponse(holiday)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.HolidayToResponse(holiday), nil
}

func (u *holidayUsecase) GetAll(ctx context.Context) (*dto.HolidayListResponse, error) {
	holidays, err := u.holidayRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to find holidays: %+v", err)
		return nil, err
	}

	return &dto.HolidayListResponse{
		Holidays: converter.HolidaysToResponses(holidays),
		Total:    len(holidays),
	}, nil
}

func (u *holidayUsecase) Delete(ctx context.Context, id int) error {
	holiday, err := u.holidayRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find holiday %d: %+v", id, err)
		return err
	}
	if holiday == nil {
		return ErrHolidayNotFound
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	affected, err := u.holidayRepo.Delete(tx, id)
	if err != nil {
		u.log.Warnf("Failed to delete holiday %d: %+v", id, err)
		return err
	}
	if affected == 0 {
		return ErrHolidayNotFound
	}

	userID, _ := middleware.GetUserIDFromContext(ctx)
	if err := u.auditService.LogDelete(ctx, tx, &userID, entity.AuditActionHolidayDelete, "holiday", holiday.StartDate.Format("2006-01-02"), converter.HolidayToResponse(holiday)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	return tx.Commit().Error
}
