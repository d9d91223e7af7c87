package usecase

import (
	"context"
	"errors"

	"go-clinic-scheduling/internal/converter"
	"go-clinic-scheduling/internal/delivery/dto"
	"go-clinic-scheduling/internal/delivery/http/middleware"
	"go-clinic-scheduling/internal/domain/entity"
	"go-clinic-scheduling/internal/domain/repository"
	"go-clinic-scheduling/internal/scheduling"
	"go-clinic-scheduling/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrAvailabilityNotFound = errors.New("availability not found")
	ErrDoctorNotFound       = errors.New("doctor not found")
	ErrInvalidWindow        = errors.New("window end must be after start")
	ErrNoWindow             = errors.New("at least one complete window is required")
)

type AvailabilityUsecase interface {
	Create(ctx context.Context, req *dto.CreateAvailabilityRequest) (*dto.AvailabilityResponse, error)
	GetByDoctor(ctx context.Context, doctorID uuid.UUID) (*dto.AvailabilityListResponse, error)
	Update(ctx context.Context, id int, req *dto.UpdateAvailabilityRequest) (*dto.AvailabilityResponse, error)
	Deactivate(ctx context.Context, id int) error
}

type availabilityUsecase struct {
	db                *gorm.DB
	log               *logrus.Logger
	availabilityRepo  repository.DoctorAvailabilityRepository
	doctorProfileRepo repository.DoctorProfileRepository
	auditService      service.AuditService
}

func NewAvailabilityUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	availabilityRepo repository.DoctorAvailabilityRepository,
	doctorProfileRepo repository.DoctorProfileRepository,
	auditService service.AuditService,
) AvailabilityUsecase {
	return &availabilityUsecase{
		db:                db,
		log:               log,
		availabilityRepo:  availabilityRepo,
		doctorProfileRepo: doctorProfileRepo,
		auditService:      auditService,
	}
}

// validateWindows checks that each set window parses and ends after it
// starts, and that at least one window is complete.
func validateWindows(morningStart, morningEnd, eveningStart, eveningEnd *string) error {
	checkWindow := func(start, end *string) (bool, error) {
		if start == nil || end == nil {
			return false, nil
		}
		s, err := scheduling.ParseClock(*start)
		if err != nil {
			return false, ErrInvalidTimeFormat
		}
		e, err := scheduling.ParseClock(*end)
		if err != nil {
			return false, ErrInvalidTimeFormat
		}
		if e <= s {
			return false, ErrInvalidWindow
		}
		return true, nil
	}

	hasMorning, err := checkWindow(morningStart, morningEnd)
	if err != nil {
		return err
	}
	hasEvening, err := checkWindow(eveningStart, eveningEnd)
	if err != nil {
		return err
	}
	if !hasMorning && !hasEvening {
		return ErrNoWindow
	}
	return nil
}

func (u *availabilityUsecase) Create(ctx context.Context, req *dto.CreateAvailabilityRequest) (*dto.AvailabilityResponse, error) {
	doctor, err := u.doctorProfileRepo.FindByUserID(u.db.WithContext(ctx), req.DoctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", req.DoctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	if err := validateWindows(req.MorningStartTime, req.MorningEndTime, req.EveningStartTime, req.EveningEndTime); err != nil {
		return nil, err
	}

	active := true
	availability := &entity.DoctorAvailability{
		DoctorID:            req.DoctorID,
		Weekday:             req.Weekday,
		MorningStartTime:    req.MorningStartTime,
		MorningEndTime:      req.MorningEndTime,
		EveningStartTime:    req.EveningStartTime,
		EveningEndTime:      req.EveningEndTime,
		SlotDurationMinutes: req.SlotDurationMinutes,
		IsActive:            &active,
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.availabilityRepo.Create(tx, availability); err != nil {
		u.log.Warnf("Failed to create availability: %+v", err)
		return nil, err
	}

	userID, _ := middleware.GetUserIDFromContext(ctx)
	if err := u.auditService.LogCreate(ctx, tx, &userID, entity.AuditActionAvailabilityCreate, "doctor_availability", availability.DoctorID.String(), converter.AvailabilityToResponse(availability)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.AvailabilityToResponse(availability), nil
}

func (u *availabilityUsecase) GetByDoctor(ctx context.Context, doctorID uuid.UUID) (*dto.AvailabilityListResponse, error) {
	availabilities, err := u.availabilityRepo.FindByDoctorID(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to find availabilities for doctor %s: %+v", doctorID, err)
		return nil, err
	}

	return &dto.AvailabilityListResponse{
		Availabilities: converter.AvailabilitiesToResponses(availabilities),
		Total:          len(availabilities),
	}, nil
}

func (u *availabilityUsecase) Update(ctx context.Context, id int, req *dto.UpdateAvailabilityRequest) (*dto.AvailabilityResponse, error) {
	availability, err := u.availabilityRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find availability %d: %+v", id, err)
		return nil, err
	}
	if availability == nil {
		return nil, ErrAvailabilityNotFound
	}

	oldValue := converter.AvailabilityToResponse(availability)

	if req.MorningStartTime != nil {
		availability.MorningStartTime = req.MorningStartTime
	}
	if req.MorningEndTime != nil {
		availability.MorningEndTime = req.MorningEndTime
	}
	if req.EveningStartTime != nil {
		availability.EveningStartTime = req.EveningStartTime
	}
	if req.EveningEndTime != nil {
		availability.EveningEndTime = req.EveningEndTime
	}
	if req.SlotDurationMinutes != nil {
		availability.SlotDurationMinutes = *req.SlotDurationMinutes
	}
	if req.IsActive != nil {
		availability.IsActive = req.IsActive
	}

	if err := validateWindows(availability.MorningStartTime, availability.MorningEndTime, availability.EveningStartTime, availability.EveningEndTime); err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.availabilityRepo.Update(tx, availability); err != nil {
		u.log.Warnf("Failed to update availability %d: %+v", id, err)
		return nil, err
	}

	userID, _ := middleware.GetUserIDFromContext(ctx)
	if err := u.auditService.LogUpdate(ctx, tx, &userID, entity.AuditActionAvailabilityUpdate, "doctor_availability", availability.DoctorID.String(), oldValue, converter.AvailabilityToResponse(availability)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.AvailabilityToResponse(availability), nil
}

// Deactivate turns the availability off without deleting it, so past
// appointments keep their history.
func (u *availabilityUsecase) Deactivate(ctx context.Context, id int) error {
	availability, err := u.availabilityRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find availability %d: %+v", id, err)
		return err
	}
	if availability == nil {
		return ErrAvailabilityNotFound
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	affected, err := u.availabilityRepo.Deactivate(tx, id)
	if err != nil {
		u.log.Warnf("Failed to deactivate availability %d: %+v", id, err)
		return err
	}
	if affected == 0 {
		// Already inactive; nothing to log.
		return tx.Commit().Error
	}

	userID, _ := middleware.GetUserIDFromContext(ctx)
	if err := u.auditService.LogDelete(ctx, tx, &userID, entity.AuditActionAvailabilityDeactivate, "doctor_availability", availability.DoctorID.String(), converter.AvailabilityToResponse(availability)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	return tx.Commit().Error
}
