package usecase

import (
	"context"
	"errors"
	"time"

	"go-clinic-scheduling/config"
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
	ErrInvalidDateFormat = errors.New("invalid date format, use YYYY-MM-DD")
	ErrInvalidTimeFormat = errors.New("invalid time format, use HH:MM")
)

type BookingUsecase interface {
	ListSlots(ctx context.Context, doctorID uuid.UUID, date string) (*dto.SlotListResponse, error)
	Book(ctx context.Context, req *dto.BookAppointmentRequest) (*dto.AppointmentResponse, error)
	GetAppointment(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error)
	ListAppointments(ctx context.Context, filter *entity.AppointmentFilter) (*dto.AppointmentListResponse, error)
	Transition(ctx context.Context, id uuid.UUID, action scheduling.Action) (*dto.AppointmentResponse, error)
	Reschedule(ctx context.Context, id uuid.UUID, req *dto.RescheduleAppointmentRequest) (*dto.AppointmentResponse, error)
}

// SlotLocker serializes booking writes per doctor and date.
type SlotLocker interface {
	WithSlotLock(ctx context.Context, doctorID uuid.UUID, date time.Time, fn func() error) error
}

type bookingUsecase struct {
	db                *gorm.DB
	log               *logrus.Logger
	cfg               config.BookingConfig
	appointmentRepo   repository.AppointmentRepository
	availabilityRepo  repository.DoctorAvailabilityRepository
	holidayRepo       repository.HolidayRepository
	ruleRepo           repository.AppointmentRuleRepository
	doctorProfileRepo  repository.DoctorProfileRepository
	patientProfileRepo repository.PatientProfileRepository
	lockService        SlotLocker
	auditService       service.AuditService

	// transact wraps booking writes in a database transaction.
	transact func(ctx context.Context, fn func(tx *gorm.DB) error) error
	// now overrides the engine clock; nil means real time.
	now func() time.Time
}

func NewBookingUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	cfg config.BookingConfig,
	appointmentRepo repository.AppointmentRepository,
	availabilityRepo repository.DoctorAvailabilityRepository,
	holidayRepo repository.HolidayRepository,
	ruleRepo repository.AppointmentRuleRepository,
	doctorProfileRepo repository.DoctorProfileRepository,
	patientProfileRepo repository.PatientProfileRepository,
	lockService SlotLocker,
	auditService service.AuditService,
) BookingUsecase {
	u := &bookingUsecase{
		db:                 db,
		log:                log,
		cfg:                cfg,
		appointmentRepo:    appointmentRepo,
		availabilityRepo:   availabilityRepo,
		holidayRepo:        holidayRepo,
		ruleRepo:           ruleRepo,
		doctorProfileRepo:  doctorProfileRepo,
		patientProfileRepo: patientProfileRepo,
		lockService:        lockService,
		auditService:       auditService,
	}
	u.transact = func(ctx context.Context, fn func(tx *gorm.DB) error) error {
		return db.WithContext(ctx).Transaction(fn)
	}
	return u
}

// engine binds the scheduling engine to a db handle. Binding to a
// transaction makes the conflict re-check read the transaction's snapshot.
func (u *bookingUsecase) engine(db *gorm.DB) *scheduling.Engine {
	store := &engineStore{
		db:               db,
		availabilityRepo: u.availabilityRepo,
		holidayRepo:      u.holidayRepo,
		ruleRepo:         u.ruleRepo,
		appointmentRepo:  u.appointmentRepo,
	}
	engine := scheduling.NewEngine(store, scheduling.Config{DefaultSlotMinutes: u.cfg.DefaultSlotMinutes})
	if u.now != nil {
		engine.WithClock(u.now)
	}
	return engine
}

// location is the clinic zone appointment dates are interpreted in.
func (u *bookingUsecase) location() *time.Location {
	if u.cfg.Timezone != nil {
		return u.cfg.Timezone
	}
	return time.UTC
}

func (u *bookingUsecase) parseDay(date string) (time.Time, error) {
	day, err := time.ParseInLocation("2006-01-02", date, u.location())
	if err != nil {
		return time.Time{}, ErrInvalidDateFormat
	}
	return day, nil
}

// canActOn reports whether the context user may act on the appointment.
// Patients reach only their own appointments; staff roles are unrestricted.
func canActOn(ctx context.Context, appointment *entity.Appointment) bool {
	roleID, ok := middleware.GetRoleIDFromContext(ctx)
	if !ok || roleID != entity.RoleIDPatient {
		return true
	}
	userID, ok := middleware.GetUserIDFromContext(ctx)
	return ok && appointment.PatientID == userID
}

// ListSlots returns the free slots for a doctor on a date.
func (u *bookingUsecase) ListSlots(ctx context.Context, doctorID uuid.UUID, date string) (*dto.SlotListResponse, error) {
	day, err := u.parseDay(date)
	if err != nil {
		return nil, err
	}

	doctor, err := u.doctorProfileRepo.FindByUserID(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", doctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, &scheduling.Rejection{Code: scheduling.CodeNotFound, Message: "doctor not found"}
	}

	slots, err := u.engine(u.db).FreeSlots(ctx, doctorID, day)
	if err != nil {
		u.log.Warnf("Failed to compute slots for doctor %s on %s: %+v", doctorID, date, err)
		return nil, err
	}

	return &dto.SlotListResponse{
		DoctorID: doctorID,
		Date:     day.Format("2006-01-02"),
		Slots:    converter.SlotsToResponses(slots),
		Total:    len(slots),
	}, nil
}

// Book creates a scheduled appointment for the logged-in patient.
//
// Flow:
//  1. Validate doctor and parse the requested slot
//  2. Evaluate the department booking rule
//  3. Verify the slot exists in the doctor's generated slots
//  4. Under the per-doctor lock, re-check conflicts and insert in one
//     transaction
func (u *bookingUsecase) Book(ctx context.Context, req *dto.BookAppointmentRequest) (*dto.AppointmentResponse, error) {
	patientID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	day, err := u.parseDay(req.AppointmentDate)
	if err != nil {
		return nil, err
	}
	start, err := scheduling.ParseClock(req.StartTime)
	if err != nil {
		return nil, ErrInvalidTimeFormat
	}

	patient, err := u.patientProfileRepo.FindByUserID(ctx, u.db, patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient profile %s: %+v", patientID, err)
		return nil, err
	}
	if patient == nil {
		return nil, &scheduling.Rejection{Code: scheduling.CodeNotFound, Message: "patient profile not found"}
	}

	doctor, err := u.doctorProfileRepo.FindByUserID(u.db.WithContext(ctx), req.DoctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", req.DoctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, &scheduling.Rejection{Code: scheduling.CodeNotFound, Message: "doctor not found"}
	}

	engine := u.engine(u.db)

	startAt := day.Add(time.Duration(start) * time.Minute)
	if err := engine.EvaluateRule(ctx, doctor.DepartmentID, startAt); err != nil {
		return nil, err
	}

	slot, err := engine.ResolveSlot(ctx, req.DoctorID, day, start)
	if err != nil {
		return nil, err
	}
	end := slot.End

	appointmentType := entity.AppointmentType(req.Type)
	if appointmentType == "" {
		appointmentType = entity.AppointmentTypeNew
	}

	appointment := &entity.Appointment{
		PatientID:       patientID,
		DoctorID:        req.DoctorID,
		DepartmentID:    doctor.DepartmentID,
		AppointmentDate: day,
		StartTime:       scheduling.FormatClock(start),
		EndTime:         scheduling.FormatClock(end),
		Type:            appointmentType,
		Status:          entity.AppointmentStatusScheduled,
	}

	err = u.lockService.WithSlotLock(ctx, req.DoctorID, day, func() error {
		return u.transact(ctx, func(tx *gorm.DB) error {
			// Re-check inside the transaction: another request may have
			// taken the slot between validation and here.
			conflict, err := u.engine(tx).HasConflict(ctx, req.DoctorID, day, start, end)
			if err != nil {
				return err
			}
			if conflict {
				return &scheduling.Rejection{
					Code:    scheduling.CodeSlotConflict,
					Message: "the slot was taken by another booking",
				}
			}

			if err := u.appointmentRepo.Create(tx, appointment); err != nil {
				return err
			}

			if err := u.auditService.LogCreate(ctx, tx, &patientID, entity.AuditActionAppointmentBook, "appointment", appointment.ID.String(), converter.AppointmentToResponse(appointment)); err != nil {
				u.log.Warnf("Failed to create audit log: %+v", err)
				// Don't fail the transaction for audit log errors
			}
			return nil
		})
	})
	if err != nil {
		if errors.Is(err, service.ErrLockNotAcquired) {
			return nil, &scheduling.Rejection{
				Code:    scheduling.CodeDoctorBusy,
				Message: "another booking for this doctor is in progress, retry shortly",
			}
		}
		var rej *scheduling.Rejection
		if !errors.As(err, &rej) {
			u.log.Warnf("Failed to book appointment for patient %s: %+v", patientID, err)
		}
		return nil, err
	}

	u.log.Infof("Appointment booked: id=%s, doctor=%s, date=%s, slot=%s-%s",
		appointment.ID, req.DoctorID, appointment.AppointmentDate.Format("2006-01-02"), appointment.StartTime, appointment.EndTime)

	return u.reload(ctx, appointment)
}

func (u *bookingUsecase) GetAppointment(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error) {
	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", id, err)
		return nil, err
	}
	if appointment == nil || !canActOn(ctx, appointment) {
		// Other patients' appointments read as not_found so their IDs
		// stay unguessable.
		return nil, &scheduling.Rejection{Code: scheduling.CodeNotFound, Message: "appointment not found"}
	}
	return converter.AppointmentToResponse(appointment), nil
}

func (u *bookingUsecase) ListAppointments(ctx context.Context, filter *entity.AppointmentFilter) (*dto.AppointmentListResponse, error) {
	appointments, err := u.appointmentRepo.FindAll(u.db.WithContext(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to list appointments: %+v", err)
		return nil, err
	}
	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

// Transition applies check_in, complete or cancel to an appointment.
// Rescheduling goes through Reschedule because it creates a replacement.
func (u *bookingUsecase) Transition(ctx context.Context, id uuid.UUID, action scheduling.Action) (*dto.AppointmentResponse, error) {
	if action == scheduling.ActionReschedule {
		return nil, &scheduling.Rejection{
			Code:    scheduling.CodeInvalidTransition,
			Message: "use the reschedule endpoint to reschedule an appointment",
		}
	}

	userID, _ := middleware.GetUserIDFromContext(ctx)

	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", id, err)
		return nil, err
	}
	if appointment == nil || !canActOn(ctx, appointment) {
		return nil, &scheduling.Rejection{Code: scheduling.CodeNotFound, Message: "appointment not found"}
	}

	next, rej := scheduling.Transition(appointment.Status, action)
	if rej != nil {
		return nil, rej
	}

	err = u.transact(ctx, func(tx *gorm.DB) error {
		affected, err := u.appointmentRepo.UpdateStatus(tx, id, appointment.Status, next)
		if err != nil {
			return err
		}
		if affected == 0 {
			// A concurrent transition changed the status first.
			return &scheduling.Rejection{
				Code:    scheduling.CodeInvalidTransition,
				Message: "appointment status changed concurrently",
			}
		}

		if err := u.auditService.LogUpdate(ctx, tx, &userID, auditActionFor(action), "appointment", id.String(), string(appointment.Status), string(next)); err != nil {
			u.log.Warnf("Failed to create audit log: %+v", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.log.Infof("Appointment %s: %s -> %s", id, appointment.Status, next)
	appointment.Status = next
	return converter.AppointmentToResponse(appointment), nil
}

// Reschedule closes the original appointment and books a replacement slot in
// one transaction, so no state exists where both hold slots or neither does.
func (u *bookingUsecase) Reschedule(ctx context.Context, id uuid.UUID, req *dto.RescheduleAppointmentRequest) (*dto.AppointmentResponse, error) {
	userID, _ := middleware.GetUserIDFromContext(ctx)

	day, err := u.parseDay(req.AppointmentDate)
	if err != nil {
		return nil, err
	}
	start, err := scheduling.ParseClock(req.StartTime)
	if err != nil {
		return nil, ErrInvalidTimeFormat
	}

	original, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", id, err)
		return nil, err
	}
	if original == nil || !canActOn(ctx, original) {
		return nil, &scheduling.Rejection{Code: scheduling.CodeNotFound, Message: "appointment not found"}
	}
	if _, rej := scheduling.Transition(original.Status, scheduling.ActionReschedule); rej != nil {
		return nil, rej
	}

	engine := u.engine(u.db)

	startAt := day.Add(time.Duration(start) * time.Minute)
	if err := engine.EvaluateRule(ctx, original.DepartmentID, startAt); err != nil {
		return nil, err
	}

	slot, err := engine.ResolveSlot(ctx, original.DoctorID, day, start)
	if err != nil {
		return nil, err
	}
	end := slot.End

	replacement := &entity.Appointment{
		PatientID:       original.PatientID,
		DoctorID:        original.DoctorID,
		DepartmentID:    original.DepartmentID,
		AppointmentDate: day,
		StartTime:       scheduling.FormatClock(start),
		EndTime:         scheduling.FormatClock(end),
		Type:            original.Type,
		Status:          entity.AppointmentStatusScheduled,
	}
	if !u.cfg.ResetReminderOnReschedule {
		replacement.ReminderSent = original.ReminderSent
	}

	err = u.lockService.WithSlotLock(ctx, original.DoctorID, day, func() error {
		return u.transact(ctx, func(tx *gorm.DB) error {
			conflict, err := u.engine(tx).HasConflict(ctx, original.DoctorID, day, start, end)
			if err != nil {
				return err
			}
			if conflict {
				return &scheduling.Rejection{
					Code:    scheduling.CodeSlotConflict,
					Message: "the slot was taken by another booking",
				}
			}

			if err := u.appointmentRepo.Create(tx, replacement); err != nil {
				return err
			}

			affected, err := u.appointmentRepo.MarkRescheduled(tx, original.ID, replacement.ID)
			if err != nil {
				return err
			}
			if affected == 0 {
				return &scheduling.Rejection{
					Code:    scheduling.CodeInvalidTransition,
					Message: "appointment status changed concurrently",
				}
			}

			if err := u.auditService.LogUpdate(ctx, tx, &userID, entity.AuditActionAppointmentReschedule, "appointment", original.ID.String(), converter.AppointmentToResponse(original), converter.AppointmentToResponse(replacement)); err != nil {
				u.log.Warnf("Failed to create audit log: %+v", err)
			}
			return nil
		})
	})
	if err != nil {
		if errors.Is(err, service.ErrLockNotAcquired) {
			return nil, &scheduling.Rejection{
				Code:    scheduling.CodeDoctorBusy,
				Message: "another booking for this doctor is in progress, retry shortly",
			}
		}
		var rej *scheduling.Rejection
		if !errors.As(err, &rej) {
			u.log.Warnf("Failed to reschedule appointment %s: %+v", id, err)
		}
		return nil, err
	}

	u.log.Infof("Appointment rescheduled: %s -> %s (%s %s-%s)",
		original.ID, replacement.ID, replacement.AppointmentDate.Format("2006-01-02"), replacement.StartTime, replacement.EndTime)

	return u.reload(ctx, replacement)
}

func (u *bookingUsecase) reload(ctx context.Context, appointment *entity.Appointment) (*dto.AppointmentResponse, error) {
	full, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), appointment.ID)
	if err != nil || full == nil {
		u.log.Warnf("Failed to reload appointment %s: %+v", appointment.ID, err)
		return converter.AppointmentToResponse(appointment), nil
	}
	return converter.AppointmentToResponse(full), nil
}

func auditActionFor(action scheduling.Action) string {
	switch action {
	case scheduling.ActionCheckIn:
		return entity.AuditActionAppointmentCheckIn
	case scheduling.ActionComplete:
		return entity.AuditActionAppointmentComplete
	case scheduling.ActionCancel:
		return entity.AuditActionAppointmentCancel
	}
	return "appointment." + string(action)
}
