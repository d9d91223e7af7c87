package usecase

import (
	"context"
	"time"

	"go-clinic-scheduling/internal/domain/entity"
	"go-clinic-scheduling/internal/domain/repository"
	"go-clinic-scheduling/internal/scheduling"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// engineStore adapts the repositories to the read-only view the scheduling
// engine needs. It is bound to a db handle so the same engine code runs
// against the pool for slot listing and against a transaction for the
// conflict re-check inside booking.
type engineStore struct {
	db               *gorm.DB
	availabilityRepo repository.DoctorAvailabilityRepository
	holidayRepo      repository.HolidayRepository
	ruleRepo         repository.AppointmentRuleRepository
	appointmentRepo  repository.AppointmentRepository
}

func (s *engineStore) Availability(ctx context.Context, doctorID uuid.UUID, weekday int) (*entity.DoctorAvailability, error) {
	return s.availabilityRepo.FindActiveByDoctorAndWeekday(s.db.WithContext(ctx), doctorID, weekday)
}

func (s *engineStore) Exclusions(ctx context.Context, doctorID uuid.UUID, date time.Time) ([]entity.Holiday, error) {
	return s.holidayRepo.FindCovering(s.db.WithContext(ctx), doctorID, date)
}

func (s *engineStore) Rule(ctx context.Context, departmentID int) (*entity.AppointmentRule, error) {
	return s.ruleRepo.FindByDepartmentID(s.db.WithContext(ctx), departmentID)
}

func (s *engineStore) Appointments(ctx context.Context, doctorID uuid.UUID, date time.Time, statuses []entity.AppointmentStatus) ([]entity.Appointment, error) {
	return s.appointmentRepo.FindByDoctorAndDate(s.db.WithContext(ctx), doctorID, date, statuses)
}

var _ scheduling.Store = (*engineStore)(nil)
