package repository

import (
	"time"

	"go-clinic-scheduling/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentRepository interface {
	Create(db *gorm.DB, appointment *entity.Appointment) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error)
	FindByDoctorAndDate(db *gorm.DB, doctorID uuid.UUID, date time.Time, statuses []entity.AppointmentStatus) ([]entity.Appointment, error)
	FindAll(db *gorm.DB, filter *entity.AppointmentFilter) ([]entity.Appointment, error)
	UpdateStatus(db *gorm.DB, id uuid.UUID, from, to entity.AppointmentStatus) (int64, error)
	MarkRescheduled(db *gorm.DB, id, replacementID uuid.UUID) (int64, error)
	Update(db *gorm.DB, appointment *entity.Appointment) error
}
