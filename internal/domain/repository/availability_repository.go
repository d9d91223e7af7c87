package repository

import (
	"go-clinic-scheduling/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DoctorAvailabilityRepository interface {
	Create(db *gorm.DB, availability *entity.DoctorAvailability) error
	FindByID(db *gorm.DB, id int) (*entity.DoctorAvailability, error)
	FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.DoctorAvailability, error)
	FindActiveByDoctorAndWeekday(db *gorm.DB, doctorID uuid.UUID, weekday int) (*entity.DoctorAvailability, error)
	Update(db *gorm.DB, availability *entity.DoctorAvailability) error
	Deactivate(db *gorm.DB, id int) (int64, error)
}
