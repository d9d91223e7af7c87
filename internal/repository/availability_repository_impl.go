package repository

import (
	"errors"

	"go-clinic-scheduling/internal/domain/entity"
	domainRepo "go-clinic-scheduling/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type doctorAvailabilityRepository struct{}

func NewDoctorAvailabilityRepository() domainRepo.DoctorAvailabilityRepository {
	return &doctorAvailabilityRepository{}
}

func (r *doctorAvailabilityRepository) Create(db *gorm.DB, availability *entity.DoctorAvailability) error {
	return db.Create(availability).Error
}

func (r *doctorAvailabilityRepository) FindByID(db *gorm.DB, id int) (*entity.DoctorAvailability, error) {
	var availability entity.DoctorAvailability
	err := db.Where("id = ?", id).First(&availability).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &availability, nil
}

func (r *doctorAvailabilityRepository) FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.DoctorAvailability, error) {
	var availabilities []entity.DoctorAvailability
	err := db.Where("doctor_id = ?", doctorID).
		Order("weekday ASC, updated_at DESC").
		Find(&availabilities).Error
	if err != nil {
		return nil, err
	}
	return availabilities, nil
}

// FindActiveByDoctorAndWeekday returns the availability the slot generator
// uses. When duplicate rows exist for a weekday the most recently updated
// one wins.
func (r *doctorAvailabilityRepository) FindActiveByDoctorAndWeekday(db *gorm.DB, doctorID uuid.UUID, weekday int) (*entity.DoctorAvailability, error) {
	var availability entity.DoctorAvailability
	err := db.Where("doctor_id = ? AND weekday = ? AND is_active = ?", doctorID, weekday, true).
		Order("updated_at DESC").
		First(&availability).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &availability, nil
}

func (r *doctorAvailabilityRepository) Update(db *gorm.DB, availability *entity.DoctorAvailability) error {
	return db.Omit("Doctor").Save(availability).Error
}

func (r *doctorAvailabilityRepository) Deactivate(db *gorm.DB, id int) (int64, error) {
	result := db.Model(&entity.DoctorAvailability{}).
		Where("id = ? AND is_active = ?", id, true).
		Update("is_active", false)
	return result.RowsAffected, result.Error
}
