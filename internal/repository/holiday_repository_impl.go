package repository

import (
	"errors"
	"time"

	"go-clinic-scheduling/internal/domain/entity"
	domainRepo "go-clinic-scheduling/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type holidayRepository struct{}

func NewHolidayRepository() domainRepo.HolidayRepository {
	return &holidayRepository{}
}

func (r *holidayRepository) Create(db *gorm.DB, holiday *entity.Holiday) error {
	return db.Create(holiday).Error
}

func (r *holidayRepository) FindByID(db *gorm.DB, id int) (*entity.Holiday, error) {
	var holiday entity.Holiday
	err := db.Where("id = ?", id).First(&holiday).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &holiday, nil
}

func (r *holidayRepository) FindAll(db *gorm.DB) ([]entity.Holiday, error) {
	var holidays []entity.Holiday
	err := db.Order("start_date ASC").Find(&holidays).Error
	if err != nil {
		return nil, err
	}
	return holidays, nil
}

// FindCovering returns holidays whose date range includes the given date,
// matching either the doctor or the whole clinic (doctor_id IS NULL).
func (r *holidayRepository) FindCovering(db *gorm.DB, doctorID uuid.UUID, date time.Time) ([]entity.Holiday, error) {
	var holidays []entity.Holiday
	day := date.Format("2006-01-02")
	err := db.Where("(doctor_id = ? OR doctor_id IS NULL) AND start_date <= ? AND end_date >= ?", doctorID, day, day).
		Find(&holidays).Error
	if err != nil {
		return nil, err
	}
	return holidays, nil
}

func (r *holidayRepository) Delete(db *gorm.DB, id int) (int64, error) {
	result := db.Where("id = ?", id).Delete(&entity.Holiday{})
	return result.RowsAffected, result.Error
}
