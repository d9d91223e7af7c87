package repository

import (
	"time"

	"go-clinic-scheduling/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type HolidayRepository interface {
	Create(db *gorm.DB, holiday *entity.Holiday) error
	FindByID(db *gorm.DB, id int) (*entity.Holiday, error)
	FindAll(db *gorm.DB) ([]entity.Holiday, error)
	FindCovering(db *gorm.DB, doctorID uuid.UUID, date time.Time) ([]entity.Holiday, error)
	Delete(db *gorm.DB, id int) (int64, error)
}
