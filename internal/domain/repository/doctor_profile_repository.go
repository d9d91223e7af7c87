package repository

import (
	"go-clinic-scheduling/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DoctorProfileRepository reads doctor profiles owned by the identity
// service. Profile writes happen there, not here.
type DoctorProfileRepository interface {
	FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.DoctorProfile, error)
	FindAll(db *gorm.DB) ([]entity.DoctorProfile, error)
}
