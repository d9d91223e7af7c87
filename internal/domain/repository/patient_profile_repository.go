package repository

import (
	"context"

	"go-clinic-scheduling/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PatientProfileRepository reads patient profiles owned by the identity
// service. Profile writes happen there, not here.
type PatientProfileRepository interface {
	FindByUserID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*entity.PatientProfile, error)
}
