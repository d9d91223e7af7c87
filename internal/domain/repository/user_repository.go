package repository

import (
	"go-clinic-scheduling/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserRepository reads accounts owned by the identity service.
type UserRepository interface {
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.User, error)
}
