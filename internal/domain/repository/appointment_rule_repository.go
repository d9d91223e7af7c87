package repository

import (
	"go-clinic-scheduling/internal/domain/entity"

	"gorm.io/gorm"
)

type AppointmentRuleRepository interface {
	Upsert(db *gorm.DB, rule *entity.AppointmentRule) error
	FindByDepartmentID(db *gorm.DB, departmentID int) (*entity.AppointmentRule, error)
	FindAll(db *gorm.DB) ([]entity.AppointmentRule, error)
	DeleteByDepartmentID(db *gorm.DB, departmentID int) (int64, error)
}
