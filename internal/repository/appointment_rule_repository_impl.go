package repository

import (
	"errors"

	"go-clinic-scheduling/internal/domain/entity"
	domainRepo "go-clinic-scheduling/internal/domain/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type appointmentRuleRepository struct{}

func NewAppointmentRuleRepository() domainRepo.AppointmentRuleRepository {
	return &appointmentRuleRepository{}
}

// Upsert keeps at most one rule per department.
func (r *appointmentRuleRepository) Upsert(db *gorm.DB, rule *entity.AppointmentRule) error {
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "department_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"min_hours_before_booking", "max_days_advance_booking", "updated_at"}),
	}).Create(rule).Error
}

func (r *appointmentRuleRepository) FindByDepartmentID(db *gorm.DB, departmentID int) (*entity.AppointmentRule, error) {
	var rule entity.AppointmentRule
	err := db.Where("department_id = ?", departmentID).First(&rule).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rule, nil
}

func (r *appointmentRuleRepository) FindAll(db *gorm.DB) ([]entity.AppointmentRule, error) {
	var rules []entity.AppointmentRule
	err := db.Preload("Department").Order("department_id ASC").Find(&rules).Error
	if err != nil {
		return nil, err
	}
	return rules, nil
}

func (r *appointmentRuleRepository) DeleteByDepartmentID(db *gorm.DB, departmentID int) (int64, error) {
	result := db.Where("department_id = ?", departmentID).Delete(&entity.AppointmentRule{})
	return result.RowsAffected, result.Error
}
