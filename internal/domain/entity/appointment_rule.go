package entity

import "time"

// AppointmentRule bounds how soon and how far ahead an appointment may be
// requested for a department. At most one rule per department; a department
// without a rule has an open booking policy.
type AppointmentRule struct {
	ID                    int       `gorm:"primaryKey;autoIncrement" json:"id"`
	DepartmentID          int       `gorm:"not null;uniqueIndex" json:"department_id"`
	MinHoursBeforeBooking int       `gorm:"not null;default:0" json:"min_hours_before_booking"`
	MaxDaysAdvanceBooking int       `gorm:"not null;default:0" json:"max_days_advance_booking"`
	CreatedAt             time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt             time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Department Department `gorm:"foreignKey:DepartmentID" json:"department,omitempty"`
}

func (AppointmentRule) TableName() string {
	return "appointment_rules"
}
