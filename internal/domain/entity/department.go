package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Department groups doctors and owns the booking-window rule applied to
// appointments requested against it.
type Department struct {
	ID              int             `gorm:"primaryKey;autoIncrement" json:"id"`
	Name            string          `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
	Description     string          `gorm:"type:text" json:"description,omitempty"`
	ConsultationFee decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"consultation_fee"`
	IsActive        *bool           `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Doctors []DoctorProfile  `gorm:"foreignKey:DepartmentID" json:"doctors,omitempty"`
	Rule    *AppointmentRule `gorm:"foreignKey:DepartmentID" json:"rule,omitempty"`
}

func (Department) TableName() string {
	return "departments"
}
