package entity

import (
	"time"

	"github.com/google/uuid"
)

// DoctorAvailability defines a doctor's working windows for one weekday
// (0 = Sunday .. 6 = Saturday). A day may have a morning window, an evening
// window, both, or neither; a window counts only when both of its bounds are
// set. Times are stored as "HH:MM" strings.
//
// Records are deactivated via IsActive=false rather than deleted, to keep
// history for past appointments.
type DoctorAvailability struct {
	ID                  int       `gorm:"primaryKey;autoIncrement" json:"id"`
	DoctorID            uuid.UUID `gorm:"type:uuid;not null;index:idx_availability_doctor_weekday" json:"doctor_id"`
	Weekday             int       `gorm:"not null;index:idx_availability_doctor_weekday" json:"weekday"`
	MorningStartTime    *string   `gorm:"type:time" json:"morning_start_time,omitempty"`
	MorningEndTime      *string   `gorm:"type:time" json:"morning_end_time,omitempty"`
	EveningStartTime    *string   `gorm:"type:time" json:"evening_start_time,omitempty"`
	EveningEndTime      *string   `gorm:"type:time" json:"evening_end_time,omitempty"`
	SlotDurationMinutes int       `gorm:"not null" json:"slot_duration_minutes"`
	IsActive            *bool     `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt           time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt           time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Doctor DoctorProfile `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (DoctorAvailability) TableName() string {
	return "doctor_availabilities"
}

// HasMorningWindow reports whether both morning bounds are set.
func (a *DoctorAvailability) HasMorningWindow() bool {
	return a.MorningStartTime != nil && a.MorningEndTime != nil
}

// HasEveningWindow reports whether both evening bounds are set.
func (a *DoctorAvailability) HasEveningWindow() bool {
	return a.EveningStartTime != nil && a.EveningEndTime != nil
}
