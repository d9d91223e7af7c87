package entity

import (
	"time"

	"github.com/google/uuid"
)

// Holiday removes availability for every date in [StartDate, EndDate],
// inclusive on both ends. A nil DoctorID makes the holiday clinic-wide.
type Holiday struct {
	ID        int        `gorm:"primaryKey;autoIncrement" json:"id"`
	DoctorID  *uuid.UUID `gorm:"type:uuid;index" json:"doctor_id,omitempty"`
	StartDate time.Time  `gorm:"type:date;not null;index" json:"start_date"`
	EndDate   time.Time  `gorm:"type:date;not null;index" json:"end_date"`
	Notes     string     `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Doctor *DoctorProfile `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (Holiday) TableName() string {
	return "holidays"
}

// Covers reports whether the holiday range includes the given date.
// Comparison is by calendar date, ignoring time of day.
func (h *Holiday) Covers(date time.Time) bool {
	day := date.Truncate(24 * time.Hour)
	start := h.StartDate.Truncate(24 * time.Hour)
	end := h.EndDate.Truncate(24 * time.Hour)
	return !day.Before(start) && !day.After(end)
}
