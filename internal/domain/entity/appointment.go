package entity

import (
	"time"

	"github.com/google/uuid"
)

// AppointmentStatus represents the lifecycle state of an appointment.
type AppointmentStatus string

const (
	AppointmentStatusScheduled   AppointmentStatus = "scheduled"
	AppointmentStatusCheckedIn   AppointmentStatus = "checked_in"
	AppointmentStatusCompleted   AppointmentStatus = "completed"
	AppointmentStatusCanceled    AppointmentStatus = "canceled"
	AppointmentStatusRescheduled AppointmentStatus = "rescheduled"
)

// BlockingStatuses are the statuses that keep a time slot occupied.
// Canceled and rescheduled appointments have vacated their slot.
func BlockingStatuses() []AppointmentStatus {
	return []AppointmentStatus{
		AppointmentStatusScheduled,
		AppointmentStatusCheckedIn,
		AppointmentStatusCompleted,
	}
}

// AppointmentType distinguishes first visits from follow-ups.
type AppointmentType string

const (
	AppointmentTypeNew      AppointmentType = "new"
	AppointmentTypeFollowUp AppointmentType = "follow_up"
)

// Appointment represents one booked consultation slot.
// StartTime/EndTime are "HH:MM" strings on AppointmentDate; the interval is
// half-open, so back-to-back appointments sharing a boundary do not overlap.
type Appointment struct {
	ID             uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientID      uuid.UUID         `gorm:"type:uuid;not null;index" json:"patient_id"`
	DoctorID       uuid.UUID         `gorm:"type:uuid;not null;index:idx_appointments_doctor_date" json:"doctor_id"`
	DepartmentID   int               `gorm:"not null;index" json:"department_id"`
	AppointmentDate time.Time        `gorm:"type:date;not null;index:idx_appointments_doctor_date" json:"appointment_date"`
	StartTime      string            `gorm:"type:time;not null" json:"start_time"`
	EndTime        string            `gorm:"type:time;not null" json:"end_time"`
	Type           AppointmentType   `gorm:"type:varchar(20);not null;default:'new'" json:"type"`
	Status         AppointmentStatus `gorm:"type:varchar(20);not null;default:'scheduled';index" json:"status"`
	ReminderSent   bool              `gorm:"not null;default:false" json:"reminder_sent"`
	RescheduledTo  *uuid.UUID        `gorm:"type:uuid" json:"rescheduled_to,omitempty"`
	CreatedAt      time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time         `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient    PatientProfile `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor     DoctorProfile  `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	Department Department     `gorm:"foreignKey:DepartmentID" json:"department,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// IsTerminal reports whether no further transition is allowed.
func (a *Appointment) IsTerminal() bool {
	switch a.Status {
	case AppointmentStatusCompleted, AppointmentStatusCanceled, AppointmentStatusRescheduled:
		return true
	}
	return false
}

// Blocks reports whether the appointment still occupies its slot.
func (a *Appointment) Blocks() bool {
	switch a.Status {
	case AppointmentStatusScheduled, AppointmentStatusCheckedIn, AppointmentStatusCompleted:
		return true
	}
	return false
}
