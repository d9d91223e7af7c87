package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type BookAppointmentRequest struct {
	DoctorID        uuid.UUID `json:"doctor_id" validate:"required"`
	AppointmentDate string    `json:"appointment_date" validate:"required"` // Format: YYYY-MM-DD
	StartTime       string    `json:"start_time" validate:"required"`       // Format: HH:MM
	Type            string    `json:"type" validate:"omitempty,oneof=new follow_up"`
}

type RescheduleAppointmentRequest struct {
	AppointmentDate string `json:"appointment_date" validate:"required"` // Format: YYYY-MM-DD
	StartTime       string `json:"start_time" validate:"required"`       // Format: HH:MM
}

// Response DTOs

type AppointmentResponse struct {
	ID              uuid.UUID           `json:"id"`
	PatientID       uuid.UUID           `json:"patient_id"`
	DoctorID        uuid.UUID           `json:"doctor_id"`
	Doctor          *DoctorResponse     `json:"doctor,omitempty"`
	DepartmentID    int                 `json:"department_id"`
	Department      *DepartmentResponse `json:"department,omitempty"`
	AppointmentDate string              `json:"appointment_date"`
	StartTime       string              `json:"start_time"`
	EndTime         string              `json:"end_time"`
	Type            string              `json:"type"`
	Status          string              `json:"status"`
	ReminderSent    bool                `json:"reminder_sent"`
	RescheduledTo   *uuid.UUID          `json:"rescheduled_to,omitempty"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}

type SlotResponse struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type SlotListResponse struct {
	DoctorID uuid.UUID      `json:"doctor_id"`
	Date     string         `json:"date"`
	Slots    []SlotResponse `json:"slots"`
	Total    int            `json:"total"`
}
