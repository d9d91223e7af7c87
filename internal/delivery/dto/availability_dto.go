package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateAvailabilityRequest struct {
	DoctorID            uuid.UUID `json:"doctor_id" validate:"required"`
	Weekday             int       `json:"weekday" validate:"min=0,max=6"`
	MorningStartTime    *string   `json:"morning_start_time" validate:"omitempty"` // Format: HH:MM
	MorningEndTime      *string   `json:"morning_end_time" validate:"omitempty"`   // Format: HH:MM
	EveningStartTime    *string   `json:"evening_start_time" validate:"omitempty"` // Format: HH:MM
	EveningEndTime      *string   `json:"evening_end_time" validate:"omitempty"`   // Format: HH:MM
	SlotDurationMinutes int       `json:"slot_duration_minutes" validate:"omitempty,min=5,max=240"`
}

type UpdateAvailabilityRequest struct {
	MorningStartTime    *string `json:"morning_start_time" validate:"omitempty"`
	MorningEndTime      *string `json:"morning_end_time" validate:"omitempty"`
	EveningStartTime    *string `json:"evening_start_time" validate:"omitempty"`
	EveningEndTime      *string `json:"evening_end_time" validate:"omitempty"`
	SlotDurationMinutes *int    `json:"slot_duration_minutes" validate:"omitempty,min=5,max=240"`
	IsActive            *bool   `json:"is_active" validate:"omitempty"`
}

// Response DTOs

type AvailabilityResponse struct {
	ID                  int       `json:"id"`
	DoctorID            uuid.UUID `json:"doctor_id"`
	Weekday             int       `json:"weekday"`
	MorningStartTime    *string   `json:"morning_start_time,omitempty"`
	MorningEndTime      *string   `json:"morning_end_time,omitempty"`
	EveningStartTime    *string   `json:"evening_start_time,omitempty"`
	EveningEndTime      *string   `json:"evening_end_time,omitempty"`
	SlotDurationMinutes int       `json:"slot_duration_minutes"`
	IsActive            *bool     `json:"is_active"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

type AvailabilityListResponse struct {
	Availabilities []AvailabilityResponse `json:"availabilities"`
	Total          int                    `json:"total"`
}
