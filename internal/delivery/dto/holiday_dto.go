package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateHolidayRequest struct {
	DoctorID  *uuid.UUID `json:"doctor_id" validate:"omitempty"`  // nil = clinic-wide
	StartDate string     `json:"start_date" validate:"required"`  // Format: YYYY-MM-DD
	EndDate   string     `json:"end_date" validate:"required"`    // Format: YYYY-MM-DD
	Notes     string     `json:"notes" validate:"omitempty,max=255"`
}

// Response DTOs

type HolidayResponse struct {
	ID        int        `json:"id"`
	DoctorID  *uuid.UUID `json:"doctor_id,omitempty"`
	StartDate string     `json:"start_date"`
	EndDate   string     `json:"end_date"`
	Notes     string     `json:"notes,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

type HolidayListResponse struct {
	Holidays []HolidayResponse `json:"holidays"`
	Total    int               `json:"total"`
}
