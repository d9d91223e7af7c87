package dto

import "time"

// Request DTOs

type UpsertRuleRequest struct {
	DepartmentID          int `json:"department_id" validate:"required,min=1"`
	MinHoursBeforeBooking int `json:"min_hours_before_booking" validate:"min=0"`
	MaxDaysAdvanceBooking int `json:"max_days_advance_booking" validate:"min=0"`
}

// Response DTOs

type RuleResponse struct {
	ID                    int       `json:"id"`
	DepartmentID          int       `json:"department_id"`
	MinHoursBeforeBooking int       `json:"min_hours_before_booking"`
	MaxDaysAdvanceBooking int       `json:"max_days_advance_booking"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

type RuleListResponse struct {
	Rules []RuleResponse `json:"rules"`
	Total int            `json:"total"`
}
