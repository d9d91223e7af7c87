package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// Request DTOs

type CreateDepartmentRequest struct {
	Name            string          `json:"name" validate:"required,min=2"`
	Description     string          `json:"description"`
	ConsultationFee decimal.Decimal `json:"consultation_fee" validate:"required"`
}

type UpdateDepartmentRequest struct {
	Name            string          `json:"name" validate:"required,min=2"`
	Description     string          `json:"description"`
	ConsultationFee decimal.Decimal `json:"consultation_fee" validate:"required"`
	IsActive        *bool           `json:"is_active" validate:"omitempty"`
}

// Response DTOs

type DepartmentResponse struct {
	ID              int             `json:"id"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	ConsultationFee decimal.Decimal `json:"consultation_fee"`
	IsActive        *bool           `json:"is_active"`
	Rule            *RuleResponse   `json:"rule,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

type DepartmentListResponse struct {
	Departments []DepartmentResponse `json:"departments"`
	Total       int64                `json:"total"`
}
