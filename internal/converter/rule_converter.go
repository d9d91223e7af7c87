package converter

import (
	"go-clinic-scheduling/internal/delivery/dto"
	"go-clinic-scheduling/internal/domain/entity"
)

// RuleToResponse converts an AppointmentRule entity to RuleResponse DTO
func RuleToResponse(rule *entity.AppointmentRule) *dto.RuleResponse {
	if rule == nil {
		return nil
	}

	return &dto.RuleResponse{
		ID:                    rule.ID,
		DepartmentID:          rule.DepartmentID,
		MinHoursBeforeBooking: rule.MinHoursBeforeBooking,
		MaxDaysAdvanceBooking: rule.MaxDaysAdvanceBooking,
		CreatedAt:             rule.CreatedAt,
		UpdatedAt:             rule.UpdatedAt,
	}
}

// RulesToResponses converts a slice of AppointmentRule entities to slice of RuleResponse DTOs
func RulesToResponses(rules []entity.AppointmentRule) []dto.RuleResponse {
	responses := make([]dto.RuleResponse, len(rules))
	for i := range rules {
		resp := RuleToResponse(&rules[i])
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
