package converter

import (
	"go-clinic-scheduling/internal/delivery/dto"
	"go-clinic-scheduling/internal/domain/entity"
)

// DepartmentToResponse converts a Department entity to DepartmentResponse DTO
func DepartmentToResponse(department *entity.Department) *dto.DepartmentResponse {
	if department == nil {
		return nil
	}

	response := &dto.DepartmentResponse{
		ID:              department.ID,
		Name:            department.Name,
		Description:     department.Description,
		ConsultationFee: department.ConsultationFee,
		IsActive:        department.IsActive,
		CreatedAt:       department.CreatedAt,
		UpdatedAt:       department.UpdatedAt,
	}

	if department.Rule != nil {
		response.Rule = RuleToResponse(department.Rule)
	}

	return response
}

// DepartmentsToResponses converts a slice of Department entities to slice of DepartmentResponse DTOs
func DepartmentsToResponses(departments []entity.Department) []dto.DepartmentResponse {
	responses := make([]dto.DepartmentResponse, len(departments))
	for i := range departments {
		resp := DepartmentToResponse(&departments[i])
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
