package converter

import (
	"go-clinic-scheduling/internal/delivery/dto"
	"go-clinic-scheduling/internal/domain/entity"
)

// DoctorProfileToResponse converts a DoctorProfile entity to DoctorResponse DTO
func DoctorProfileToResponse(profile *entity.DoctorProfile) *dto.DoctorResponse {
	if profile == nil {
		return nil
	}

	response := &dto.DoctorResponse{
		ID:             profile.UserID,
		Email:          profile.User.Email,
		FullName:       profile.User.FullName,
		STRNumber:      profile.STRNumber,
		Specialization: profile.Specialization,
		Biography:      profile.Biography,
		DepartmentID:   profile.DepartmentID,
		IsActive:       profile.User.IsActive,
	}

	if profile.Department.ID != 0 {
		response.Department = DepartmentToResponse(&profile.Department)
	}

	return response
}

// DoctorProfilesToResponses converts a slice of DoctorProfile entities to slice of DoctorResponse DTOs
func DoctorProfilesToResponses(profiles []entity.DoctorProfile) []dto.DoctorResponse {
	responses := make([]dto.DoctorResponse, len(profiles))
	for i := range profiles {
		resp := DoctorProfileToResponse(&profiles[i])
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
