package converter

import (
	"go-clinic-scheduling/internal/delivery/dto"
	"go-clinic-scheduling/internal/domain/entity"
)

// AvailabilityToResponse converts a DoctorAvailability entity to AvailabilityResponse DTO
func AvailabilityToResponse(availability *entity.DoctorAvailability) *dto.AvailabilityResponse {
	if availability == nil {
		return nil
	}

	return &dto.AvailabilityResponse{
		ID:                  availability.ID,
		DoctorID:            availability.DoctorID,
		Weekday:             availability.Weekday,
		MorningStartTime:    clockPtr(availability.MorningStartTime),
		MorningEndTime:      clockPtr(availability.MorningEndTime),
		EveningStartTime:    clockPtr(availability.EveningStartTime),
		EveningEndTime:      clockPtr(availability.EveningEndTime),
		SlotDurationMinutes: availability.SlotDurationMinutes,
		IsActive:            availability.IsActive,
		CreatedAt:           availability.CreatedAt,
		UpdatedAt:           availability.UpdatedAt,
	}
}

// AvailabilitiesToResponses converts a slice of DoctorAvailability entities to slice of AvailabilityResponse DTOs
func AvailabilitiesToResponses(availabilities []entity.DoctorAvailability) []dto.AvailabilityResponse {
	responses := make([]dto.AvailabilityResponse, len(availabilities))
	for i := range availabilities {
		resp := AvailabilityToResponse(&availabilities[i])
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}

func clockPtr(s *string) *string {
	if s == nil {
		return nil
	}
	normalized := clockOf(*s)
	return &normalized
}
