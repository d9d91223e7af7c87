package converter

import (
	"go-clinic-scheduling/internal/delivery/dto"
	"go-clinic-scheduling/internal/domain/entity"
)

// HolidayToResponse converts a Holiday entity to HolidayResponse DTO
func HolidayToResponse(holiday *entity.Holiday) *dto.HolidayResponse {
	if holiday == nil {
		return nil
	}

	return &dto.HolidayResponse{
		ID:        holiday.ID,
		DoctorID:  holiday.DoctorID,
		StartDate: holiday.StartDate.Format("2006-01-02"),
		EndDate:   holiday.EndDate.Format("2006-01-02"),
		Notes:     holiday.Notes,
		CreatedAt: holiday.CreatedAt,
	}
}

// HolidaysToResponses converts a slice of Holiday entities to slice of HolidayResponse DTOs
func HolidaysToResponses(holidays []entity.Holiday) []dto.HolidayResponse {
	responses := make([]dto.HolidayResponse, len(holidays))
	for i := range holidays {
		resp := HolidayToResponse(&holidays[i])
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
