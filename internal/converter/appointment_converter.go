package converter

import (
	"go-clinic-scheduling/internal/delivery/dto"
	"go-clinic-scheduling/internal/domain/entity"
	"go-clinic-scheduling/internal/scheduling"

	"github.com/google/uuid"
)

// AppointmentToResponse converts an Appointment entity to AppointmentResponse DTO
func AppointmentToResponse(appointment *entity.Appointment) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}

	response := &dto.AppointmentResponse{
		ID:              appointment.ID,
		PatientID:       appointment.PatientID,
		DoctorID:        appointment.DoctorID,
		DepartmentID:    appointment.DepartmentID,
		AppointmentDate: appointment.AppointmentDate.Format("2006-01-02"),
		StartTime:       clockOf(appointment.StartTime),
		EndTime:         clockOf(appointment.EndTime),
		Type:            string(appointment.Type),
		Status:          string(appointment.Status),
		ReminderSent:    appointment.ReminderSent,
		RescheduledTo:   appointment.RescheduledTo,
		CreatedAt:       appointment.CreatedAt,
		UpdatedAt:       appointment.UpdatedAt,
	}

	if appointment.Doctor.UserID != uuid.Nil {
		response.Doctor = DoctorProfileToResponse(&appointment.Doctor)
	}
	if appointment.Department.ID != 0 {
		response.Department = DepartmentToResponse(&appointment.Department)
	}

	return response
}

// AppointmentsToResponses converts a slice of Appointment entities to slice of AppointmentResponse DTOs
func AppointmentsToResponses(appointments []entity.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i := range appointments {
		resp := AppointmentToResponse(&appointments[i])
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}

// SlotsToResponses converts engine slots to SlotResponse DTOs
func SlotsToResponses(slots []scheduling.Slot) []dto.SlotResponse {
	responses := make([]dto.SlotResponse, len(slots))
	for i, slot := range slots {
		responses[i] = dto.SlotResponse{
			StartTime: slot.StartClock(),
			EndTime:   slot.EndClock(),
		}
	}
	return responses
}

// clockOf normalizes "HH:MM:SS" from Postgres time columns to "HH:MM".
func clockOf(s string) string {
	minutes, err := scheduling.ParseClock(s)
	if err != nil {
		return s
	}
	return scheduling.FormatClock(minutes)
}
