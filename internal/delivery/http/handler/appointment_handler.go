package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"go-clinic-scheduling/internal/delivery/dto"
	"go-clinic-scheduling/internal/delivery/http/middleware"
	"go-clinic-scheduling/internal/domain/entity"
	"go-clinic-scheduling/internal/scheduling"
	"go-clinic-scheduling/internal/usecase"
	"go-clinic-scheduling/pkg/response"
	"go-clinic-scheduling/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type AppointmentHandler struct {
	bookingUsecase usecase.BookingUsecase
	validator      *validator.CustomValidator
}

func NewAppointmentHandler(bookingUsecase usecase.BookingUsecase, validator *validator.CustomValidator) *AppointmentHandler {
	return &AppointmentHandler{
		bookingUsecase: bookingUsecase,
		validator:      validator,
	}
}

// writeRejection maps engine rejection codes to HTTP statuses. The code and
// details ride along in the error payload so clients can match on them.
func writeRejection(w http.ResponseWriter, rej *scheduling.Rejection) {
	status := http.StatusUnprocessableEntity
	switch rej.Code {
	case scheduling.CodeNotFound:
		status = http.StatusNotFound
	case scheduling.CodeSlotConflict, scheduling.CodeDoctorBusy, scheduling.CodeInvalidTransition:
		status = http.StatusConflict
	}

	payload := map[string]interface{}{"code": rej.Code}
	if len(rej.Details) > 0 {
		payload["details"] = rej.Details
	}
	response.Error(w, status, rej.Message, payload)
}

// writeBookingError handles the error surface shared by the booking
// endpoints.
func writeBookingError(w http.ResponseWriter, err error, fallback string) {
	var rej *scheduling.Rejection
	if errors.As(err, &rej) {
		writeRejection(w, rej)
		return
	}
	switch {
	case errors.Is(err, usecase.ErrInvalidDateFormat):
		response.Error(w, http.StatusBadRequest, "Invalid date format, use YYYY-MM-DD", nil)
	case errors.Is(err, usecase.ErrInvalidTimeFormat):
		response.Error(w, http.StatusBadRequest, "Invalid time format, use HH:MM", nil)
	default:
		response.InternalServerError(w, fallback)
	}
}

// ListSlots returns the free slots of a doctor for the date in the query
// string.
func (h *AppointmentHandler) ListSlots(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	doctorID, err := uuid.Parse(vars["doctorId"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid doctor ID", nil)
		return
	}

	date := r.URL.Query().Get("date")
	if date == "" {
		response.Error(w, http.StatusBadRequest, "Query parameter 'date' is required", nil)
		return
	}

	slots, err := h.bookingUsecase.ListSlots(r.Context(), doctorID, date)
	if err != nil {
		writeBookingError(w, err, "Failed to list slots")
		return
	}

	response.Success(w, http.StatusOK, "Slots retrieved successfully", slots)
}

func (h *AppointmentHandler) Book(w http.ResponseWriter, r *http.Request) {
	var req dto.BookAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.bookingUsecase.Book(r.Context(), &req)
	if err != nil {
		writeBookingError(w, err, "Failed to book appointment")
		return
	}

	response.Success(w, http.StatusCreated, "Appointment booked successfully", appointment)
}

func (h *AppointmentHandler) GetAppointment(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return
	}

	appointment, err := h.bookingUsecase.GetAppointment(r.Context(), id)
	if err != nil {
		writeBookingError(w, err, "Failed to get appointment")
		return
	}

	response.Success(w, http.StatusOK, "Appointment retrieved successfully", appointment)
}

// ListAppointments supports filtering by doctor, patient, department, date
// range and status. Patients only ever see their own appointments.
func (h *AppointmentHandler) ListAppointments(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := &entity.AppointmentFilter{
		DateFrom: query.Get("date_from"),
		DateTo:   query.Get("date_to"),
		Status:   query.Get("status"),
	}

	if raw := query.Get("doctor_id"); raw != "" {
		doctorID, err := uuid.Parse(raw)
		if err != nil {
			response.Error(w, http.StatusBadRequest, "Invalid doctor_id", nil)
			return
		}
		filter.DoctorID = &doctorID
	}
	if raw := query.Get("patient_id"); raw != "" {
		patientID, err := uuid.Parse(raw)
		if err != nil {
			response.Error(w, http.StatusBadRequest, "Invalid patient_id", nil)
			return
		}
		filter.PatientID = &patientID
	}
	if raw := query.Get("department_id"); raw != "" {
		departmentID, err := strconv.Atoi(raw)
		if err != nil {
			response.Error(w, http.StatusBadRequest, "Invalid department_id", nil)
			return
		}
		filter.DepartmentID = departmentID
	}

	if roleID, ok := middleware.GetRoleIDFromContext(r.Context()); ok && roleID == entity.RoleIDPatient {
		userID, _ := middleware.GetUserIDFromContext(r.Context())
		filter.PatientID = &userID
	}

	appointments, err := h.bookingUsecase.ListAppointments(r.Context(), filter)
	if err != nil {
		response.InternalServerError(w, "Failed to list appointments")
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", appointments)
}

func (h *AppointmentHandler) transition(w http.ResponseWriter, r *http.Request, action scheduling.Action, message string) {
	vars := mux.Vars(r)
	id, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return
	}

	appointment, err := h.bookingUsecase.Transition(r.Context(), id, action)
	if err != nil {
		writeBookingError(w, err, "Failed to update appointment")
		return
	}

	response.Success(w, http.StatusOK, message, appointment)
}

func (h *AppointmentHandler) CheckIn(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, scheduling.ActionCheckIn, "Appointment checked in successfully")
}

func (h *AppointmentHandler) Complete(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, scheduling.ActionComplete, "Appointment completed successfully")
}

func (h *AppointmentHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, scheduling.ActionCancel, "Appointment canceled successfully")
}

func (h *AppointmentHandler) Reschedule(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return
	}

	var req dto.RescheduleAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.bookingUsecase.Reschedule(r.Context(), id, &req)
	if err != nil {
		writeBookingError(w, err, "Failed to reschedule appointment")
		return
	}

	response.Success(w, http.StatusCreated, "Appointment rescheduled successfully", appointment)
}
