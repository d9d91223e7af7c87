package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"go-clinic-scheduling/internal/delivery/dto"
	"go-clinic-scheduling/internal/usecase"
	"go-clinic-scheduling/pkg/response"
	"go-clinic-scheduling/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type AvailabilityHandler struct {
	availabilityUsecase usecase.AvailabilityUsecase
	validator           *validator.CustomValidator
}

func NewAvailabilityHandler(availabilityUsecase usecase.AvailabilityUsecase, validator *validator.CustomValidator) *AvailabilityHandler {
	return &AvailabilityHandler{
		availabilityUsecase: availabilityUsecase,
		validator:           validator,
	}
}

func writeAvailabilityError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, usecase.ErrAvailabilityNotFound):
		response.NotFound(w, "Availability not found")
	case errors.Is(err, usecase.ErrDoctorNotFound):
		response.NotFound(w, "Doctor not found")
	case errors.Is(err, usecase.ErrInvalidTimeFormat):
		response.Error(w, http.StatusBadRequest, "Invalid time format, use HH:MM", nil)
	case errors.Is(err, usecase.ErrInvalidWindow):
		response.Error(w, http.StatusBadRequest, "Window end must be after start", nil)
	case errors.Is(err, usecase.ErrNoWindow):
		response.Error(w, http.StatusBadRequest, "At least one complete window is required", nil)
	default:
		response.InternalServerError(w, fallback)
	}
}

func (h *AvailabilityHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateAvailabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	availability, err := h.availabilityUsecase.Create(r.Context(), &req)
	if err != nil {
		writeAvailabilityError(w, err, "Failed to create availability")
		return
	}

	response.Success(w, http.StatusCreated, "Availability created successfully", availability)
}

func (h *AvailabilityHandler) GetByDoctor(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	doctorID, err := uuid.Parse(vars["doctorId"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid doctor ID", nil)
		return
	}

	availabilities, err := h.availabilityUsecase.GetByDoctor(r.Context(), doctorID)
	if err != nil {
		writeAvailabilityError(w, err, "Failed to get availabilities")
		return
	}

	response.Success(w, http.StatusOK, "Availabilities retrieved successfully", availabilities)
}

func (h *AvailabilityHandler) Update(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.Atoi(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid availability ID", nil)
		return
	}

	var req dto.UpdateAvailabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	availability, err := h.availabilityUsecase.Update(r.Context(), id, &req)
	if err != nil {
		writeAvailabilityError(w, err, "Failed to update availability")
		return
	}

	response.Success(w, http.StatusOK, "Availability updated successfully", availability)
}

func (h *AvailabilityHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.Atoi(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid availability ID", nil)
		return
	}

	if err := h.availabilityUsecase.Deactivate(r.Context(), id); err != nil {
		writeAvailabilityError(w, err, "Failed to deactivate availability")
		return
	}

	response.Success(w, http.StatusOK, "Availability deactivated successfully", nil)
}
