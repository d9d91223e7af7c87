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

	"github.com/gorilla/mux"
)

type HolidayHandler struct {
	holidayUsecase usecase.HolidayUsecase
	validator      *validator.CustomValidator
}

func NewHolidayHandler(holidayUsecase usecase.HolidayUsecase, validator *validator.CustomValidator) *HolidayHandler {
	return &HolidayHandler{
		holidayUsecase: holidayUsecase,
		validator:      validator,
	}
}

func (h *HolidayHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateHolidayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	holiday, err := h.holidayUsecase.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidDateFormat):
			response.Error(w, http.StatusBadRequest, "Invalid date format, use YYYY-MM-DD", nil)
		case errors.Is(err, usecase.ErrInvalidHolidayRange):
			response.Error(w, http.StatusBadRequest, "End date must not be before start date", nil)
		case errors.Is(err, usecase.ErrDoctorNotFound):
			response.NotFound(w, "Doctor not found")
		default:
			response.InternalServerError(w, "Failed to create holiday")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Holiday created successfully", holiday)
}

func (h *HolidayHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	holidays, err := h.holidayUsecase.GetAll(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get holidays")
		return
	}

	response.Success(w, http.StatusOK, "Holidays retrieved successfully", holidays)
}

func (h *HolidayHandler) Delete(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.Atoi(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid holiday ID", nil)
		return
	}

	if err := h.holidayUsecase.Delete(r.Context(), id); err != nil {
		if errors.Is(err, usecase.ErrHolidayNotFound) {
			response.NotFound(w, "Holiday not found")
			return
		}
		response.InternalServerError(w, "Failed to delete holiday")
		return
	}

	response.Success(w, http.StatusOK, "Holiday deleted successfully", nil)
}
