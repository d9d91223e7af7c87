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

type DepartmentHandler struct {
	departmentUsecase usecase.DepartmentUsecase
	validator         *validator.CustomValidator
}

func NewDepartmentHandler(departmentUsecase usecase.DepartmentUsecase, validator *validator.CustomValidator) *DepartmentHandler {
	return &DepartmentHandler{
		departmentUsecase: departmentUsecase,
		validator:         validator,
	}
}

func (h *DepartmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateDepartmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	department, err := h.departmentUsecase.Create(r.Context(), &req)
	if err != nil {
		response.InternalServerError(w, "Failed to create department")
		return
	}

	response.Success(w, http.StatusCreated, "Department created successfully", department)
}

func (h *DepartmentHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	departments, err := h.departmentUsecase.GetAll(r.Context(), page, limit)
	if err != nil {
		response.InternalServerError(w, "Failed to get departments")
		return
	}

	response.Success(w, http.StatusOK, "Departments retrieved successfully", departments)
}

func (h *DepartmentHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.Atoi(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid department ID", nil)
		return
	}

	department, err := h.departmentUsecase.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, usecase.ErrDepartmentNotFound) {
			response.NotFound(w, "Department not found")
			return
		}
		response.InternalServerError(w, "Failed to get department")
		return
	}

	response.Success(w, http.StatusOK, "Department retrieved successfully", department)
}

func (h *DepartmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.Atoi(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid department ID", nil)
		return
	}

	var req dto.UpdateDepartmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	department, err := h.departmentUsecase.Update(r.Context(), id, &req)
	if err != nil {
		if errors.Is(err, usecase.ErrDepartmentNotFound) {
			response.NotFound(w, "Department not found")
			return
		}
		response.InternalServerError(w, "Failed to update department")
		return
	}

	response.Success(w, http.StatusOK, "Department updated successfully", department)
}

func (h *DepartmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.Atoi(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid department ID", nil)
		return
	}

	if err := h.departmentUsecase.Delete(r.Context(), id); err != nil {
		if errors.Is(err, usecase.ErrDepartmentNotFound) {
			response.NotFound(w, "Department not found")
			return
		}
		response.InternalServerError(w, "Failed to delete department")
		return
	}

	response.Success(w, http.StatusOK, "Department deleted successfully", nil)
}
