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

type RuleHandler struct {
	ruleUsecase usecase.RuleUsecase
	validator   *validator.CustomValidator
}

func NewRuleHandler(ruleUsecase usecase.RuleUsecase, validator *validator.CustomValidator) *RuleHandler {
	return &RuleHandler{
		ruleUsecase: ruleUsecase,
		validator:   validator,
	}
}

func (h *RuleHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	var req dto.UpsertRuleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	rule, err := h.ruleUsecase.Upsert(r.Context(), &req)
	if err != nil {
		if errors.Is(err, usecase.ErrDepartmentNotFound) {
			response.NotFound(w, "Department not found")
			return
		}
		response.InternalServerError(w, "Failed to save rule")
		return
	}

	response.Success(w, http.StatusOK, "Rule saved successfully", rule)
}

func (h *RuleHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	rules, err := h.ruleUsecase.GetAll(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get rules")
		return
	}

	response.Success(w, http.StatusOK, "Rules retrieved successfully", rules)
}

func (h *RuleHandler) GetByDepartment(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	departmentID, err := strconv.Atoi(vars["departmentId"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid department ID", nil)
		return
	}

	rule, err := h.ruleUsecase.GetByDepartment(r.Context(), departmentID)
	if err != nil {
		if errors.Is(err, usecase.ErrRuleNotFound) {
			response.NotFound(w, "Rule not found")
			return
		}
		response.InternalServerError(w, "Failed to get rule")
		return
	}

	response.Success(w, http.StatusOK, "Rule retrieved successfully", rule)
}

func (h *RuleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	departmentID, err := strconv.Atoi(vars["departmentId"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid department ID", nil)
		return
	}

	if err := h.ruleUsecase.Delete(r.Context(), departmentID); err != nil {
		if errors.Is(err, usecase.ErrRuleNotFound) {
			response.NotFound(w, "Rule not found")
			return
		}
		response.InternalServerError(w, "Failed to delete rule")
		return
	}

	response.Success(w, http.StatusOK, "Rule deleted successfully", nil)
}
