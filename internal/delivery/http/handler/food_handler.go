package handler

import (
	"encoding/json"
	"net/http"

	"github.com/amnatp/taiyim/internal/converter"
	"github.com/amnatp/taiyim/internal/delivery/dto"
	"github.com/amnatp/taiyim/internal/usecase"
	"github.com/amnatp/taiyim/pkg/response"
	"github.com/amnatp/taiyim/pkg/validator"

	"github.com/gorilla/mux"
)

type FoodHandler struct {
	catalogUsecase usecase.CatalogUsecase
	validator      *validator.CustomValidator
}

func NewFoodHandler(catalogUsecase usecase.CatalogUsecase, validator *validator.CustomValidator) *FoodHandler {
	return &FoodHandler{
		catalogUsecase: catalogUsecase,
		validator:      validator,
	}
}

func (h *FoodHandler) GetFoods(w http.ResponseWriter, r *http.Request) {
	response.Success(w, http.StatusOK, "", converter.FoodsToResponse(h.catalogUsecase.Items()))
}

func (h *FoodHandler) CreateFood(w http.ResponseWriter, r *http.Request) {
	var req dto.FoodCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	stored := h.catalogUsecase.AddFood(r.Context(), converter.FoodFromCreateRequest(&req))
	response.Success(w, http.StatusCreated, "Food added", converter.FoodToResponse(stored))
}

func (h *FoodHandler) UpdateFood(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req dto.FoodUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	updated, err := h.catalogUsecase.UpdateFood(id, converter.FoodFromUpdateRequest(&req))
	if err != nil {
		switch err {
		case usecase.ErrFoodNotFound:
			response.NotFound(w, "Food item not found")
		default:
			response.InternalServerError(w, "Failed to update food item")
		}
		return
	}

	response.Success(w, http.StatusOK, "Food updated", converter.FoodToResponse(updated))
}
