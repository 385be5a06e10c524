package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/amnatp/taiyim/internal/converter"
	"github.com/amnatp/taiyim/internal/delivery/dto"
	"github.com/amnatp/taiyim/internal/domain/entity"
	"github.com/amnatp/taiyim/internal/usecase"
	"github.com/amnatp/taiyim/pkg/response"
	"github.com/amnatp/taiyim/pkg/validator"

	"github.com/gorilla/mux"
)

type IntakeHandler struct {
	intakeUsecase  usecase.IntakeUsecase
	catalogUsecase usecase.CatalogUsecase
	validator      *validator.CustomValidator
}

func NewIntakeHandler(intakeUsecase usecase.IntakeUsecase, catalogUsecase usecase.CatalogUsecase, validator *validator.CustomValidator) *IntakeHandler {
	return &IntakeHandler{
		intakeUsecase:  intakeUsecase,
		catalogUsecase: catalogUsecase,
		validator:      validator,
	}
}

func (h *IntakeHandler) GetToday(w http.ResponseWriter, r *http.Request) {
	response.Success(w, http.StatusOK, "", converter.DayToResponse(h.intakeUsecase.Today()))
}

func (h *IntakeHandler) AppendEntry(w http.ResponseWriter, r *http.Request) {
	var req dto.EntryCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	entry := entity.IntakeEntry{
		FoodID:   req.FoodID,
		Name:     req.Name,
		Quantity: req.Quantity,
	}
	if req.Protein != nil {
		entry.ProteinPerServing = *req.Protein
	}
	if req.Sodium != nil {
		entry.SodiumPerServing = *req.Sodium
	}
	// A catalog id fills in whatever the request left out.
	if req.FoodID != "" {
		item, ok := h.catalogUsecase.Find(req.FoodID)
		if !ok {
			response.NotFound(w, "Food item not found")
			return
		}
		if entry.Name == "" {
			entry.Name = item.Name
		}
		if req.Protein == nil {
			entry.ProteinPerServing = item.ProteinPerServing
		}
		if req.Sodium == nil {
			entry.SodiumPerServing = item.SodiumPerServing
		}
		entry.Source = item.Source
	}

	stored := h.intakeUsecase.AppendEntry(entry)
	response.Success(w, http.StatusCreated, "Entry added", converter.EntryToResponse(stored))
}

func (h *IntakeHandler) AdjustQuantity(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(mux.Vars(r)["index"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid entry index", nil)
		return
	}

	var req dto.QuantityAdjustRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	if err := h.intakeUsecase.AdjustQuantity(index, req.Delta); err != nil {
		response.NotFound(w, "Entry not found")
		return
	}

	response.Success(w, http.StatusOK, "Quantity adjusted", converter.DayToResponse(h.intakeUsecase.Today()))
}

func (h *IntakeHandler) RemoveEntry(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(mux.Vars(r)["index"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid entry index", nil)
		return
	}

	if err := h.intakeUsecase.RemoveEntry(index); err != nil {
		response.NotFound(w, "Entry not found")
		return
	}

	response.Success(w, http.StatusOK, "Entry removed", converter.DayToResponse(h.intakeUsecase.Today()))
}

func (h *IntakeHandler) ClearToday(w http.ResponseWriter, r *http.Request) {
	h.intakeUsecase.ClearToday()
	response.Success(w, http.StatusOK, "Today's log cleared", converter.DayToResponse(h.intakeUsecase.Today()))
}

func (h *IntakeHandler) GetLog(w http.ResponseWriter, r *http.Request) {
	response.Success(w, http.StatusOK, "", converter.IntakeLogToResponse(h.intakeUsecase.Log()))
}

func (h *IntakeHandler) GetDay(w http.ResponseWriter, r *http.Request) {
	date := mux.Vars(r)["date"]
	if _, err := time.Parse(entity.DateLayout, date); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD", nil)
		return
	}

	response.Success(w, http.StatusOK, "", converter.DayToResponse(h.intakeUsecase.GetDayRecord(date)))
}

func (h *IntakeHandler) Migrate(w http.ResponseWriter, r *http.Request) {
	if err := h.intakeUsecase.MigrateLegacyToUnified(r.Context()); err != nil {
		response.InternalServerError(w, "Migration failed")
		return
	}
	response.Success(w, http.StatusOK, "Legacy records migrated", converter.IntakeLogToResponse(h.intakeUsecase.Log()))
}

func (h *IntakeHandler) GenerateDummy(w http.ResponseWriter, r *http.Request) {
	var req dto.DummyHistoryRequest
	if r.Body != nil {
		// An empty body means defaults.
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	if err := h.intakeUsecase.GenerateDummyHistory(r.Context(), h.catalogUsecase.Items(), req.Days, req.PerDay); err != nil {
		response.InternalServerError(w, "Failed to generate history")
		return
	}
	response.Success(w, http.StatusOK, "Dummy history generated", converter.IntakeLogToResponse(h.intakeUsecase.Log()))
}
