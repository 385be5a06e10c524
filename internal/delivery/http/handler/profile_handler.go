package handler

import (
	"encoding/json"
	"net/http"

	"github.com/amnatp/taiyim/internal/converter"
	"github.com/amnatp/taiyim/internal/delivery/dto"
	"github.com/amnatp/taiyim/internal/usecase"
	"github.com/amnatp/taiyim/pkg/response"
	"github.com/amnatp/taiyim/pkg/validator"
)

type ProfileHandler struct {
	profileUsecase usecase.ProfileUsecase
	validator      *validator.CustomValidator
}

func NewProfileHandler(profileUsecase usecase.ProfileUsecase, validator *validator.CustomValidator) *ProfileHandler {
	return &ProfileHandler{
		profileUsecase: profileUsecase,
		validator:      validator,
	}
}

func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	profile := h.profileUsecase.Current()
	response.Success(w, http.StatusOK, "", converter.ProfileToResponse(profile))
}

func (h *ProfileHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req dto.ProfileUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	saved := h.profileUsecase.Save(converter.ProfileFromRequest(&req))
	response.Success(w, http.StatusOK, "Profile saved", converter.ProfileToResponse(saved))
}
