package handler

import (
	"net/http"

	"github.com/amnatp/taiyim/internal/usecase"
	"github.com/amnatp/taiyim/pkg/response"
)

type SystemHandler struct {
	systemUsecase usecase.SystemUsecase
}

func NewSystemHandler(systemUsecase usecase.SystemUsecase) *SystemHandler {
	return &SystemHandler{systemUsecase: systemUsecase}
}

// Reset wipes both storage mediums and reinitializes the session. It is the
// one operation that waits for the durable medium before replying.
func (h *SystemHandler) Reset(w http.ResponseWriter, r *http.Request) {
	if err := h.systemUsecase.Reset(r.Context()); err != nil {
		response.InternalServerError(w, "Reset failed")
		return
	}
	response.Success(w, http.StatusOK, "All data cleared", nil)
}
