package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/amnatp/taiyim/internal/domain/entity"
	"github.com/amnatp/taiyim/internal/usecase"
	"github.com/amnatp/taiyim/pkg/response"
)

type ExportHandler struct {
	exportUsecase usecase.ExportUsecase
	intakeUsecase usecase.IntakeUsecase
}

func NewExportHandler(exportUsecase usecase.ExportUsecase, intakeUsecase usecase.IntakeUsecase) *ExportHandler {
	return &ExportHandler{
		exportUsecase: exportUsecase,
		intakeUsecase: intakeUsecase,
	}
}

// DumpJSON returns every persisted key as one JSON document.
func (h *ExportHandler) DumpJSON(w http.ResponseWriter, r *http.Request) {
	dump, err := h.exportUsecase.DumpAll(r.Context())
	if err != nil {
		response.InternalServerError(w, "Export failed")
		return
	}
	response.JSON(w, http.StatusOK, dump)
}

// DumpCSV renders the intake history as CSV, one row per entry. The `date`
// query parameter limits the export to a single day; without it every date
// in the unified log is exported.
func (h *ExportHandler) DumpCSV(w http.ResponseWriter, r *http.Request) {
	var dates []string
	if date := r.URL.Query().Get("date"); date != "" {
		if _, err := time.Parse(entity.DateLayout, date); err != nil {
			response.Error(w, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD", nil)
			return
		}
		dates = []string{date}
	} else {
		for _, day := range h.intakeUsecase.Log().Days {
			dates = append(dates, day.Date)
		}
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=taiyim_%s.csv", time.Now().Format(entity.DateLayout)))

	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"date", "name", "qty", "protein_g_per_serving", "sodium_mg_per_serving", "total_protein_g", "total_sodium_mg"})
	for _, date := range dates {
		for _, row := range h.exportUsecase.DayRows(date) {
			_ = cw.Write([]string{
				row.Date,
				row.Name,
				strconv.Itoa(row.Quantity),
				strconv.FormatFloat(row.ProteinPerServing, 'f', -1, 64),
				strconv.FormatFloat(row.SodiumPerServing, 'f', -1, 64),
				strconv.FormatFloat(row.TotalProteinG, 'f', 1, 64),
				strconv.FormatFloat(row.TotalSodiumMg, 'f', -1, 64),
			})
		}
	}
	cw.Flush()
}
