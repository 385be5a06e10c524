package usecase

import (
	"context"
	"encoding/json"

	domainRepo "github.com/amnatp/taiyim/internal/domain/repository"

	"github.com/sirupsen/logrus"
)

// ExportRow is one flattened line of a day's intake, ready for the CSV
// exporter. Formatting stays with the exporter; this layer only supplies
// values.
type ExportRow struct {
	Date              string  `json:"date"`
	Name              string  `json:"name"`
	Quantity          int     `json:"qty"`
	ProteinPerServing float64 `json:"protein_g"`
	SodiumPerServing  float64 `json:"sodium_mg"`
	TotalProteinG     float64 `json:"total_protein_g"`
	TotalSodiumMg     float64 `json:"total_sodium_mg"`
}

type ExportUsecase interface {
	// DumpAll returns every persisted key with its value parsed to JSON
	// where possible (the raw string otherwise), for the JSON export.
	DumpAll(ctx context.Context) (map[string]any, error)
	// DayRows flattens one date's entries for the CSV export.
	DayRows(date string) []ExportRow
}

type exportUsecase struct {
	repo    domainRepo.KeyValueRepository
	intakes IntakeUsecase
	log     *logrus.Logger
}

func NewExportUsecase(repo domainRepo.KeyValueRepository, intakes IntakeUsecase, log *logrus.Logger) ExportUsecase {
	return &exportUsecase{repo: repo, intakes: intakes, log: log}
}

func (u *exportUsecase) DumpAll(ctx context.Context) (map[string]any, error) {
	raw, err := u.repo.DumpAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string]any, len(raw))
	for k, v := range raw {
		var parsed any
		if err := json.Unmarshal([]byte(v), &parsed); err != nil {
			out[k] = v
			continue
		}
		out[k] = parsed
	}
	return out, nil
}

func (u *exportUsecase) DayRows(date string) []ExportRow {
	entries := u.intakes.GetEntriesForDate(date)
	rows := make([]ExportRow, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, ExportRow{
			Date:              date,
			Name:              e.Name,
			Quantity:          e.Quantity,
			ProteinPerServing: e.ProteinPerServing,
			SodiumPerServing:  e.SodiumPerServing,
			TotalProteinG:     float64(e.Quantity) * e.ProteinPerServing,
			TotalSodiumMg:     float64(e.Quantity) * e.SodiumPerServing,
		})
	}
	return rows
}
