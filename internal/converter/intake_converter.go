package converter

import (
	"github.com/amnatp/taiyim/internal/delivery/dto"
	"github.com/amnatp/taiyim/internal/domain/entity"
)

func EntryToResponse(e entity.IntakeEntry) dto.EntryResponse {
	return dto.EntryResponse{
		FoodID:        e.FoodID,
		Name:          e.Name,
		Quantity:      e.Quantity,
		ProteinG:      e.ProteinPerServing,
		SodiumMg:      e.SodiumPerServing,
		Timestamp:     e.Timestamp,
		Source:        e.Source,
		TotalProteinG: float64(e.Quantity) * e.ProteinPerServing,
		TotalSodiumMg: float64(e.Quantity) * e.SodiumPerServing,
	}
}

func DayToResponse(rec entity.DayRecord) *dto.DayResponse {
	res := &dto.DayResponse{
		Date:          rec.Date,
		ProteinLimitG: rec.ProteinLimitG,
		SodiumLimitMg: rec.SodiumLimitMg,
		Entries:       make([]dto.EntryResponse, 0, len(rec.Entries)),
	}
	for _, e := range rec.Entries {
		er := EntryToResponse(e)
		res.Entries = append(res.Entries, er)
		res.TotalProteinG += er.TotalProteinG
		res.TotalSodiumMg += er.TotalSodiumMg
	}
	return res
}

func IntakeLogToResponse(log entity.IntakeLog) *dto.IntakeLogResponse {
	res := &dto.IntakeLogResponse{Days: make([]dto.DayResponse, 0, len(log.Days))}
	for _, day := range log.Days {
		res.Days = append(res.Days, *DayToResponse(day))
	}
	return res
}
