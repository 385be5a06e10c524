package converter

import (
	"github.com/amnatp/taiyim/internal/delivery/dto"
	"github.com/amnatp/taiyim/internal/domain/entity"
)

func ProfileFromRequest(req *dto.ProfileUpdateRequest) entity.Profile {
	return entity.Profile{
		Name:            req.Name,
		Age:             req.Age,
		WeightKg:        req.WeightKg,
		Sex:             req.Sex,
		CKDStage:        req.CKDStage,
		DOB:             req.DOB,
		HeightCm:        req.HeightCm,
		SerumCreatinine: req.SerumCreatinine,
		Diagnosis:       req.Diagnosis,
		Notes:           req.Notes,
	}
}

func ProfileToResponse(p entity.Profile) *dto.ProfileResponse {
	res := &dto.ProfileResponse{
		Name:            p.Name,
		Age:             p.Age,
		WeightKg:        p.WeightKg,
		Sex:             p.Sex,
		CKDStage:        p.CKDStage,
		DOB:             p.DOB,
		HeightCm:        p.HeightCm,
		SerumCreatinine: p.SerumCreatinine,
		EGFR:            p.EGFR,
		Diagnosis:       p.Diagnosis,
		Notes:           p.Notes,
	}
	if p.Targets != nil {
		res.Targets = &dto.TargetsResponse{
			ProteinMinG: p.Targets.ProteinMinG,
			ProteinMaxG: p.Targets.ProteinMaxG,
			SodiumMaxMg: p.Targets.SodiumMaxMg,
		}
	}
	return res
}
