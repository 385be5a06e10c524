// Package service holds the target engine: pure, total functions mapping
// profile attributes to per-day nutrient targets and a renal-function
// estimate. Nothing here returns an error; target display must never block
// on malformed profile input, so each function yields a best-effort number
// or nil.
package service

import (
	"math"
	"time"

	"github.com/amnatp/taiyim/internal/domain/entity"
)

// stageRule holds the CKD-stage multipliers applied to the protein range and
// the stage ceiling for sodium (0 = uncapped).
type stageRule struct {
	proteinMin float64
	proteinMax float64
	sodiumCap  float64
}

var stageRules = map[string]stageRule{
	entity.StageTwo:   {proteinMin: 1.00, proteinMax: 1.40},
	entity.StageThree: {proteinMin: 1.00, proteinMax: 1.20, sodiumCap: 3000},
	entity.StageFour:  {proteinMin: 1.00, proteinMax: 1.00, sodiumCap: 2000},
	entity.StageFive:  {proteinMin: 1.20, proteinMax: 1.40, sodiumCap: 2000},
}

// ProteinRangePerKg returns the age-banded protein range in g/kg/day. A nil
// age falls into the adolescent band.
func ProteinRangePerKg(age *float64) (float64, float64) {
	a := 14.0
	if age != nil {
		a = *age
	}
	switch {
	case a <= 0.9:
		return 1.1, 1.57
	case a <= 1.1:
		return 0.9, 1.21
	case a <= 3:
		return 0.9, 1.21
	case a <= 6:
		return 0.85, 1.03
	case a <= 12:
		return 0.9, 1.09
	case a <= 14:
		return 0.8, 1.07
	default:
		return 0.8, 1.02
	}
}

// proteinBaseline is the absolute age-banded fallback in g/day, used when no
// weight is known.
func proteinBaseline(age *float64) float64 {
	if age == nil {
		return 30
	}
	switch a := *age; {
	case a < 1:
		return 11
	case a <= 3:
		return 13
	case a <= 6:
		return 19
	case a <= 12:
		return 34
	case a <= 14:
		return 46
	default:
		return 50
	}
}

// ProteinTargets computes the per-day protein range in g/day for the given
// age, weight and CKD stage. Weight-based when weight is known, otherwise the
// absolute baseline; both ends are scaled by the stage multipliers and
// rounded to one decimal. An unknown stage uses the stage 2 rule.
func ProteinTargets(age, weightKg *float64, ckdStage string) (float64, float64) {
	rule := stageRules[entity.NormalizeStage(ckdStage)]
	if weightKg != nil && *weightKg > 0 {
		lo, hi := ProteinRangePerKg(age)
		return Round1(*weightKg * lo * rule.proteinMin), Round1(*weightKg * hi * rule.proteinMax)
	}
	baseline := proteinBaseline(age)
	return Round1(baseline * rule.proteinMin), Round1(baseline * rule.proteinMax)
}

// SodiumRange returns the age-banded sodium reference range in mg/day.
func SodiumRange(age *float64) (float64, float64) {
	if age == nil {
		return 500, 1500
	}
	switch a := *age; {
	case a < 1:
		return 175, 550
	case a <= 3:
		return 225, 675
	case a <= 5:
		return 300, 900
	case a <= 8:
		return 325, 950
	case a <= 12:
		return 400, 1175
	case a <= 15:
		return 500, 1500
	default:
		return 525, 1600
	}
}

// SodiumTarget computes the per-day sodium ceiling in mg/day: the age band's
// upper bound for stage 2, replaced by the stage ceiling for stages 3-5.
func SodiumTarget(age *float64, ckdStage string) float64 {
	rule := stageRules[entity.NormalizeStage(ckdStage)]
	if rule.sodiumCap > 0 {
		return rule.sodiumCap
	}
	_, hi := SodiumRange(age)
	return hi
}

// ComputeTargets bundles the protein range and sodium ceiling for a profile.
func ComputeTargets(age, weightKg *float64, ckdStage string) entity.Targets {
	lo, hi := ProteinTargets(age, weightKg, ckdStage)
	return entity.Targets{
		ProteinMinG: lo,
		ProteinMaxG: hi,
		SodiumMaxMg: SodiumTarget(age, ckdStage),
	}
}

// EstimateEGFR computes a bedside Schwartz-style eGFR (mL/min/1.73m2) from
// height in cm and serum creatinine in mg/dL. This is a simplified screening
// estimate, not a clinical-grade formula. Returns nil when height or
// creatinine is missing or non-positive.
func EstimateEGFR(age, heightCm, serumCreatinine *float64, sex string) *float64 {
	if heightCm == nil || serumCreatinine == nil || *heightCm <= 0 || *serumCreatinine <= 0 {
		return nil
	}
	k := 0.413
	if age != nil {
		switch {
		case *age < 1:
			k = 0.45
		case *age <= 13:
			k = 0.55
		case sex == entity.SexMale:
			k = 0.70
		default:
			k = 0.55
		}
	}
	egfr := Round1(k * *heightCm / *serumCreatinine)
	return &egfr
}

// AgeFromDOB derives the whole-year age at now from a DateLayout birth date.
// Returns nil on a malformed date.
func AgeFromDOB(dob string, now time.Time) *float64 {
	if dob == "" {
		return nil
	}
	born, err := time.Parse(entity.DateLayout, dob)
	if err != nil {
		return nil
	}
	years := now.Year() - born.Year()
	if now.Month() < born.Month() || (now.Month() == born.Month() && now.Day() < born.Day()) {
		years--
	}
	age := float64(years)
	return &age
}

// Round1 rounds to one decimal place.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Round2 rounds to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
