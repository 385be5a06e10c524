package dto

// ProfileUpdateRequest replaces the stored profile wholesale. Missing numeric
// fields stay nil rather than being rejected.
type ProfileUpdateRequest struct {
	Name            string   `json:"name" validate:"max=100"`
	Age             *float64 `json:"age" validate:"omitempty,gte=0,lte=120"`
	WeightKg        *float64 `json:"weight" validate:"omitempty,gte=0,lte=300"`
	Sex             string   `json:"sex" validate:"omitempty,oneof=male female"`
	CKDStage        string   `json:"ckd" validate:"omitempty,oneof=2 3 4 5"`
	DOB             string   `json:"dob" validate:"omitempty,datetime=2006-01-02"`
	HeightCm        *float64 `json:"height" validate:"omitempty,gte=0,lte=250"`
	SerumCreatinine *float64 `json:"scr" validate:"omitempty,gte=0"`
	Diagnosis       string   `json:"diagnosis" validate:"max=500"`
	Notes           string   `json:"notes" validate:"max=2000"`
}

type TargetsResponse struct {
	ProteinMinG float64 `json:"protein_min"`
	ProteinMaxG float64 `json:"protein_max"`
	SodiumMaxMg float64 `json:"sodium_max"`
}

type ProfileResponse struct {
	Name            string           `json:"name"`
	Age             *float64         `json:"age"`
	WeightKg        *float64         `json:"weight"`
	Sex             string           `json:"sex,omitempty"`
	CKDStage        string           `json:"ckd"`
	DOB             string           `json:"dob,omitempty"`
	HeightCm        *float64         `json:"height,omitempty"`
	SerumCreatinine *float64         `json:"scr,omitempty"`
	EGFR            *float64         `json:"egfr,omitempty"`
	Targets         *TargetsResponse `json:"targets,omitempty"`
	Diagnosis       string           `json:"diagnosis,omitempty"`
	Notes           string           `json:"notes,omitempty"`
}
