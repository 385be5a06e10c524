package entity

// Profile holds the child's demographic and clinical attributes together with
// the derived nutrient targets. It is owned by the current device and is
// overwritten wholesale on every save.
type Profile struct {
	Name            string   `json:"name"`
	Age             *float64 `json:"age"`
	WeightKg        *float64 `json:"weight"`
	Sex             string   `json:"sex,omitempty"`
	CKDStage        string   `json:"ckd"`
	DOB             string   `json:"dob,omitempty"`
	HeightCm        *float64 `json:"height,omitempty"`
	SerumCreatinine *float64 `json:"scr,omitempty"`
	EGFR            *float64 `json:"egfr,omitempty"`
	Targets         *Targets `json:"targets,omitempty"`
	Diagnosis       string   `json:"diagnosis,omitempty"`
	Notes           string   `json:"notes,omitempty"`
}

// Targets is the per-day nutrient envelope derived from age, weight and CKD
// stage.
type Targets struct {
	ProteinMinG float64 `json:"protein_min"`
	ProteinMaxG float64 `json:"protein_max"`
	SodiumMaxMg float64 `json:"sodium_max"`
}

// Sex constants
const (
	SexMale   = "male"
	SexFemale = "female"
)

// CKD stage constants
const (
	StageTwo   = "2"
	StageThree = "3"
	StageFour  = "4"
	StageFive  = "5"
)

// DefaultProfile is the first-run profile before the user has saved anything.
func DefaultProfile() Profile {
	return Profile{CKDStage: StageTwo}
}

// NormalizeStage resolves any stored stage value to one of the four known
// stages, defaulting to stage 2 when absent or unrecognized.
func NormalizeStage(stage string) string {
	switch stage {
	case StageTwo, StageThree, StageFour, StageFive:
		return stage
	default:
		return StageTwo
	}
}
