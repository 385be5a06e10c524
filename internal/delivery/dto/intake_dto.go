package dto

// EntryCreateRequest adds one entry to today's log: either by catalog id or
// as a free-form item. Quantity below 1 is coerced, not rejected.
type EntryCreateRequest struct {
	FoodID   string   `json:"food_id" validate:"max=100"`
	Name     string   `json:"name" validate:"required_without=FoodID,max=200"`
	Protein  *float64 `json:"protein" validate:"omitempty,gte=0"`
	Sodium   *float64 `json:"sodium" validate:"omitempty,gte=0"`
	Quantity int      `json:"qty"`
}

type QuantityAdjustRequest struct {
	Delta int `json:"delta" validate:"required"`
}

type DummyHistoryRequest struct {
	Days   int `json:"days" validate:"omitempty,gte=1,lte=365"`
	PerDay int `json:"per_day" validate:"omitempty,gte=1,lte=20"`
}

type EntryResponse struct {
	FoodID        string  `json:"id,omitempty"`
	Name          string  `json:"name"`
	Quantity      int     `json:"qty"`
	ProteinG      float64 `json:"protein_g"`
	SodiumMg      float64 `json:"sodium_mg"`
	Timestamp     string  `json:"ts,omitempty"`
	Source        string  `json:"src,omitempty"`
	TotalProteinG float64 `json:"total_protein_g"`
	TotalSodiumMg float64 `json:"total_sodium_mg"`
}

type DayResponse struct {
	Date          string          `json:"date"`
	ProteinLimitG *float64        `json:"protein_g_limit"`
	SodiumLimitMg *float64        `json:"sodium_mg_limit"`
	Entries       []EntryResponse `json:"intake"`
	TotalProteinG float64         `json:"total_protein_g"`
	TotalSodiumMg float64         `json:"total_sodium_mg"`
}

type IntakeLogResponse struct {
	Days []DayResponse `json:"intakes"`
}
