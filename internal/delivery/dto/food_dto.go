package dto

type ImageFocusRequest struct {
	X float64 `json:"x" validate:"gte=0,lte=100"`
	Y float64 `json:"y" validate:"gte=0,lte=100"`
}

type FoodCreateRequest struct {
	ID         string             `json:"id" validate:"max=100"`
	Name       string             `json:"name" validate:"required,max=200"`
	Category   string             `json:"cat" validate:"max=100"`
	Protein    *float64           `json:"protein" validate:"omitempty,gte=0"`
	Sodium     *float64           `json:"sodium" validate:"omitempty,gte=0"`
	Image      string             `json:"image" validate:"max=500"`
	ImageFocus *ImageFocusRequest `json:"image_focus"`
}

// FoodUpdateRequest is a device-local override; every field is optional.
type FoodUpdateRequest struct {
	Name       string             `json:"name" validate:"max=200"`
	Category   string             `json:"cat" validate:"max=100"`
	Protein    *float64           `json:"protein" validate:"omitempty,gte=0"`
	Sodium     *float64           `json:"sodium" validate:"omitempty,gte=0"`
	Image      string             `json:"image" validate:"max=500"`
	ImageFocus *ImageFocusRequest `json:"image_focus"`
}

type ImageFocusResponse struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type FoodResponse struct {
	ID         string              `json:"id"`
	Name       string              `json:"name"`
	Category   string              `json:"cat,omitempty"`
	Protein    float64             `json:"protein"`
	Sodium     float64             `json:"sodium"`
	Image      string              `json:"image,omitempty"`
	ImageFocus *ImageFocusResponse `json:"image_focus,omitempty"`
	Source     string              `json:"source"`
}
