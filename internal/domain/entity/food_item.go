package entity

// FoodItem is one entry of the food catalog. ID is the merge key between the
// server-provided list and device-local edits. The JSON field names follow
// the catalog wire format.
type FoodItem struct {
	ID                string      `json:"id"`
	Name              string      `json:"name"`
	Category          string      `json:"cat,omitempty"`
	ProteinPerServing float64     `json:"protein"`
	SodiumPerServing  float64     `json:"sodium"`
	Image             string      `json:"image,omitempty"`
	ImageFocus        *ImageFocus `json:"image_focus,omitempty"`
	Source            string      `json:"_source,omitempty"`
}

// ImageFocus is the focal point of a catalog image, in percent of each axis.
type ImageFocus struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Food item sources
const (
	SourceServer = "server"
	SourceLocal  = "local"
)
