package converter

import (
	"github.com/amnatp/taiyim/internal/delivery/dto"
	"github.com/amnatp/taiyim/internal/domain/entity"
)

func FoodFromCreateRequest(req *dto.FoodCreateRequest) entity.FoodItem {
	item := entity.FoodItem{
		ID:       req.ID,
		Name:     req.Name,
		Category: req.Category,
		Image:    req.Image,
	}
	if req.Protein != nil {
		item.ProteinPerServing = *req.Protein
	}
	if req.Sodium != nil {
		item.SodiumPerServing = *req.Sodium
	}
	if req.ImageFocus != nil {
		item.ImageFocus = &entity.ImageFocus{X: req.ImageFocus.X, Y: req.ImageFocus.Y}
	}
	return item
}

func FoodFromUpdateRequest(req *dto.FoodUpdateRequest) entity.FoodItem {
	item := entity.FoodItem{
		Name:     req.Name,
		Category: req.Category,
		Image:    req.Image,
	}
	if req.Protein != nil {
		item.ProteinPerServing = *req.Protein
	}
	if req.Sodium != nil {
		item.SodiumPerServing = *req.Sodium
	}
	if req.ImageFocus != nil {
		item.ImageFocus = &entity.ImageFocus{X: req.ImageFocus.X, Y: req.ImageFocus.Y}
	}
	return item
}

func FoodToResponse(item entity.FoodItem) *dto.FoodResponse {
	res := &dto.FoodResponse{
		ID:       item.ID,
		Name:     item.Name,
		Category: item.Category,
		Protein:  item.ProteinPerServing,
		Sodium:   item.SodiumPerServing,
		Image:    item.Image,
		Source:   item.Source,
	}
	if item.ImageFocus != nil {
		res.ImageFocus = &dto.ImageFocusResponse{X: item.ImageFocus.X, Y: item.ImageFocus.Y}
	}
	return res
}

func FoodsToResponse(items []entity.FoodItem) []*dto.FoodResponse {
	out := make([]*dto.FoodResponse, 0, len(items))
	for _, item := range items {
		out = append(out, FoodToResponse(item))
	}
	return out
}
