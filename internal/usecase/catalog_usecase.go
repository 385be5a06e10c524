package usecase

import (
	"context"
	"errors"
	"sync"

	"github.com/amnatp/taiyim/internal/domain/entity"
	domainRepo "github.com/amnatp/taiyim/internal/domain/repository"
	"github.com/amnatp/taiyim/internal/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var ErrFoodNotFound = errors.New("food item not found")

// CatalogClient is the server catalog endpoint: a list fetch and an
// opportunistic append. Both calls may fail; the usecase always has a local
// fallback.
type CatalogClient interface {
	Fetch(ctx context.Context) ([]entity.FoodItem, error)
	Append(ctx context.Context, item entity.FoodItem) (entity.FoodItem, error)
}

type CatalogUsecase interface {
	// Reload rebuilds the session catalog: server fetch (builtin fallback
	// on failure) overlaid with persisted local edits. Called once at
	// startup and after a reset.
	Reload(ctx context.Context)
	// Items returns the merged session view.
	Items() []entity.FoodItem
	// Find returns the merged item with the given id.
	Find(id string) (entity.FoodItem, bool)
	// AddFood appends a new item: to the server when reachable, otherwise
	// as a device-local item. Returns the stored item.
	AddFood(ctx context.Context, item entity.FoodItem) entity.FoodItem
	// UpdateFood records a device-local override of the item with the given
	// id. The override is never pushed back to the server.
	UpdateFood(id string, patch entity.FoodItem) (entity.FoodItem, error)
}

type catalogUsecase struct {
	repo   domainRepo.KeyValueRepository
	client CatalogClient
	log    *logrus.Logger

	mu     sync.RWMutex
	server []entity.FoodItem
	merged []entity.FoodItem
}

func NewCatalogUsecase(repo domainRepo.KeyValueRepository, client CatalogClient, log *logrus.Logger) CatalogUsecase {
	return &catalogUsecase{repo: repo, client: client, log: log}
}

// fallbackCatalog keeps the UI from ever showing zero items when the server
// is unreachable.
func fallbackCatalog() []entity.FoodItem {
	return []entity.FoodItem{
		{ID: "rice", Name: "ข้าวสวย 1 ทัพพี", Category: "อาหารจานหลัก", ProteinPerServing: 2.0, SodiumPerServing: 2, Source: entity.SourceServer},
		{ID: "chicken_boil", Name: "ไก่ต้ม 50 กรัม", Category: "อาหารจานหลัก", ProteinPerServing: 11.0, SodiumPerServing: 50, Source: entity.SourceServer},
	}
}

// MergeCatalog overlays device-local edits onto the server list by id. Local
// fields win on collision, server fields absent locally are retained, and
// local-only items are appended after the server order. Pure: neither input
// is mutated.
func MergeCatalog(server, local []entity.FoodItem) []entity.FoodItem {
	index := make(map[string]int, len(server))
	out := make([]entity.FoodItem, 0, len(server)+len(local))
	for _, it := range server {
		if it.Source == "" {
			it.Source = entity.SourceServer
		}
		index[it.ID] = len(out)
		out = append(out, it)
	}
	for _, l := range local {
		if i, ok := index[l.ID]; ok {
			out[i] = overlayItem(out[i], l)
			continue
		}
		if l.Source == "" {
			l.Source = entity.SourceLocal
		}
		index[l.ID] = len(out)
		out = append(out, l)
	}
	return out
}

// overlayItem applies the local edit field-wise onto the server item. Empty
// local strings mean "not edited"; the nutrient numbers always come from the
// edit because a stored edit carries them in full.
func overlayItem(base, edit entity.FoodItem) entity.FoodItem {
	if edit.Name != "" {
		base.Name = edit.Name
	}
	if edit.Category != "" {
		base.Category = edit.Category
	}
	if edit.Image != "" {
		base.Image = edit.Image
	}
	if edit.ImageFocus != nil {
		base.ImageFocus = edit.ImageFocus
	}
	base.ProteinPerServing = edit.ProteinPerServing
	base.SodiumPerServing = edit.SodiumPerServing
	if edit.Source != "" {
		base.Source = edit.Source
	} else {
		base.Source = entity.SourceLocal
	}
	return base
}

func (u *catalogUsecase) Reload(ctx context.Context) {
	server, err := u.client.Fetch(ctx)
	if err != nil || len(server) == 0 {
		if err != nil {
			u.log.Warnf("Catalog fetch failed, using builtin fallback: %v", err)
		}
		server = fallbackCatalog()
	}
	for i := range server {
		if server[i].Source == "" {
			server[i].Source = entity.SourceServer
		}
	}

	u.mu.Lock()
	defer u.mu.Unlock()
	u.server = server
	u.merged = MergeCatalog(u.server, u.localEdits())
}

// localEdits loads the persisted device-local catalog edits.
func (u *catalogUsecase) localEdits() []entity.FoodItem {
	var local []entity.FoodItem
	u.repo.LoadJSON(repository.KeyFoodsLocal, &local)
	return local
}

func (u *catalogUsecase) Items() []entity.FoodItem {
	u.mu.RLock()
	defer u.mu.RUnlock()
	out := make([]entity.FoodItem, len(u.merged))
	copy(out, u.merged)
	return out
}

func (u *catalogUsecase) Find(id string) (entity.FoodItem, bool) {
	u.mu.RLock()
	defer u.mu.RUnlock()
	for _, it := range u.merged {
		if it.ID == id {
			return it, true
		}
	}
	return entity.FoodItem{}, false
}

func (u *catalogUsecase) AddFood(ctx context.Context, item entity.FoodItem) entity.FoodItem {
	stored, err := u.client.Append(ctx, item)
	if err == nil {
		stored.Source = entity.SourceServer
		u.mu.Lock()
		u.server = append(u.server, stored)
		u.merged = MergeCatalog(u.server, u.localEdits())
		u.mu.Unlock()
		return stored
	}

	u.log.Warnf("Catalog append failed, keeping item device-local: %v", err)
	if item.ID == "" {
		item.ID = "u_" + uuid.NewString()
	}
	item.Source = entity.SourceLocal
	u.saveLocalEdit(item)
	return item
}

func (u *catalogUsecase) UpdateFood(id string, patch entity.FoodItem) (entity.FoodItem, error) {
	base, ok := u.Find(id)
	if !ok {
		return entity.FoodItem{}, ErrFoodNotFound
	}
	patch.ID = id
	edited := overlayItem(base, patch)
	u.saveLocalEdit(edited)
	return edited, nil
}

// saveLocalEdit upserts the item into the persisted local edits (by id) and
// rebuilds the merged view.
func (u *catalogUsecase) saveLocalEdit(item entity.FoodItem) {
	u.mu.Lock()
	defer u.mu.Unlock()
	local := u.localEdits()
	replaced := false
	for i := range local {
		if local[i].ID == item.ID {
			local[i] = item
			replaced = true
			break
		}
	}
	if !replaced {
		local = append(local, item)
	}
	u.repo.SaveJSON(repository.KeyFoodsLocal, local)
	u.merged = MergeCatalog(u.server, local)
}
