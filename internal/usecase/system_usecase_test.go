package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/amnatp/taiyim/internal/domain/entity"
	"github.com/amnatp/taiyim/internal/infrastructure/storage"
	"github.com/amnatp/taiyim/internal/repository"
)

func TestResetClearsEverything(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewKeyValueRepository(storage.NewMemory(), nil, testLogger())
	profiles := NewProfileUsecase(repo, testLogger())
	intakes := NewIntakeUsecase(repo, profiles, testLogger())
	intakes.(*intakeUsecase).now = func() time.Time {
		return time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	}
	client := &fakeCatalogClient{items: []entity.FoodItem{{ID: "rice", Name: "Rice", ProteinPerServing: 2, SodiumPerServing: 2}}}
	catalog := NewCatalogUsecase(repo, client, testLogger())
	catalog.Reload(ctx)

	profiles.Save(entity.Profile{Name: "Nok", Age: fptr(9)})
	intakes.AppendEntry(entity.IntakeEntry{Name: "Rice", Quantity: 1})
	catalog.UpdateFood("rice", entity.FoodItem{Name: "Edited rice", ProteinPerServing: 3})

	system := NewSystemUsecase(repo, profiles, intakes, catalog, testLogger())
	if err := system.Reset(ctx); err != nil {
		t.Fatalf("reset failed: %v", err)
	}

	if p := profiles.Current(); p.Name != "" {
		t.Fatalf("profile not reset: %+v", p)
	}
	if entries := intakes.TodayEntries(); len(entries) != 0 {
		t.Fatalf("today's log not reset: %+v", entries)
	}
	if len(repo.Keys()) != 0 {
		t.Fatalf("store not emptied: %v", repo.Keys())
	}
	// The local catalog override is gone; the plain server item is back.
	item, ok := catalog.Find("rice")
	if !ok || item.Name != "Rice" || item.Source != entity.SourceServer {
		t.Fatalf("expected the server item after reset, got %+v", item)
	}
}
