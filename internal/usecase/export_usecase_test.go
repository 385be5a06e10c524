package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/amnatp/taiyim/internal/domain/entity"
	"github.com/amnatp/taiyim/internal/repository"
)

func TestDumpAllParsesStoredJSON(t *testing.T) {
	_, repo := newIntakeFixture(t, time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC))
	repo.Save("freeform", "not json")

	export := NewExportUsecase(repo, nil, testLogger())
	dump, err := export.DumpAll(context.Background())
	if err != nil {
		t.Fatalf("dump failed: %v", err)
	}
	profile, ok := dump[repository.KeyProfile].(map[string]any)
	if !ok {
		t.Fatalf("expected profile parsed as an object, got %T", dump[repository.KeyProfile])
	}
	if profile["name"] != "Test" {
		t.Fatalf("unexpected profile dump: %+v", profile)
	}
	if dump["freeform"] != "not json" {
		t.Fatalf("expected the raw string for non-JSON values, got %v", dump["freeform"])
	}
}

func TestDayRowsFlattenEntries(t *testing.T) {
	uc, repo := newIntakeFixture(t, time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC))
	uc.AppendEntry(entity.IntakeEntry{Name: "Soup", ProteinPerServing: 3, SodiumPerServing: 100, Quantity: 2})

	export := NewExportUsecase(repo, uc, testLogger())
	rows := export.DayRows("2024-06-01")
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	r := rows[0]
	if r.Date != "2024-06-01" || r.TotalProteinG != 6 || r.TotalSodiumMg != 200 {
		t.Fatalf("unexpected row: %+v", r)
	}
}

func TestDayRowsEmptyDate(t *testing.T) {
	uc, repo := newIntakeFixture(t, time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC))
	export := NewExportUsecase(repo, uc, testLogger())
	if rows := export.DayRows("1999-01-01"); len(rows) != 0 {
		t.Fatalf("expected no rows, got %+v", rows)
	}
}
