package repository

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/amnatp/taiyim/internal/infrastructure/storage"

	"github.com/sirupsen/logrus"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func newSQLiteRepo(t *testing.T) (*keyValueRepository, *storage.SQLite) {
	t.Helper()
	durable, err := storage.NewSQLite(filepath.Join(t.TempDir(), "kv.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = durable.Close() })
	repo := NewKeyValueRepository(storage.NewMemory(), durable, testLogger())
	return repo.(*keyValueRepository), durable
}

func TestSaveLoadRoundTrip(t *testing.T) {
	repo, _ := newSQLiteRepo(t)
	repo.Save("profile", `{"name":"Nok"}`)
	if got := repo.Load("profile", ""); got != `{"name":"Nok"}` {
		t.Fatalf("unexpected value: %q", got)
	}
}

func TestLoadMissingKeyYieldsDefault(t *testing.T) {
	repo, _ := newSQLiteRepo(t)
	if got := repo.Load("absent", "fallback"); got != "fallback" {
		t.Fatalf("expected default, got %q", got)
	}
}

func TestLoadJSONMalformedLeavesDstUntouched(t *testing.T) {
	repo, _ := newSQLiteRepo(t)
	repo.Save("profile", `{"name":`)
	dst := struct {
		Name string `json:"name"`
	}{Name: "keep"}
	if repo.LoadJSON("profile", &dst) {
		t.Fatalf("expected LoadJSON to report failure")
	}
	if dst.Name != "keep" {
		t.Fatalf("dst mutated on malformed value: %q", dst.Name)
	}
}

func TestSaveJSON(t *testing.T) {
	repo, _ := newSQLiteRepo(t)
	repo.SaveJSON("profile", map[string]string{"name": "Nok"})
	var dst map[string]string
	if !repo.LoadJSON("profile", &dst) {
		t.Fatalf("expected stored JSON")
	}
	if dst["name"] != "Nok" {
		t.Fatalf("unexpected round trip: %+v", dst)
	}
}

func TestSaveReachesDurableMedium(t *testing.T) {
	repo, durable := newSQLiteRepo(t)
	repo.Save("intake_log", `{"intakes":[]}`)
	repo.flush()

	v, ok, err := durable.Get(context.Background(), "intake_log")
	if err != nil || !ok {
		t.Fatalf("durable read failed: ok=%v err=%v", ok, err)
	}
	if v != `{"intakes":[]}` {
		t.Fatalf("unexpected durable value: %q", v)
	}
}

func TestDumpAllFlushesQueuedWrites(t *testing.T) {
	repo, durable := newSQLiteRepo(t)
	for i := 0; i < 20; i++ {
		repo.Save(fmt.Sprintf("key_%d", i), fmt.Sprintf(`{"n":%d}`, i))
	}

	dump, err := repo.DumpAll(context.Background())
	if err != nil {
		t.Fatalf("dump failed: %v", err)
	}
	if len(dump) != 20 {
		t.Fatalf("expected 20 keys in dump, got %d", len(dump))
	}
	// Every single write must land; a burst of saves is the normal shape of
	// one user action, not a corner case.
	for i := 0; i < 20; i++ {
		key := fmt.Sprintf("key_%d", i)
		want := fmt.Sprintf(`{"n":%d}`, i)
		v, ok, err := durable.Get(context.Background(), key)
		if err != nil || !ok || v != want {
			t.Fatalf("durable medium lost %q: ok=%v err=%v got %q want %q", key, ok, err, v, want)
		}
	}
}

func TestLastSavePerKeyWinsDurably(t *testing.T) {
	repo, durable := newSQLiteRepo(t)
	for i := 0; i < 10; i++ {
		repo.Save("profile", fmt.Sprintf(`{"rev":%d}`, i))
	}
	repo.flush()

	v, ok, err := durable.Get(context.Background(), "profile")
	if err != nil || !ok {
		t.Fatalf("durable read failed: ok=%v err=%v", ok, err)
	}
	if v != `{"rev":9}` {
		t.Fatalf("writes applied out of order, got %q", v)
	}
}

func TestConcurrentSavesAllPersist(t *testing.T) {
	repo, durable := newSQLiteRepo(t)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 5; j++ {
				repo.Save(fmt.Sprintf("w%d_k%d", n, j), `{}`)
			}
		}(i)
	}
	wg.Wait()

	dump, err := repo.DumpAll(context.Background())
	if err != nil {
		t.Fatalf("dump failed: %v", err)
	}
	if len(dump) != 40 {
		t.Fatalf("expected 40 keys in dump, got %d", len(dump))
	}
	all, err := durable.All(context.Background())
	if err != nil {
		t.Fatalf("durable scan failed: %v", err)
	}
	if len(all) != 40 {
		t.Fatalf("durable medium lost %d of 40 writes", 40-len(all))
	}
}

func TestClearAllEmptiesBothMediums(t *testing.T) {
	repo, durable := newSQLiteRepo(t)
	repo.Save("profile", `{"name":"Nok"}`)
	repo.Save("foods_local", `[]`)

	if err := repo.ClearAll(context.Background()); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if got := repo.Load("profile", ""); got != "" {
		t.Fatalf("sync medium not cleared: %q", got)
	}
	all, err := durable.All(context.Background())
	if err != nil {
		t.Fatalf("durable scan failed: %v", err)
	}
	if len(all) != 0 {
		t.Fatalf("durable medium not cleared: %+v", all)
	}
}

func TestInitAndLoadHydratesAllowList(t *testing.T) {
	durable, err := storage.NewSQLite(filepath.Join(t.TempDir(), "kv.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = durable.Close() })

	now := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	ctx := context.Background()
	durable.Set(ctx, KeyProfile, `{"name":"Nok"}`)
	durable.Set(ctx, KeyIntakeLog, `{"intakes":[]}`)
	durable.Set(ctx, KeyFoodsLocal, `[]`)
	durable.Set(ctx, TodayKey(now), `[]`)
	durable.Set(ctx, "log_2023-01-01", `[]`)   // historical day, not hydrated
	durable.Set(ctx, "catalog", `[{"id":"x"}]`) // server-owned, never hydrated

	repo := NewKeyValueRepository(storage.NewMemory(), durable, testLogger()).(*keyValueRepository)
	repo.now = func() time.Time { return now }
	if err := repo.InitAndLoad(ctx); err != nil {
		t.Fatalf("hydration failed: %v", err)
	}

	for _, key := range []string{KeyProfile, KeyIntakeLog, KeyFoodsLocal, TodayKey(now)} {
		if got := repo.Load(key, ""); got == "" {
			t.Fatalf("expected %q hydrated", key)
		}
	}
	for _, key := range []string{"log_2023-01-01", "catalog"} {
		if got := repo.Load(key, ""); got != "" {
			t.Fatalf("key %q must not be hydrated, got %q", key, got)
		}
	}
}

func TestInitAndLoadSkipsMalformedValues(t *testing.T) {
	durable, err := storage.NewSQLite(filepath.Join(t.TempDir(), "kv.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = durable.Close() })

	ctx := context.Background()
	durable.Set(ctx, KeyProfile, `{"name":`)

	repo := NewKeyValueRepository(storage.NewMemory(), durable, testLogger())
	if err := repo.InitAndLoad(ctx); err != nil {
		t.Fatalf("hydration failed: %v", err)
	}
	if got := repo.Load(KeyProfile, "default"); got != "default" {
		t.Fatalf("malformed durable value hydrated: %q", got)
	}
}

func TestDegradedModeWithoutDurableMedium(t *testing.T) {
	repo := NewKeyValueRepository(storage.NewMemory(), nil, testLogger())

	repo.Save("profile", `{"name":"Nok"}`)
	if got := repo.Load("profile", ""); got == "" {
		t.Fatalf("sync medium write lost")
	}
	if err := repo.InitAndLoad(context.Background()); err != nil {
		t.Fatalf("hydration must be a no-op: %v", err)
	}
	dump, err := repo.DumpAll(context.Background())
	if err != nil {
		t.Fatalf("dump failed: %v", err)
	}
	if dump["profile"] != `{"name":"Nok"}` {
		t.Fatalf("expected sync-medium fallback dump, got %+v", dump)
	}
	if err := repo.ClearAll(context.Background()); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if got := repo.Load("profile", ""); got != "" {
		t.Fatalf("clear did not empty sync medium: %q", got)
	}
}

func TestTodayKey(t *testing.T) {
	now := time.Date(2024, 6, 1, 23, 59, 0, 0, time.UTC)
	if got := TodayKey(now); got != "log_2024-06-01" {
		t.Fatalf("unexpected key %q", got)
	}
}
