package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/amnatp/taiyim/internal/domain/entity"
	domainRepo "github.com/amnatp/taiyim/internal/domain/repository"

	"github.com/sirupsen/logrus"
)

// Storage keys. KeyFoodsLocal holds device-local catalog edits; the merged
// catalog itself is never persisted because the server is authoritative for
// it.
const (
	KeyProfile    = "profile"
	KeyIntakeLog  = "intake_log"
	KeyFoodsLocal = "foods_local"
	// LegacyDayPrefix precedes a DateLayout date in the legacy per-day keys.
	LegacyDayPrefix = "log_"
)

// TodayKey returns the legacy per-day storage key for now's calendar date.
func TodayKey(now time.Time) string {
	return LegacyDayPrefix + now.Format(entity.DateLayout)
}

// kvWrite is one queued durable write. A nil-key write with a flushed
// channel is a flush marker: the writer closes the channel once everything
// enqueued before it has been applied.
type kvWrite struct {
	key     string
	value   string
	flushed chan struct{}
}

type keyValueRepository struct {
	cache   domainRepo.SyncMedium
	durable domainRepo.AsyncMedium // nil when the durable medium is unavailable
	log     *logrus.Logger
	now     func() time.Time

	writes chan kvWrite
}

// NewKeyValueRepository builds the dual-medium store. async may be nil, in
// which case the repository degrades to sync-only operation: the session
// still works, durability across restarts is lost.
func NewKeyValueRepository(syncMedium domainRepo.SyncMedium, asyncMedium domainRepo.AsyncMedium, log *logrus.Logger) domainRepo.KeyValueRepository {
	r := &keyValueRepository{
		cache:   syncMedium,
		durable: asyncMedium,
		log:     log,
		now:     time.Now,
	}
	if asyncMedium != nil {
		// One writer goroutine owns the durable medium. Serializing the
		// writes keeps concurrent upserts from tripping over SQLite's
		// single-writer locking and preserves save order per key.
		r.writes = make(chan kvWrite, 64)
		go r.writeLoop()
	}
	return r
}

func (r *keyValueRepository) writeLoop() {
	for w := range r.writes {
		if w.flushed != nil {
			close(w.flushed)
			continue
		}
		if err := r.durable.Set(context.Background(), w.key, w.value); err != nil {
			r.log.Warnf("Durable write for key %q failed: %v", w.key, err)
		}
	}
}

// flush blocks until every write enqueued before the call has been applied
// to the durable medium.
func (r *keyValueRepository) flush() {
	if r.durable == nil {
		return
	}
	done := make(chan struct{})
	r.writes <- kvWrite{flushed: done}
	<-done
}

func (r *keyValueRepository) Save(key, value string) {
	r.cache.Set(key, value)
	if r.durable == nil {
		return
	}
	r.writes <- kvWrite{key: key, value: value}
}

func (r *keyValueRepository) SaveJSON(key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		r.log.Warnf("Marshal for key %q failed: %v", key, err)
		return
	}
	r.Save(key, string(data))
}

func (r *keyValueRepository) Load(key, def string) string {
	v, ok := r.cache.Get(key)
	if !ok {
		return def
	}
	return v
}

func (r *keyValueRepository) LoadJSON(key string, dst any) bool {
	v, ok := r.cache.Get(key)
	if !ok {
		return false
	}
	if err := json.Unmarshal([]byte(v), dst); err != nil {
		r.log.Warnf("Stored value for key %q is malformed, using default: %v", key, err)
		return false
	}
	return true
}

func (r *keyValueRepository) Keys() []string {
	return r.cache.Keys()
}

func (r *keyValueRepository) DumpAll(ctx context.Context) (map[string]string, error) {
	if r.durable == nil {
		out := make(map[string]string)
		for _, k := range r.cache.Keys() {
			if v, ok := r.cache.Get(k); ok {
				out[k] = v
			}
		}
		return out, nil
	}
	r.flush()
	return r.durable.All(ctx)
}

func (r *keyValueRepository) ClearAll(ctx context.Context) error {
	r.flush()
	r.cache.Clear()
	if r.durable == nil {
		return nil
	}
	return r.durable.Clear(ctx)
}

// hydrationKeys is the allow-list copied from the async medium into the sync
// medium at startup. The food catalog key is deliberately absent: the server
// is authoritative for the catalog.
func (r *keyValueRepository) hydrationKeys() []string {
	return []string{KeyProfile, TodayKey(r.now()), KeyIntakeLog, KeyFoodsLocal}
}

func (r *keyValueRepository) InitAndLoad(ctx context.Context) error {
	if r.durable == nil {
		return nil
	}
	for _, key := range r.hydrationKeys() {
		v, ok, err := r.durable.Get(ctx, key)
		if err != nil {
			r.log.Warnf("Hydration read for key %q failed: %v", key, err)
			continue
		}
		if !ok {
			continue
		}
		// Only well-formed JSON is hydrated; a corrupt durable value must
		// not displace a usable session default.
		if !json.Valid([]byte(v)) {
			r.log.Warnf("Durable value for key %q is malformed, skipping hydration", key)
			continue
		}
		r.cache.Set(key, v)
	}
	return nil
}
