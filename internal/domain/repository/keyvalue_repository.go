package repository

import "context"

// SyncMedium is the synchronous best-effort medium. It is the source of
// truth for the running session: every read during normal operation is
// served from it.
type SyncMedium interface {
	Get(key string) (string, bool)
	Set(key, value string)
	Keys() []string
	Clear()
}

// AsyncMedium is the durable transactional medium. Writes to it are
// fire-and-forget during normal operation; it is read in bulk at startup
// hydration and for export.
type AsyncMedium interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	All(ctx context.Context) (map[string]string, error)
	Clear(ctx context.Context) error
	Close() error
}

// KeyValueRepository unifies the two mediums behind one save/load/clear
// contract. Load never fails: a missing key or malformed stored value yields
// the caller-supplied default.
type KeyValueRepository interface {
	// Save writes to the sync medium immediately and queues a best-effort
	// write to the async medium.
	Save(key, value string)
	// SaveJSON marshals v and Saves it. Marshal failures are swallowed.
	SaveJSON(key string, v any)
	Load(key, def string) string
	// LoadJSON unmarshals the stored value into dst, reporting whether it
	// succeeded. dst is untouched on a missing key or malformed value.
	LoadJSON(key string, dst any) bool
	Keys() []string
	// DumpAll returns every persisted key/value pair from the durable
	// medium (falling back to the sync medium when it is unavailable).
	DumpAll(ctx context.Context) (map[string]string, error)
	// ClearAll drains queued writes, then empties both mediums. Awaited to
	// completion because it gates a full reset.
	ClearAll(ctx context.Context) error
	// InitAndLoad hydrates the sync medium from the async medium for the
	// fixed allow-list of keys, establishing the async medium as the
	// long-term source of truth.
	InitAndLoad(ctx context.Context) error
}
