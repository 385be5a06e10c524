package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"regexp"
	"sync"
	"time"

	"github.com/amnatp/taiyim/internal/domain/entity"
	domainRepo "github.com/amnatp/taiyim/internal/domain/repository"
	"github.com/amnatp/taiyim/internal/repository"
	"github.com/amnatp/taiyim/internal/service"
	"github.com/amnatp/taiyim/pkg/parse"

	"github.com/sirupsen/logrus"
)

var (
	ErrEntryIndex = errors.New("intake entry index out of range")

	legacyDayKey = regexp.MustCompile(`^log_\d{4}-\d{2}-\d{2}$`)
)

type IntakeUsecase interface {
	// TodayEntries returns a copy of today's working sequence.
	TodayEntries() []entity.IntakeEntry
	// Today returns today's full record, with limits derived from the
	// current profile.
	Today() entity.DayRecord
	// AppendEntry adds one entry to today's log and persists. Quantity is
	// coerced to at least 1; a missing timestamp is stamped now.
	AppendEntry(e entity.IntakeEntry) entity.IntakeEntry
	// AdjustQuantity changes the entry's quantity by delta, clamped to at
	// least 1 (decrementing the last unit is a no-op, not a deletion).
	AdjustQuantity(index, delta int) error
	// RemoveEntry deletes the entry at index.
	RemoveEntry(index int) error
	// ClearToday empties today's log and persists the empty day.
	ClearToday()
	// GetEntriesForDate reads a date's entries: unified log first, then the
	// legacy per-day key, then empty.
	GetEntriesForDate(date string) []entity.IntakeEntry
	// GetDayRecord reads a date's full record including limits; the legacy
	// fallback yields nil limits.
	GetDayRecord(date string) entity.DayRecord
	// Log returns the unified intake log.
	Log() entity.IntakeLog
	// MigrateLegacyToUnified folds every legacy per-day key, from both
	// mediums, into the unified log. Idempotent: already-present dates keep
	// their existing record. Invoked once at startup as the reconciliation
	// routine.
	MigrateLegacyToUnified(ctx context.Context) error
	// GenerateDummyHistory seeds random legacy records for past days from
	// the given catalog, then migrates them. Development helper.
	GenerateDummyHistory(ctx context.Context, items []entity.FoodItem, days, perDay int) error
	// ResetSession drops the in-memory working state after a full store
	// reset.
	ResetSession()
}

type intakeUsecase struct {
	repo     domainRepo.KeyValueRepository
	profiles ProfileUsecase
	log      *logrus.Logger
	now      func() time.Time

	mu     sync.Mutex
	today  []entity.IntakeEntry
	loaded bool
}

func NewIntakeUsecase(repo domainRepo.KeyValueRepository, profiles ProfileUsecase, log *logrus.Logger) IntakeUsecase {
	return &intakeUsecase{repo: repo, profiles: profiles, log: log, now: time.Now}
}

func (u *intakeUsecase) todayDate() string {
	return u.now().Format(entity.DateLayout)
}

func (u *intakeUsecase) loadTodayLocked() {
	if u.loaded {
		return
	}
	u.today = u.getEntriesForDate(u.todayDate())
	u.loaded = true
}

func (u *intakeUsecase) TodayEntries() []entity.IntakeEntry {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.loadTodayLocked()
	out := make([]entity.IntakeEntry, len(u.today))
	copy(out, u.today)
	return out
}

func (u *intakeUsecase) Today() entity.DayRecord {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.loadTodayLocked()
	rec := entity.DayRecord{
		Date:    u.todayDate(),
		Entries: append([]entity.IntakeEntry(nil), u.today...),
	}
	rec.ProteinLimitG, rec.SodiumLimitMg = u.dayLimits()
	return rec
}

func (u *intakeUsecase) AppendEntry(e entity.IntakeEntry) entity.IntakeEntry {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.loadTodayLocked()
	if e.Quantity < 1 {
		e.Quantity = 1
	}
	if e.Timestamp == "" {
		e.Timestamp = u.now().Format(time.RFC3339)
	}
	u.today = append(u.today, e)
	u.persistTodayLocked()
	return e
}

func (u *intakeUsecase) AdjustQuantity(index, delta int) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.loadTodayLocked()
	if index < 0 || index >= len(u.today) {
		return ErrEntryIndex
	}
	q := u.today[index].Quantity + delta
	if q < 1 {
		q = 1
	}
	u.today[index].Quantity = q
	u.persistTodayLocked()
	return nil
}

func (u *intakeUsecase) RemoveEntry(index int) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.loadTodayLocked()
	if index < 0 || index >= len(u.today) {
		return ErrEntryIndex
	}
	u.today = append(u.today[:index], u.today[index+1:]...)
	u.persistTodayLocked()
	return nil
}

func (u *intakeUsecase) ClearToday() {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.today = nil
	u.loaded = true
	u.persistTodayLocked()
}

// persistTodayLocked writes today's sequence to both shapes: the legacy
// per-day key and today's record inside the unified log. Today's limits are
// recomputed from the current profile at write time, so they reflect the
// profile as of the most recent edit, not the day the first entry was
// logged.
func (u *intakeUsecase) persistTodayLocked() {
	date := u.todayDate()
	u.repo.SaveJSON(repository.LegacyDayPrefix+date, encodeLegacyEntries(u.today))

	var intake entity.IntakeLog
	u.repo.LoadJSON(repository.KeyIntakeLog, &intake)
	rec := entity.DayRecord{Date: date, Entries: append([]entity.IntakeEntry(nil), u.today...)}
	rec.ProteinLimitG, rec.SodiumLimitMg = u.dayLimits()
	// Explicitly saving today's update: the fresh record replaces any
	// existing one for today.
	intake.SetDay(rec)
	u.repo.SaveJSON(repository.KeyIntakeLog, intake)
}

// dayLimits derives the per-day display limits from the current profile:
// protein is weight times the age band's per-kg upper bound (nil without a
// weight), sodium is the age band's upper bound. The stage multipliers apply
// to the profile targets, not these day-level limits.
func (u *intakeUsecase) dayLimits() (*float64, *float64) {
	p := u.profiles.Current()
	var proteinLimit *float64
	if p.WeightKg != nil && *p.WeightKg > 0 {
		_, perKgMax := service.ProteinRangePerKg(p.Age)
		v := service.Round2(*p.WeightKg * perKgMax)
		proteinLimit = &v
	}
	_, sodiumMax := service.SodiumRange(p.Age)
	return proteinLimit, &sodiumMax
}

func (u *intakeUsecase) GetEntriesForDate(date string) []entity.IntakeEntry {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.getEntriesForDate(date)
}

func (u *intakeUsecase) getEntriesForDate(date string) []entity.IntakeEntry {
	var intake entity.IntakeLog
	if u.repo.LoadJSON(repository.KeyIntakeLog, &intake) {
		if day := intake.FindDay(date); day != nil {
			return append([]entity.IntakeEntry(nil), day.Entries...)
		}
	}
	if raw := u.repo.Load(repository.LegacyDayPrefix+date, ""); raw != "" {
		return decodeLegacyEntries(raw)
	}
	return nil
}

func (u *intakeUsecase) GetDayRecord(date string) entity.DayRecord {
	u.mu.Lock()
	defer u.mu.Unlock()
	var intake entity.IntakeLog
	if u.repo.LoadJSON(repository.KeyIntakeLog, &intake) {
		if day := intake.FindDay(date); day != nil {
			return *day
		}
	}
	// Legacy fallback carries no limit values.
	if raw := u.repo.Load(repository.LegacyDayPrefix+date, ""); raw != "" {
		return entity.DayRecord{Date: date, Entries: decodeLegacyEntries(raw)}
	}
	return entity.DayRecord{Date: date}
}

func (u *intakeUsecase) Log() entity.IntakeLog {
	u.mu.Lock()
	defer u.mu.Unlock()
	var intake entity.IntakeLog
	u.repo.LoadJSON(repository.KeyIntakeLog, &intake)
	intake.SortDesc()
	return intake
}

func (u *intakeUsecase) MigrateLegacyToUnified(ctx context.Context) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	var existing entity.IntakeLog
	u.repo.LoadJSON(repository.KeyIntakeLog, &existing)

	// Legacy keys may live only in the durable medium after a restart (the
	// startup hydration allow-list covers only today's key), so the scan
	// spans both mediums. The session value wins when both hold a key.
	legacy := make(map[string]string)
	if dump, err := u.repo.DumpAll(ctx); err != nil {
		u.log.Warnf("Durable scan for migration failed: %v", err)
	} else {
		for key, raw := range dump {
			if legacyDayKey.MatchString(key) {
				legacy[key] = raw
			}
		}
	}
	for _, key := range u.repo.Keys() {
		if legacyDayKey.MatchString(key) {
			legacy[key] = u.repo.Load(key, "")
		}
	}

	migrated := 0
	for key, raw := range legacy {
		date := key[len(repository.LegacyDayPrefix):]
		// A date already present in the unified log keeps its existing
		// record: it may carry curated limits the legacy shape lacks. This
		// is what makes the migration idempotent.
		if existing.FindDay(date) != nil {
			continue
		}
		if raw == "" {
			continue
		}
		rec := entity.DayRecord{Date: date, Entries: decodeLegacyEntries(raw)}
		// Limits derive from the current profile; historical snapshots are
		// not retained, so this is a stated approximation.
		rec.ProteinLimitG, rec.SodiumLimitMg = u.dayLimits()
		existing.Days = append(existing.Days, rec)
		migrated++
	}
	existing.SortDesc()
	u.repo.SaveJSON(repository.KeyIntakeLog, existing)

	// Refresh today's working sequence from the unified record when one
	// exists.
	if day := existing.FindDay(u.todayDate()); day != nil {
		u.today = append([]entity.IntakeEntry(nil), day.Entries...)
		u.loaded = true
	}
	if migrated > 0 {
		u.log.Infof("Migrated %d legacy day(s) into the unified intake log", migrated)
	}
	return nil
}

func (u *intakeUsecase) GenerateDummyHistory(ctx context.Context, items []entity.FoodItem, days, perDay int) error {
	if len(items) == 0 {
		return errors.New("no catalog items to sample")
	}
	if days <= 0 {
		days = 40
	}
	if perDay <= 0 {
		perDay = 3
	}
	u.mu.Lock()
	now := u.now()
	for d := 1; d <= days; d++ {
		date := now.AddDate(0, 0, -d).Format(entity.DateLayout)
		entries := make([]entity.IntakeEntry, 0, perDay)
		for i := 0; i < perDay; i++ {
			f := items[rand.Intn(len(items))]
			entries = append(entries, entity.IntakeEntry{
				FoodID:            f.ID,
				Name:              f.Name,
				ProteinPerServing: f.ProteinPerServing,
				SodiumPerServing:  f.SodiumPerServing,
				Quantity:          1 + rand.Intn(2),
				Timestamp:         now.AddDate(0, 0, -d).Format(time.RFC3339),
				Source:            f.Source,
			})
		}
		u.repo.SaveJSON(repository.LegacyDayPrefix+date, encodeLegacyEntries(entries))
	}
	u.mu.Unlock()
	return u.MigrateLegacyToUnified(ctx)
}

func (u *intakeUsecase) ResetSession() {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.today = nil
	u.loaded = true
}

// ---- legacy per-day codec ----

// legacyEntry is the wire shape of the old one-key-per-day records.
type legacyEntry struct {
	ID      string  `json:"id,omitempty"`
	Name    string  `json:"name"`
	Protein float64 `json:"protein"`
	Sodium  float64 `json:"sodium"`
	Qty     int     `json:"qty"`
	TS      string  `json:"ts,omitempty"`
	Src     string  `json:"src,omitempty"`
}

func encodeLegacyEntries(entries []entity.IntakeEntry) []legacyEntry {
	out := make([]legacyEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, legacyEntry{
			ID:      e.FoodID,
			Name:    e.Name,
			Protein: e.ProteinPerServing,
			Sodium:  e.SodiumPerServing,
			Qty:     e.Quantity,
			TS:      e.Timestamp,
			Src:     e.Source,
		})
	}
	return out
}

// decodeLegacyEntries tolerates the loose typing of old records: numbers
// stored as strings, missing quantities, and so on. Each field has one
// canonical recovery value.
func decodeLegacyEntries(raw string) []entity.IntakeEntry {
	var rows []map[string]any
	if err := json.Unmarshal([]byte(raw), &rows); err != nil {
		return nil
	}
	out := make([]entity.IntakeEntry, 0, len(rows))
	for _, r := range rows {
		protein := parse.Float(r["protein"], 0)
		if v, ok := r["protein_g"]; ok {
			protein = parse.Float(v, protein)
		}
		sodium := parse.Float(r["sodium"], 0)
		if v, ok := r["sodium_mg"]; ok {
			sodium = parse.Float(v, sodium)
		}
		qty := parse.Int(r["qty"], 1)
		if qty < 1 {
			qty = 1
		}
		src := parse.String(r["src"], "")
		if src == "" {
			src = parse.String(r["_source"], "")
		}
		out = append(out, entity.IntakeEntry{
			FoodID:            parse.String(r["id"], ""),
			Name:              parse.String(r["name"], ""),
			ProteinPerServing: protein,
			SodiumPerServing:  sodium,
			Quantity:          qty,
			Timestamp:         parse.String(r["ts"], ""),
			Source:            src,
		})
	}
	return out
}
