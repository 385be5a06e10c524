package entity

import "sort"

// DateLayout is the calendar-date key format used throughout the intake
// stores ("YYYY-MM-DD").
const DateLayout = "2006-01-02"

// IntakeEntry is one add-to-log action. Entries are addressed by position
// within a day, not by id: the same food logged twice on one day is two
// distinct entries. The JSON field names follow the unified intake_log wire
// format.
type IntakeEntry struct {
	FoodID            string  `json:"id,omitempty"`
	Name              string  `json:"name"`
	Quantity          int     `json:"qty"`
	ProteinPerServing float64 `json:"protein_g"`
	SodiumPerServing  float64 `json:"sodium_mg"`
	Timestamp         string  `json:"ts,omitempty"`
	Source            string  `json:"src,omitempty"`
}

// DayRecord is the unified per-date record: the entries logged on one
// calendar date plus the nutrient limits that applied when it was last
// written. Date is the natural key.
type DayRecord struct {
	Date          string        `json:"date"`
	ProteinLimitG *float64      `json:"protein_g_limit"`
	SodiumLimitMg *float64      `json:"sodium_mg_limit"`
	Entries       []IntakeEntry `json:"intake"`
}

// IntakeLog is the unified multi-day log: at most one DayRecord per date,
// kept sorted most-recent first for display.
type IntakeLog struct {
	Days []DayRecord `json:"intakes"`
}

// FindDay returns a pointer to the record for date, or nil.
func (l *IntakeLog) FindDay(date string) *DayRecord {
	for i := range l.Days {
		if l.Days[i].Date == date {
			return &l.Days[i]
		}
	}
	return nil
}

// SetDay inserts or replaces the record for rec.Date and re-sorts.
func (l *IntakeLog) SetDay(rec DayRecord) {
	for i := range l.Days {
		if l.Days[i].Date == rec.Date {
			l.Days[i] = rec
			l.SortDesc()
			return
		}
	}
	l.Days = append(l.Days, rec)
	l.SortDesc()
}

// SortDesc orders the log most-recent date first. Date strings in the
// DateLayout form sort lexicographically.
func (l *IntakeLog) SortDesc() {
	sort.SliceStable(l.Days, func(i, j int) bool {
		return l.Days[i].Date > l.Days[j].Date
	})
}
