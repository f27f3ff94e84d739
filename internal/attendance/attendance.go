package attendance

import (
	"sort"
	"strings"

	"github.com/tomklaasen/eventbrite-tool/internal/aliases"
	"github.com/tomklaasen/eventbrite-tool/internal/names"
	"github.com/tomklaasen/eventbrite-tool/pkg/eventbrite"
)

// Record is one person's attendance across every folded event.
type Record struct {
	FirstName string
	LastName  string
	Company   string
	Count     int
}

// Tally accumulates confirmed attendances across events, deduplicating
// people by normalized name with alias correction applied per attendee
// before lookup.
type Tally struct {
	aliases aliases.Table
	records map[string]*Record
	order   []string
	events  int
}

func New(table aliases.Table) *Tally {
	return &Tally{aliases: table, records: map[string]*Record{}}
}

// Fold adds one event's attendees to the tally. Attendees without a
// confirmed status or with both names blank are skipped; partial profiles
// degrade to empty fields rather than failing.
func (t *Tally) Fold(attendees []eventbrite.Attendee) {
	t.events++

	for _, attendee := range attendees {
		if !Confirmed(attendee.Status) {
			continue
		}

		first := strings.TrimSpace(attendee.Profile.FirstName)
		last := strings.TrimSpace(attendee.Profile.LastName)

		key := names.Key(first, last)
		if key == "" {
			continue
		}

		if canonical, ok := t.aliases.Lookup(key); ok {
			first, last = canonical.First, canonical.Last
			key = names.Key(first, last)
		}

		company := strings.TrimSpace(attendee.Profile.Company)

		record, ok := t.records[key]
		if !ok {
			record = &Record{FirstName: first, LastName: last}
			t.records[key] = record
			t.order = append(t.order, key)
		}

		record.Count++

		// Later events fill a missing company but never overwrite one.
		if record.Company == "" {
			record.Company = company
		}
	}
}

// Records returns the tally sorted by count descending, then first name
// ascending case-insensitively. Remaining ties keep first-appearance order.
func (t *Tally) Records() []Record {
	records := make([]Record, 0, len(t.order))
	for _, key := range t.order {
		records = append(records, *t.records[key])
	}

	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Count != records[j].Count {
			return records[i].Count > records[j].Count
		}

		return strings.ToLower(records[i].FirstName) < strings.ToLower(records[j].FirstName)
	})

	return records
}

// Events returns how many events have been folded in.
func (t *Tally) Events() int {
	return t.events
}

// People returns the number of distinct people seen so far.
func (t *Tally) People() int {
	return len(t.records)
}

// Confirmed reports whether a registration status counts towards
// attendance. Cancelled, not-approved and every other status are excluded.
func Confirmed(status string) bool {
	switch strings.ToLower(status) {
	case "attending", "checked_in":
		return true
	}

	return false
}
