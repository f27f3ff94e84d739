package attendance

import (
	"reflect"
	"testing"

	"github.com/tomklaasen/eventbrite-tool/internal/aliases"
	"github.com/tomklaasen/eventbrite-tool/pkg/eventbrite"
)

func attendee(status, first, last, company string) eventbrite.Attendee {
	return eventbrite.Attendee{
		Status: status,
		Profile: eventbrite.Profile{
			FirstName: first,
			LastName:  last,
			Company:   company,
		},
	}
}

func TestConfirmed(t *testing.T) {
	cases := []struct {
		status string
		want   bool
	}{
		{"attending", true},
		{"Attending", true},
		{"CHECKED_IN", true},
		{"checked_in", true},
		{"cancelled", false},
		{"Not Approved", false},
		{"", false},
	}

	for _, c := range cases {
		if got := Confirmed(c.status); got != c.want {
			t.Errorf("Confirmed(%q) = %v, want %v", c.status, got, c.want)
		}
	}
}

func TestFoldExcludesUnconfirmed(t *testing.T) {
	tally := New(aliases.Table{})
	tally.Fold([]eventbrite.Attendee{
		attendee("Attending", "Ana", "Lee", ""),
		attendee("cancelled", "Bob", "Ng", ""),
		attendee("not_approved", "Cal", "Ho", ""),
	})

	records := tally.Records()
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %v", len(records))
	}
	if records[0].FirstName != "Ana" || records[0].Count != 1 {
		t.Errorf("unexpected record %+v", records[0])
	}
}

func TestFoldSkipsBlankNames(t *testing.T) {
	tally := New(aliases.Table{})
	tally.Fold([]eventbrite.Attendee{
		attendee("Attending", "", "", "Acme"),
		attendee("Attending", "  ", "  ", ""),
	})

	if tally.People() != 0 {
		t.Errorf("expected 0 people, got %v", tally.People())
	}
}

func TestFoldMergesAccentedVariants(t *testing.T) {
	tally := New(aliases.Table{})
	tally.Fold([]eventbrite.Attendee{attendee("Attending", "Émile", "Durand", "")})
	tally.Fold([]eventbrite.Attendee{attendee("checked_in", "emile", "durand", "")})

	records := tally.Records()
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %v", len(records))
	}
	if records[0].Count != 2 {
		t.Errorf("expected count 2, got %v", records[0].Count)
	}
	// First spelling seen wins the display name.
	if records[0].FirstName != "Émile" {
		t.Errorf("expected Émile, got %q", records[0].FirstName)
	}
}

func TestFoldAppliesAliases(t *testing.T) {
	table := aliases.Table{"jon smith": {First: "Jonathan", Last: "Smith"}}

	tally := New(table)
	tally.Fold([]eventbrite.Attendee{attendee("Attending", "Jon", "Smith", "")})
	tally.Fold([]eventbrite.Attendee{attendee("Attending", "Jonathan", "Smith", "")})

	records := tally.Records()
	if len(records) != 1 {
		t.Fatalf("expected a single merged record, got %v", len(records))
	}
	if records[0].FirstName != "Jonathan" || records[0].Count != 2 {
		t.Errorf("expected Jonathan with count 2, got %+v", records[0])
	}
}

func TestFoldBackfillsCompany(t *testing.T) {
	tally := New(aliases.Table{})
	tally.Fold([]eventbrite.Attendee{attendee("Attending", "Ana", "Lee", "")})
	tally.Fold([]eventbrite.Attendee{attendee("Attending", "Ana", "Lee", "Acme")})
	tally.Fold([]eventbrite.Attendee{attendee("Attending", "Ana", "Lee", "Globex")})

	records := tally.Records()
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %v", len(records))
	}
	// Gaps fill from later events; an existing company is never overwritten.
	if records[0].Company != "Acme" {
		t.Errorf("expected Acme, got %q", records[0].Company)
	}
}

func TestRecordsSortOrder(t *testing.T) {
	tally := New(aliases.Table{})

	for i := 0; i < 3; i++ {
		tally.Fold([]eventbrite.Attendee{attendee("Attending", "Zoe", "West", "")})
	}
	tally.Fold([]eventbrite.Attendee{attendee("Attending", "Amy", "North", "")})
	for i := 0; i < 3; i++ {
		tally.Fold([]eventbrite.Attendee{attendee("Attending", "Bob", "East", "")})
	}

	records := tally.Records()

	got := make([]string, 0, len(records))
	for _, record := range records {
		got = append(got, record.FirstName)
	}

	want := []string{"Bob", "Zoe", "Amy"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected order %v, got %v", want, got)
	}
}

func TestRecordsIdempotent(t *testing.T) {
	events := [][]eventbrite.Attendee{
		{
			attendee("Attending", "Ana", "Lee", "Acme"),
			attendee("checked_in", "Bob", "Ng", ""),
			attendee("cancelled", "Cal", "Ho", ""),
		},
		{
			attendee("Attending", "ana", "lee", ""),
		},
	}

	run := func() []Record {
		tally := New(aliases.Table{})
		for _, attendees := range events {
			tally.Fold(attendees)
		}
		return tally.Records()
	}

	first, second := run(), run()
	if !reflect.DeepEqual(first, second) {
		t.Errorf("two identical runs disagree:\n%+v\n%+v", first, second)
	}
}

func TestTotals(t *testing.T) {
	tally := New(aliases.Table{})
	tally.Fold([]eventbrite.Attendee{
		attendee("Attending", "Ana", "Lee", ""),
		attendee("Attending", "Bob", "Ng", ""),
	})
	tally.Fold([]eventbrite.Attendee{attendee("Attending", "Ana", "Lee", "")})

	if tally.Events() != 2 {
		t.Errorf("expected 2 events, got %v", tally.Events())
	}
	if tally.People() != 2 {
		t.Errorf("expected 2 people, got %v", tally.People())
	}
}
