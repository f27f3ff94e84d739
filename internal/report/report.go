package report

import (
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/tomklaasen/eventbrite-tool/internal/attendance"
	"github.com/tomklaasen/eventbrite-tool/pkg/eventbrite"
)

const untitled = "Untitled Event"

// Row is one attendee line in a report, CSV or badge file.
type Row struct {
	FirstName string
	LastName  string
	Company   string
}

// Rows filters an event's attendees down to confirmed ones and sorts them
// by first name, case-insensitively.
func Rows(attendees []eventbrite.Attendee) []Row {
	rows := make([]Row, 0, len(attendees))

	for _, attendee := range attendees {
		if !attendance.Confirmed(attendee.Status) {
			continue
		}

		rows = append(rows, Row{
			FirstName: attendee.Profile.FirstName,
			LastName:  attendee.Profile.LastName,
			Company:   attendee.Profile.Company,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return strings.ToLower(rows[i].FirstName) < strings.ToLower(rows[j].FirstName)
	})

	return rows
}

// Title returns the event's display title.
func Title(event eventbrite.Event) string {
	if event.Name.Text == "" {
		return untitled
	}

	return event.Name.Text
}

// Location returns the venue name, or a placeholder for online events.
func Location(event eventbrite.Event) string {
	if event.Venue != nil && event.Venue.Name != "" {
		return event.Venue.Name
	}

	return "Online / TBD"
}

// FormatDate renders an event's local start timestamp for humans. Strings
// that fail to parse pass through unchanged.
func FormatDate(local string) string {
	t, err := time.Parse("2006-01-02T15:04:05", local)
	if err != nil {
		return local
	}

	return t.Format("Monday, January 2 2006 at 15:04")
}

// Build renders the Markdown report for a single event.
func Build(event eventbrite.Event, rows []Row, generated time.Time) string {
	lines := []string{
		fmt.Sprintf("# %v", Title(event)),
		"",
		fmt.Sprintf("**Date:** %v  ", FormatDate(event.Start.Local)),
		fmt.Sprintf("**Location:** %v  ", Location(event)),
		fmt.Sprintf("**Registrations:** %v  ", len(rows)),
		"",
		"---",
		"",
		"## Attendees",
		"",
		"| # | First Name | Last Name | Company |",
		"|---|------------|-----------|---------|",
	}

	for i, row := range rows {
		lines = append(lines, fmt.Sprintf("| %v | %v | %v | %v |",
			i+1, orDash(row.FirstName), orDash(row.LastName), orDash(row.Company)))
	}

	lines = append(lines,
		"",
		"---",
		"",
		fmt.Sprintf("*Report generated on %v*", generated.Format("2006-01-02 at 15:04")),
	)

	return strings.Join(lines, "\n")
}

// BuildOverview renders the Markdown cross-event attendance ranking.
func BuildOverview(records []attendance.Record, events int, people int, generated time.Time) string {
	lines := []string{
		"# Attendance Overview",
		"",
		fmt.Sprintf("**Events:** %v  ", events),
		fmt.Sprintf("**People:** %v  ", people),
		"",
		"---",
		"",
		"## Attendance by person",
		"",
		"| # | First Name | Last Name | Company | Events Attended |",
		"|---|------------|-----------|---------|-----------------|",
	}

	for i, record := range records {
		lines = append(lines, fmt.Sprintf("| %v | %v | %v | %v | %v |",
			i+1, orDash(record.FirstName), orDash(record.LastName), orDash(record.Company), record.Count))
	}

	lines = append(lines,
		"",
		"---",
		"",
		fmt.Sprintf("*Report generated on %v*", generated.Format("2006-01-02 at 15:04")),
	)

	return strings.Join(lines, "\n")
}

// Filename builds the per-event output stem, e.g.
// report_2026-03-01_Spring_Meetup. The title keeps only letters, digits,
// spaces, dashes and underscores, capped at 60 runes.
func Filename(event eventbrite.Event) string {
	var b strings.Builder
	for _, r := range Title(event) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' || r == '-' || r == '_' {
			b.WriteRune(r)
		}
	}

	safe := strings.ReplaceAll(strings.TrimSpace(b.String()), " ", "_")
	if runes := []rune(safe); len(runes) > 60 {
		safe = string(runes[:60])
	}

	date := event.Start.Local
	if len(date) > 10 {
		date = date[:10]
	}

	return fmt.Sprintf("report_%v_%v", date, safe)
}

func orDash(s string) string {
	if s == "" {
		return "—"
	}

	return s
}
