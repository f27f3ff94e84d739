package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/olekukonko/tablewriter"

	"github.com/tomklaasen/eventbrite-tool/internal/aliases"
	"github.com/tomklaasen/eventbrite-tool/internal/attendance"
	"github.com/tomklaasen/eventbrite-tool/internal/badges"
	"github.com/tomklaasen/eventbrite-tool/internal/extras"
	"github.com/tomklaasen/eventbrite-tool/internal/report"
	"github.com/tomklaasen/eventbrite-tool/pkg/eventbrite"
)

type options struct {
	token    string
	past     bool
	overview bool
	output   string
	aliases  string
	badges   string
	extras   string
	verbose  bool
}

var opts options

func bail(err error) {
	if err != nil {
		panic(err.Error())
	}
}

func fatal(message string) {
	fmt.Fprintln(os.Stderr, message)
	os.Exit(1)
}

func verbose(format string, a ...interface{}) {
	if opts.verbose {
		fmt.Printf(format, a...)
	}
}

func init() {
	var envFile string

	flag.StringVar(&envFile, "env", ".env", "file to read environment variables from")
	flag.BoolVar(&opts.past, "past", false, "report on every past event instead of the next one")
	flag.BoolVar(&opts.overview, "overview", false, "produce the cross-event attendance overview")
	flag.StringVar(&opts.output, "output", "output", "directory to write reports to")
	flag.StringVar(&opts.aliases, "aliases", "aliases.toml", "TOML file mapping name typos to canonical spellings")
	flag.StringVar(&opts.badges, "badges", "badges.lbx", "badge template to copy for the next event")
	flag.StringVar(&opts.extras, "extras", "", "TOML file of extra attendees to append to single-event reports")
	flag.BoolVar(&opts.verbose, "verbose", false, "print additional output")
	flag.Parse()

	if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
		bail(err)
	}

	opts.token = os.Getenv("EVENTBRITE_TOKEN")
}

func main() {
	if opts.token == "" {
		fatal("Error: EVENTBRITE_TOKEN is not set.\n" +
			"Copy .env.example to .env and fill in your private token.\n" +
			"You can create a token at https://www.eventbrite.com/platform/api-keys")
	}

	client := eventbrite.New(opts.token)

	organizations, err := client.Organizations()
	bail(err)

	if len(organizations) == 0 {
		fatal("No organizations found for your account.")
	}

	organization := organizations[0]
	verbose("Using organization %v\n", organization.Id)

	bail(os.MkdirAll(opts.output, 0755))

	switch {
	case opts.overview:
		runOverview(client, organization)
	case opts.past:
		runPast(client, organization)
	default:
		runNext(client, organization)
	}
}

func runNext(client *eventbrite.Client, organization eventbrite.Organization) {
	fmt.Println("Fetching your next event...")

	event, ok, err := client.FirstEvent(organization.Id, eventbrite.EventQuery{
		Statuses:    []string{"live", "started"},
		OrderBy:     "start_asc",
		ExpandVenue: true,
	})
	bail(err)

	if !ok {
		fatal("No upcoming events found for your organization.")
	}

	fmt.Printf("Found: %v\n", report.Title(event))
	fmt.Println("Fetching attendees...")

	attendees, err := client.Attendees(event.Id)
	bail(err)
	verbose("Fetched %v attendees\n", len(attendees))

	extra, err := extras.Load(opts.extras)
	bail(err)
	if len(extra) > 0 {
		verbose("Appending %v extra attendees\n", len(extra))
		attendees = append(attendees, extra...)
	}

	rows := report.Rows(attendees)
	writeReportFiles(event, rows)

	// Fixed stem so P-touch Editor keeps its path-based CSV permission
	// across runs.
	generated, err := badges.Generate(opts.badges, opts.output, "badges", rows)
	bail(err)

	if generated {
		fmt.Printf("Badges written to:   %v\n", filepath.Join(opts.output, "badges.lbx"))
	} else {
		fmt.Printf("Warning: %v not found — skipping badge generation.\n", opts.badges)
	}
}

func runPast(client *eventbrite.Client, organization eventbrite.Organization) {
	fmt.Println("Fetching past events...")

	events, err := client.Events(organization.Id, eventbrite.EventQuery{
		Statuses:    []string{"ended", "completed"},
		OrderBy:     "start_asc",
		ExpandVenue: true,
	})
	bail(err)

	if len(events) == 0 {
		fatal("No past events found for your organization.")
	}

	verbose("Fetched %v events\n", len(events))

	for _, event := range events {
		fmt.Printf("Processing %v...\n", report.Title(event))

		attendees, err := client.Attendees(event.Id)
		bail(err)

		writeReportFiles(event, report.Rows(attendees))
	}
}

func runOverview(client *eventbrite.Client, organization eventbrite.Organization) {
	table, found, err := aliases.Load(opts.aliases)
	bail(err)

	if !found {
		fmt.Printf("Warning: %v not found — aggregating raw names only.\n", opts.aliases)
	}

	fmt.Println("Fetching events...")

	events, err := client.Events(organization.Id, eventbrite.EventQuery{
		Statuses: []string{"ended", "completed", "live", "started"},
		OrderBy:  "start_asc",
	})
	bail(err)

	if len(events) == 0 {
		fatal("No events found for your organization.")
	}

	verbose("Fetched %v events\n", len(events))

	tally := attendance.New(table)
	for _, event := range events {
		verbose("Folding in %v\n", report.Title(event))

		attendees, err := client.Attendees(event.Id)
		bail(err)

		tally.Fold(attendees)
	}

	records := tally.Records()

	ranking := tablewriter.NewWriter(os.Stdout)
	ranking.SetHeader([]string{"#", "First Name", "Last Name", "Company", "Events"})
	for i, record := range records {
		ranking.Append([]string{
			strconv.Itoa(i + 1), record.FirstName, record.LastName, record.Company, strconv.Itoa(record.Count),
		})
	}
	ranking.Render()

	writeOverviewFiles(records, tally.Events(), tally.People())
}

func writeReportFiles(event eventbrite.Event, rows []report.Row) {
	now := time.Now()
	stem := report.Filename(event)

	mdPath := filepath.Join(opts.output, stem+".md")
	bail(os.WriteFile(mdPath, []byte(report.Build(event, rows, now)), 0644))
	fmt.Printf("Markdown written to: %v\n", mdPath)

	pdfPath := filepath.Join(opts.output, stem+".pdf")
	bail(report.WriteEventPDF(pdfPath, event, rows, now))
	fmt.Printf("PDF written to:      %v\n", pdfPath)

	csvPath := filepath.Join(opts.output, stem+".csv")
	bail(writeCsvFile(csvPath, func(f *os.File) error {
		return report.WriteCSV(f, rows)
	}))
	fmt.Printf("CSV written to:      %v\n", csvPath)
}

func writeOverviewFiles(records []attendance.Record, events int, people int) {
	now := time.Now()
	const stem = "attendance_overview"

	mdPath := filepath.Join(opts.output, stem+".md")
	bail(os.WriteFile(mdPath, []byte(report.BuildOverview(records, events, people, now)), 0644))
	fmt.Printf("Markdown written to: %v\n", mdPath)

	pdfPath := filepath.Join(opts.output, stem+".pdf")
	bail(report.WriteOverviewPDF(pdfPath, records, events, people, now))
	fmt.Printf("PDF written to:      %v\n", pdfPath)

	csvPath := filepath.Join(opts.output, stem+".csv")
	bail(writeCsvFile(csvPath, func(f *os.File) error {
		return report.WriteOverviewCSV(f, records)
	}))
	fmt.Printf("CSV written to:      %v\n", csvPath)
}

func writeCsvFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := write(f); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}
