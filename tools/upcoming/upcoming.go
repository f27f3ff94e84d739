package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/olekukonko/tablewriter"

	"github.com/tomklaasen/eventbrite-tool/internal/report"
	"github.com/tomklaasen/eventbrite-tool/pkg/eventbrite"
)

type options struct {
	token   string
	verbose bool
}

var opts options

func bail(err error) {
	if err != nil {
		panic(err.Error())
	}
}

func verbose(format string, a ...interface{}) {
	if opts.verbose {
		fmt.Printf(format, a...)
	}
}

func init() {
	var envFile string

	flag.StringVar(&envFile, "env", ".env", "file to read environment variables from")
	flag.BoolVar(&opts.verbose, "verbose", false, "print additional output")
	flag.Parse()

	if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
		bail(err)
	}

	opts.token = os.Getenv("EVENTBRITE_TOKEN")
}

func main() {
	if opts.token == "" {
		fmt.Fprintln(os.Stderr, "Error: EVENTBRITE_TOKEN is not set.")
		os.Exit(1)
	}

	client := eventbrite.New(opts.token)

	organizations, err := client.Organizations()
	bail(err)

	if len(organizations) == 0 {
		fmt.Fprintln(os.Stderr, "No organizations found for your account.")
		os.Exit(1)
	}

	verbose("Using organization %v\n", organizations[0].Id)

	events, err := client.Events(organizations[0].Id, eventbrite.EventQuery{
		Statuses:    []string{"live", "started"},
		OrderBy:     "start_asc",
		ExpandVenue: true,
	})
	bail(err)

	verbose("Fetched %v events\n", len(events))

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"ID", "Date", "Title", "Venue"})

	for _, event := range events {
		venue := ""
		if event.Venue != nil {
			venue = event.Venue.Name
		}

		table.Append([]string{event.Id, report.FormatDate(event.Start.Local), report.Title(event), venue})
	}

	table.Render()
}
