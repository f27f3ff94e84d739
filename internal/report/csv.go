package report

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/tomklaasen/eventbrite-tool/internal/attendance"
)

var csvHeader = []string{"#", "First Name", "Last Name", "Company"}
var overviewCsvHeader = []string{"#", "First Name", "Last Name", "Company", "Events Attended"}

// WriteCSV writes the confirmed-attendee listing for one event.
func WriteCSV(out io.Writer, rows []Row) error {
	w := csv.NewWriter(out)

	if err := w.Write(csvHeader); err != nil {
		return err
	}

	for i, row := range rows {
		record := []string{strconv.Itoa(i + 1), row.FirstName, row.LastName, row.Company}
		if err := w.Write(record); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// WriteOverviewCSV writes the cross-event attendance ranking.
func WriteOverviewCSV(out io.Writer, records []attendance.Record) error {
	w := csv.NewWriter(out)

	if err := w.Write(overviewCsvHeader); err != nil {
		return err
	}

	for i, record := range records {
		row := []string{
			strconv.Itoa(i + 1),
			record.FirstName,
			record.LastName,
			record.Company,
			strconv.Itoa(record.Count),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
