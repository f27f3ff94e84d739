package report

import (
	"strconv"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/tomklaasen/eventbrite-tool/internal/attendance"
	"github.com/tomklaasen/eventbrite-tool/pkg/eventbrite"
)

// WriteEventPDF renders the single-event report as an A4 PDF.
func WriteEventPDF(path string, event eventbrite.Event, rows []Row, generated time.Time) error {
	meta := [][2]string{
		{"Date:", FormatDate(event.Start.Local)},
		{"Location:", Location(event)},
		{"Registrations:", strconv.Itoa(len(rows))},
	}

	table := make([][]string, 0, len(rows))
	for i, row := range rows {
		table = append(table, []string{
			strconv.Itoa(i + 1), orDash(row.FirstName), orDash(row.LastName), orDash(row.Company),
		})
	}

	return writePdf(path, Title(event), meta, []string{"#", "First Name", "Last Name", "Company"}, table, generated)
}

// WriteOverviewPDF renders the cross-event attendance ranking as an A4 PDF.
func WriteOverviewPDF(path string, records []attendance.Record, events int, people int, generated time.Time) error {
	meta := [][2]string{
		{"Events:", strconv.Itoa(events)},
		{"People:", strconv.Itoa(people)},
	}

	table := make([][]string, 0, len(records))
	for i, record := range records {
		table = append(table, []string{
			strconv.Itoa(i + 1),
			orDash(record.FirstName),
			orDash(record.LastName),
			orDash(record.Company),
			strconv.Itoa(record.Count),
		})
	}

	header := []string{"#", "First Name", "Last Name", "Company", "Events Attended"}
	return writePdf(path, "Attendance Overview", meta, header, table, generated)
}

func writePdf(path string, title string, meta [][2]string, header []string, rows [][]string, generated time.Time) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(title, true)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	// Core fonts are cp1252; accented names need translating.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, tr(title), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	for _, pair := range meta {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(35, 6, pair[0], "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(0, 6, tr(pair[1]), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	widths := columnWidths(len(header))

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(240, 240, 240)
	for i, h := range header {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	for _, row := range rows {
		for i, cell := range row {
			pdf.CellFormat(widths[i], 6, tr(cell), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.SetTextColor(102, 102, 102)
	pdf.CellFormat(0, 5, "Report generated on "+generated.Format("2006-01-02 at 15:04"), "", 1, "L", false, 0, "")

	return pdf.OutputFileAndClose(path)
}

// columnWidths spreads the printable width over the columns, keeping the
// numbering column narrow.
func columnWidths(columns int) []float64 {
	const usable = 190.0
	const numbering = 12.0

	widths := make([]float64, columns)
	widths[0] = numbering

	rest := (usable - numbering) / float64(columns-1)
	for i := 1; i < columns; i++ {
		widths[i] = rest
	}

	return widths
}
