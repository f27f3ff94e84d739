package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/tomklaasen/eventbrite-tool/internal/attendance"
)

func TestWriteEventPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.pdf")

	rows := []Row{{FirstName: "Émile", LastName: "Durand", Company: "Acme"}}
	err := WriteEventPDF(path, event("Spring Meetup", "2026-03-01T18:00:00", "Town Hall"), rows, generated)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("expected a PDF on disk: %v", err)
	}
	if info.Size() == 0 {
		t.Error("expected a non-empty PDF")
	}
}

func TestWriteOverviewPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "overview.pdf")

	records := []attendance.Record{{FirstName: "Zoe", LastName: "West", Count: 3}}
	if err := WriteOverviewPDF(path, records, 5, 1, generated); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if info, err := os.Stat(path); err != nil || info.Size() == 0 {
		t.Errorf("expected a non-empty PDF, got info=%v err=%v", info, err)
	}
}
