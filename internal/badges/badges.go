package badges

import (
	"archive/zip"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"

	"github.com/tomklaasen/eventbrite-tool/internal/report"
)

// Column names the P-touch label template expects in its merge table.
var csvHeader = []string{"First Name", "Surname", "Company"}

var (
	databasePath = regexp.MustCompile(`databasePath="[^"]*"`)
	mergeTable   = regexp.MustCompile(`mergeTable="[^"]*"`)
	dbTableName  = regexp.MustCompile(`<database:dbTable name="[^"]*"`)
)

// Generate writes <stem>.csv and a copy of the .lbx template whose database
// reference points at it. Open the copy in P-touch Editor and use
// Print > Print All Records to print every badge.
//
// Returns false without error when the template does not exist, so the
// caller can warn and skip badge output.
func Generate(template string, outputDir string, stem string, rows []report.Row) (bool, error) {
	if _, err := os.Stat(template); os.IsNotExist(err) {
		return false, nil
	}

	csvPath := filepath.Join(outputDir, stem+".csv")
	if err := writeCsv(csvPath, rows); err != nil {
		return false, err
	}

	absCsv, err := filepath.Abs(csvPath)
	if err != nil {
		return false, err
	}

	reader, err := zip.OpenReader(template)
	if err != nil {
		return false, err
	}
	defer reader.Close()

	out, err := os.Create(filepath.Join(outputDir, stem+".lbx"))
	if err != nil {
		return false, err
	}
	defer out.Close()

	writer := zip.NewWriter(out)

	for _, file := range reader.File {
		raw, err := readMember(file)
		if err != nil {
			return false, err
		}

		if file.Name == "label.xml" {
			raw = patch(raw, absCsv, filepath.Base(csvPath))
		}

		w, err := writer.Create(file.Name)
		if err != nil {
			return false, err
		}

		if _, err := w.Write(raw); err != nil {
			return false, err
		}
	}

	return true, writer.Close()
}

// patch rewrites the three path-bearing attributes by raw substitution,
// leaving the rest of the XML byte-identical to the template. The
// replacements are built with ReplaceAllFunc so a $ in the CSV path is
// inserted literally instead of being expanded as a group reference.
func patch(xml []byte, absCsv string, csvName string) []byte {
	xml = databasePath.ReplaceAllFunc(xml, func([]byte) []byte {
		return []byte(fmt.Sprintf(`databasePath="%v"`, absCsv))
	})
	xml = mergeTable.ReplaceAllFunc(xml, func([]byte) []byte {
		return []byte(fmt.Sprintf(`mergeTable="%v"`, csvName))
	})
	xml = dbTableName.ReplaceAllFunc(xml, func([]byte) []byte {
		return []byte(fmt.Sprintf(`<database:dbTable name="%v"`, csvName))
	})
	return xml
}

func writeCsv(path string, rows []report.Row) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)

	if err := w.Write(csvHeader); err != nil {
		return err
	}

	for _, row := range rows {
		if err := w.Write([]string{row.FirstName, row.LastName, row.Company}); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func readMember(file *zip.File) ([]byte, error) {
	r, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer r.Close()

	return io.ReadAll(r)
}
