// Package csvout writes the master table as a CSV mirror of the workbook's
// Master sheet.
package csvout

import (
	"fmt"
	"os"

	"github.com/gocarina/gocsv"

	"github.com/bankstat/bankstat/pkg/models"
)

// Row is the CSV shape of one master record. Dates and amounts are
// rendered as text, absent values as empty cells.
type Row struct {
	Date        string `csv:"Date"`
	Description string `csv:"Description"`
	Amount      string `csv:"Amount"`
	Raw         string `csv:"Raw"`
	Section     string `csv:"Section"`
	SourceFile  string `csv:"Source File"`
}

// Rows converts master records to their CSV shape.
func Rows(master []models.Transaction) []Row {
	rows := make([]Row, 0, len(master))
	for i := range master {
		t := &master[i]
		rows = append(rows, Row{
			Date:        t.DateString(),
			Description: t.Description,
			Amount:      t.AmountString(),
			Raw:         t.Raw,
			Section:     t.Section,
			SourceFile:  t.SourceFile,
		})
	}
	return rows
}

// Write saves the master table to path.
func Write(path string, master []models.Transaction) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating csv file: %w", err)
	}
	defer f.Close()

	rows := Rows(master)
	if err := gocsv.MarshalFile(&rows, f); err != nil {
		return fmt.Errorf("error writing csv: %w", err)
	}
	return nil
}
