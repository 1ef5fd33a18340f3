// Package excel renders the extraction results as a multi-sheet workbook:
// one sheet per input file, a Summary sheet and a Master sheet.
package excel

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/shirou/gopsutil/v4/process"
	"github.com/xuri/excelize/v2"

	"github.com/bankstat/bankstat/pkg/aggregate"
	"github.com/bankstat/bankstat/pkg/models"
)

// maxSheetName is the xlsx format's sheet name limit.
const maxSheetName = 31

var recordHeader = []interface{}{"Date", "Description", "Amount", "Raw", "Section", "Source File"}

type Writer struct {
	logger *log.Logger
}

func NewWriter(logger *log.Logger) *Writer {
	return &Writer{logger: logger}
}

// Write builds the workbook and saves it. It returns the path actually
// written: when the target is locked by another process it terminates
// spreadsheet processes and retries, then falls back to a
// timestamp-suffixed path.
func (w *Writer) Write(path string, files []aggregate.FileTable, summaries []models.FileSummary, master []models.Transaction) (string, error) {
	f := excelize.NewFile()
	defer f.Close()

	for _, ft := range files {
		if err := w.writeRecords(f, SheetName(ft.Name), ft.Records); err != nil {
			return "", err
		}
	}
	if err := w.writeSummary(f, summaries); err != nil {
		return "", err
	}
	if err := w.writeRecords(f, "Master", master); err != nil {
		return "", err
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return "", fmt.Errorf("error dropping default sheet: %w", err)
	}

	return w.save(f, path)
}

func (w *Writer) writeRecords(f *excelize.File, sheet string, records []models.Transaction) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("error creating sheet %q: %w", sheet, err)
	}
	if err := w.writeHeader(f, sheet, recordHeader); err != nil {
		return err
	}

	for i, rec := range records {
		var amount interface{}
		if rec.Amount != nil {
			amount = rec.Amount.InexactFloat64()
		}
		row := []interface{}{
			rec.DateString(), // dates land as text
			rec.Description,
			amount,
			rec.Raw,
			rec.Section,
			rec.SourceFile,
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("error writing row to %q: %w", sheet, err)
		}
	}
	return nil
}

func (w *Writer) writeSummary(f *excelize.File, summaries []models.FileSummary) error {
	const sheet = "Summary"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("error creating summary sheet: %w", err)
	}
	if err := w.writeHeader(f, sheet, []interface{}{"File", "Rows", "Status"}); err != nil {
		return err
	}

	for i, s := range summaries {
		row := []interface{}{s.File, s.Rows, s.Status}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("error writing summary row: %w", err)
		}
	}
	return nil
}

func (w *Writer) writeHeader(f *excelize.File, sheet string, header []interface{}) error {
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("error writing header to %q: %w", sheet, err)
	}

	style, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return fmt.Errorf("error creating header style: %w", err)
	}
	end, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return fmt.Errorf("error resolving header range: %w", err)
	}
	if err := f.SetCellStyle(sheet, "A1", end, style); err != nil {
		return fmt.Errorf("error styling header of %q: %w", sheet, err)
	}
	return nil
}

func (w *Writer) save(f *excelize.File, path string) (string, error) {
	err := f.SaveAs(path)
	if err == nil {
		return path, nil
	}

	w.logger.Warn("workbook save failed, trying to unlock", "path", path, "error", err)
	w.terminateSpreadsheetHolders()
	if err := f.SaveAs(path); err == nil {
		return path, nil
	}

	alt := timestamped(path)
	if err := f.SaveAs(alt); err != nil {
		return "", fmt.Errorf("error saving workbook: %w", err)
	}
	w.logger.Warn("workbook saved under alternate path", "path", alt)
	return alt, nil
}

// terminateSpreadsheetHolders kills processes that look like a spreadsheet
// application holding the output file. Best effort, not portable safety.
func (w *Writer) terminateSpreadsheetHolders() {
	procs, err := process.Processes()
	if err != nil {
		w.logger.Debug("process listing unavailable", "error", err)
		return
	}
	for _, p := range procs {
		name, err := p.Name()
		if err != nil {
			continue
		}
		if strings.Contains(strings.ToUpper(name), "EXCEL") {
			w.logger.Warn("terminating process holding workbook", "pid", p.Pid, "name", name)
			_ = p.Terminate()
		}
	}
	time.Sleep(time.Second)
}

func timestamped(path string) string {
	ext := filepath.Ext(path)
	return fmt.Sprintf("%s_%d%s", strings.TrimSuffix(path, ext), time.Now().Unix(), ext)
}

// SheetName makes a file name acceptable as an xlsx sheet name: characters
// the format rejects become spaces and the result is cut at 31 runes.
func SheetName(name string) string {
	clean := strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return ' '
		}
		return r
	}, name)

	runes := []rune(clean)
	if len(runes) > maxSheetName {
		runes = runes[:maxSheetName]
	}
	return strings.TrimSpace(string(runes))
}
