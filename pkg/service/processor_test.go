package service

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/bankstat/bankstat/pkg/config"
	"github.com/bankstat/bankstat/pkg/extract"
)

type stubSource struct {
	byFile    map[string]extract.Result
	passwords map[string]string
}

func (s *stubSource) Lines(path, password string) extract.Result {
	name := filepath.Base(path)
	s.passwords[name] = password
	return s.byFile[name]
}

func testDir(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, n := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, n), []byte("%PDF-1.4"), 0o644))
	}
	return dir
}

func newTestProcessor(t *testing.T, source LineSource, prompt PasswordPrompt) *Processor {
	t.Helper()
	cfg, err := config.Build("", nil)
	require.NoError(t, err)
	return NewProcessor(cfg, log.New(io.Discard), source, nil, prompt)
}

func TestProcessDirectory(t *testing.T) {
	dir := testDir(t, "bank-march.pdf", "broken.pdf", "notes.txt", "plain.PDF", "scanned.pdf")

	source := &stubSource{
		passwords: map[string]string{},
		byFile: map[string]extract.Result{
			"bank-march.pdf": {Lines: []string{
				"Deposits",
				"03/04/2023  Salary  1,000.00",
			}},
			"broken.pdf":  {Failed: true, Reason: "no text extracted"},
			"scanned.pdf": {}, // readable but textless, OCR exhausted
			"plain.PDF": {Lines: []string{
				"Date  Description  Amount",
				"01/02/2023  Check 101  -200.00",
			}},
		},
	}

	prompted := []string{}
	prompt := func(filename string) string {
		prompted = append(prompted, filename)
		return "s3cret"
	}

	p := newTestProcessor(t, source, prompt)
	agg, err := p.ProcessDirectory(dir)
	require.NoError(t, err)

	t.Run("summary per file in directory order", func(t *testing.T) {
		summaries := agg.Summaries()
		require.Len(t, summaries, 4)
		assert.Equal(t, "bank-march.pdf", summaries[0].File)
		assert.Equal(t, "OK", summaries[0].Status)
		assert.Equal(t, "extract failed: no text extracted", summaries[1].Status)
		assert.Equal(t, 0, summaries[1].Rows)
		assert.Equal(t, "plain.PDF", summaries[2].File)
		assert.Equal(t, 1, summaries[2].Rows)
		assert.Equal(t, "scanned.pdf", summaries[3].File)
		assert.Equal(t, "empty", summaries[3].Status)
		assert.Equal(t, 0, summaries[3].Rows)
	})

	t.Run("bank file is prompted, others are not", func(t *testing.T) {
		assert.Equal(t, []string{"bank-march.pdf"}, prompted)
		assert.Equal(t, "s3cret", source.passwords["bank-march.pdf"])
		assert.Equal(t, "", source.passwords["plain.PDF"])
	})

	t.Run("non pdf files are skipped", func(t *testing.T) {
		_, seen := source.passwords["notes.txt"]
		assert.False(t, seen)
	})

	t.Run("master carries sections and sources", func(t *testing.T) {
		master := agg.Master()
		require.Len(t, master, 3) // Deposits header line + salary + the surviving table row

		assert.Equal(t, "Deposits", master[0].Section)
		assert.Equal(t, "bank-march.pdf", master[0].SourceFile)

		last := master[len(master)-1]
		assert.Equal(t, "plain.PDF", last.SourceFile)
		require.NotNil(t, last.Amount)
		assert.Equal(t, "-200.00", last.Amount.StringFixed(2))
	})
}

func TestProcessDirectoryNoPDFs(t *testing.T) {
	dir := testDir(t, "notes.txt")
	p := newTestProcessor(t, &stubSource{passwords: map[string]string{}}, nil)

	_, err := p.ProcessDirectory(dir)
	assert.Error(t, err)
}

func TestWriteOutputs(t *testing.T) {
	dir := testDir(t, "stmt.pdf")
	source := &stubSource{
		passwords: map[string]string{},
		byFile: map[string]extract.Result{
			"stmt.pdf": {Lines: []string{"01/02/2023  Deposit  250.00"}},
		},
	}

	p := newTestProcessor(t, source, nil)
	agg, err := p.ProcessDirectory(dir)
	require.NoError(t, err)

	xlsxPath, csvPath, err := p.WriteOutputs(dir, agg)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Merged_Extracted_Data.xlsx"), xlsxPath)
	assert.Equal(t, filepath.Join(dir, "Merged_Master_Data.csv"), csvPath)

	f, err := excelize.OpenFile(xlsxPath)
	require.NoError(t, err)
	defer f.Close()
	assert.Contains(t, f.GetSheetList(), "Summary")
	assert.Contains(t, f.GetSheetList(), "Master")
	assert.Contains(t, f.GetSheetList(), "stmt.pdf")

	data, err := os.ReadFile(csvPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "250.00")
}
