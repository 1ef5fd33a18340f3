package service

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/bankstat/bankstat/pkg/aggregate"
	"github.com/bankstat/bankstat/pkg/config"
	"github.com/bankstat/bankstat/pkg/csvout"
	"github.com/bankstat/bankstat/pkg/excel"
	"github.com/bankstat/bankstat/pkg/extract"
	"github.com/bankstat/bankstat/pkg/models"
	"github.com/bankstat/bankstat/pkg/parser"
)

// LineSource yields a document's text lines. Satisfied by
// extract.Extractor; tests substitute canned lines.
type LineSource interface {
	Lines(path, password string) extract.Result
}

// PasswordPrompt asks the user for a file's password. Nil means no
// interactive prompting is possible.
type PasswordPrompt func(filename string) string

type Processor struct {
	cfg      *config.Config
	logger   *log.Logger
	source   LineSource
	parser   *parser.Parser
	manifest *models.Manifest
	prompt   PasswordPrompt
}

func NewProcessor(cfg *config.Config, logger *log.Logger, source LineSource, manifest *models.Manifest, prompt PasswordPrompt) *Processor {
	return &Processor{
		cfg:      cfg,
		logger:   logger,
		source:   source,
		parser:   parser.New(cfg, logger),
		manifest: manifest,
		prompt:   prompt,
	}
}

// ProcessDirectory runs the pipeline over every PDF in dir, sequentially
// and in directory order. Per-file failures become summary statuses, never
// a run abort.
func (p *Processor) ProcessDirectory(dir string) (*aggregate.Aggregator, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("error reading directory: %w", err)
	}

	agg := aggregate.New()
	found := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(strings.ToLower(entry.Name()), ".pdf") {
			continue
		}
		found++
		p.processFile(dir, entry.Name(), agg)
	}
	if found == 0 {
		return nil, fmt.Errorf("no PDFs found in %s", dir)
	}
	return agg, nil
}

func (p *Processor) processFile(dir, name string, agg *aggregate.Aggregator) {
	path := filepath.Join(dir, name)

	res := p.source.Lines(path, p.passwordFor(name))
	if res.Failed {
		p.logger.Warn("extraction failed", "file", name, "reason", res.Reason)
		agg.Add(name, nil, "extract failed: "+res.Reason)
		return
	}
	p.logger.Info("extracted lines", "file", name, "lines", len(res.Lines))

	sections := parser.Sections(res.Lines, p.cfg.SectionHeaders)
	records := p.parser.File(sections, name)

	status := "OK"
	if len(res.Lines) == 0 {
		status = "empty"
	}
	agg.Add(name, records, status)
}

// passwordFor resolves a file's password: manifest first, then the config
// map, then an interactive prompt for files whose name suggests a
// protected bank statement. A crude heuristic, not a security check.
func (p *Processor) passwordFor(name string) string {
	if pw := p.manifest.PasswordFor(name); pw != "" {
		return pw
	}
	if pw := p.cfg.PasswordFor(name); pw != "" {
		return pw
	}
	if strings.Contains(strings.ToLower(name), "bank") && p.prompt != nil {
		return p.prompt(name)
	}
	return ""
}

// WriteOutputs saves the workbook and the master CSV next to the inputs
// and returns the paths actually written.
func (p *Processor) WriteOutputs(dir string, agg *aggregate.Aggregator) (string, string, error) {
	writer := excel.NewWriter(p.logger)
	xlsxPath, err := writer.Write(filepath.Join(dir, p.cfg.WorkbookName), agg.Files(), agg.Summaries(), agg.Master())
	if err != nil {
		return "", "", err
	}

	csvPath := filepath.Join(dir, p.cfg.CSVName)
	if err := csvout.Write(csvPath, agg.Master()); err != nil {
		return "", "", err
	}
	return xlsxPath, csvPath, nil
}
