package parser

import (
	"regexp"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/shopspring/decimal"

	"github.com/bankstat/bankstat/pkg/config"
	"github.com/bankstat/bankstat/pkg/models"
)

// fieldSplit breaks a line on runs of 2+ whitespace characters, the gap
// width the extractor uses between table cells.
var (
	fieldSplit = regexp.MustCompile(`\s{2,}`)
	wsRuns     = regexp.MustCompile(`\s+`)
)

// Parser turns raw statement lines into transaction records using the
// keyword tables on the config. It holds no per-run state, so reuse across
// files is safe.
type Parser struct {
	cfg    *config.Config
	logger *log.Logger
}

func New(cfg *config.Config, logger *log.Logger) *Parser {
	return &Parser{
		cfg:    cfg,
		logger: logger,
	}
}

// Record infers a transaction from one raw line: split into fields, take
// the first field that parses as a date and the first that parses as an
// amount, retry against the whole line when the fields yield nothing, then
// normalize the amount's sign from the line's context keywords.
func (p *Parser) Record(raw string) models.Transaction {
	fields := SplitFields(raw)

	var date *time.Time
	var amount *decimal.Decimal
	for _, f := range fields {
		if date == nil {
			if d, ok := Date(f); ok {
				date = &d
			}
		}
		if amount == nil {
			if a, ok := Amount(f); ok {
				amount = &a
			}
		}
	}
	if date == nil {
		if d, ok := Date(raw); ok {
			date = &d
		}
	}
	if amount == nil {
		if a, ok := AmountInText(raw); ok {
			amount = &a
		}
	}

	return models.Transaction{
		Date:        date,
		Description: wsRuns.ReplaceAllString(strings.TrimSpace(raw), " "),
		Amount:      NormalizeSign(raw, amount, p.cfg.NegativeWords, p.cfg.PositiveWords),
		Raw:         raw,
	}
}

// File parses every sectioned line of one source file and applies the
// noise filter, yielding the rows that belong in the master table.
func (p *Parser) File(sections []models.Section, sourceFile string) []models.Transaction {
	var records []models.Transaction
	for _, sec := range sections {
		for _, line := range sec.Lines {
			rec := p.Record(line)
			if !Keep(rec, p.cfg.NoiseWords) {
				p.logger.Debug("dropping noise line", "file", sourceFile, "line", line)
				continue
			}
			rec.Section = sec.Label
			rec.SourceFile = sourceFile
			records = append(records, rec)
		}
	}
	return records
}

// SplitFields splits a line on 2+ whitespace runs; a line with no such run
// is a single field.
func SplitFields(raw string) []string {
	fields := fieldSplit.Split(strings.TrimSpace(raw), -1)
	if len(fields) == 0 {
		return []string{raw}
	}
	return fields
}
