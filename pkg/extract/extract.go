package extract

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/ledongthuc/pdf"
)

// Result is the outcome of extracting one document. Either Lines carries
// the deduplicated text lines, or Failed is set with a human-readable
// Reason. Extraction never panics the run; the caller records the status.
type Result struct {
	Lines  []string
	Failed bool
	Reason string
}

// OCREngine is the rescue path for documents whose text layer is missing
// or unreadable. A nil engine means OCR is unavailable.
type OCREngine interface {
	Lines(path string) ([]string, error)
}

type Extractor struct {
	logger *log.Logger
	ocr    OCREngine
}

func New(logger *log.Logger, ocr OCREngine) *Extractor {
	return &Extractor{
		logger: logger,
		ocr:    ocr,
	}
}

// Lines extracts the text lines of a PDF. Per page it prefers table
// reconstruction over the plain text layer, dedupes within the page and
// emits in sorted order; across pages it keeps first occurrences only.
// Failures and empty results degrade to OCR, then to a failed Result.
func (e *Extractor) Lines(path, password string) Result {
	lines, err := e.textLines(path, password)
	if err != nil {
		e.logger.Debug("text extraction failed", "file", path, "error", err)
		return e.rescue(path, err.Error(), true)
	}
	if len(lines) == 0 {
		return e.rescue(path, "no text extracted", false)
	}
	return Result{Lines: lines}
}

// rescue runs OCR over the document. When hard is set the document could
// not be read at all and exhausting OCR surfaces as a failure; otherwise
// the document was readable but textless, and exhausting OCR degrades to
// an empty Result the caller records as an empty file.
func (e *Extractor) rescue(path, reason string, hard bool) Result {
	fallback := Result{}
	if hard {
		fallback = Result{Failed: true, Reason: reason}
	}
	if e.ocr == nil {
		return fallback
	}

	e.logger.Info("falling back to ocr", "file", path)
	lines, err := e.ocr.Lines(path)
	if err != nil {
		if hard {
			return Result{Failed: true, Reason: fmt.Sprintf("%s; ocr: %v", reason, err)}
		}
		e.logger.Debug("ocr failed", "file", path, "error", err)
		return fallback
	}
	if len(lines) == 0 {
		return fallback
	}
	return Result{Lines: lines}
}

func (e *Extractor) textLines(path, password string) ([]string, error) {
	f, r, err := open(path, password)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var all []string
	fonts := make(map[string]*pdf.Font)
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		all = append(all, e.pageLines(p, fonts)...)
	}

	return dedupeKeepFirst(all), nil
}

// pageLines yields one page's lines: table rows when the page looks
// tabular, otherwise the plain text layer split on line breaks. Either way
// the page's lines are deduplicated and sorted, which can reorder lines
// within the page; an accepted trade-off of the set-based dedupe.
func (e *Extractor) pageLines(p pdf.Page, fonts map[string]*pdf.Font) []string {
	if rows := tableRows(p.Content().Text); rows != nil {
		joined := make([]string, 0, len(rows))
		for _, cells := range rows {
			if row := joinRow(cells); row != "" {
				joined = append(joined, row)
			}
		}
		return uniqueSorted(joined)
	}

	for _, name := range p.Fonts() {
		if _, ok := fonts[name]; !ok {
			ft := p.Font(name)
			fonts[name] = &ft
		}
	}

	text, err := p.GetPlainText(fonts)
	if err != nil {
		e.logger.Debug("plain text extraction failed for page", "error", err)
		return nil
	}
	return uniqueSorted(strings.Split(text, "\n"))
}

func open(path, password string) (*os.File, *pdf.Reader, error) {
	if password == "" {
		return pdf.Open(path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, nil, err
	}

	attempted := false
	r, err := pdf.NewReaderEncrypted(f, fi.Size(), func() string {
		if attempted {
			return "" // give up after one try
		}
		attempted = true
		return password
	})
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return f, r, nil
}

// joinRow renders table cells as one line, cells separated by a double
// space so the field splitter can recover them.
func joinRow(cells []string) string {
	trimmed := make([]string, 0, len(cells))
	for _, c := range cells {
		trimmed = append(trimmed, strings.TrimSpace(c))
	}
	return strings.TrimSpace(strings.Join(trimmed, "  "))
}

// uniqueSorted drops blank and duplicate lines and returns the remainder
// lexicographically sorted.
func uniqueSorted(lines []string) []string {
	set := make(map[string]struct{}, len(lines))
	for _, l := range lines {
		if s := strings.TrimSpace(l); s != "" {
			set[s] = struct{}{}
		}
	}
	out := make([]string, 0, len(set))
	for l := range set {
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}

// dedupeKeepFirst removes repeats across pages, preserving the order in
// which lines were first seen.
func dedupeKeepFirst(lines []string) []string {
	seen := make(map[string]struct{}, len(lines))
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		if _, ok := seen[l]; ok {
			continue
		}
		seen[l] = struct{}{}
		out = append(out, l)
	}
	return out
}
