package extract

import (
	"bytes"
	"fmt"
	"image/png"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/gen2brain/go-fitz"
	"github.com/otiai10/gosseract/v2"
)

// TesseractOCR renders each page with MuPDF and runs tesseract over the
// image. It is the rescue path for scanned statements and for files the
// text extractor cannot read.
type TesseractOCR struct {
	logger *log.Logger
}

func NewTesseractOCR(logger *log.Logger) *TesseractOCR {
	return &TesseractOCR{logger: logger}
}

func (o *TesseractOCR) Lines(path string) ([]string, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("error opening document: %w", err)
	}
	defer doc.Close()

	client := gosseract.NewClient()
	defer client.Close()

	unique := make(map[string]struct{})
	for i := 0; i < doc.NumPage(); i++ {
		img, err := doc.Image(i)
		if err != nil {
			o.logger.Debug("page render failed", "page", i, "error", err)
			continue
		}

		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			o.logger.Debug("page encode failed", "page", i, "error", err)
			continue
		}
		if err := client.SetImageFromBytes(buf.Bytes()); err != nil {
			o.logger.Debug("ocr input failed", "page", i, "error", err)
			continue
		}

		text, err := client.Text()
		if err != nil {
			o.logger.Debug("ocr failed", "page", i, "error", err)
			continue
		}
		for _, l := range strings.Split(text, "\n") {
			if s := strings.TrimSpace(l); s != "" {
				unique[s] = struct{}{}
			}
		}
	}

	lines := make([]string, 0, len(unique))
	for l := range unique {
		lines = append(lines, l)
	}
	sort.Strings(lines)
	return lines, nil
}
