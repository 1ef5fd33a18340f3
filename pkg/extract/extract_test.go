package extract

import (
	"errors"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubOCR struct {
	lines []string
	err   error
	calls int
}

func (s *stubOCR) Lines(string) ([]string, error) {
	s.calls++
	return s.lines, s.err
}

func TestLinesRescue(t *testing.T) {
	logger := log.New(io.Discard)

	t.Run("unreadable file falls back to ocr", func(t *testing.T) {
		ocr := &stubOCR{lines: []string{"Deposits", "03/04/2023 Salary 1000"}}
		e := New(logger, ocr)

		res := e.Lines("testdata/does-not-exist.pdf", "")

		require.False(t, res.Failed)
		assert.Equal(t, ocr.lines, res.Lines)
		assert.Equal(t, 1, ocr.calls)
	})

	t.Run("no ocr engine fails with reason", func(t *testing.T) {
		e := New(logger, nil)

		res := e.Lines("testdata/does-not-exist.pdf", "")

		assert.True(t, res.Failed)
		assert.NotEmpty(t, res.Reason)
		assert.Empty(t, res.Lines)
	})

	t.Run("ocr error compounds the reason", func(t *testing.T) {
		e := New(logger, &stubOCR{err: errors.New("tesseract missing")})

		res := e.Lines("testdata/does-not-exist.pdf", "")

		assert.True(t, res.Failed)
		assert.Contains(t, res.Reason, "tesseract missing")
	})

	t.Run("empty ocr output stays failed", func(t *testing.T) {
		e := New(logger, &stubOCR{})

		res := e.Lines("testdata/does-not-exist.pdf", "")

		assert.True(t, res.Failed)
	})
}

func TestRescueTextlessDocument(t *testing.T) {
	logger := log.New(io.Discard)

	t.Run("no ocr engine degrades to empty, not failed", func(t *testing.T) {
		e := New(logger, nil)

		res := e.rescue("statement.pdf", "no text extracted", false)

		assert.False(t, res.Failed)
		assert.Empty(t, res.Lines)
	})

	t.Run("ocr error on a readable document degrades to empty", func(t *testing.T) {
		e := New(logger, &stubOCR{err: errors.New("tesseract missing")})

		res := e.rescue("statement.pdf", "no text extracted", false)

		assert.False(t, res.Failed)
		assert.Empty(t, res.Lines)
	})

	t.Run("ocr output still rescues the document", func(t *testing.T) {
		ocr := &stubOCR{lines: []string{"Deposits"}}
		e := New(logger, ocr)

		res := e.rescue("statement.pdf", "no text extracted", false)

		assert.False(t, res.Failed)
		assert.Equal(t, ocr.lines, res.Lines)
	})
}

func TestJoinRow(t *testing.T) {
	assert.Equal(t, "01/02/2023  Check 101  -200.00",
		joinRow([]string{"01/02/2023", "Check 101", "-200.00"}))
	assert.Equal(t, "a  b", joinRow([]string{" a ", "b"}))
	assert.Equal(t, "", joinRow(nil))
}

func TestUniqueSorted(t *testing.T) {
	got := uniqueSorted([]string{"b", "a", "b", "  ", "c", "a"})
	assert.Equal(t, []string{"a", "b", "c"}, got)
}

func TestDedupeKeepFirst(t *testing.T) {
	got := dedupeKeepFirst([]string{"page1-a", "page1-b", "page1-a", "page2-a", "page1-b"})
	assert.Equal(t, []string{"page1-a", "page1-b", "page2-a"}, got)
}
