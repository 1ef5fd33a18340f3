package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bankstat/bankstat/pkg/models"
)

func rec(raw, source string) models.Transaction {
	return models.Transaction{Raw: raw, Description: raw, SourceFile: source}
}

func TestAggregator(t *testing.T) {
	agg := New()
	agg.Add("a.pdf", []models.Transaction{rec("l1", "a.pdf"), rec("l2", "a.pdf")}, "OK")
	agg.Add("broken.pdf", nil, "extract failed: no text extracted")
	agg.Add("b.pdf", []models.Transaction{rec("l3", "b.pdf")}, "OK")

	t.Run("summaries cover every file in order", func(t *testing.T) {
		summaries := agg.Summaries()
		require.Len(t, summaries, 3)
		assert.Equal(t, models.FileSummary{File: "a.pdf", Rows: 2, Status: "OK"}, summaries[0])
		assert.Equal(t, models.FileSummary{File: "broken.pdf", Rows: 0, Status: "extract failed: no text extracted"}, summaries[1])
		assert.Equal(t, models.FileSummary{File: "b.pdf", Rows: 1, Status: "OK"}, summaries[2])
	})

	t.Run("empty files get no table", func(t *testing.T) {
		files := agg.Files()
		require.Len(t, files, 2)
		assert.Equal(t, "a.pdf", files[0].Name)
		assert.Equal(t, "b.pdf", files[1].Name)
	})

	t.Run("master concatenates in processing order", func(t *testing.T) {
		master := agg.Master()
		require.Len(t, master, 3)
		assert.Equal(t, "l1", master[0].Raw)
		assert.Equal(t, "l2", master[1].Raw)
		assert.Equal(t, "l3", master[2].Raw)
	})
}

func TestAggregatorEmpty(t *testing.T) {
	agg := New()
	assert.Empty(t, agg.Files())
	assert.Empty(t, agg.Summaries())
	assert.Empty(t, agg.Master())
}
