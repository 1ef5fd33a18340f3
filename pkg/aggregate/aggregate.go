// Package aggregate collects per-file transaction tables into the master
// table and the processing summary. Records are not mutated after they are
// added.
package aggregate

import "github.com/bankstat/bankstat/pkg/models"

// FileTable is one input file's retained records, in line order.
type FileTable struct {
	Name    string
	Records []models.Transaction
}

type Aggregator struct {
	files     []FileTable
	summaries []models.FileSummary
}

func New() *Aggregator {
	return &Aggregator{}
}

// Add records one processed file. Every file gets a summary row; only
// files that yielded records get a table.
func (a *Aggregator) Add(name string, records []models.Transaction, status string) {
	if len(records) > 0 {
		a.files = append(a.files, FileTable{Name: name, Records: records})
	}
	a.summaries = append(a.summaries, models.FileSummary{
		File:   name,
		Rows:   len(records),
		Status: status,
	})
}

// Files returns the non-empty per-file tables in processing order.
func (a *Aggregator) Files() []FileTable {
	return a.files
}

// Summaries returns one row per processed file, in processing order.
func (a *Aggregator) Summaries() []models.FileSummary {
	return a.summaries
}

// Master concatenates all per-file tables in processing order.
func (a *Aggregator) Master() []models.Transaction {
	var master []models.Transaction
	for _, f := range a.files {
		master = append(master, f.Records...)
	}
	return master
}
