package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is one statement line after heuristic inference. Date and
// Amount are nil when no token on the line parsed as one; absence is a
// normal state, not an error.
type Transaction struct {
	Date        *time.Time
	Description string
	Amount      *decimal.Decimal
	Raw         string
	Section     string
	SourceFile  string
}

// DateString renders the date the way it lands in the spreadsheet:
// plain text, empty when absent.
func (t *Transaction) DateString() string {
	if t.Date == nil {
		return ""
	}
	return t.Date.Format("2006-01-02")
}

// AmountString renders the amount with two decimal places, empty when absent.
func (t *Transaction) AmountString() string {
	if t.Amount == nil {
		return ""
	}
	return t.Amount.StringFixed(2)
}

// FileSummary is one row of the Summary sheet.
type FileSummary struct {
	File   string
	Rows   int
	Status string
}

// Section groups the lines that follow one statement header, in input
// order. Label is a header keyword or "Uncategorized".
type Section struct {
	Label string
	Lines []string
}
