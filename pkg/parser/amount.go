package parser

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// amountToken: optional minus, optional currency symbol, digit groups
	// with optional thousands separators, optional 1-2 decimal digits.
	amountToken = regexp.MustCompile(`-?[₹$£€]?\s?\d[\d,]*(?:\.\d{1,2})?`)
	// amountAnchored requires the whole candidate field to be an amount,
	// so check numbers inside descriptions are not mistaken for one.
	amountAnchored = regexp.MustCompile(`^-?[₹$£€]?\d[\d,]*(?:\.\d{1,2})?$`)
	amountStrip    = regexp.MustCompile(`[^\d.\-]`)
	crMarker       = regexp.MustCompile(`\bCR\b`)
	drMarker       = regexp.MustCompile(`\bDr\b`)
)

// Amount parses a single candidate field as a monetary amount. The whole
// field must be the amount (after accounting-notation folding); partial
// matches are rejected here and left to AmountInText.
func Amount(field string) (decimal.Decimal, bool) {
	folded, negate := foldAccounting(field)
	folded = strings.ReplaceAll(folded, " ", "")
	if !amountAnchored.MatchString(folded) {
		return decimal.Decimal{}, false
	}
	return toDecimal(folded, negate)
}

// AmountInText scans free text for the first amount-looking token. Used as
// the whole-line retry when no field parses on its own.
func AmountInText(text string) (decimal.Decimal, bool) {
	folded, negate := foldAccounting(text)
	m := amountToken.FindString(strings.ReplaceAll(folded, " ", ""))
	if m == "" {
		m = amountToken.FindString(folded)
	}
	if m == "" {
		return decimal.Decimal{}, false
	}
	return toDecimal(m, negate)
}

// foldAccounting normalizes accounting-negative notation before matching:
// parenthesized amounts become negative, a CR marker is dropped (credit,
// sign untouched), a Dr marker negates.
func foldAccounting(text string) (string, bool) {
	negate := false
	if drMarker.MatchString(text) {
		negate = true
		text = drMarker.ReplaceAllString(text, "")
	}
	text = crMarker.ReplaceAllString(text, "")
	if strings.ContainsRune(text, '(') {
		text = strings.ReplaceAll(text, "(", "-")
		text = strings.ReplaceAll(text, ")", "")
	}
	return strings.TrimSpace(text), negate
}

func toDecimal(token string, negate bool) (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(amountStrip.ReplaceAllString(token, ""))
	if err != nil {
		return decimal.Decimal{}, false
	}
	if negate {
		d = d.Neg()
	}
	return d, true
}

// NormalizeSign applies the sign-context keywords to a parsed amount.
// Negative keywords are checked first and win when both sets appear on the
// same line.
func NormalizeSign(raw string, amount *decimal.Decimal, negatives, positives []string) *decimal.Decimal {
	if amount == nil {
		return nil
	}
	lower := strings.ToLower(raw)
	for _, k := range negatives {
		if strings.Contains(lower, k) {
			v := amount.Abs().Neg()
			return &v
		}
	}
	for _, k := range positives {
		if strings.Contains(lower, k) {
			v := amount.Abs()
			return &v
		}
	}
	return amount
}
