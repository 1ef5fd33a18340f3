package parser

import (
	"strings"

	"github.com/bankstat/bankstat/pkg/models"
)

// Keep reports whether a record belongs in the master table. A record with
// a date or an amount always survives; only lines that parsed as neither
// and contain a noise keyword (header and label rows, mostly) are dropped.
func Keep(t models.Transaction, noise []string) bool {
	if t.Date != nil || t.Amount != nil {
		return true
	}
	lower := strings.ToLower(t.Raw)
	for _, k := range noise {
		if strings.Contains(lower, k) {
			return false
		}
	}
	return true
}
