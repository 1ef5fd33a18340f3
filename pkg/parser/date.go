package parser

import (
	"regexp"
	"time"

	"github.com/araddon/dateparse"
)

// dateToken matches D/M/Y, M/D/Y and Y/M/D shapes with 2-4 digit years
// and / or - separators.
var dateToken = regexp.MustCompile(`\d{1,2}[/-]\d{1,2}[/-]\d{2,4}|\d{4}[/-]\d{1,2}[/-]\d{1,2}`)

// Date finds the first date-looking token in text and parses it with
// day-first preference for ambiguous forms; ISO forms disambiguate
// themselves. The bool is false when no token parses.
func Date(text string) (time.Time, bool) {
	for _, token := range dateToken.FindAllString(text, -1) {
		t, err := dateparse.ParseAny(token,
			dateparse.PreferMonthFirst(false),
			dateparse.RetryAmbiguousDateWithSwap(true))
		if err != nil {
			continue
		}
		return t, true
	}
	return time.Time{}, false
}
