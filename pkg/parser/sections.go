package parser

import (
	"strings"

	"github.com/bankstat/bankstat/pkg/models"
)

// Uncategorized labels lines seen before any section header.
const Uncategorized = "Uncategorized"

// Sections partitions lines into header-labelled buckets. Headers are
// checked case-insensitively in their configured order and the first match
// wins; a matching line starts (or rejoins) that section and is kept in
// it, together with every following line until the next header. Bucket
// order is first-seen.
func Sections(lines, headers []string) []models.Section {
	lowered := make([]string, len(headers))
	for i, h := range headers {
		lowered[i] = strings.ToLower(h)
	}

	var out []models.Section
	index := make(map[string]int)
	current := Uncategorized

	for _, line := range lines {
		lowerLine := strings.ToLower(line)
		for i, h := range lowered {
			if strings.Contains(lowerLine, h) {
				current = headers[i]
				break
			}
		}

		i, ok := index[current]
		if !ok {
			i = len(out)
			index[current] = i
			out = append(out, models.Section{Label: current})
		}
		out[i].Lines = append(out[i].Lines, line)
	}
	return out
}
