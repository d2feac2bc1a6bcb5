package categories

import (
	"fmt"
	"strings"
)

// metachars are characters a pattern engine would treat specially. Keywords
// are matched literally, so these only matter to someone editing the table
// with regular expressions in mind.
const metachars = `.*+?()[]{}|^$\`

// Warning is an advisory finding about a keyword.
type Warning struct {
	Category string
	Keyword  string
	Message  string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %q: %s", w.Category, w.Keyword, w.Message)
}

// Lint reports suspicious keywords. It never rejects a table.
func Lint(t Table) []Warning {
	var warnings []Warning
	for i := range t.Len() {
		c := t.At(i)
		seen := make(map[string]bool, len(c.Keywords))
		for _, kw := range c.Keywords {
			if strings.TrimSpace(kw) == "" {
				warnings = append(warnings, Warning{Category: c.Name, Keyword: kw, Message: "empty keyword matches every description"})
				continue
			}
			if idx := strings.IndexAny(kw, metachars); idx >= 0 {
				warnings = append(warnings, Warning{
					Category: c.Name,
					Keyword:  kw,
					Message:  fmt.Sprintf("contains %q, matched literally", kw[idx]),
				})
			}
			key := strings.ToUpper(kw)
			if seen[key] {
				warnings = append(warnings, Warning{Category: c.Name, Keyword: kw, Message: "duplicate keyword"})
			}
			seen[key] = true
		}
	}
	return warnings
}
