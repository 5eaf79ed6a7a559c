package period

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// labelLayout renders "March 2024".
const labelLayout = "January 2006"

// Label returns the month label for t, e.g. "March 2024".
func Label(t time.Time) string {
	return t.Format(labelLayout)
}

// FormatLabel returns the label for a year and month (1-12).
func FormatLabel(year, month int) string {
	return Label(time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC))
}

// ParseLabel parses "March 2024" into year and month.
func ParseLabel(label string) (year, month int, err error) {
	t, err := time.Parse(labelLayout, strings.TrimSpace(label))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid month label %q: %w", label, err)
	}
	return t.Year(), int(t.Month()), nil
}

// Key returns a sortable key like "2024-03".
func Key(year, month int) string {
	return fmt.Sprintf("%04d-%02d", year, month)
}

// SortLabels orders month labels chronologically. Labels that fail to
// parse sort after all valid ones, in lexical order.
func SortLabels(labels []string) ([]string, error) {
	type keyed struct {
		label string
		key   string
	}
	ks := make([]keyed, 0, len(labels))
	var firstErr error
	for _, l := range labels {
		y, m, err := ParseLabel(l)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			ks = append(ks, keyed{label: l, key: "~" + l})
			continue
		}
		ks = append(ks, keyed{label: l, key: Key(y, m)})
	}
	slices.SortStableFunc(ks, func(a, b keyed) int { return strings.Compare(a.key, b.key) })

	out := make([]string, len(ks))
	for i, k := range ks {
		out[i] = k.label
	}
	return out, firstErr
}
