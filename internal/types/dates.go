package types

import (
	"strings"
	"time"
)

// DateLayouts are the date formats the editor stores: full date, month or year.
var DateLayouts = []string{"2006-01-02", "2006-01", "2006"}

// ParseDate parses a stored date in any of DateLayouts.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range DateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatMonth renders a stored date as "Jan 2006". Blank input gives "" and
// unparsable input is returned unchanged.
func FormatMonth(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}
	t, ok := ParseDate(s)
	if !ok {
		return s
	}
	return t.Format("Jan 2006")
}

// DateRange renders "start - end", with "Present" for current entries. It is empty
// when neither bound is known.
func DateRange(start, end string, current bool) string {
	from := FormatMonth(start)
	to := FormatMonth(end)
	if current {
		to = "Present"
	}
	switch {
	case from == "" && to == "":
		return ""
	case from == "":
		return to
	case to == "":
		return from
	default:
		return from + " - " + to
	}
}
