package llm

import (
	"math"
	"time"

	"github.com/jonathan/resume-builder/internal/types"
)

// YearsOfExperience returns the whole number of years between start and end (or now
// when current), rounded, with a floor of 1. It is 1 when the range is incomplete or a
// date cannot be parsed.
func YearsOfExperience(start, end string, current bool, now time.Time) int {
	from, ok := types.ParseDate(start)
	if !ok {
		return 1
	}
	to := now
	if !current {
		if to, ok = types.ParseDate(end); !ok {
			return 1
		}
	}
	days := to.Sub(from).Hours() / 24
	years := int(math.Round(days / 365))
	if years < 1 {
		return 1
	}
	return years
}
