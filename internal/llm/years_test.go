package llm

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestYearsOfExperience(t *testing.T) {
	now := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		start   string
		end     string
		current bool
		want    int
	}{
		{name: "full dates", start: "2018-06-01", end: "2023-06-01", want: 5},
		{name: "month precision rounds", start: "2020-01", end: "2022-09", want: 3},
		{name: "year precision", start: "2015", end: "2019", want: 4},
		{name: "current uses now", start: "2021-06-01", current: true, want: 3},
		{name: "short stint floors at one", start: "2023-01-01", end: "2023-03-01", want: 1},
		{name: "missing start", end: "2020-01-01", want: 1},
		{name: "missing end and not current", start: "2020-01-01", want: 1},
		{name: "unparsable", start: "last spring", end: "2020", want: 1},
		{name: "end before start", start: "2022", end: "2020", want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, YearsOfExperience(tt.start, tt.end, tt.current, now))
		})
	}
}

func TestCleanText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain", input: "  Hello there.  ", want: "Hello there."},
		{name: "fenced", input: "```\n- one\n- two\n```", want: "- one\n- two"},
		{name: "fenced with language", input: "```markdown\n- one\n```", want: "- one"},
		{name: "quoted", input: `"A summary."`, want: "A summary."},
		{name: "inner quotes kept", input: `"Led" the "team"`, want: `"Led" the "team"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanText(tt.input))
		})
	}
}
