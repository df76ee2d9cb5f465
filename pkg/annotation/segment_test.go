package annotation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSegment(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{name: "two reactions", raw: "(A – B)", want: []string{"A", "B"}},
		{name: "single", raw: "(single)", want: []string{"single"}},
		{name: "no parens", raw: "  Beifall bei der SPD ", want: []string{"Beifall bei der SPD"}},
		{name: "hyphen is not a separator", raw: "(Beifall bei der SPD - Zuruf)", want: []string{"Beifall bei der SPD - Zuruf"}},
		{
			name: "separator inside a message is split too",
			raw:  "(Bettina Stark-Watzinger [FDP]: Jetzt anfängt – nach einem Jahr Corona?)",
			want: []string{"Bettina Stark-Watzinger [FDP]: Jetzt anfängt", "nach einem Jahr Corona?"},
		},
		{name: "empty parens", raw: "()", want: []string{""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Segment(tt.raw))
		})
	}
}
