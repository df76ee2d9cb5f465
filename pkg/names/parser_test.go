package names

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Name
	}{
		{
			name: "default structure",
			raw:  "Vorname Nachname",
			want: Name{Forename: "Vorname", Surname: "Nachname"},
		},
		{
			name: "role title and prefix",
			raw:  "Präsident Dr. Manfred Jürgenson von Kuchenhausen",
			want: Name{Role: "Präsident", Title: "Dr.", Forename: "Manfred Jürgenson", SurnamePrefix: "von", Surname: "Kuchenhausen"},
		},
		{
			name: "split role word",
			raw:  "Vizepräsident in Petra Pau",
			want: Name{Role: "Vizepräsidentin", Forename: "Petra", Surname: "Pau"},
		},
		{
			name: "honorary doctor",
			raw:  "Dr. h. c. Thomas Sattelberger",
			want: Name{Title: "Dr. h. c.", Forename: "Thomas", Surname: "Sattelberger"},
		},
		{
			name: "title chain",
			raw:  "Dr. h. c. Dr. Ing. e. h. Vorname Nachname",
			want: Name{Title: "Dr. h. c. Dr. Ing. e. h.", Forename: "Vorname", Surname: "Nachname"},
		},
		{
			name: "bachelor",
			raw:  "B.Sc. Vorname Nachname",
			want: Name{Title: "B.Sc.", Forename: "Vorname", Surname: "Nachname"},
		},
		{
			name: "noble rank absorbed into surname",
			raw:  "Christian Frhr. von Stetten",
			want: Name{Forename: "Christian", SurnamePrefix: "Frhr. von", Surname: "Stetten"},
		},
		{
			name: "two particles",
			raw:  "Hans-Georg von der Marwitz",
			want: Name{Forename: "Hans-Georg", SurnamePrefix: "von der", Surname: "Marwitz"},
		},
		{
			name: "capitalised particle",
			raw:  "Dr. Daniela De Ridder",
			want: Name{Title: "Dr.", Forename: "Daniela", SurnamePrefix: "De", Surname: "Ridder"},
		},
		{
			name: "lower case particle",
			raw:  "Dr. Thomas de Maizière",
			want: Name{Title: "Dr.", Forename: "Thomas", SurnamePrefix: "de", Surname: "Maizière"},
		},
		{
			name: "second forename",
			raw:  "Dr. Eberhardt Alexander Gauland",
			want: Name{Title: "Dr.", Forename: "Eberhardt Alexander", Surname: "Gauland"},
		},
		{
			name: "hyphen split by line break",
			raw:  "Annegret Kramp -Karrenbauer",
			want: Name{Forename: "Annegret", Surname: "Kramp-Karrenbauer"},
		},
		{
			name: "lower case artifact dropped",
			raw:  "an Dr. Anton Hofreiter",
			want: Name{Title: "Dr.", Forename: "Anton", Surname: "Hofreiter"},
		},
		{
			name: "surname only",
			raw:  "Dr. Hofreiter",
			want: Name{Title: "Dr.", Surname: "Hofreiter"},
		},
		{
			name: "empty",
			raw:  "   ",
			want: Name{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(tt.raw))
		})
	}
}

func TestFullSurname(t *testing.T) {
	n := Parse("Christian Frhr. von Stetten")
	assert.Equal(t, "Christian", n.Forename)
	assert.Equal(t, "Frhr. von Stetten", n.FullSurname())
	assert.True(t, n.Complete())

	assert.False(t, Parse("Hofreiter").Complete())
}
