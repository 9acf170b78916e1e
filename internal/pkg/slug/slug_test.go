package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrom(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"simple", "Birthday Party", "birthday-party"},
		{"accented", "João", "joao"},
		{"mixed accents", "Fête d'Été", "fete-dete"},
		{"apostrophe dropped", "Alice's Party", "alices-party"},
		{"punctuation dropped", "New Year!!! 2025", "new-year-2025"},
		{"leading and trailing junk", "  --Party--  ", "party"},
		{"already clean", "summer-trip", "summer-trip"},
		{"digits", "Turning 30", "turning-30"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, From(tc.in))
		})
	}
}

func TestFromIsStable(t *testing.T) {
	assert.Equal(t, From("Grandma's 80th"), From("Grandma's 80th"))
}
