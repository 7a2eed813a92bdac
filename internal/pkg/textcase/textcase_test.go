package textcase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/KirkDiggler/sheetgen/internal/pkg/textcase"
)

func TestCapitalize(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"single word", "reflex", "Reflex"},
		{"stat abbreviation", "dex", "Dex"},
		{"hyphen is not a word break", "lore-a", "Lore-a"},
		{"rest is lowered", "sTEALTH", "Stealth"},
		{"single letter", "a", "A"},
		{"non ascii first letter", "élan", "Élan"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, textcase.Capitalize(tc.input))
		})
	}
}
