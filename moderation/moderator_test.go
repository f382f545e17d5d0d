package moderation

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const maskRune = '*'

// The dictionary uses distinct words to avoid partial collisions
// (e.g. "he" inside "The").
func TestModerator_Mask(t *testing.T) {
	req := require.New(t)
	mod, err := NewModerator([]string{"badger", "snake"}, maskRune)
	req.NoError(err)

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "simple word, spacing preserved",
			input:    "The badger is here",
			expected: "The ****** is here",
		},
		{
			name:     "multiple occurrences",
			input:    "badger badger badger",
			expected: "****** ****** ******",
		},
		{
			name:     "uppercase and internal punctuation",
			input:    "watch the B.A.D.G.E.R",
			expected: "watch the ***********",
		},
		{
			name:     "leet speak",
			input:    "a b4dg3r appears",
			expected: "a ****** appears",
		},
		{
			name:     "clean text untouched",
			input:    "nothing to see here",
			expected: "nothing to see here",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			masked, _ := mod.Mask(tt.input)
			require.Equal(t, tt.expected, masked)
		})
	}
}

func TestModerator_Mask_ReportsFoundWords(t *testing.T) {
	req := require.New(t)
	mod, err := NewModerator([]string{"badger", "snake"}, maskRune)
	req.NoError(err)

	_, found := mod.Mask("a badger and a snake")
	req.Len(found, 2)
	req.Contains(found, "badger")
	req.Contains(found, "snake")
}

func TestModerator_EmptyDictionary_PassThrough(t *testing.T) {
	req := require.New(t)
	mod, err := NewModerator(nil, maskRune)
	req.NoError(err)

	masked, found := mod.Mask("badger")
	req.Equal("badger", masked)
	req.Empty(found)
}
