package moderation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const mask = '*'

// The dictionary uses specific words to avoid partial collisions (e.g., "he" inside "The")
func TestModerator_Censor(t *testing.T) {
	req := require.New(t)
	dictionary := []string{"badger", "snake", "mushroom"}
	moderator, err := NewModerator(dictionary, mask)
	req.NoError(err)

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "Simple word and space preservation",
			input:    "The badger is here",
			expected: "The ****** is here",
		},
		{
			name:     "Multiple occurrences and preserved spacing",
			input:    "badger badger badger",
			expected: "****** ****** ******",
		},
		{
			name:     "Uppercase and internal punctuation",
			input:    "S-N-A-K-E is a B.A.D.G.E.R",
			expected: "********* is a ***********",
		},
		{
			name:     "Accents and special characters (UTF-8)",
			input:    "Un été avec un badger",
			expected: "Un été avec un ******",
		},
		{
			name:     "Clean text is untouched",
			input:    "nothing to see here",
			expected: "nothing to see here",
		},
		{
			name:     "Empty input",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, moderator.Censor(tt.input))
		})
	}
}

func TestLoadWords(t *testing.T) {
	req := require.New(t)
	path := filepath.Join(t.TempDir(), "censored.txt")
	req.NoError(os.WriteFile(path, []byte("badger snake\nmushroom\n"), 0o600))

	words, err := LoadWords(path)

	req.NoError(err)
	req.ElementsMatch([]string{"badger", "snake", "mushroom"}, words)
}

func TestLoadWords_Empty_File(t *testing.T) {
	req := require.New(t)
	path := filepath.Join(t.TempDir(), "censored.txt")
	req.NoError(os.WriteFile(path, []byte("  \n"), 0o600))

	_, err := LoadWords(path)

	req.Error(err)
}

func TestLoadWords_Missing_File(t *testing.T) {
	req := require.New(t)

	_, err := LoadWords(filepath.Join(t.TempDir(), "absent.txt"))

	req.Error(err)
}
