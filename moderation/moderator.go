package moderation

import (
	"fmt"
	"os"
	"strings"
	"unicode"

	goahocorasick "github.com/anknown/ahocorasick"
)

// Moderator masks censored words in inbound text before it reaches the
// translation gateway. Matching ignores case, punctuation, and spacing,
// while the replacement preserves the original rune positions.
type Moderator struct {
	matcher *goahocorasick.Machine
	mask    rune
}

// NewModerator builds the Aho-Corasick automaton from a normalized copy
// of the word list.
func NewModerator(words []string, mask rune) (*Moderator, error) {
	patterns := make([][]rune, len(words))
	for i, word := range words {
		norm, _ := normalize([]rune(word))
		patterns[i] = norm
	}

	m := new(goahocorasick.Machine)
	if err := m.Build(patterns); err != nil {
		return nil, fmt.Errorf("censored word list: %w", err)
	}
	return &Moderator{matcher: m, mask: mask}, nil
}

// Censor replaces every matched span with the mask rune. Characters
// outside matched spans, including the spacing and punctuation inside a
// span's original form, are left untouched where possible.
func (m *Moderator) Censor(text string) string {
	runes := []rune(text)
	norm, origIdx := normalize(runes)
	if len(norm) == 0 {
		return text
	}

	spans := m.matcher.MultiPatternSearch(norm, false)
	if len(spans) == 0 {
		return text
	}

	for _, span := range spans {
		start := span.Pos
		end := start + len(span.Word)
		if start < 0 || end > len(origIdx) {
			continue
		}
		for i := origIdx[start]; i <= origIdx[end-1]; i++ {
			runes[i] = m.mask
		}
	}
	return string(runes)
}

// normalize lowercases the input and strips punctuation, spacing, and
// symbols, keeping a mapping from normalized positions back to the
// original rune positions.
func normalize(in []rune) ([]rune, []int) {
	norm := make([]rune, 0, len(in))
	origIdx := make([]int, 0, len(in))
	for i, r := range in {
		if unicode.IsPunct(r) || unicode.IsSpace(r) || unicode.IsSymbol(r) {
			continue
		}
		norm = append(norm, unicode.ToLower(r))
		origIdx = append(origIdx, i)
	}
	return norm, origIdx
}

// LoadWords reads a whitespace-separated censored word list from disk.
func LoadWords(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("censored word list: %w", err)
	}
	words := strings.Fields(string(data))
	if len(words) == 0 {
		return nil, fmt.Errorf("censored word list %s is empty", path)
	}
	return words, nil
}
