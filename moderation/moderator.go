// Package moderation masks forbidden words in message bodies before they
// reach the store. Matching is resilient to casing, spacing, punctuation
// and common leet substitutions.
package moderation

import (
	"unicode"

	goahocorasick "github.com/anknown/ahocorasick"
)

type Moderator struct {
	machine  *goahocorasick.Machine
	maskRune rune
}

// indexedText is a normalized view of an input string that remembers, for
// every normalized rune, the index of the rune it came from. Matches found
// on the normalized text are masked back onto the original positions.
type indexedText struct {
	runes   []rune
	origIdx []int
}

// NewModerator builds the Aho-Corasick automaton from the normalized word
// list. An empty list yields a moderator that passes everything through.
func NewModerator(words []string, maskRune rune) (*Moderator, error) {
	if len(words) == 0 {
		return &Moderator{maskRune: maskRune}, nil
	}
	patterns := make([][]rune, 0, len(words))
	for _, word := range words {
		if normalized := normalize([]rune(word)); len(normalized) > 0 {
			patterns = append(patterns, normalized)
		}
	}
	machine := new(goahocorasick.Machine)
	if err := machine.Build(patterns); err != nil {
		return nil, err
	}
	return &Moderator{machine: machine, maskRune: maskRune}, nil
}

// Mask replaces every forbidden span with the mask rune, preserving length
// and spacing of the original text. It returns the masked text and the
// matched (normalized) words for audit logging.
func (m *Moderator) Mask(original string) (string, []string) {
	if m.machine == nil {
		return original, nil
	}

	indexed := index(original)
	if len(indexed.runes) == 0 {
		return original, nil
	}

	spans := m.machine.MultiPatternSearch(indexed.runes, false)
	if len(spans) == 0 {
		return original, nil
	}

	origRunes := []rune(original)
	var found []string
	for _, span := range spans {
		start := span.Pos
		end := start + len(span.Word)
		if start < 0 || end > len(indexed.origIdx) {
			continue
		}
		found = append(found, string(span.Word))
		for i := indexed.origIdx[start]; i <= indexed.origIdx[end-1]; i++ {
			origRunes[i] = m.maskRune
		}
	}
	return string(origRunes), found
}

func index(input string) indexedText {
	origRunes := []rune(input)
	out := indexedText{
		runes:   make([]rune, 0, len(origRunes)),
		origIdx: make([]int, 0, len(origRunes)),
	}
	for i, r := range origRunes {
		plain := unleet(r)
		if skippable(plain) {
			continue
		}
		out.runes = append(out.runes, unicode.ToLower(plain))
		out.origIdx = append(out.origIdx, i)
	}
	return out
}

func normalize(input []rune) []rune {
	out := make([]rune, 0, len(input))
	for _, r := range input {
		plain := unleet(r)
		if skippable(plain) {
			continue
		}
		out = append(out, unicode.ToLower(plain))
	}
	return out
}

// unleet maps common leet-speak characters back to their alphabet letters.
func unleet(r rune) rune {
	switch r {
	case '4', '@':
		return 'a'
	case '3':
		return 'e'
	case '1', '!', '|':
		return 'i'
	case '0':
		return 'o'
	case '5', '$':
		return 's'
	default:
		return r
	}
}

func skippable(r rune) bool {
	return unicode.IsPunct(r) || unicode.IsSpace(r) || unicode.IsSymbol(r)
}
