package refine

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/data"
)

// Segmenter splits normalized text into sentences with a punkt tokenizer
// trained on Russian. It is safe for concurrent use.
type Segmenter struct {
	tok *sentences.DefaultSentenceTokenizer
}

// NewSegmenter loads the bundled Russian training data.
func NewSegmenter() (*Segmenter, error) {
	b, err := data.Asset("data/russian.json")
	if err != nil {
		return nil, fmt.Errorf("refine: load russian training data: %w", err)
	}
	training, err := sentences.LoadTraining(b)
	if err != nil {
		return nil, fmt.Errorf("refine: parse russian training data: %w", err)
	}
	return &Segmenter{tok: sentences.NewSentenceTokenizer(training)}, nil
}

// Split returns the trimmed sentences of text in order.
func (s *Segmenter) Split(text string) []string {
	var out []string
	for _, sent := range s.tok.Tokenize(text) {
		out = append(out, strings.TrimSpace(sent.Text))
	}
	return out
}

// keepSentence is the per-sentence quality gate: non-empty, at least
// MinSentWords words, mostly Cyrillic, and opening with an uppercase
// Cyrillic letter. The non-Cyrillic ratio counts every character, spaces
// included, so heavily spaced formula fragments fail it too.
func keepSentence(sent string) bool {
	trimmed := strings.TrimSpace(sent)
	if trimmed == "" {
		return false
	}
	if len(strings.Fields(sent)) < MinSentWords {
		return false
	}

	total := utf8.RuneCountInString(sent)
	nonCyr := 0
	for _, r := range sent {
		if !isCyrillicLetter(r) {
			nonCyr++
		}
	}
	if total > 0 && float64(nonCyr)/float64(total) > MaxNonCyrillicRate {
		return false
	}

	first, _ := utf8.DecodeRuneInString(trimmed)
	return isUpperCyrillic(first)
}

func isCyrillicLetter(r rune) bool {
	return (r >= 'А' && r <= 'я') || r == 'Ё' || r == 'ё'
}

func isUpperCyrillic(r rune) bool {
	return (r >= 'А' && r <= 'Я') || r == 'Ё'
}
