// Package segment splits raw text into words, sentences, paragraphs and lines.
// Every function is a pure function of its input.
package segment

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	// wordRegex matches runs of Unicode letters, digits and underscores.
	wordRegex = regexp.MustCompile(`[\p{L}\p{N}_]+`)

	// sentenceBreakRegex matches terminal punctuation followed by whitespace.
	sentenceBreakRegex = regexp.MustCompile(`[.!?]+[\s\v\p{Z}\x{85}]+`)
)

// Words returns the word tokens of text with case preserved.
func Words(text string) []string {
	return wordRegex.FindAllString(text, -1)
}

// Fold returns a lowercased copy of words.
func Fold(words []string) []string {
	caser := cases.Lower(language.Und)
	folded := make([]string, len(words))
	for i, w := range words {
		folded[i] = caser.String(w)
	}
	return folded
}

// Sentences splits the trimmed text on runs of '.', '!' or '?' followed by
// whitespace. Empty fragments are discarded, so empty input yields no
// sentences. Decimals such as "3.14 " followed by a space may over-split.
func Sentences(text string) []string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil
	}
	parts := sentenceBreakRegex.Split(trimmed, -1)
	sentences := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			sentences = append(sentences, p)
		}
	}
	return sentences
}

// Paragraphs splits text on newlines and returns the trimmed, non-blank lines.
func Paragraphs(text string) []string {
	var paragraphs []string
	for _, line := range strings.Split(text, "\n") {
		if p := strings.TrimSpace(line); p != "" {
			paragraphs = append(paragraphs, p)
		}
	}
	return paragraphs
}

// Lines splits text on newlines keeping blank lines in place, so the index
// of a line matches its position in the input.
func Lines(text string) []string {
	return strings.Split(text, "\n")
}

// IsBlank reports whether a line holds only whitespace.
func IsBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}
