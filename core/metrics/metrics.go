// Package metrics aggregates segmented text into an AnalysisResult.
// It performs no I/O and applies no rounding.
package metrics

import (
	"regexp"
	"strings"

	"github.com/gaurav-prasanna/citescore/core"
	"github.com/gaurav-prasanna/citescore/core/classify"
	"github.com/gaurav-prasanna/citescore/core/segment"
)

// LongParagraphWords is the word count above which a paragraph is long.
const LongParagraphWords = 120

// DefaultCitationMarkers are the attribution words counted as citation-like
// ("según" is Spanish for "according to").
var DefaultCitationMarkers = []string{"según", "segun"}

var (
	numberRegex       = regexp.MustCompile(`\p{Nd}+`)
	urlRegex          = regexp.MustCompile(`https?://[^\s\p{Z}]+`)
	bracketRefRegex   = regexp.MustCompile(`\[\p{Nd}+\]`)
	yearInParensRegex = regexp.MustCompile(`\(\p{Nd}{4}\)`)
)

// Input is the segmenter and classifier output for one text.
type Input struct {
	// Text is the trimmed input, scanned for numbers, URLs and citations.
	Text       string
	Words      []string
	Sentences  []string
	Paragraphs []string
	Structure  classify.Counts
}

// Compute builds the metrics record for in. Recommendations are left nil.
// markers are the attribution phrases counted toward citation_like_count;
// a nil slice means DefaultCitationMarkers.
func Compute(in Input, markers []string) core.AnalysisResult {
	if markers == nil {
		markers = DefaultCitationMarkers
	}

	wordCount := len(in.Words)
	sentenceCount := atLeastOne(len(in.Sentences))
	paragraphCount := atLeastOne(len(in.Paragraphs))
	folded := segment.Fold(in.Words)

	return core.AnalysisResult{
		WordCount:         wordCount,
		SentenceCount:     sentenceCount,
		AvgSentenceLength: float64(wordCount) / float64(sentenceCount),
		ParagraphCount:    paragraphCount,
		LongParagraphs:    countLongParagraphs(in.Paragraphs),
		HeadingRatio:      ratio(in.Structure.Headings, paragraphCount),
		ListRatio:         ratio(in.Structure.ListItems, paragraphCount),
		NumbersCount:      len(numberRegex.FindAllString(in.Text, -1)),
		URLCount:          len(urlRegex.FindAllString(in.Text, -1)),
		CitationLikeCount: countCitations(in.Text, folded, markers),
		TypeTokenRatio:    typeTokenRatio(folded),
		RepetitionScore:   float64(maxBigramCount(folded)) / float64(sentenceCount),
	}
}

// atLeastOne is the single place where sentence and paragraph counts are
// floored, which keeps every division in Compute well defined.
func atLeastOne(n int) int {
	if n < 1 {
		return 1
	}
	return n
}

// ratio divides without clamping; values above 1 are legitimate.
func ratio(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(count) / float64(total)
}

func countLongParagraphs(paragraphs []string) int {
	n := 0
	for _, p := range paragraphs {
		if len(strings.Fields(p)) > LongParagraphWords {
			n++
		}
	}
	return n
}

// countCitations adds bracketed references, parenthesised years and
// attribution markers. A line may contribute to more than one count.
func countCitations(text string, folded []string, markers []string) int {
	n := len(bracketRefRegex.FindAllString(text, -1))
	n += len(yearInParensRegex.FindAllString(text, -1))
	for _, m := range markers {
		n += countPhrase(folded, segment.Fold(segment.Words(m)))
	}
	return n
}

// countPhrase counts occurrences of phrase as consecutive whole words.
func countPhrase(words, phrase []string) int {
	if len(phrase) == 0 {
		return 0
	}
	n := 0
	for i := 0; i+len(phrase) <= len(words); i++ {
		match := true
		for j, p := range phrase {
			if words[i+j] != p {
				match = false
				break
			}
		}
		if match {
			n++
		}
	}
	return n
}

func typeTokenRatio(folded []string) float64 {
	if len(folded) == 0 {
		return 0
	}
	unique := make(map[string]struct{}, len(folded))
	for _, w := range folded {
		unique[w] = struct{}{}
	}
	return float64(len(unique)) / float64(len(folded))
}

type bigram struct {
	first, second string
}

// maxBigramCount returns the frequency of the most common adjacent word pair.
func maxBigramCount(folded []string) int {
	counts := make(map[bigram]int)
	best := 0
	for i := 0; i+1 < len(folded); i++ {
		b := bigram{folded[i], folded[i+1]}
		counts[b]++
		if counts[b] > best {
			best = counts[b]
		}
	}
	return best
}
