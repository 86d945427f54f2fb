// Package recommend turns a metrics record into advisory messages.
// Rules run in a fixed order and never short-circuit each other.
package recommend

import (
	"fmt"

	"github.com/gaurav-prasanna/citescore/core"
)

// Thresholds. These are fixed, not user-configurable.
const (
	MinWordCount         = 500
	MaxAvgSentenceLength = 25
	MinHeadingRatio      = 0.2
	MinListRatio         = 0.1
	MinNumbersCount      = 5
	MinTypeTokenRatio    = 0.3
	MaxRepetitionScore   = 1.5
)

// rule is one threshold check. Message is only called when Fires is true.
type rule struct {
	Name    string
	Fires   func(m core.AnalysisResult) bool
	Message func(m core.AnalysisResult) string
}

func fixed(msg string) func(core.AnalysisResult) string {
	return func(core.AnalysisResult) string { return msg }
}

// rules is the evaluation order, which is also the output order.
var rules = []rule{
	{
		Name:    "short-content",
		Fires:   func(m core.AnalysisResult) bool { return m.WordCount < MinWordCount },
		Message: fixed("The content is relatively short. Consider adding more context, definitions, and detailed examples."),
	},
	{
		Name:    "long-sentences",
		Fires:   func(m core.AnalysisResult) bool { return m.AvgSentenceLength > MaxAvgSentenceLength },
		Message: fixed("Average sentence length is high. Split long sentences into shorter ones to improve clarity and LLM comprehension."),
	},
	{
		Name:  "long-paragraphs",
		Fires: func(m core.AnalysisResult) bool { return m.LongParagraphs > 0 },
		Message: func(m core.AnalysisResult) string {
			return fmt.Sprintf("There are %d very long paragraphs. Split them into smaller chunks to make parsing and scanning easier.", m.LongParagraphs)
		},
	},
	{
		Name:    "few-headings",
		Fires:   func(m core.AnalysisResult) bool { return m.HeadingRatio < MinHeadingRatio },
		Message: fixed("Use more headings (H2/H3) to structure the content into clear, thematic sections."),
	},
	{
		Name:    "few-lists",
		Fires:   func(m core.AnalysisResult) bool { return m.ListRatio < MinListRatio },
		Message: fixed("Add more bullet lists to highlight steps, key points, or advantages. Structured information is easier for LLMs to reuse."),
	},
	{
		Name:    "few-numbers",
		Fires:   func(m core.AnalysisResult) bool { return m.NumbersCount < MinNumbersCount },
		Message: fixed("Very few numeric data points detected. Add numbers, dates, or percentages that can be explicitly cited."),
	},
	{
		Name:    "no-references",
		Fires:   func(m core.AnalysisResult) bool { return m.URLCount == 0 && m.CitationLikeCount == 0 },
		Message: fixed("No references or sources detected. Adding links to official documentation or studies increases authority and citability."),
	},
	{
		Name:    "low-diversity",
		Fires:   func(m core.AnalysisResult) bool { return m.TypeTokenRatio < MinTypeTokenRatio && m.WordCount > 0 },
		Message: fixed("Vocabulary diversity seems low. Use more specific terms and semantic variations related to the topic."),
	},
	{
		Name:    "repetition",
		Fires:   func(m core.AnalysisResult) bool { return m.RepetitionScore > MaxRepetitionScore },
		Message: fixed("High repetition of text patterns detected. Rewrite or condense redundant parts to add more new information."),
	},
}

// Evaluate returns the message of every rule that fires, in rule order.
// An empty, non-nil slice means no issues were detected.
func Evaluate(m core.AnalysisResult) []string {
	recs := []string{}
	for _, r := range rules {
		if r.Fires(m) {
			recs = append(recs, r.Message(m))
		}
	}
	return recs
}
