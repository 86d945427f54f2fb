package recommend_test

import (
	"strings"
	"testing"

	"github.com/gaurav-prasanna/citescore/core"
	"github.com/gaurav-prasanna/citescore/core/recommend"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// healthy returns metrics that trigger no rule.
func healthy() core.AnalysisResult {
	return core.AnalysisResult{
		WordCount:         800,
		SentenceCount:     40,
		AvgSentenceLength: 20,
		ParagraphCount:    20,
		HeadingRatio:      0.3,
		ListRatio:         0.2,
		NumbersCount:      12,
		URLCount:          2,
		CitationLikeCount: 1,
		TypeTokenRatio:    0.5,
		RepetitionScore:   0.4,
	}
}

func TestEvaluate(t *testing.T) {
	t.Parallel()

	t.Run("no rule fires for healthy content", func(t *testing.T) {
		t.Parallel()
		recs := recommend.Evaluate(healthy())
		require.NotNil(t, recs)
		assert.Empty(t, recs)
	})

	t.Run("word count boundary is strict", func(t *testing.T) {
		t.Parallel()
		m := healthy()
		m.WordCount = 500
		assert.Empty(t, recommend.Evaluate(m))

		m.WordCount = 499
		recs := recommend.Evaluate(m)
		require.Len(t, recs, 1)
		assert.Contains(t, recs[0], "relatively short")
	})

	t.Run("long paragraph message embeds the count", func(t *testing.T) {
		t.Parallel()
		m := healthy()
		m.LongParagraphs = 7
		recs := recommend.Evaluate(m)
		require.Len(t, recs, 1)
		assert.Contains(t, recs[0], "There are 7 very long paragraphs")
	})

	t.Run("references rule needs both urls and citations absent", func(t *testing.T) {
		t.Parallel()
		m := healthy()
		m.URLCount = 0
		assert.Empty(t, recommend.Evaluate(m))

		m.CitationLikeCount = 0
		recs := recommend.Evaluate(m)
		require.Len(t, recs, 1)
		assert.Contains(t, recs[0], "No references or sources detected")
	})

	t.Run("diversity rule ignores empty text", func(t *testing.T) {
		t.Parallel()
		m := healthy()
		m.TypeTokenRatio = 0
		m.WordCount = 0
		for _, rec := range recommend.Evaluate(m) {
			assert.NotContains(t, rec, "Vocabulary diversity")
		}
	})

	t.Run("all rules fire in order", func(t *testing.T) {
		t.Parallel()
		m := core.AnalysisResult{
			WordCount:         10,
			SentenceCount:     1,
			AvgSentenceLength: 30,
			ParagraphCount:    1,
			LongParagraphs:    2,
			TypeTokenRatio:    0.1,
			RepetitionScore:   2,
		}
		recs := recommend.Evaluate(m)
		require.Len(t, recs, 9)
		wantPrefixes := []string{
			"The content is relatively short.",
			"Average sentence length is high.",
			"There are 2 very long paragraphs.",
			"Use more headings",
			"Add more bullet lists",
			"Very few numeric data points",
			"No references or sources detected.",
			"Vocabulary diversity seems low.",
			"High repetition of text patterns",
		}
		for i, prefix := range wantPrefixes {
			assert.Truef(t, strings.HasPrefix(recs[i], prefix),
				"recommendation %d = %q, want prefix %q", i, recs[i], prefix)
		}
	})

	t.Run("thresholds are exclusive", func(t *testing.T) {
		t.Parallel()
		m := healthy()
		m.AvgSentenceLength = recommend.MaxAvgSentenceLength
		m.HeadingRatio = recommend.MinHeadingRatio
		m.ListRatio = recommend.MinListRatio
		m.NumbersCount = recommend.MinNumbersCount
		m.TypeTokenRatio = recommend.MinTypeTokenRatio
		m.RepetitionScore = recommend.MaxRepetitionScore
		assert.Empty(t, recommend.Evaluate(m))
	})
}
