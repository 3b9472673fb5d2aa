package recommend

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recserve/recommend-engine/internal/catalog"
)

func testCorpus(domain catalog.Domain, items ...catalog.Item) *catalog.Corpus {
	return catalog.NewCorpus(domain, items)
}

func TestExtractTerms(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		maxN     int
		expected []string
	}{
		{
			"unigrams only",
			"space pirates",
			1,
			[]string{"space", "pirates"},
		},
		{
			"bigrams follow unigrams",
			"space pirates",
			2,
			[]string{"space", "pirates", "space pirates"},
		},
		{
			"stopwords removed before ngrams form",
			"best of the best",
			2,
			[]string{"best", "best", "best best"},
		},
		{
			"punctuation splits tokens",
			"sci-fi, action!",
			1,
			[]string{"sci", "fi", "action"},
		},
		{
			"single chars dropped",
			"a b movie",
			1,
			[]string{"movie"},
		},
		{
			"empty input",
			"",
			3,
			nil,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, extractTerms(tc.text, tc.maxN))
		})
	}
}

func TestBuildIndex_VocabularyCap(t *testing.T) {
	corpus := testCorpus(catalog.DomainMovies,
		catalog.Item{Title: "Alpha", Keywords: "space pirates treasure"},
		catalog.Item{Title: "Beta", Keywords: "space station mystery"},
		catalog.Item{Title: "Gamma", Keywords: "desert treasure hunt"},
	)

	idx := BuildIndex(corpus, WithVocabularySize(4), WithMaxNGram(1))
	assert.Equal(t, 4, idx.VocabularySize())

	full := BuildIndex(corpus, WithMaxNGram(1))
	assert.Greater(t, full.VocabularySize(), 4)
}

func TestVectorSpaceIndex_ScoreRange(t *testing.T) {
	corpus := testCorpus(catalog.DomainMovies,
		catalog.Item{Title: "Alpha", Keywords: "space pirates treasure"},
		catalog.Item{Title: "Beta", Keywords: "space station mystery"},
	)
	idx := BuildIndex(corpus)

	scores := idx.Score("space pirates")
	require.Len(t, scores, 2)
	for i, s := range scores {
		assert.GreaterOrEqual(t, s, 0.0, "score %d", i)
		assert.LessOrEqual(t, s, 1.0+1e-9, "score %d", i)
	}
	assert.Greater(t, scores[0], scores[1], "item sharing more terms should score higher")
}

func TestVectorSpaceIndex_SelfSimilarity(t *testing.T) {
	corpus := testCorpus(catalog.DomainBooks,
		catalog.Item{Title: "Solo", Keywords: "dragons quest mountain"},
	)
	idx := BuildIndex(corpus)

	// Querying with an item's own text scores 1 against it.
	scores := idx.Score(corpus.Items[0].CombinedText(catalog.DomainBooks))
	require.Len(t, scores, 1)
	assert.InDelta(t, 1.0, scores[0], 1e-9)
}

func TestVectorSpaceIndex_NoOverlap(t *testing.T) {
	corpus := testCorpus(catalog.DomainFood,
		catalog.Item{Title: "Soup", Keywords: "tomato basil warm"},
	)
	idx := BuildIndex(corpus)

	scores := idx.Score("quantum chromodynamics")
	require.Len(t, scores, 1)
	assert.Zero(t, scores[0])
}

func TestVectorSpaceIndex_DeterministicAcrossBuilds(t *testing.T) {
	corpus := testCorpus(catalog.DomainMusic,
		catalog.Item{Title: "One", Artist: "A", Keywords: "calm piano night"},
		catalog.Item{Title: "Two", Artist: "B", Keywords: "loud guitar night"},
		catalog.Item{Title: "Three", Artist: "C", Keywords: "calm strings dawn"},
	)

	a := BuildIndex(corpus, WithVocabularySize(5))
	b := BuildIndex(corpus, WithVocabularySize(5))

	sa := a.Score("calm night music")
	sb := b.Score("calm night music")
	require.Equal(t, len(sa), len(sb))
	for i := range sa {
		assert.Equal(t, sa[i], sb[i])
	}
}

func TestVectorSpaceIndex_VectorsAreUnitLength(t *testing.T) {
	corpus := testCorpus(catalog.DomainTVShows,
		catalog.Item{Title: "Alpha", Keywords: "detective city rain"},
		catalog.Item{Title: "Beta", Keywords: "comedy office paper"},
	)
	idx := BuildIndex(corpus)

	for i, vec := range idx.vectors {
		var norm float64
		for _, w := range vec {
			norm += w * w
		}
		assert.InDelta(t, 1.0, math.Sqrt(norm), 1e-9, "vector %d", i)
	}
}

func TestRankByScore(t *testing.T) {
	order := rankByScore([]float64{0.2, 0.9, 0.2, 0.5})
	assert.Equal(t, []int{1, 3, 0, 2}, order, "descending score, catalog order on ties")
}
