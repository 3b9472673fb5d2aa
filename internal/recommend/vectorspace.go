package recommend

import (
	"math"
	"sort"
	"strings"

	"github.com/recserve/recommend-engine/internal/catalog"
)

const (
	// defaultVocabularySize caps the index vocabulary at the most frequent
	// terms across the corpus.
	defaultVocabularySize = 2000
	// defaultMaxNGram folds contiguous word runs of up to this length into
	// single vocabulary terms.
	defaultMaxNGram = 3
)

// VectorSpaceIndex holds a TF-IDF weighted representation of one domain's
// catalog. Built once at startup and read-only afterwards, so concurrent
// Score calls need no locking.
type VectorSpaceIndex struct {
	domain     catalog.Domain
	vocabulary map[string]int // term -> column
	idf        []float64      // per column
	vectors    []sparseVector // per item, L2-normalized
	maxNGram   int
}

// sparseVector stores only the non-zero weights of an item vector.
type sparseVector map[int]float64

// IndexOption tunes index construction.
type IndexOption func(*indexParams)

type indexParams struct {
	vocabularySize int
	maxNGram       int
}

// WithVocabularySize overrides the vocabulary cap.
func WithVocabularySize(n int) IndexOption {
	return func(p *indexParams) {
		if n > 0 {
			p.vocabularySize = n
		}
	}
}

// WithMaxNGram overrides the longest word run folded into one term.
func WithMaxNGram(n int) IndexOption {
	return func(p *indexParams) {
		if n > 0 {
			p.maxNGram = n
		}
	}
}

// BuildIndex constructs the TF-IDF index over a domain corpus. The
// vocabulary is the top-K terms by total corpus occurrences, stopwords
// excluded, with alphabetical order breaking frequency ties so two builds
// over the same corpus always produce identical vectors.
func BuildIndex(corpus *catalog.Corpus, opts ...IndexOption) *VectorSpaceIndex {
	params := indexParams{
		vocabularySize: defaultVocabularySize,
		maxNGram:       defaultMaxNGram,
	}
	for _, opt := range opts {
		opt(&params)
	}

	docs := make([][]string, corpus.Len())
	termTotals := make(map[string]int)
	for i, item := range corpus.Items {
		terms := extractTerms(item.CombinedText(corpus.Domain), params.maxNGram)
		docs[i] = terms
		for _, t := range terms {
			termTotals[t]++
		}
	}

	vocabulary := selectVocabulary(termTotals, params.vocabularySize)

	// Document frequency per vocabulary column.
	df := make([]int, len(vocabulary))
	for _, terms := range docs {
		seen := make(map[int]struct{})
		for _, t := range terms {
			if col, ok := vocabulary[t]; ok {
				seen[col] = struct{}{}
			}
		}
		for col := range seen {
			df[col]++
		}
	}

	// Smoothed IDF keeps unseen terms finite and every weight positive.
	n := float64(len(docs))
	idf := make([]float64, len(vocabulary))
	for col, freq := range df {
		idf[col] = math.Log((1+n)/(1+float64(freq))) + 1
	}

	idx := &VectorSpaceIndex{
		domain:     corpus.Domain,
		vocabulary: vocabulary,
		idf:        idf,
		vectors:    make([]sparseVector, len(docs)),
		maxNGram:   params.maxNGram,
	}
	for i, terms := range docs {
		idx.vectors[i] = idx.vectorize(terms)
	}
	return idx
}

// Domain returns the domain this index was built for.
func (idx *VectorSpaceIndex) Domain() catalog.Domain {
	return idx.domain
}

// VocabularySize returns the number of terms in the index vocabulary.
func (idx *VectorSpaceIndex) VocabularySize() int {
	return len(idx.vocabulary)
}

// Score computes the cosine similarity of query against every item in the
// corpus, in catalog order. Scores are in [0, 1]; a query sharing no
// vocabulary with an item scores 0.
func (idx *VectorSpaceIndex) Score(query string) []float64 {
	queryVec := idx.vectorize(extractTerms(query, idx.maxNGram))
	scores := make([]float64, len(idx.vectors))
	for i, itemVec := range idx.vectors {
		scores[i] = dot(queryVec, itemVec)
	}
	return scores
}

// vectorize maps terms onto an L2-normalized TF-IDF vector. Terms outside
// the vocabulary are dropped.
func (idx *VectorSpaceIndex) vectorize(terms []string) sparseVector {
	vec := make(sparseVector)
	for _, t := range terms {
		if col, ok := idx.vocabulary[t]; ok {
			vec[col]++
		}
	}
	var norm float64
	for col, tf := range vec {
		w := tf * idx.idf[col]
		vec[col] = w
		norm += w * w
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for col := range vec {
			vec[col] /= norm
		}
	}
	return vec
}

// dot iterates the smaller operand for sparse-friendly cosine. Both vectors
// are already unit length.
func dot(a, b sparseVector) float64 {
	if len(b) < len(a) {
		a, b = b, a
	}
	var sum float64
	for col, w := range a {
		sum += w * b[col]
	}
	return sum
}

// selectVocabulary keeps the top-K terms by corpus occurrence count.
func selectVocabulary(termTotals map[string]int, k int) map[string]int {
	terms := make([]string, 0, len(termTotals))
	for t := range termTotals {
		terms = append(terms, t)
	}
	sort.Slice(terms, func(i, j int) bool {
		ti, tj := terms[i], terms[j]
		if termTotals[ti] != termTotals[tj] {
			return termTotals[ti] > termTotals[tj]
		}
		return ti < tj
	})
	if len(terms) > k {
		terms = terms[:k]
	}

	vocabulary := make(map[string]int, len(terms))
	for col, t := range terms {
		vocabulary[t] = col
	}
	return vocabulary
}

// extractTerms tokenizes text and expands the token stream into n-grams of
// length 1 through maxN. Tokens are lower-cased alphanumeric runs of at
// least two characters; stopwords are removed before n-grams are formed, so
// "best of the best" yields the bigram "best best".
func extractTerms(text string, maxN int) []string {
	tokens := tokenize(text)
	if len(tokens) == 0 {
		return nil
	}
	terms := make([]string, 0, len(tokens)*maxN)
	for n := 1; n <= maxN; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			terms = append(terms, strings.Join(tokens[i:i+n], " "))
		}
	}
	return terms
}

func tokenize(text string) []string {
	lowered := strings.ToLower(text)
	var tokens []string
	var current strings.Builder
	flush := func() {
		if current.Len() >= 2 {
			tok := current.String()
			if !isStopword(tok) {
				tokens = append(tokens, tok)
			}
		}
		current.Reset()
	}
	for _, r := range lowered {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			current.WriteRune(r)
		} else {
			flush()
		}
	}
	flush()
	return tokens
}
