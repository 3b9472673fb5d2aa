package recommend

import "strings"

// substitution rewrites one known misspelled phrase to its canonical form.
// Table order matters: multi-word entries sit above their single-word
// fragments so "romcom mobies" rewrites as a phrase before "mobies" alone
// would fire.
type substitution struct {
	from string
	to   string
}

var misspellingTable = []substitution{
	{"romcom mobies", "romcom movies"},
	{"romcom moveis", "romcom movies"},
	{"romcom moives", "romcom movies"},
	{"mobies", "movies"},
	{"moveis", "movies"},
	{"moives", "movies"},
	{"muvies", "movies"},
	{"muvi", "movie"},
	{"boks", "books"},
	{"bok", "book"},
	{"recepie", "recipe"},
	{"recipie", "recipe"},
	{"reciepe", "recipe"},
	{"musik", "music"},
	{"muzik", "music"},
	{"musick", "music"},
	{"tvshows", "tv shows"},
	{"tvshow", "tv show"},
	{"television", "tv"},
}

// domainSignalWords is the vocabulary fuzzy correction targets. Only tokens
// close to one of these are rewritten; anything else passes through.
var domainSignalWords = []string{
	"movie", "movies", "film", "book", "books", "music", "song",
	"food", "recipe", "tv", "show", "shows", "romcom", "romantic", "comedy",
}

const fuzzyCorrectionCutoff = 0.7

// Normalizer canonicalizes raw queries before classification: a fixed
// substring substitution pass followed by per-token fuzzy correction against
// the domain-signal vocabulary. It never fails; worst case the query comes
// back lower-cased and otherwise untouched.
type Normalizer struct{}

func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

// Normalize returns the canonicalized form of query.
func (n *Normalizer) Normalize(query string) string {
	lowered := strings.ToLower(query)

	for _, sub := range misspellingTable {
		if strings.Contains(lowered, sub.from) {
			lowered = strings.ReplaceAll(lowered, sub.from, sub.to)
		}
	}

	tokens := strings.Fields(lowered)
	corrected := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if len(token) <= 2 {
			corrected = append(corrected, token)
			continue
		}
		corrected = append(corrected, correctToken(token))
	}
	return strings.Join(corrected, " ")
}

// correctToken returns the closest domain-signal word when it scores at or
// above the cutoff, otherwise the token unchanged. The vocabulary is scanned
// in fixed order so equal-scoring candidates resolve deterministically.
func correctToken(token string) string {
	best := token
	bestScore := 0.0
	for _, candidate := range domainSignalWords {
		score := similarityRatio(token, candidate)
		if score > bestScore {
			best = candidate
			bestScore = score
		}
	}
	if bestScore >= fuzzyCorrectionCutoff {
		return best
	}
	return token
}
