package recommend

import (
	"fmt"
	"strings"

	"github.com/recserve/recommend-engine/internal/catalog"
	"github.com/recserve/recommend-engine/internal/observability"
)

// GuidanceMessage is returned when no domain can be detected.
const GuidanceMessage = "I can help with recommendations for movies, TV shows, music, books, and food. Please specify what you're looking for!"

// Options tune the retrieval pipeline. Zero values fall back to defaults.
type Options struct {
	TopN               int     // items per response
	NoiseFloor         float64 // pass-1 minimum similarity
	WeakMatchThreshold float64 // best-similarity cutoff triggering widening
	ArtistCandidates   int     // candidates pulled before artist filtering
	WidenedLimit       int     // candidates pulled on the widened retry
	VocabularySize     int
	MaxNGram           int
}

func (o Options) withDefaults() Options {
	if o.TopN <= 0 {
		o.TopN = 3
	}
	if o.NoiseFloor <= 0 {
		o.NoiseFloor = defaultNoiseFloor
	}
	if o.WeakMatchThreshold <= 0 {
		o.WeakMatchThreshold = 0.1
	}
	if o.ArtistCandidates <= 0 {
		o.ArtistCandidates = 10
	}
	if o.WidenedLimit <= 0 {
		o.WidenedLimit = 5
	}
	if o.VocabularySize <= 0 {
		o.VocabularySize = defaultVocabularySize
	}
	if o.MaxNGram <= 0 {
		o.MaxNGram = defaultMaxNGram
	}
	return o
}

// Response is the outcome of processing one query.
type Response struct {
	SessionID string
	Domain    catalog.Domain
	// Guidance is set, and Items empty, when no domain was detected.
	Guidance string
	// Note carries an explanatory prefix (artist fallback, weak-match
	// widening, empty catalog) when the result is not a plain top-N hit.
	Note string
	// Similar marks results from the widened retry rather than the
	// enhanced query.
	Similar   bool
	Items     []ScoredItem
	Formatted string
}

// Recommender wires the full pipeline: normalize, classify, enhance,
// retrieve through a session, post-filter. Indexes are built once in New
// and never mutated, so one Recommender serves concurrent sessions.
type Recommender struct {
	normalizer *Normalizer
	classifier *Classifier
	enhancer   *Enhancer
	corpora    map[catalog.Domain]*catalog.Corpus
	indexes    map[catalog.Domain]*VectorSpaceIndex
	artists    map[string]struct{}
	opts       Options
	log        *observability.Logger
}

// New builds per-domain indexes over the supplied corpora. Domains missing
// from corpora stay classifiable but return the empty-catalog message.
func New(corpora map[catalog.Domain]*catalog.Corpus, opts Options, log *observability.Logger) *Recommender {
	if log == nil {
		log = observability.DefaultLogger()
	}
	opts = opts.withDefaults()

	r := &Recommender{
		normalizer: NewNormalizer(),
		classifier: NewClassifier(),
		enhancer:   NewEnhancer(),
		corpora:    corpora,
		indexes:    make(map[catalog.Domain]*VectorSpaceIndex, len(corpora)),
		artists:    map[string]struct{}{},
		opts:       opts,
		log:        log,
	}

	for _, domain := range catalog.Domains {
		corpus, ok := corpora[domain]
		if !ok {
			continue
		}
		idx := BuildIndex(corpus,
			WithVocabularySize(opts.VocabularySize),
			WithMaxNGram(opts.MaxNGram),
		)
		r.indexes[domain] = idx
		log.Debug().
			Str("domain", string(domain)).
			Int("items", corpus.Len()).
			Int("vocabulary", idx.VocabularySize()).
			Msg("built vector space index")
	}

	if music, ok := corpora[catalog.DomainMusic]; ok {
		r.artists = music.ArtistSet()
	}
	return r
}

// Domains returns the domains this recommender can actually serve.
func (r *Recommender) Domains() []catalog.Domain {
	out := make([]catalog.Domain, 0, len(r.indexes))
	for _, d := range catalog.Domains {
		if _, ok := r.indexes[d]; ok {
			out = append(out, d)
		}
	}
	return out
}

// CorpusSize returns the number of catalog items loaded for a domain.
func (r *Recommender) CorpusSize(domain catalog.Domain) int {
	corpus, ok := r.corpora[domain]
	if !ok {
		return 0
	}
	return corpus.Len()
}

// Process runs one query through the pipeline on behalf of session.
func (r *Recommender) Process(session *Session, query string) Response {
	log := r.log.WithSession(session.ID)

	normalized := r.normalizer.Normalize(query)
	domain := r.classifier.Classify(normalized)
	if domain == catalog.DomainUnknown {
		log.Info().Str("query", query).Msg("no domain detected")
		return Response{
			SessionID: session.ID,
			Domain:    catalog.DomainUnknown,
			Guidance:  GuidanceMessage,
			Formatted: GuidanceMessage,
		}
	}

	enhanced := r.enhancer.Enhance(query, domain)
	log.Debug().
		Str("domain", string(domain)).
		Str("query", query).
		Str("normalized", normalized).
		Str("enhanced", enhanced).
		Msg("query classified")

	idx, ok := r.indexes[domain]
	if !ok {
		return r.noResults(session, domain, query)
	}
	corpus := r.corpora[domain]

	if domain == catalog.DomainMusic {
		if found := r.findArtists(query); len(found) > 0 {
			return r.processArtistQuery(session, idx, corpus, query, enhanced, found)
		}
	}

	items := session.Retrieve(idx, corpus, enhanced, r.opts.TopN, r.opts.NoiseFloor)
	if len(items) == 0 || items[0].Similarity < r.opts.WeakMatchThreshold {
		return r.widen(session, idx, corpus, query)
	}

	return Response{
		SessionID: session.ID,
		Domain:    domain,
		Items:     items,
		Formatted: formatItems(domain, items),
	}
}

// widen drops the enhanced query and retries with the raw one at a larger
// limit, returning the best few flagged as similar rather than exact.
func (r *Recommender) widen(session *Session, idx *VectorSpaceIndex, corpus *catalog.Corpus, query string) Response {
	domain := corpus.Domain
	items := session.Retrieve(idx, corpus, query, r.opts.WidenedLimit, r.opts.NoiseFloor)
	if len(items) == 0 {
		return r.noResults(session, domain, query)
	}
	if len(items) > r.opts.TopN {
		items = items[:r.opts.TopN]
	}
	note := fmt.Sprintf("I didn't find exact matches for '%s', but here are some similar %s you might enjoy:", query, domain)
	return Response{
		SessionID: session.ID,
		Domain:    domain,
		Note:      note,
		Similar:   true,
		Items:     items,
		Formatted: note + "\n\n" + formatItems(domain, items),
	}
}

func (r *Recommender) noResults(session *Session, domain catalog.Domain, query string) Response {
	msg := fmt.Sprintf("Sorry, I couldn't find any %s recommendations for '%s'. Try a different query!", domain, query)
	return Response{
		SessionID: session.ID,
		Domain:    domain,
		Note:      msg,
		Formatted: msg,
	}
}

// processArtistQuery pulls a wider candidate set and keeps only the named
// artists' songs. When none survive the filter the generic top-N result is
// returned with an explanatory prefix instead of an error.
func (r *Recommender) processArtistQuery(session *Session, idx *VectorSpaceIndex, corpus *catalog.Corpus, query, enhanced string, artists []string) Response {
	candidates := session.Retrieve(idx, corpus, enhanced, r.opts.ArtistCandidates, r.opts.NoiseFloor)

	wanted := make(map[string]struct{}, len(artists))
	for _, a := range artists {
		wanted[a] = struct{}{}
	}
	filtered := make([]ScoredItem, 0, r.opts.TopN)
	for _, si := range candidates {
		if _, ok := wanted[strings.ToLower(si.Item.Artist)]; ok {
			filtered = append(filtered, si)
			if len(filtered) >= r.opts.TopN {
				break
			}
		}
	}

	if len(filtered) > 0 {
		return Response{
			SessionID: session.ID,
			Domain:    catalog.DomainMusic,
			Items:     filtered,
			Formatted: formatItems(catalog.DomainMusic, filtered),
		}
	}

	r.log.WithSession(session.ID).Debug().
		Strs("artists", artists).
		Msg("artist filter empty, falling back to generic retrieval")

	items := session.Retrieve(idx, corpus, enhanced, r.opts.TopN, r.opts.NoiseFloor)
	const note = "I couldn't find songs by that artist, but you might like these:"
	return Response{
		SessionID: session.ID,
		Domain:    catalog.DomainMusic,
		Note:      note,
		Items:     items,
		Formatted: note + "\n\n" + formatItems(catalog.DomainMusic, items),
	}
}

// findArtists scans the raw query for whole-word matches against the music
// corpus's artist names. The raw query is used on purpose: normalization
// could mangle an artist name into a domain word.
func (r *Recommender) findArtists(query string) []string {
	lowered := strings.ToLower(query)
	var found []string
	for artist := range r.artists {
		if containsWholeWord(lowered, artist) {
			found = append(found, artist)
		}
	}
	return found
}
