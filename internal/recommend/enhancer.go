package recommend

import (
	"strings"

	"github.com/recserve/recommend-engine/internal/catalog"
)

// enhancerRule appends related terms when its trigger appears anywhere in
// the lower-cased query.
type enhancerRule struct {
	trigger string
	related []string
}

// enhancerRules is ordered per domain so multi-trigger queries always append
// expansions in the same sequence.
var enhancerRules = map[catalog.Domain][]enhancerRule{
	catalog.DomainMovies: {
		{"love", []string{"romance", "romantic", "relationship", "heartfelt", "emotional"}},
		{"action", []string{"adventure", "thrilling", "exciting", "suspenseful", "intense"}},
		{"great plots", []string{"story", "narrative", "plot twists", "engaging", "compelling"}},
		{"movies", []string{"film", "cinema", "motion picture", "feature"}},
		{"romcom", []string{"romantic comedy", "romance", "comedy", "love story"}},
	},
	catalog.DomainFood: {
		{"pasta", []string{"noodles", "spaghetti", "macaroni", "penne", "fettuccine", "linguine"}},
		{"recipes", []string{"dish", "meal", "cooking", "preparation"}},
		{"simple", []string{"easy", "quick", "basic", "minimal", "straightforward"}},
		{"impressive", []string{"elegant", "fancy", "gourmet", "sophisticated", "restaurant-quality"}},
	},
	catalog.DomainMusic: {
		{"love", []string{"romantic", "heartfelt", "emotional", "passionate"}},
		{"relaxing", []string{"calming", "soothing", "peaceful", "tranquil"}},
		{"energetic", []string{"upbeat", "lively", "dynamic", "vibrant"}},
	},
	catalog.DomainBooks: {
		{"love", []string{"romance", "relationship", "heartfelt", "emotional"}},
		{"thriller", []string{"suspense", "mystery", "crime", "intrigue"}},
	},
	catalog.DomainTVShows: {
		{"drama", []string{"emotional", "serious", "intense", "compelling"}},
		{"comedy", []string{"funny", "humorous", "lighthearted", "entertaining"}},
	},
}

// Enhancer widens classified queries with related vocabulary so short
// queries still overlap the catalog text. Expansion is purely additive; the
// original query text is always preserved at the front.
type Enhancer struct{}

func NewEnhancer() *Enhancer {
	return &Enhancer{}
}

// Enhance returns query with any triggered related terms appended.
func (e *Enhancer) Enhance(query string, domain catalog.Domain) string {
	rules, ok := enhancerRules[domain]
	if !ok {
		return query
	}

	lowered := strings.ToLower(query)
	var sb strings.Builder
	sb.WriteString(query)
	for _, rule := range rules {
		if strings.Contains(lowered, rule.trigger) {
			sb.WriteByte(' ')
			sb.WriteString(strings.Join(rule.related, " "))
		}
	}
	return sb.String()
}
