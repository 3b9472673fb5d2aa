// Package catalog defines the content catalogs the recommendation engine
// retrieves from: one corpus per domain, immutable after load.
package catalog

import "strings"

// Domain identifies one of the five content catalogs.
type Domain string

const (
	DomainMovies  Domain = "movies"
	DomainTVShows Domain = "tv_shows"
	DomainMusic   Domain = "music"
	DomainBooks   Domain = "books"
	DomainFood    Domain = "food"

	// DomainUnknown marks a query that could not be classified.
	DomainUnknown Domain = "unknown"
)

// Domains lists the supported domains in their canonical evaluation order.
// Classification and tie-breaking depend on this order staying fixed.
var Domains = []Domain{DomainMovies, DomainTVShows, DomainMusic, DomainBooks, DomainFood}

// Valid reports whether d names one of the five catalogs.
func (d Domain) Valid() bool {
	for _, known := range Domains {
		if d == known {
			return true
		}
	}
	return false
}

// DisplayName returns a human-readable label for the domain.
func (d Domain) DisplayName() string {
	switch d {
	case DomainTVShows:
		return "TV shows"
	default:
		return string(d)
	}
}

// Item is one catalog entry. The common fields are always populated; the
// domain-specific fields default to empty and contribute nothing when absent.
type Item struct {
	Title       string
	Genre       string
	Mood        string
	Keywords    string
	Rating      float64
	Description string

	// Music
	Artist          string
	Album           string
	Year            string
	Instrumentation string
	Lyrics          string

	// Books
	Author string

	// Movies / TV shows
	Director string
	Cast     string
	Creator  string

	// Movies / TV shows / books
	Setting    string
	TimePeriod string

	// Food
	Cuisine     string
	Ingredients string
	MealType    string
	DishType    string
	Tags        string
	Category    string
	CookingTime string
	Difficulty  string
}

// CombinedText concatenates the item's textual fields for the given domain
// into the single string indexed by the vector space. Empty optional fields
// collapse away.
func (it Item) CombinedText(domain Domain) string {
	var fields []string
	switch domain {
	case DomainMovies:
		fields = []string{it.Title, it.Genre, it.Mood, it.Keywords, it.Director, it.Cast, it.Setting, it.TimePeriod}
	case DomainTVShows:
		fields = []string{it.Title, it.Genre, it.Mood, it.Keywords, it.Creator, it.Setting, it.TimePeriod}
	case DomainMusic:
		fields = []string{it.Title, it.Artist, it.Genre, it.Mood, it.Keywords, it.Album, it.Year, it.Instrumentation}
	case DomainBooks:
		fields = []string{it.Title, it.Genre, it.Mood, it.Keywords, it.Author, it.Setting, it.TimePeriod}
	case DomainFood:
		fields = []string{it.Title, it.Cuisine, it.Mood, it.Keywords, it.Ingredients, it.Description, it.MealType, it.DishType, it.Tags, it.Category}
	default:
		fields = []string{it.Title, it.Genre, it.Mood, it.Keywords}
	}

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		if f != "" {
			parts = append(parts, f)
		}
	}
	return strings.Join(parts, " ")
}

// Corpus is the ordered, immutable collection of items for one domain.
// Within a corpus the item title uniquely identifies an item; retrieval
// dedup relies on that.
type Corpus struct {
	Domain Domain
	Items  []Item
}

// NewCorpus builds a corpus for the given domain.
func NewCorpus(domain Domain, items []Item) *Corpus {
	return &Corpus{Domain: domain, Items: items}
}

// Len returns the number of items in the corpus.
func (c *Corpus) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Items)
}

// ArtistSet returns the set of lower-cased artist names present in the
// corpus. Only meaningful for the music domain; empty otherwise.
func (c *Corpus) ArtistSet() map[string]struct{} {
	set := make(map[string]struct{})
	if c == nil {
		return set
	}
	for _, it := range c.Items {
		if it.Artist != "" {
			set[strings.ToLower(it.Artist)] = struct{}{}
		}
	}
	return set
}
