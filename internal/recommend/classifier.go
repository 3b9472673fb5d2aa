package recommend

import (
	"strings"

	"github.com/recserve/recommend-engine/internal/catalog"
)

// domainKeywords pairs a domain with its signal vocabulary. Classification
// walks a slice, not a map, so equal scores always resolve to the earliest
// domain in catalog order.
type domainKeywords struct {
	domain   catalog.Domain
	keywords []string
}

// singleWordDomains answers one-token queries directly.
var singleWordDomains = []domainKeywords{
	{catalog.DomainMovies, []string{"movie", "film", "cinema", "romcom", "thriller", "comedy", "drama", "action"}},
	{catalog.DomainTVShows, []string{"tv", "show", "series", "sitcom", "kdrama"}},
	{catalog.DomainMusic, []string{"music", "song", "track", "album", "jazz", "rock", "pop"}},
	{catalog.DomainBooks, []string{"book", "novel", "read", "fiction", "fantasy", "romance"}},
	{catalog.DomainFood, []string{"food", "recipe", "dish", "cooking", "meal", "pasta", "pizza"}},
}

// singleWordFallbacks catches one-token queries that merely contain a signal
// term, e.g. "movies" containing "movie".
var singleWordFallbacks = []domainKeywords{
	{catalog.DomainMovies, []string{"movie", "film", "romcom"}},
	{catalog.DomainTVShows, []string{"tv", "show", "series"}},
	{catalog.DomainMusic, []string{"music", "song"}},
	{catalog.DomainBooks, []string{"book", "read"}},
	{catalog.DomainFood, []string{"food", "recipe"}},
}

var scoredDomainKeywords = []domainKeywords{
	{catalog.DomainMovies, []string{
		"movie", "film", "cinema", "watch", "thriller", "funny", "mysterious", "romance", "comedy", "drama",
		"animated", "holiday", "courtroom", "family", "sports", "sci-fi", "tearjerker", "classic",
		"time-travel", "bollywood", "realistic", "iconic", "cinephile", "romcom", "rom-com", "notting hill",
		"inception", "dark knight", "black-and-white", "slow-burn", "feel-good", "underrated",
		"powerful", "inspirational", "character depth", "rewatch", "award-winning", "epic",
		"oscar", "director", "actor", "actress", "screenplay", "plot", "scene", "sequel", "prequel",
		"action", "adventure", "fantasy", "horror", "mystery", "suspense", "crime", "documentary",
		"biography", "historical", "war", "western", "musical", "superhero", "independent", "foreign",
		"art house", "blockbuster", "cult classic", "love story", "romantic", "storyline",
		"great plots", "love movies", "action movies",
	}},
	{catalog.DomainTVShows, []string{
		"tv show", "series", "sitcom", "k-drama", "episode", "season", "binge", "netflix", "hulu",
		"hbo", "streaming", "mini-series", "reality show", "detective", "medical drama", "gilmore girls",
		"friends", "game of thrones", "breaking bad", "sherlock", "binge-worthy", "twists",
		"character development", "family-friendly", "heartbreak", "fantasy", "limited series",
		"female leads", "crime drama", "animated series", "wholesome", "medical",
		"high school", "hidden gems", "reality", "tv", "television", "stream", "watch",
	}},
	{catalog.DomainMusic, []string{
		"music", "song", "track", "album", "jazz", "rock", "pop", "lo-fi", "lyrics", "acoustic",
		"indie", "classical", "electronic", "soundtrack", "k-pop", "meditation", "piano", "duet",
		"taylor swift", "bts", "cozy", "iconic", "upbeat", "calm", "powerful", "studying", "working out",
		"rainy days", "underrated", "golden classics", "modern", "bollywood",
		"dance", "live performances", "soothing", "nostalgic", "road trip", "mood lift",
		"artist", "band", "singer", "composer", "concert", "playlist", "genre", "beat", "rhythm", "melody",
	}},
	{catalog.DomainBooks, []string{
		"book", "novel", "read", "fantasy", "romance", "historical", "self-improvement", "thriller",
		"biography", "dystopian", "short story", "ya novel", "classic", "horror", "philosophical",
		"gone girl", "harry potter", "hunger games", "plot twist", "character arcs", "rich detail",
		"must-read", "poetic", "non-fiction", "motivational", "emotional depth", "literary classics",
		"scary", "female protagonists", "light-hearted", "epic", "trilogy", "saga",
		"cozy", "winter read", "author", "funny", "mysterious", "chapter", "page", "story",
		"narrative", "fiction", "nonfiction",
	}},
	{catalog.DomainFood, []string{
		"food", "recipe", "dish", "cuisine", "cooking", "cook", "meal", "eat", "dining", "dinner",
		"lunch", "breakfast", "supper", "snack", "appetizer", "main course", "side dish", "course",
		"vegetarian", "vegan", "gluten-free", "low-carb", "keto", "paleo", "healthy", "comfort food",
		"indulgent", "gourmet", "homemade", "world cuisine", "street food", "iconic food", "global cuisine",
		"taco", "burger", "pizza", "noodles", "sushi", "pasta", "rice", "chicken", "beef", "pork",
		"seafood", "fish", "vegetable", "fruit", "salad", "soup", "stew", "curry", "sauce", "dressing",
		"marinade", "spread", "dip",
		"bake", "grill", "fry", "steam", "roast", "boil", "simmer", "saute", "broil", "barbecue", "bbq",
		"dessert", "sweet", "cake", "pie", "pastry", "cookie", "biscuit", "brownie", "pudding", "custard",
		"ice cream", "gelato", "sorbet", "chocolate", "candy", "confection", "treat", "bakery", "baking",
		"muffin", "cupcake", "cheesecake", "tiramisu", "creme brulee", "souffle", "tart", "donut", "doughnut",
		"drink", "beverage", "cocktail", "smoothie", "juice", "coffee", "tea", "milkshake", "soda", "lemonade",
		"mocktail", "shake", "frappe", "latte", "cappuccino", "espresso", "brew", "infusion", "refresher",
		"egg", "eggs", "flour", "sugar", "butter", "oil", "spice", "herb", "garlic", "onion", "tomato",
		"cheese", "milk", "cream", "yogurt", "bread", "grain", "nut", "seed", "bean", "lentil",
		"italian", "mexican", "chinese", "indian", "japanese", "french", "thai", "mediterranean", "american",
		"fusion", "spanish", "greek", "lebanese", "vietnamese", "korean", "caribbean", "brazilian",
		"quick", "easy", "simple", "fast", "30-minute", "quick and easy", "one-pot", "one pan", "sheet pan",
		"meal prep", "make ahead", "freezer friendly", "batch cooking", "party", "gathering", "celebration",
		"holiday", "festive", "special occasion", "weeknight", "weekend", "brunch", "picnic", "potluck",
		"spicy", "mild", "savory", "tangy", "sour", "bitter", "umami", "rich", "light", "fresh",
		"crispy", "crunchy", "creamy", "chewy", "tender", "juicy", "flavorful", "aromatic", "hearty",
		"refreshing", "satisfying", "comforting", "wholesome", "nutritious", "decadent", "elegant", "rustic",
		"pasta recipes", "pasta dish", "pasta meal",
	}},
}

const (
	wholeWordScore = 2
	substringScore = 1
)

// Classifier maps a normalized query to one of the five catalog domains.
type Classifier struct{}

func NewClassifier() *Classifier {
	return &Classifier{}
}

// Classify returns the detected domain for a normalized query, or
// DomainUnknown when the query carries no recognizable signal.
func (c *Classifier) Classify(normalized string) catalog.Domain {
	query := strings.ToLower(normalized)
	tokens := strings.Fields(query)

	if len(tokens) == 1 {
		if d, ok := classifySingleWord(tokens[0]); ok {
			return d
		}
	}

	bestDomain := catalog.DomainUnknown
	bestScore := 0
	for _, dk := range scoredDomainKeywords {
		score := 0
		for _, keyword := range dk.keywords {
			switch {
			case containsWholeWord(query, keyword):
				score += wholeWordScore
			case len(keyword) > 3 && strings.Contains(query, keyword):
				score += substringScore
			}
		}
		if score > bestScore {
			bestScore = score
			bestDomain = dk.domain
		}
	}
	if bestScore > 0 {
		return bestDomain
	}

	// One-token queries with no signal at all still land somewhere useful.
	if len(tokens) == 1 {
		return catalog.DomainMovies
	}
	return catalog.DomainUnknown
}

func classifySingleWord(token string) (catalog.Domain, bool) {
	for _, dk := range singleWordDomains {
		for _, word := range dk.keywords {
			if token == word {
				return dk.domain, true
			}
		}
	}
	for _, dk := range singleWordFallbacks {
		for _, term := range dk.keywords {
			if strings.Contains(token, term) {
				return dk.domain, true
			}
		}
	}
	return catalog.DomainUnknown, false
}

// containsWholeWord reports whether keyword occurs in query bounded by
// non-alphanumeric runes, the equivalent of a \b-delimited regex match
// without compiling one per keyword.
func containsWholeWord(query, keyword string) bool {
	for start := 0; ; {
		idx := strings.Index(query[start:], keyword)
		if idx < 0 {
			return false
		}
		idx += start
		end := idx + len(keyword)
		beforeOK := idx == 0 || !isWordByte(query[idx-1])
		afterOK := end == len(query) || !isWordByte(query[end])
		if beforeOK && afterOK {
			return true
		}
		start = idx + 1
	}
}

func isWordByte(b byte) bool {
	return b == '_' ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9')
}
