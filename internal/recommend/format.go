package recommend

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/recserve/recommend-engine/internal/catalog"
)

const (
	descriptionExcerptLen = 100
	lyricsExcerptLen      = 50
)

// formatItems renders a result list as the chat-style text block for its
// domain.
func formatItems(domain catalog.Domain, items []ScoredItem) string {
	switch domain {
	case catalog.DomainMusic:
		return formatMusic(items)
	case catalog.DomainBooks:
		return formatBooks(items)
	case catalog.DomainFood:
		return formatFood(items)
	default:
		return formatMovieTV(domain, items)
	}
}

func formatMovieTV(domain catalog.Domain, items []ScoredItem) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Here are some %s recommendations for you:\n\n", domain)
	for _, si := range items {
		it := si.Item
		fmt.Fprintf(&sb, "**%s** (%s) - Rating: %s, Mood: %s\n", it.Title, it.Genre, formatRating(it.Rating), it.Mood)
		fmt.Fprintf(&sb, "Description: %s...\n\n", excerpt(it.Description, descriptionExcerptLen))
	}
	return sb.String()
}

func formatMusic(items []ScoredItem) string {
	var sb strings.Builder
	sb.WriteString("Here are some music recommendations for you:\n\n")
	for _, si := range items {
		it := si.Item
		fmt.Fprintf(&sb, "**%s** by %s (%s) - Mood: %s\n", it.Title, it.Artist, it.Genre, it.Mood)
		if it.Lyrics != "" {
			fmt.Fprintf(&sb, "Lyrics excerpt: %s...\n\n", excerpt(it.Lyrics, lyricsExcerptLen))
		} else {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

func formatBooks(items []ScoredItem) string {
	var sb strings.Builder
	sb.WriteString("Here are some book recommendations for you:\n\n")
	for _, si := range items {
		it := si.Item
		fmt.Fprintf(&sb, "**%s** by %s (%s) - Rating: %s, Mood: %s\n", it.Title, it.Author, it.Genre, formatRating(it.Rating), it.Mood)
		fmt.Fprintf(&sb, "Description: %s...\n\n", excerpt(it.Description, descriptionExcerptLen))
	}
	return sb.String()
}

func formatFood(items []ScoredItem) string {
	var sb strings.Builder
	sb.WriteString("Here are some recipe recommendations for you:\n\n")
	for _, si := range items {
		it := si.Item
		fmt.Fprintf(&sb, "**%s** (%s) - Rating: %s, Mood: %s\n", it.Title, it.Cuisine, formatRating(it.Rating), it.Mood)
		fmt.Fprintf(&sb, "Ingredients: %s\n", it.Ingredients)
		fmt.Fprintf(&sb, "Preparation: %s\n", it.Description)
		fmt.Fprintf(&sb, "Cooking time: %s minutes, Difficulty: %s\n\n", orNA(it.CookingTime), orNA(it.Difficulty))
	}
	return sb.String()
}

func formatRating(r float64) string {
	return strconv.FormatFloat(r, 'g', -1, 64)
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

// excerpt truncates s to at most n runes.
func excerpt(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
