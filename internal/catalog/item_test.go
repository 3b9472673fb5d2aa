package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomain_Valid(t *testing.T) {
	for _, d := range Domains {
		assert.True(t, d.Valid(), "domain %q", d)
	}
	assert.False(t, DomainUnknown.Valid())
	assert.False(t, Domain("podcasts").Valid())
}

func TestDomain_DisplayName(t *testing.T) {
	assert.Equal(t, "movies", DomainMovies.DisplayName())
	assert.Equal(t, "TV shows", DomainTVShows.DisplayName())
	assert.Equal(t, "food", DomainFood.DisplayName())
}

func TestItem_CombinedText(t *testing.T) {
	tests := []struct {
		name     string
		domain   Domain
		item     Item
		expected string
	}{
		{
			"movie with optionals absent",
			DomainMovies,
			Item{Title: "Inception", Genre: "Sci-Fi", Mood: "Mind-bending", Keywords: "dreams reality layers"},
			"Inception Sci-Fi Mind-bending dreams reality layers",
		},
		{
			"movie with director",
			DomainMovies,
			Item{Title: "Inception", Genre: "Sci-Fi", Mood: "Mind-bending", Keywords: "dreams", Director: "Nolan"},
			"Inception Sci-Fi Mind-bending dreams Nolan",
		},
		{
			"music includes artist",
			DomainMusic,
			Item{Title: "Billie Jean", Artist: "Michael Jackson", Genre: "Pop", Mood: "Iconic", Keywords: "pop iconic dance"},
			"Billie Jean Michael Jackson Pop Iconic pop iconic dance",
		},
		{
			"food includes ingredients and description",
			DomainFood,
			Item{Title: "Greek Salad", Cuisine: "Greek", Mood: "Refreshing", Keywords: "cucumber tomato feta",
				Ingredients: "Cucumber, tomato", Description: "A refreshing salad."},
			"Greek Salad Greek Refreshing cucumber tomato feta Cucumber, tomato A refreshing salad.",
		},
		{
			"book includes author",
			DomainBooks,
			Item{Title: "1984", Genre: "Dystopian", Mood: "Dark", Keywords: "surveillance", Author: "George Orwell"},
			"1984 Dystopian Dark surveillance George Orwell",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.item.CombinedText(tc.domain))
		})
	}
}

func TestCorpus_ArtistSet(t *testing.T) {
	corpus := NewCorpus(DomainMusic, []Item{
		{Title: "A", Artist: "Queen"},
		{Title: "B", Artist: "The Weeknd"},
		{Title: "C", Artist: "Queen"},
		{Title: "D"},
	})

	set := corpus.ArtistSet()
	assert.Len(t, set, 2)
	assert.Contains(t, set, "queen")
	assert.Contains(t, set, "the weeknd")
}

func TestSampleProvider_Corpora(t *testing.T) {
	corpora, err := NewSampleProvider().Corpora(context.Background())
	require.NoError(t, err)
	require.Len(t, corpora, len(Domains))

	assert.Equal(t, 7, corpora[DomainMovies].Len())
	assert.Equal(t, 6, corpora[DomainTVShows].Len())
	assert.Equal(t, 6, corpora[DomainMusic].Len())
	assert.Equal(t, 6, corpora[DomainBooks].Len())
	assert.Equal(t, 6, corpora[DomainFood].Len())

	// Every sample music item carries an artist; the filter depends on it.
	assert.NotEmpty(t, corpora[DomainMusic].ArtistSet())
	for _, it := range corpora[DomainMusic].Items {
		assert.NotEmpty(t, it.Artist, "music item %q", it.Title)
	}
}
