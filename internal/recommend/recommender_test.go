package recommend

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recserve/recommend-engine/internal/catalog"
	"github.com/recserve/recommend-engine/internal/observability"
)

func quietLogger() *observability.Logger {
	return observability.NewLogger(observability.LogConfig{
		Level:       "error",
		ServiceName: "test",
	})
}

func sampleRecommender(t *testing.T) *Recommender {
	t.Helper()
	corpora, err := catalog.NewSampleProvider().Corpora(context.Background())
	require.NoError(t, err)
	return New(corpora, Options{}, quietLogger())
}

func TestRecommender_UnknownDomainReturnsGuidance(t *testing.T) {
	r := sampleRecommender(t)
	s := NewSessionManager(0).Get("")

	resp := r.Process(s, "xyzzyqq plugh")
	assert.Equal(t, catalog.DomainUnknown, resp.Domain)
	assert.Equal(t, GuidanceMessage, resp.Guidance)
	assert.Equal(t, GuidanceMessage, resp.Formatted)
	assert.Empty(t, resp.Items)
}

func TestRecommender_MisspelledQueryEndToEnd(t *testing.T) {
	r := sampleRecommender(t)
	s := NewSessionManager(0).Get("")

	resp := r.Process(s, "romcom mobies")
	assert.Equal(t, catalog.DomainMovies, resp.Domain)
	assert.Empty(t, resp.Guidance)
	require.NotEmpty(t, resp.Items)
	assert.LessOrEqual(t, len(resp.Items), 3)
}

func TestRecommender_DedupAcrossRepeatedQueries(t *testing.T) {
	r := sampleRecommender(t)
	s := NewSessionManager(0).Get("")

	first := r.Process(s, "action movies")
	second := r.Process(s, "action movies")

	seen := map[string]struct{}{}
	for _, si := range first.Items {
		seen[si.Item.Title] = struct{}{}
	}
	for _, si := range second.Items {
		_, dup := seen[si.Item.Title]
		assert.False(t, dup, "title %q returned twice in one session", si.Item.Title)
	}
}

func TestRecommender_SessionsAreIsolated(t *testing.T) {
	r := sampleRecommender(t)
	m := NewSessionManager(0)

	respA := r.Process(m.Get(""), "action movies")
	respB := r.Process(m.Get(""), "action movies")
	require.NotEmpty(t, respA.Items)
	require.NotEmpty(t, respB.Items)
	assert.Equal(t, respA.Items[0].Item.Title, respB.Items[0].Item.Title)
}

func artistTestRecommender(t *testing.T) *Recommender {
	t.Helper()
	music := catalog.NewCorpus(catalog.DomainMusic, []catalog.Item{
		{Title: "Starlight", Artist: "Taylor Swift", Genre: "Pop", Mood: "Upbeat", Keywords: "pop catchy dance"},
		{Title: "Evermore", Artist: "Taylor Swift", Genre: "Folk", Mood: "Calm", Keywords: "folk acoustic gentle"},
		{Title: "Thunder Road", Artist: "Bruce Springsteen", Genre: "Rock", Mood: "Nostalgic", Keywords: "rock highway anthem"},
		{Title: "Solitude", Artist: "Nova", Genre: "Jazz", Mood: "Mellow", Keywords: "jazz piano late night"},
	})
	corpora := map[catalog.Domain]*catalog.Corpus{catalog.DomainMusic: music}
	return New(corpora, Options{}, quietLogger())
}

func TestRecommender_ArtistFilter(t *testing.T) {
	r := artistTestRecommender(t)
	s := NewSessionManager(0).Get("")

	resp := r.Process(s, "Taylor Swift songs")
	assert.Equal(t, catalog.DomainMusic, resp.Domain)
	require.NotEmpty(t, resp.Items)
	for _, si := range resp.Items {
		assert.Equal(t, "taylor swift", strings.ToLower(si.Item.Artist))
	}
	assert.Empty(t, resp.Note)
}

func TestRecommender_ArtistFallbackWhenExhausted(t *testing.T) {
	r := artistTestRecommender(t)
	s := NewSessionManager(0).Get("")

	// First query surfaces every Taylor Swift song the catalog has.
	first := r.Process(s, "Taylor Swift songs")
	require.NotEmpty(t, first.Items)

	// The artist is still recognized but no unshown songs remain, so the
	// filter comes back empty and the generic fallback applies.
	second := r.Process(s, "more Taylor Swift songs")
	assert.Contains(t, second.Note, "couldn't find songs by that artist")
	assert.True(t, strings.HasPrefix(second.Formatted, second.Note))
	for _, si := range second.Items {
		assert.NotEqual(t, "Taylor Swift", si.Item.Artist)
	}
}

func TestRecommender_WeakMatchWidens(t *testing.T) {
	filler := make([]string, 50)
	for i := range filler {
		filler[i] = fmt.Sprintf("quint%02d", i)
	}
	items := []catalog.Item{
		{Title: "Diluted", Keywords: "zebra " + strings.Join(filler, " ")},
	}
	for i := 0; i < 8; i++ {
		items = append(items, catalog.Item{
			Title:    fmt.Sprintf("Other %d", i),
			Keywords: fmt.Sprintf("plain%02d filler%02d", i, i),
		})
	}
	corpora := map[catalog.Domain]*catalog.Corpus{
		catalog.DomainMovies: catalog.NewCorpus(catalog.DomainMovies, items),
	}
	r := New(corpora, Options{}, quietLogger())
	s := NewSessionManager(0).Get("")

	resp := r.Process(s, "zebra movie")
	assert.Equal(t, catalog.DomainMovies, resp.Domain)
	assert.True(t, resp.Similar, "best similarity below threshold should trigger widening")
	assert.Contains(t, resp.Note, "didn't find exact matches")
	require.NotEmpty(t, resp.Items)
	assert.LessOrEqual(t, len(resp.Items), 3)
}

func TestRecommender_NoResultsMessage(t *testing.T) {
	corpora := map[catalog.Domain]*catalog.Corpus{
		catalog.DomainBooks: catalog.NewCorpus(catalog.DomainBooks, []catalog.Item{
			{Title: "Lone", Author: "Someone", Genre: "Fiction", Keywords: "quiet village"},
		}),
	}
	r := New(corpora, Options{}, quietLogger())
	s := NewSessionManager(0).Get("")

	first := r.Process(s, "quiet village book")
	require.NotEmpty(t, first.Items)

	second := r.Process(s, "quiet village book")
	assert.Empty(t, second.Items)
	assert.Contains(t, second.Note, "Sorry, I couldn't find any books recommendations")
}

func TestRecommender_MissingDomainIndex(t *testing.T) {
	corpora := map[catalog.Domain]*catalog.Corpus{
		catalog.DomainMovies: catalog.NewCorpus(catalog.DomainMovies, []catalog.Item{
			{Title: "Only", Keywords: "space"},
		}),
	}
	r := New(corpora, Options{}, quietLogger())
	s := NewSessionManager(0).Get("")

	resp := r.Process(s, "easy pasta recipes")
	assert.Equal(t, catalog.DomainFood, resp.Domain)
	assert.Contains(t, resp.Note, "Sorry, I couldn't find any food recommendations")
}

func TestRecommender_Domains(t *testing.T) {
	r := sampleRecommender(t)
	assert.Equal(t, catalog.Domains, r.Domains())
}
