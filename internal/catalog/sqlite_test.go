package catalog

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := OpenSQLiteStore(filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteStore_SaveAndLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	corpora, err := NewSampleProvider().Corpora(ctx)
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, corpora))

	loaded, err := store.Corpora(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, len(Domains))

	for _, domain := range Domains {
		want := corpora[domain]
		got := loaded[domain]
		require.Equal(t, want.Len(), got.Len(), "domain %s", domain)
		for i := range want.Items {
			assert.Equal(t, want.Items[i], got.Items[i], "domain %s item %d keeps catalog order", domain, i)
		}
	}
}

func TestSQLiteStore_SaveReplacesSnapshot(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	first := map[Domain]*Corpus{
		DomainMovies: NewCorpus(DomainMovies, []Item{
			{Title: "Old One", Genre: "Drama"},
			{Title: "Old Two", Genre: "Crime"},
		}),
	}
	require.NoError(t, store.Save(ctx, first))

	second := map[Domain]*Corpus{
		DomainMovies: NewCorpus(DomainMovies, []Item{
			{Title: "New One", Genre: "Action"},
		}),
	}
	require.NoError(t, store.Save(ctx, second))

	loaded, err := store.Corpora(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, loaded[DomainMovies].Len())
	assert.Equal(t, "New One", loaded[DomainMovies].Items[0].Title)
}

func TestSQLiteStore_PartialSnapshotLeavesOtherDomains(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	require.NoError(t, store.Save(ctx, map[Domain]*Corpus{
		DomainBooks: NewCorpus(DomainBooks, []Item{{Title: "Kept", Author: "A"}}),
	}))
	require.NoError(t, store.Save(ctx, map[Domain]*Corpus{
		DomainFood: NewCorpus(DomainFood, []Item{{Title: "Soup", Cuisine: "French"}}),
	}))

	loaded, err := store.Corpora(ctx)
	require.NoError(t, err)
	assert.Len(t, loaded, 2, "saving one domain must not clear the others")
}

func TestSQLiteStore_EmptySnapshot(t *testing.T) {
	store := openTestStore(t)
	_, err := store.Corpora(context.Background())
	assert.ErrorContains(t, err, "empty")
}
