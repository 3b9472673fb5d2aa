package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/recserve/recommend-engine/internal/cache"
	"github.com/recserve/recommend-engine/internal/observability"
)

// Provider supplies the domain corpora the engine retrieves from. A provider
// that cannot supply a corpus for some domain simply omits it from the map;
// retrieval for that domain is then disabled and queries classified into it
// yield the "no recommendations found" message.
type Provider interface {
	Corpora(ctx context.Context) (map[Domain]*Corpus, error)
}

// fileNames maps each domain to its catalog file name.
var fileNames = map[Domain]string{
	DomainMovies:  "movies.csv",
	DomainTVShows: "tv_shows.csv",
	DomainMusic:   "music.csv",
	DomainBooks:   "books.csv",
	DomainFood:    "food.csv",
}

// DirProvider loads catalogs from CSV files in a local directory.
type DirProvider struct {
	Dir    string
	Logger *observability.Logger
}

// Corpora loads every domain file present under Dir. A missing or malformed
// file disables that domain only.
func (p *DirProvider) Corpora(ctx context.Context) (map[Domain]*Corpus, error) {
	if _, err := os.Stat(p.Dir); err != nil {
		return nil, fmt.Errorf("catalog directory %s: %w", p.Dir, err)
	}

	corpora := make(map[Domain]*Corpus, len(Domains))
	for _, domain := range Domains {
		path := filepath.Join(p.Dir, fileNames[domain])
		f, err := os.Open(path)
		if err != nil {
			p.Logger.Warn().Err(err).Str("domain", string(domain)).Msg("Catalog file unavailable, domain disabled")
			continue
		}

		items, err := ParseCSV(domain, f)
		f.Close()
		if err != nil {
			p.Logger.Warn().Err(err).Str("domain", string(domain)).Msg("Catalog file unreadable, domain disabled")
			continue
		}

		corpora[domain] = NewCorpus(domain, items)
		p.Logger.Info().Str("domain", string(domain)).Int("items", len(items)).Msg("Catalog loaded")
	}

	if len(corpora) == 0 {
		return nil, fmt.Errorf("no catalog files found in %s", p.Dir)
	}
	return corpora, nil
}

// GitHubProvider loads catalogs from raw.githubusercontent.com. Fetched
// payloads are cached so repeated startups do not re-download.
type GitHubProvider struct {
	User   string
	Repo   string
	Branch string
	Cache  cache.Client
	TTL    time.Duration
	Client *http.Client
	Logger *observability.Logger
}

// Corpora fetches every domain file from the configured repository.
func (p *GitHubProvider) Corpora(ctx context.Context) (map[Domain]*Corpus, error) {
	httpClient := p.Client
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	ttl := p.TTL
	if ttl <= 0 {
		ttl = time.Hour
	}

	corpora := make(map[Domain]*Corpus, len(Domains))
	for _, domain := range Domains {
		url := fmt.Sprintf("https://raw.githubusercontent.com/%s/%s/%s/%s", p.User, p.Repo, p.Branch, fileNames[domain])

		data, err := p.fetch(ctx, httpClient, url, ttl)
		if err != nil {
			p.Logger.Warn().Err(err).Str("domain", string(domain)).Str("url", url).Msg("Remote catalog unavailable, domain disabled")
			continue
		}

		items, err := ParseCSV(domain, newBytesReader(data))
		if err != nil {
			p.Logger.Warn().Err(err).Str("domain", string(domain)).Msg("Remote catalog unreadable, domain disabled")
			continue
		}

		corpora[domain] = NewCorpus(domain, items)
		p.Logger.Info().Str("domain", string(domain)).Int("items", len(items)).Msg("Catalog loaded")
	}

	if len(corpora) == 0 {
		return nil, fmt.Errorf("no catalogs fetched from %s/%s@%s", p.User, p.Repo, p.Branch)
	}
	return corpora, nil
}

// fetch returns the payload at url, consulting the cache first.
func (p *GitHubProvider) fetch(ctx context.Context, httpClient *http.Client, url string, ttl time.Duration) ([]byte, error) {
	key := cache.CacheKey("catalog", url)
	if p.Cache != nil {
		if data, err := p.Cache.Get(ctx, key); err == nil {
			p.Logger.Debug().Str("url", url).Msg("Catalog cache hit")
			return data, nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch catalog: unexpected status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read catalog body: %w", err)
	}

	if p.Cache != nil {
		if err := p.Cache.Set(ctx, key, data, ttl); err != nil {
			p.Logger.Warn().Err(err).Str("url", url).Msg("Failed to cache catalog payload")
		}
	}

	return data, nil
}
