package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/recserve/recommend-engine/internal/cache"
	"github.com/recserve/recommend-engine/internal/catalog"
	"github.com/recserve/recommend-engine/internal/config"
	"github.com/recserve/recommend-engine/internal/observability"
	"github.com/recserve/recommend-engine/internal/recommend"
	"github.com/recserve/recommend-engine/pkg/client"
)

// domainInfo is the subset of domain metadata the CLI renders.
type domainInfo struct {
	Name        string
	DisplayName string
	Items       int
}

// engine abstracts the local pipeline and the remote API behind the two
// calls the CLI needs. One engine holds one session for its whole lifetime,
// so consecutive asks in a chat never repeat recommendations.
type engine interface {
	Ask(ctx context.Context, query string) (string, error)
	Domains(ctx context.Context) ([]domainInfo, error)
}

// newEngine picks local or remote depending on the --server flag.
func newEngine() (engine, error) {
	if serverURL != "" {
		c, err := client.NewClient(client.ClientConfig{BaseURL: serverURL})
		if err != nil {
			return nil, fmt.Errorf("create API client: %w", err)
		}
		return &remoteEngine{client: c}, nil
	}
	return newLocalEngine()
}

type remoteEngine struct {
	client *client.Client
}

func (e *remoteEngine) Ask(ctx context.Context, query string) (string, error) {
	resp, err := e.client.Query(ctx, query)
	if err != nil {
		return "", err
	}
	return resp.Formatted, nil
}

func (e *remoteEngine) Domains(ctx context.Context) ([]domainInfo, error) {
	domains, err := e.client.Domains(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domainInfo, 0, len(domains))
	for _, d := range domains {
		out = append(out, domainInfo{Name: d.Name, DisplayName: d.DisplayName, Items: d.Items})
	}
	return out, nil
}

type localEngine struct {
	recommender *recommend.Recommender
	session     *recommend.Session
}

func newLocalEngine() (*localEngine, error) {
	cfg, logger, err := loadConfig()
	if err != nil {
		return nil, err
	}

	provider, err := buildProvider(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("build catalog provider: %w", err)
	}

	corpora, err := provider.Corpora(context.Background())
	if err != nil {
		return nil, fmt.Errorf("load catalogs: %w", err)
	}

	recommender := recommend.New(corpora, recommend.Options{
		TopN:               cfg.Retrieval.TopN,
		NoiseFloor:         cfg.Retrieval.NoiseFloor,
		WeakMatchThreshold: cfg.Retrieval.WeakMatchThreshold,
		ArtistCandidates:   cfg.Retrieval.ArtistCandidates,
		WidenedLimit:       cfg.Retrieval.WidenedLimit,
		VocabularySize:     cfg.Retrieval.VocabularySize,
		MaxNGram:           cfg.Retrieval.MaxNGram,
	}, logger)

	sessions := recommend.NewSessionManager(0)
	return &localEngine{
		recommender: recommender,
		session:     sessions.Get(""),
	}, nil
}

func (e *localEngine) Ask(ctx context.Context, query string) (string, error) {
	result := e.recommender.Process(e.session, query)
	return result.Formatted, nil
}

func (e *localEngine) Domains(ctx context.Context) ([]domainInfo, error) {
	out := make([]domainInfo, 0, 5)
	for _, d := range e.recommender.Domains() {
		out = append(out, domainInfo{
			Name:        string(d),
			DisplayName: d.DisplayName(),
			Items:       e.recommender.CorpusSize(d),
		})
	}
	return out, nil
}

// loadConfig resolves the config path from the flag or CONFIG_PATH and
// returns a logger quiet enough for interactive use.
func loadConfig() (*config.Config, *observability.Logger, error) {
	path := cfgFile
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	level := "error"
	if verbose {
		level = "debug"
	}
	logger := observability.NewLogger(observability.LogConfig{
		Level:       level,
		Format:      "console",
		ServiceName: "recommend-cli",
	})
	return cfg, logger, nil
}

// buildProvider wires the catalog source named in the config.
func buildProvider(cfg *config.Config, logger *observability.Logger) (catalog.Provider, error) {
	switch cfg.Catalog.Source {
	case "sample":
		return catalog.NewSampleProvider(), nil

	case "csv":
		return &catalog.DirProvider{Dir: cfg.Catalog.CSV.Dir, Logger: logger}, nil

	case "github":
		return &catalog.GitHubProvider{
			User:   cfg.Catalog.GitHub.User,
			Repo:   cfg.Catalog.GitHub.Repo,
			Branch: cfg.Catalog.GitHub.Branch,
			Cache:  cache.NewMemoryClient(cfg.Cache.MaxEntries),
			TTL:    cfg.Catalog.GitHub.TTL,
			Logger: logger,
		}, nil

	case "sqlite":
		return catalog.OpenSQLiteStore(cfg.Catalog.SQLite.Path)

	default:
		return nil, fmt.Errorf("unknown catalog source: %s", cfg.Catalog.Source)
	}
}
