package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/recserve/recommend-engine/cmd/recommend-cli/ui"
	"github.com/recserve/recommend-engine/internal/cache"
	"github.com/recserve/recommend-engine/internal/catalog"
	"github.com/recserve/recommend-engine/internal/config"
	"github.com/recserve/recommend-engine/internal/observability"
)

var (
	ingestDir    string
	ingestGitHub string
	ingestOut    string
	ingestForce  bool
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Snapshot catalog CSVs into a local SQLite database",
	Long: `Fetch catalog CSV files from a local directory or a GitHub repository and
write them into a SQLite snapshot. The API server and the CLI can then run
with catalog source "sqlite" without re-reading the CSVs.

  recommend ingest --dir ./data --out ./catalogs.db
  recommend ingest --github owner/repo@main --out ./catalogs.db`,
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().StringVar(&ingestDir, "dir", "", "local directory holding catalog CSV files")
	ingestCmd.Flags().StringVar(&ingestGitHub, "github", "", `GitHub repository in "user/repo@branch" form`)
	ingestCmd.Flags().StringVar(&ingestOut, "out", "", "SQLite snapshot path (defaults to the configured catalog.sqlite.path)")
	ingestCmd.Flags().BoolVar(&ingestForce, "force", false, "overwrite an existing snapshot without asking")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	ui.InitUI(noColor, verbose)
	ui.Section("Catalog Ingestion")

	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}

	provider, err := ingestProvider(cfg, logger)
	if err != nil {
		return err
	}

	outPath := ingestOut
	if outPath == "" {
		outPath = cfg.Catalog.SQLite.Path
	}
	ui.KeyValue("Snapshot", outPath)
	ui.Newline()

	store, err := catalog.OpenSQLiteStore(outPath)
	if err != nil {
		return fmt.Errorf("open snapshot: %w", err)
	}
	defer store.Close()

	if !ingestForce {
		if existing, err := store.Corpora(ctx); err == nil && len(existing) > 0 {
			ok, err := ui.Confirm("Snapshot already holds catalogs, overwrite?", false)
			if err != nil {
				return err
			}
			if !ok {
				ui.Warning("Ingestion cancelled")
				return nil
			}
		}
	}

	spinner := ui.NewSpinner("Fetching catalogs...")
	spinner.Start()
	corpora, err := provider.Corpora(ctx)
	spinner.Stop()
	if err != nil {
		return fmt.Errorf("fetch catalogs: %w", err)
	}

	total := 0
	for _, corpus := range corpora {
		total += corpus.Len()
	}

	bar := ui.NewProgressBar(int64(total), "Writing snapshot")
	for _, domain := range catalog.Domains {
		corpus, ok := corpora[domain]
		if !ok {
			continue
		}
		if err := store.Save(ctx, map[catalog.Domain]*catalog.Corpus{domain: corpus}); err != nil {
			return fmt.Errorf("snapshot %s: %w", domain, err)
		}
		bar.Add(int64(corpus.Len()))
	}
	bar.Finish()

	ui.Newline()
	ui.Success("Snapshot written: %d items across %d domains", total, len(corpora))
	return nil
}

// ingestProvider resolves the source for ingestion: explicit flags win over
// the configured catalog source.
func ingestProvider(cfg *config.Config, logger *observability.Logger) (catalog.Provider, error) {
	if ingestDir != "" && ingestGitHub != "" {
		return nil, fmt.Errorf("--dir and --github are mutually exclusive")
	}

	if ingestDir != "" {
		return &catalog.DirProvider{Dir: ingestDir, Logger: logger}, nil
	}

	if ingestGitHub != "" {
		user, repo, branch, err := parseGitHubRef(ingestGitHub)
		if err != nil {
			return nil, err
		}
		return &catalog.GitHubProvider{
			User:   user,
			Repo:   repo,
			Branch: branch,
			Cache:  cache.NewMemoryClient(cfg.Cache.MaxEntries),
			TTL:    cfg.Catalog.GitHub.TTL,
			Logger: logger,
		}, nil
	}

	switch cfg.Catalog.Source {
	case "csv", "github", "sample":
		return buildProvider(cfg, logger)
	default:
		return nil, fmt.Errorf("nothing to ingest: pass --dir or --github, or configure a csv/github catalog source")
	}
}

// parseGitHubRef splits "user/repo@branch"; the branch defaults to main.
func parseGitHubRef(ref string) (user, repo, branch string, err error) {
	branch = "main"
	if at := strings.LastIndex(ref, "@"); at >= 0 {
		branch = ref[at+1:]
		ref = ref[:at]
	}
	parts := strings.SplitN(ref, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" || branch == "" {
		return "", "", "", fmt.Errorf(`invalid GitHub reference %q, expected "user/repo@branch"`, ref)
	}
	return parts[0], parts[1], branch, nil
}
