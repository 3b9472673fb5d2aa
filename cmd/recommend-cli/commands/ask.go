package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/recserve/recommend-engine/cmd/recommend-cli/ui"
)

var askQuery string

var askCmd = &cobra.Command{
	Use:   "ask",
	Short: "Ask for recommendations with a single query",
	Long: `Ask one recommendation question and print the results. The query can be
passed with -q or as positional arguments:

  recommend ask -q "relaxing jazz music"
  recommend ask suggest some thriller books`,
	RunE: runAsk,
}

func init() {
	askCmd.Flags().StringVarP(&askQuery, "query", "q", "", "recommendation query")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	ui.InitUI(noColor, verbose)

	query := askQuery
	if query == "" {
		query = strings.TrimSpace(strings.Join(args, " "))
	}
	if query == "" {
		return fmt.Errorf("no query given: use -q or pass the question as arguments")
	}

	eng, err := newEngine()
	if err != nil {
		return err
	}

	spinner := ui.NewSpinner("Finding recommendations...")
	spinner.Start()
	formatted, err := eng.Ask(ctx, query)
	spinner.Stop()
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	ui.Newline()
	ui.Answer(formatted)
	return nil
}
