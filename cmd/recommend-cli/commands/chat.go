package commands

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/recserve/recommend-engine/cmd/recommend-cli/ui"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Interactive recommendation session",
	Long: `Start an interactive session. Asking the same thing twice keeps walking
through the catalog instead of repeating earlier answers. Type "exit",
"quit" or press Ctrl-D to leave.`,
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	ui.InitUI(noColor, verbose)

	eng, err := newEngine()
	if err != nil {
		return err
	}

	ui.Section("Recommendation Chat")
	ui.Message("I can recommend movies, TV shows, music, books and food.")
	ui.Message(`Type "exit" or "quit" to leave, "domains" to list catalogs.`)
	ui.Newline()

	reader := bufio.NewReader(os.Stdin)
	for {
		line, err := ui.ReadLine(reader, "you> ")
		if err != nil {
			if err == io.EOF {
				ui.Newline()
				ui.Message("Bye!")
				return nil
			}
			return fmt.Errorf("read input: %w", err)
		}

		switch strings.ToLower(line) {
		case "":
			continue
		case "exit", "quit":
			ui.Message("Bye!")
			return nil
		case "domains":
			if err := printDomains(eng); err != nil {
				ui.Error("%v", err)
			}
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		spinner := ui.NewSpinner("Finding recommendations...")
		spinner.Start()
		formatted, err := eng.Ask(ctx, line)
		spinner.Stop()
		cancel()

		if err != nil {
			ui.Error("query failed: %v", err)
			continue
		}
		ui.Newline()
		ui.Answer(formatted)
		ui.Newline()
	}
}

func printDomains(eng engine) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	domains, err := eng.Domains(ctx)
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(domains))
	for _, d := range domains {
		rows = append(rows, []string{d.Name, d.DisplayName, fmt.Sprintf("%d", d.Items)})
	}
	ui.Table([]string{"Domain", "Display name", "Items"}, rows)
	return nil
}
