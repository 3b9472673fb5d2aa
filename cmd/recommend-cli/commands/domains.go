package commands

import (
	"github.com/spf13/cobra"

	"github.com/recserve/recommend-engine/cmd/recommend-cli/ui"
)

var domainsCmd = &cobra.Command{
	Use:   "domains",
	Short: "List the catalogs the engine can recommend from",
	RunE: func(cmd *cobra.Command, args []string) error {
		ui.InitUI(noColor, verbose)

		eng, err := newEngine()
		if err != nil {
			return err
		}
		return printDomains(eng)
	},
}

func init() {
	rootCmd.AddCommand(domainsCmd)
}
