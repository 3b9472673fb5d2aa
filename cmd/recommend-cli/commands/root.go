package commands

import (
	"github.com/spf13/cobra"
)

var (
	cfgFile   string
	serverURL string
	verbose   bool
	noColor   bool
)

var rootCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Cross-domain recommendation CLI",
	Long: `Ask for movie, TV show, music, book and food recommendations in plain
language. Queries run against a local catalog by default, or against a
running recommendation API when --server is set.`,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "base URL of a running recommendation API (empty runs locally)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
