package commands

import (
	"github.com/spf13/cobra"

	"github.com/watspent/watspent/internal/buildinfo"
	"github.com/watspent/watspent/internal/config"
)

// globalFlags are the persistent flags shared by every subcommand.
type globalFlags struct {
	configPath string
	logLevel   string
	logFormat  string
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:     "watspent",
		Short:   "Analyze WatCard transaction history",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", config.FileName, "path to config file")
	pf.StringVar(&flags.logLevel, "log-level", "", "log level (overrides config)")
	pf.StringVar(&flags.logFormat, "log-format", "", "log format: text or json (overrides config)")

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newAnalyzeCommand(flags))
	rootCmd.AddCommand(newExportCommand(flags))
	rootCmd.AddCommand(newServeCommand(flags))

	return rootCmd
}
