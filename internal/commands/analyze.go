package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/watspent/watspent/internal/cli"
)

func newAnalyzeCommand(flags *globalFlags) *cobra.Command {
	var asJSON bool
	var format string

	cmd := &cobra.Command{
		Use:   "analyze [file|-]",
		Short: "Print spending analytics for a pasted WatCard history or exported CSV",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd, flags)
			if err != nil {
				return err
			}
			if err := e.importInput(cmd, args, format); err != nil {
				return err
			}

			r := e.session.Report()
			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(r); err != nil {
					return fmt.Errorf("encoding report: %w", err)
				}
				return nil
			}
			fmt.Fprintln(out, cli.RenderReport(r))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")
	cmd.Flags().StringVar(&format, "format", "", "input format: watcard or csv (detected if empty)")

	return cmd
}
