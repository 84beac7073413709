package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/watspent/watspent/internal/cli"
)

func newExportCommand(flags *globalFlags) *cobra.Command {
	var outDir string
	var format string

	cmd := &cobra.Command{
		Use:   "export [file|-]",
		Short: "Convert a pasted WatCard history to CSV",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd, flags)
			if err != nil {
				return err
			}
			if err := e.importInput(cmd, args, format); err != nil {
				return err
			}

			if outDir == "" {
				outDir = e.cfg.Export.Dir
			}
			path, err := writeExport(e, outDir)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Exported %d transactions to %s", len(e.session.Transactions()), path)))
			return nil
		},
	}

	cmd.Flags().StringVar(&outDir, "out", "", "output directory (defaults to export.dir)")
	cmd.Flags().StringVar(&format, "format", "", "input format: watcard or csv (detected if empty)")

	return cmd
}

func writeExport(e *env, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating directory %s: %w", dir, err)
	}

	path := filepath.Join(dir, e.session.ExportFileName())
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if err := e.session.Export(f); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("closing %s: %w", path, err)
	}
	return path, nil
}
