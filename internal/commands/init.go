package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/watspent/watspent/internal/config"
)

func newInitCommand() *cobra.Command {
	var force bool
	var timezone string

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Write a default watspent.yaml",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			path, err := runInit(absDir, timezone, force)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config")
	cmd.Flags().StringVar(&timezone, "timezone", "America/Toronto", "timezone of the WatCard portal")

	return cmd
}

func runInit(dir, timezone string, force bool) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating directory %s: %w", dir, err)
	}

	path := filepath.Join(dir, config.FileName)
	if !force {
		if _, err := os.Stat(path); err == nil {
			return "", fmt.Errorf("%s already exists (use --force to overwrite)", path)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("checking %s: %w", path, err)
		}
	}

	cfg := config.Default()
	cfg.Import.Timezone = timezone
	cfg.History.File = filepath.Join("logs", "imports.csv")
	if _, err := cfg.Import.Location(); err != nil {
		return "", err
	}

	if err := config.Save(path, cfg); err != nil {
		return "", fmt.Errorf("writing config: %w", err)
	}
	return path, nil
}
