package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/watspent/watspent/internal/analytics"
	"github.com/watspent/watspent/internal/config"
	"github.com/watspent/watspent/internal/history"
	"github.com/watspent/watspent/internal/importer"
	"github.com/watspent/watspent/internal/logging"
	"github.com/watspent/watspent/internal/session"
)

// env is everything a subcommand needs after config is resolved.
type env struct {
	cfg     *config.Config
	log     *logrus.Logger
	session *session.Session
}

func loadEnv(cmd *cobra.Command, flags *globalFlags) (*env, error) {
	cfg, err := config.LoadOrDefault(flags.configPath)
	if err != nil {
		return nil, err
	}
	if flags.logLevel != "" {
		cfg.Logging.Level = flags.logLevel
	}
	if flags.logFormat != "" {
		cfg.Logging.Format = flags.logFormat
	}

	log, err := logging.Setup(cfg.Logging.Level, cfg.Logging.Format, cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}

	opts, err := cfg.Analytics.Options()
	if err != nil {
		return nil, fmt.Errorf("analytics config: %w", err)
	}
	loc, err := cfg.Import.Location()
	if err != nil {
		return nil, err
	}

	p := session.Params{
		Registry: importer.DefaultRegistry(loc),
		Engine:   analytics.NewEngine(opts, analytics.NewDirectory(cfg.Venues)),
		Logger:   log,
	}
	if cfg.History.File != "" {
		p.History = history.New(relativeTo(flags.configPath, cfg.History.File))
	}

	log.WithFields(logrus.Fields{
		"config":    flags.configPath,
		"spendSign": opts.Sign,
		"timezone":  loc.String(),
	}).Debug("Commands.Env.loaded")

	return &env{cfg: cfg, log: log, session: session.New(p)}, nil
}

// relativeTo resolves path against the directory holding configPath.
func relativeTo(configPath, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(filepath.Dir(configPath), path)
}

// readInput reads the ledger named by args, or stdin for "-" or no argument.
func readInput(cmd *cobra.Command, args []string) (source, raw string, err error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", "", fmt.Errorf("reading stdin: %w", err)
		}
		return "stdin", string(data), nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", "", fmt.Errorf("reading %s: %w", args[0], err)
	}
	return filepath.Base(args[0]), string(data), nil
}

// importInput reads and imports the ledger named by args.
func (e *env) importInput(cmd *cobra.Command, args []string, format string) error {
	source, raw, err := readInput(cmd, args)
	if err != nil {
		return err
	}
	if _, err := e.session.ImportFormat(source, format, raw); err != nil {
		return err
	}
	return nil
}
