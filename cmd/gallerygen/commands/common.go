package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/gallerygen/internal/config"
	"git.home.luguber.info/inful/gallerygen/internal/content"
	"git.home.luguber.info/inful/gallerygen/internal/observability"
)

// Global context passed to subcommands.
type Global struct {
	Logger *slog.Logger
	Stdout io.Writer
}

func (g *Global) out() io.Writer {
	if g == nil || g.Stdout == nil {
		return os.Stdout
	}
	return g.Stdout
}

// CLI definition & global flags.
type CLI struct {
	Config    string           `short:"c" help:"Configuration file path (optional)" default:"gallerygen.yaml"`
	Verbose   bool             `short:"v" help:"Enable verbose logging"`
	LogFormat string           `name:"log-format" help:"Log format: text or json (default from config)"`
	Version   kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build  BuildCmd  `cmd:"" default:"withargs" help:"Splice every configured faction into the site document (default)"`
	Pages  PagesCmd  `cmd:"" help:"Write a standalone HTML page per faction"`
	Check  CheckCmd  `cmd:"" help:"Report which faction fragments a document contains"`
	Export ExportCmd `cmd:"" help:"Export the faction rosters to .xlsx or .csv"`
	Watch  WatchCmd  `cmd:"" help:"Rebuild whenever content files change"`
	Init   InitCmd   `cmd:"" help:"Write an example configuration file"`
}

// AfterApply runs after flag parsing; set up logging once from the flags.
// The configured level and format are applied later by loadConfig.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(observability.NewLogger(os.Stderr, level, string(config.NormalizeLogFormat(c.LogFormat))))
	return nil
}

// loadConfig loads the configuration file. The default path is optional;
// an explicitly named file must exist. Logging is reconfigured from the file
// unless the flags already decided it.
func loadConfig(root *CLI) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if root.Config == config.DefaultPath {
		var found bool
		cfg, found, err = config.LoadOptional(root.Config)
		if err == nil && !found {
			slog.Debug("No configuration file, using defaults", "path", root.Config)
		}
	} else {
		cfg, err = config.Load(root.Config)
	}
	if err != nil {
		return nil, err
	}

	level := cfg.Logging.Level.SlogLevel()
	if root.Verbose {
		level = slog.LevelDebug
	}
	format := cfg.Logging.Format
	if root.LogFormat != "" {
		format = config.NormalizeLogFormat(root.LogFormat)
	}
	slog.SetDefault(observability.NewLogger(os.Stderr, level, string(format)))
	return cfg, nil
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

// loadRecords loads every configured slug. Failed slugs are logged and
// counted in warn.
func loadRecords(cfg *config.Config) (records []*content.FactionRecord, warn int, err error) {
	loader, err := content.NewLoader(cfg.Input.Dir)
	if err != nil {
		return nil, 0, err
	}
	for _, res := range loader.LoadAll(cfg.Slugs) {
		if res.Err != nil {
			slog.Warn("Slug skipped", "slug", res.Slug, "error", res.Err)
			warn++
			continue
		}
		records = append(records, res.Record)
	}
	return records, warn, nil
}

func printf(g *Global, format string, args ...any) {
	_, _ = fmt.Fprintf(g.out(), format, args...)
}
