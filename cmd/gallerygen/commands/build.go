package commands

import (
	"context"
	"log/slog"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/gallerygen/internal/build"
	"git.home.luguber.info/inful/gallerygen/internal/config"
	"git.home.luguber.info/inful/gallerygen/internal/metrics"
)

// BuildFlags override configuration values for a batch. They are shared by
// the build and watch commands.
type BuildFlags struct {
	Dir       string   `help:"Content directory with <slug>.json files"`
	HTML      string   `name:"html" help:"Input HTML document"`
	Out       string   `short:"o" help:"Output HTML document (default: overwrite the input)"`
	BaseRoot  string   `name:"base-root" help:"Site folder holding one image folder per slug"`
	Width     int      `help:"Full-size image width announced to the lightbox"`
	Height    int      `help:"Full-size image height announced to the lightbox"`
	Thumb     int      `help:"Thumbnail width"`
	ThumbDir  string   `name:"thumb-dir" help:"Thumbnail sub-folder"`
	Slug      []string `help:"Process only these slugs (repeatable)"`
	NoStamp   bool     `name:"no-stamp" help:"Leave the version marker untouched"`
	NoBackup  bool     `name:"no-backup" help:"Do not write a .bak copy when overwriting the input"`
	DryRun    bool     `name:"dry-run" help:"Run every stage but do not write files"`
	MetricsTo string   `name:"metrics-file" help:"Write Prometheus metrics to this textfile after each batch"`
}

// Apply copies the set flags over cfg and revalidates it.
func (f *BuildFlags) Apply(cfg *config.Config) error {
	if f.Dir != "" {
		cfg.Input.Dir = f.Dir
	}
	if f.HTML != "" {
		cfg.Input.HTML = f.HTML
	}
	if f.Out != "" {
		cfg.Output.HTML = f.Out
	}
	if f.BaseRoot != "" {
		cfg.Images.BaseRoot = f.BaseRoot
	}
	if f.Width != 0 {
		cfg.Images.Width = f.Width
	}
	if f.Height != 0 {
		cfg.Images.Height = f.Height
	}
	if f.Thumb != 0 {
		cfg.Images.ThumbWidth = f.Thumb
	}
	if f.ThumbDir != "" {
		cfg.Images.ThumbDir = f.ThumbDir
	}
	if len(f.Slug) > 0 {
		cfg.Slugs = append([]string(nil), f.Slug...)
	}
	if f.NoBackup {
		off := false
		cfg.Output.Backup = &off
	}
	if f.MetricsTo != "" {
		cfg.Output.Metrics = f.MetricsTo
	}
	return config.Validate(cfg)
}

func (f *BuildFlags) options() build.BuildOptions {
	return build.BuildOptions{NoStamp: f.NoStamp, DryRun: f.DryRun}
}

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	BuildFlags `embed:""`
}

func (b *BuildCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	if err := b.Apply(cfg); err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	result, err := RunBuild(ctx, cfg, b.options())
	if err != nil {
		return err
	}
	printf(g, "Updated %d of %d factions in %s\n", result.Updated(), len(result.Slugs), result.OutputPath)
	if result.Stamped {
		printf(g, "Version v%s -> v%s\n", result.Version.Previous, result.Version.Current)
	}
	return nil
}

// RunBuild executes one batch with a Prometheus recorder when a metrics
// textfile is configured.
func RunBuild(ctx context.Context, cfg *config.Config, opts build.BuildOptions) (*build.BuildResult, error) {
	svc := build.NewBuildService()

	var recorder *metrics.PrometheusRecorder
	if cfg.Output.Metrics != "" {
		recorder = metrics.NewPrometheusRecorder(prom.NewRegistry())
		svc.WithRecorder(recorder)
	}

	result, err := svc.Run(ctx, build.BuildRequest{Config: cfg, Options: opts})

	if recorder != nil {
		if werr := recorder.WriteTextfile(cfg.Output.Metrics); werr != nil {
			slog.Warn("Failed to write metrics textfile", "path", cfg.Output.Metrics, "error", werr)
		}
	}
	return result, err
}
