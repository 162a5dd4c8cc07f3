package commands

import (
	"log/slog"
	"path/filepath"

	"git.home.luguber.info/inful/gallerygen/internal/build"
	"git.home.luguber.info/inful/gallerygen/internal/config"
	"git.home.luguber.info/inful/gallerygen/internal/markup"
)

// PagesCmd implements the 'pages' command.
type PagesCmd struct {
	OutDir string   `name:"out-dir" help:"Directory for <slug>.html pages (default from config)"`
	Slug   []string `help:"Render only these slugs (repeatable)"`
}

func (p *PagesCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	if len(p.Slug) > 0 {
		if err := config.ValidateSlugs(p.Slug); err != nil {
			return err
		}
		cfg.Slugs = p.Slug
	}
	outDir := p.OutDir
	if outDir == "" {
		outDir = cfg.PagesDir()
	}

	records, warn, err := loadRecords(cfg)
	if err != nil {
		return err
	}

	opts := markup.PageOptions{
		Images:   build.ImageOptions(cfg),
		SiteName: cfg.Pages.SiteName,
		HomeHref: cfg.Pages.HomeHref,
		Markdown: cfg.MarkdownPages(),
	}
	ok := 0
	for _, rec := range records {
		page, err := markup.Page(rec, opts)
		if err != nil {
			slog.Warn("Page render failed", "slug", rec.Slug, "error", err)
			warn++
			continue
		}
		path := filepath.Join(outDir, rec.Slug+".html")
		if err := build.WriteFileAtomic(path, page); err != nil {
			return err
		}
		slog.Info("Page written", "slug", rec.Slug, "path", path)
		ok++
	}

	printf(g, "Pages written: %d, warnings: %d\n", ok, warn)
	return nil
}
