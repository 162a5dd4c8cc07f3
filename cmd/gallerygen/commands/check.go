package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"text/tabwriter"

	gerrors "git.home.luguber.info/inful/gallerygen/internal/errors"
	"git.home.luguber.info/inful/gallerygen/internal/inspect"
)

// CheckCmd implements the 'check' command.
type CheckCmd struct {
	HTML string `name:"html" help:"Document to inspect (default: the build output)"`
}

func (c *CheckCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	path := c.HTML
	if path == "" {
		path = cfg.OutputHTML()
	}

	f, err := os.Open(path) // #nosec G304 -- operator-supplied document path
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return gerrors.InputMissing(path)
		}
		return gerrors.ReadFailed(path, err)
	}
	defer func() { _ = f.Close() }()

	report, err := inspect.Inspect(f, cfg.Slugs, inspect.Options{
		FactionsClass: cfg.Markers.FactionsClass,
		VersionID:     cfg.Markers.VersionID,
	})
	if err != nil {
		return gerrors.Wrap(err, gerrors.CategoryParse, gerrors.SeverityFatal, "document inspection failed").
			WithContext("path", path)
	}

	tw := tabwriter.NewWriter(g.out(), 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "SLUG\tSECTION\tANCHORS\tTRIGGERS")
	for _, s := range report.Slugs {
		section := "no"
		switch {
		case s.Duplicates:
			section = "duplicate"
		case s.Section:
			section = "yes"
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%d\t%d\n", s.Slug, section, s.Anchors, s.Triggers)
	}
	_ = tw.Flush()
	if report.Version != "" {
		printf(g, "Version: %s\n", report.Version)
	}

	if missing := report.Missing(); len(missing) > 0 {
		return gerrors.New(gerrors.CategoryStructure, gerrors.SeverityError, "factions missing from document").
			WithContext("path", path).
			WithContext("slugs", strings.Join(missing, ","))
	}
	return nil
}
