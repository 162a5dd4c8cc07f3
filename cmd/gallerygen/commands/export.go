package commands

import (
	"git.home.luguber.info/inful/gallerygen/internal/build"
	gerrors "git.home.luguber.info/inful/gallerygen/internal/errors"
	"git.home.luguber.info/inful/gallerygen/internal/export"
)

// ExportCmd implements the 'export' command.
type ExportCmd struct {
	Out string `short:"o" help:"Output file; .xlsx or .csv" default:"roster.xlsx"`
}

func (e *ExportCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	records, warn, err := loadRecords(cfg)
	if err != nil {
		return err
	}

	rows := export.Rows(records, build.ImageOptions(cfg))
	if err := export.Write(e.Out, rows); err != nil {
		return gerrors.WriteFailed(e.Out, err)
	}
	printf(g, "Exported %d entries from %d factions to %s (warnings: %d)\n", len(rows), len(records), e.Out, warn)
	return nil
}
