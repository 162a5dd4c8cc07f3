package main

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/gallerygen/cmd/gallerygen/commands"
	gerrors "git.home.luguber.info/inful/gallerygen/internal/errors"
	"git.home.luguber.info/inful/gallerygen/internal/version"
)

func main() {
	cli := &commands.CLI{}
	parser := kong.Parse(cli,
		kong.Name("gallerygen"),
		kong.Description("Splice faction galleries from JSON content into the site's index page."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
	)

	global := &commands.Global{Logger: slog.Default(), Stdout: os.Stdout}
	err := parser.Run(global, cli)
	gerrors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(err)
}
