package main

import (
	"log/slog"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/gitsemver/cmd/gitsemver/commands"
	gserrors "git.home.luguber.info/inful/gitsemver/internal/errors"
	"git.home.luguber.info/inful/gitsemver/internal/version"
)

func main() {
	var cli commands.CLI
	ctx := kong.Parse(&cli,
		kong.Name("gitsemver"),
		kong.Description("Infer the next semantic version from conventional commit history."),
		kong.UsageOnError(),
		kong.Vars{"version": version.Full()},
	)

	if err := ctx.Run(&commands.Global{Logger: slog.Default()}, &cli); err != nil {
		gserrors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(err)
	}
}
