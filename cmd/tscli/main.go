// Command tscli scaffolds TypeScript projects.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"

	"github.com/urfave/cli/v2"

	"github.com/nightconcept/tscli/internal/cli/create"
	"github.com/nightconcept/tscli/internal/cli/self"
	"github.com/nightconcept/tscli/internal/core/runner"
)

// version is overridden at release time with -ldflags "-X main.version=...".
var version = "v0.1.0"

func main() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"v"},
		Usage:   "print the version",
	}

	app := &cli.App{
		Name:    "tscli",
		Usage:   "Scaffold a TypeScript project with linting, formatting and commit conventions",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "Path to the settings file (default: <user config dir>/tscli/config.toml)",
				EnvVars: []string{"TSCLI_CONFIG"},
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Enable verbose output",
			},
		},
		Action: func(c *cli.Context) error {
			_ = cli.ShowAppHelp(c)
			return nil
		},
		Commands: []*cli.Command{
			create.NewCreateCommand(runner.NewExec()),
			self.NewSelfCommand(),
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := app.RunContext(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}
