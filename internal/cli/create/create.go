// Package create implements the "create" command.
package create

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/nightconcept/tscli/internal/core/config"
	"github.com/nightconcept/tscli/internal/core/feature"
	"github.com/nightconcept/tscli/internal/core/preflight"
	"github.com/nightconcept/tscli/internal/core/report"
	"github.com/nightconcept/tscli/internal/core/runner"
	"github.com/nightconcept/tscli/internal/core/scaffold"
)

// NewCreateCommand returns the "create" command. External commands run
// through r.
func NewCreateCommand(r runner.Runner) *cli.Command {
	return &cli.Command{
		Name:      "create",
		Usage:     "Create a new TypeScript project",
		ArgsUsage: "<app-name>",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:    "feature",
				Aliases: []string{"f"},
				Usage:   fmt.Sprintf("Feature to install, repeatable; skips the prompt (one of %v)", feature.Vocabulary),
			},
			&cli.BoolFlag{
				Name:    "yes",
				Aliases: []string{"y"},
				Usage:   "Skip the prompt and install only the features given with --feature",
			},
			&cli.BoolFlag{
				Name:  "strict",
				Usage: "Stop at the first failing external command",
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return cli.Exit("Error: create takes exactly one argument, the project name.\nUsage: tscli create <app-name>", 1)
			}
			name := c.Args().First()

			settings, err := loadSettings(c)
			if err != nil {
				return cli.Exit(fmt.Sprintf("Error loading settings: %v", err), 1)
			}
			if c.Bool("strict") {
				settings.Strict = true
			}

			base, err := os.Getwd()
			if err != nil {
				return cli.Exit(fmt.Sprintf("Error: could not determine the current directory: %v", err), 1)
			}

			_, err = scaffold.Run(c.Context, scaffold.Options{
				BaseDir:  base,
				Name:     name,
				Select:   selector(c),
				Runner:   r,
				Settings: settings,
				Out:      c.App.Writer,
				ErrOut:   c.App.ErrWriter,
				Verbose:  c.Bool("verbose"),
			})
			switch {
			case err == nil:
				return nil
			case errors.Is(err, context.Canceled):
				return cli.Exit("Cancelled.", 130)
			case errors.Is(err, preflight.ErrTargetExists):
				return cli.Exit(color.RedString("%v", err), 1)
			default:
				return cli.Exit(fmt.Sprintf("Error: %v", err), 1)
			}
		},
	}
}

// selector picks the features from the flags, or from the interactive menu
// when none were given.
func selector(c *cli.Context) scaffold.Selector {
	if c.IsSet("feature") || c.Bool("yes") {
		ids := c.StringSlice("feature")
		return func(context.Context) ([]string, error) { return ids, nil }
	}
	return func(ctx context.Context) ([]string, error) {
		report.Clear(c.App.Writer)
		report.Banner(c.App.Writer, c.App.Version)
		return selectFeatures(ctx, bufio.NewReader(c.App.Reader), c.App.Writer)
	}
}

// loadSettings reads --config, or the default settings file.
func loadSettings(c *cli.Context) (*config.Settings, error) {
	path := c.String("config")
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return config.Default(), nil
		}
		path = p
	}
	return config.Load(path)
}
