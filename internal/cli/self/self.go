// Package self implements "tscli self", which manages the tscli binary.
package self

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/creativeprojects/go-selfupdate"
	"github.com/urfave/cli/v2"
)

// DefaultRepository is where tscli releases are published.
const DefaultRepository = "nightconcept/tscli"

// NewSelfCommand creates the "self" command and its "update" subcommand.
func NewSelfCommand() *cli.Command {
	return &cli.Command{
		Name:  "self",
		Usage: "Manage the tscli binary itself",
		Subcommands: []*cli.Command{
			{
				Name:  "update",
				Usage: "Update tscli to the latest release",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:    "yes",
						Aliases: []string{"y"},
						Usage:   "Update without asking for confirmation",
					},
					&cli.BoolFlag{
						Name:  "check",
						Usage: "Only report whether a newer release exists",
					},
					&cli.StringFlag{
						Name:  "source",
						Usage: "GitHub repository to update from, as 'owner/repo'",
						Value: DefaultRepository,
					},
				},
				Action: updateAction,
			},
		},
	}
}

func updateAction(c *cli.Context) error {
	w := c.App.Writer
	verbose := c.Bool("verbose")

	current, err := parseVersion(c.App.Version)
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error parsing current version '%s': %v. Ensure version is like vX.Y.Z or X.Y.Z.", c.App.Version, err), 1)
	}

	slug, err := parseSlug(c.String("source"))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	if verbose {
		_, _ = fmt.Fprintf(w, "Current version %s, checking %s for releases...\n", current, slug)
	}

	ghSource, err := selfupdate.NewGitHubSource(selfupdate.GitHubConfig{})
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error creating GitHub source: %v", err), 1)
	}
	updater, err := selfupdate.NewUpdater(selfupdate.Config{Source: ghSource})
	if err != nil {
		return cli.Exit(fmt.Sprintf("Failed to initialize updater: %v", err), 1)
	}

	latest, found, err := updater.DetectLatest(c.Context, selfupdate.ParseSlug(slug))
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error detecting latest version: %v", err), 1)
	}
	if !found || !latest.GreaterThan(current.String()) {
		_, _ = fmt.Fprintf(w, "tscli %s is up to date.\n", c.App.Version)
		return nil
	}
	if verbose && latest.ReleaseNotes != "" {
		_, _ = fmt.Fprintf(w, "Release notes:\n%s\n", latest.ReleaseNotes)
	}

	_, _ = fmt.Fprintf(w, "New version available: %s (current: %s)\n", latest.Version(), c.App.Version)
	if c.Bool("check") {
		return nil
	}

	if !c.Bool("yes") {
		_, _ = fmt.Fprint(w, "Do you want to update? (y/N): ")
		input, _ := bufio.NewReader(c.App.Reader).ReadString('\n')
		if strings.TrimSpace(strings.ToLower(input)) != "y" {
			_, _ = fmt.Fprintln(w, "Update cancelled.")
			return nil
		}
	}

	execPath, err := os.Executable()
	if err != nil {
		return cli.Exit(fmt.Sprintf("Could not get executable path: %v", err), 1)
	}
	if err := updater.UpdateTo(c.Context, latest, execPath); err != nil {
		return cli.Exit(fmt.Sprintf("Failed to update: %v", err), 1)
	}

	_, _ = fmt.Fprintf(w, "Successfully updated to version %s.\n", latest.Version())
	return nil
}

// parseVersion accepts "vX.Y.Z" and "X.Y.Z".
func parseVersion(v string) (*semver.Version, error) {
	return semver.NewVersion(strings.TrimPrefix(strings.TrimSpace(v), "v"))
}

// parseSlug validates an "owner/repo" repository reference.
func parseSlug(s string) (string, error) {
	parts := strings.Split(s, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", fmt.Errorf("invalid --source format. Expected 'owner/repo', got: %s", s)
	}
	return s, nil
}
