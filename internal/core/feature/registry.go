package feature

import (
	"context"
	"fmt"

	"github.com/nightconcept/tscli/internal/core/workspace"
)

// Installer installs one feature into the workspace: dev dependencies,
// configuration file and scripts.
type Installer func(ctx context.Context, ws *workspace.Workspace) error

// Registry maps each feature onto its installer.
type Registry map[Feature]Installer

// DefaultRegistry returns the built-in installers, one per Vocabulary entry.
func DefaultRegistry() Registry {
	return Registry{
		ESLint:   InstallESLint,
		Prettier: InstallPrettier,
		CZ:       InstallCZ,
	}
}

// Lookup returns the installer for f.
func (r Registry) Lookup(f Feature) (Installer, error) {
	install, ok := r[f]
	if !ok || install == nil {
		return nil, &UnknownFeatureError{ID: string(f)}
	}
	return install, nil
}

// Install runs the installer of every selected feature in selection order.
// All features are resolved before the first installer runs, so an
// unregistered feature fails without side effects.
func (r Registry) Install(ctx context.Context, ws *workspace.Workspace, sel Selection) error {
	installers := make([]Installer, 0, len(sel))
	for _, f := range sel {
		install, err := r.Lookup(f)
		if err != nil {
			return err
		}
		installers = append(installers, install)
	}

	for i, install := range installers {
		ws.Logf("Installing %s...\n", sel[i])
		if err := install(ctx, ws); err != nil {
			return fmt.Errorf("installing %s: %w", sel[i], err)
		}
	}
	return nil
}
