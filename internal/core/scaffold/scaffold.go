// Package scaffold runs the create pipeline: preflight, feature selection,
// toolchain, features, hooks, build script and the closing report.
package scaffold

import (
	"context"
	"fmt"
	"io"

	"github.com/nightconcept/tscli/internal/core/build"
	"github.com/nightconcept/tscli/internal/core/config"
	"github.com/nightconcept/tscli/internal/core/feature"
	"github.com/nightconcept/tscli/internal/core/hooks"
	"github.com/nightconcept/tscli/internal/core/preflight"
	"github.com/nightconcept/tscli/internal/core/report"
	"github.com/nightconcept/tscli/internal/core/runner"
	"github.com/nightconcept/tscli/internal/core/toolchain"
	"github.com/nightconcept/tscli/internal/core/workspace"
)

// Selector returns the identifiers of the features the user wants.
type Selector func(ctx context.Context) ([]string, error)

// Options configures one run.
type Options struct {
	BaseDir  string // directory the project name is resolved against
	Name     string
	Select   Selector
	Registry feature.Registry
	Runner   runner.Runner
	Settings *config.Settings
	Out      io.Writer
	ErrOut   io.Writer
	Verbose  bool
}

// Result describes a finished run.
type Result struct {
	Root      string
	Selection feature.Selection
}

// Run scaffolds opts.Name under opts.BaseDir. Nothing is written when the
// target exists or the selection cannot be resolved.
func Run(ctx context.Context, opts Options) (*Result, error) {
	target, err := preflight.Check(opts.BaseDir, opts.Name)
	if err != nil {
		return nil, err
	}

	registry := opts.Registry
	if registry == nil {
		registry = feature.DefaultRegistry()
	}
	sel, err := selectFeatures(ctx, opts.Select, registry)
	if err != nil {
		return nil, err
	}

	ws := workspace.New(target, opts.Runner, opts.Settings, opts.Out, opts.ErrOut)
	ws.Verbose = opts.Verbose
	ws.Logf("Creating %s with features %v\n", target, sel.Strings())

	steps := []struct {
		name string
		run  func() error
	}{
		{"installing toolchain", func() error { return toolchain.Install(ctx, ws, opts.Name) }},
		{"installing features", func() error { return registry.Install(ctx, ws, sel) }},
		{"installing git hooks", func() error { return hooks.Install(ctx, ws, hooks.Compose(sel)) }},
		{"registering build script", func() error { return build.Install(ws, sel) }},
	}
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := step.run(); err != nil {
			return nil, fmt.Errorf("%s: %w", step.name, err)
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	report.Completion(ws.Out, opts.Name, ws.Settings.PackageManager)
	return &Result{Root: target, Selection: sel}, nil
}

func selectFeatures(ctx context.Context, selector Selector, registry feature.Registry) (feature.Selection, error) {
	if selector == nil {
		return feature.Selection{}, nil
	}
	ids, err := selector(ctx)
	if err != nil {
		return nil, fmt.Errorf("selecting features: %w", err)
	}
	sel, err := feature.ParseSelection(ids)
	if err != nil {
		return nil, err
	}
	for _, f := range sel {
		if _, err := registry.Lookup(f); err != nil {
			return nil, err
		}
	}
	return sel, nil
}
