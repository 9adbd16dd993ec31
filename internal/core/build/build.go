// Package build composes the project's build script.
package build

import (
	"strings"

	"github.com/nightconcept/tscli/internal/core/config"
	"github.com/nightconcept/tscli/internal/core/feature"
	"github.com/nightconcept/tscli/internal/core/manifest"
	"github.com/nightconcept/tscli/internal/core/toolchain"
	"github.com/nightconcept/tscli/internal/core/workspace"
)

const (
	ScriptName = "build"
	comment    = "Build the project"
)

// Compose returns the build command: lint, then format, when selected,
// followed by a clean compile.
func Compose(sel feature.Selection, s *config.Settings) string {
	var steps []string
	if sel.Has(feature.ESLint) {
		steps = append(steps, s.RunScript(feature.ESLintScript.Name))
	}
	if sel.Has(feature.Prettier) {
		steps = append(steps, s.RunScript(feature.PrettierScript.Name))
	}
	steps = append(steps, "rm -rf "+toolchain.OutDir, "tsc --build")
	return strings.Join(steps, " && ")
}

// Install registers the composed build script.
func Install(ws *workspace.Workspace, sel feature.Selection) error {
	script := manifest.Script{
		Name:    ScriptName,
		Command: Compose(sel, ws.Settings),
		Comment: comment,
	}
	return ws.UpdateManifest(func(m *manifest.Manifest) error {
		m.SetScript(script)
		return nil
	})
}
