// Package hooks derives the husky git hooks and lint-staged commands from
// the selected features and merges them into package.json.
package hooks

import (
	"context"
	"errors"

	"github.com/go-git/go-git/v5"

	"github.com/nightconcept/tscli/internal/core/feature"
	"github.com/nightconcept/tscli/internal/core/manifest"
	"github.com/nightconcept/tscli/internal/core/workspace"
)

const (
	PreCommit = "pre-commit"
	CommitMsg = "commit-msg"

	// StagedGlob matches the sources lint-staged runs on.
	StagedGlob = "*.ts"

	commitlintCmd = "commitlint -E HUSKY_GIT_PARAMS"
)

// lintStagedOrder lists the lint-capable features and their scripts in the
// order they run on staged files.
var lintStagedOrder = []struct {
	feature feature.Feature
	script  string
}{
	{feature.ESLint, feature.ESLintScript.Name},
	{feature.Prettier, feature.PrettierScript.Name},
}

// Spec is the hook setup derived from a selection.
type Spec struct {
	Hooks      map[string]string
	LintStaged []string // script names
}

// Compose derives the Spec for sel. It does not depend on selection order.
func Compose(sel feature.Selection) Spec {
	spec := Spec{
		Hooks:      make(map[string]string),
		LintStaged: []string{},
	}
	if sel.Has(feature.CZ) {
		spec.Hooks[CommitMsg] = commitlintCmd
	}
	for _, l := range lintStagedOrder {
		if sel.Has(l.feature) {
			spec.LintStaged = append(spec.LintStaged, l.script)
		}
	}
	return spec
}

// Install initializes the git repository, installs husky and lint-staged and
// merges spec into package.json.
func Install(ctx context.Context, ws *workspace.Workspace, spec Spec) error {
	if err := ws.Tolerate("git init", InitRepository(ws.Root)); err != nil {
		return err
	}
	if err := ws.Exec(ctx, ws.Settings.InstallDev("husky", "lint-staged")); err != nil {
		return err
	}

	hooks := map[string]string{PreCommit: "lint-staged"}
	for name, cmd := range spec.Hooks {
		hooks[name] = cmd
	}
	cmds := make([]string, 0, len(spec.LintStaged))
	for _, script := range spec.LintStaged {
		cmds = append(cmds, ws.Settings.RunScript(script))
	}

	return ws.UpdateManifest(func(m *manifest.Manifest) error {
		m.MergeHooks(hooks)
		m.SetLintStaged(StagedGlob, cmds)
		return nil
	})
}

// InitRepository creates a git repository at root. An existing repository
// is left untouched.
func InitRepository(root string) error {
	_, err := git.PlainInit(root, false)
	if errors.Is(err, git.ErrRepositoryAlreadyExists) {
		return nil
	}
	return err
}
