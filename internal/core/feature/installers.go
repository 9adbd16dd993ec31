package feature

import (
	"context"

	"github.com/nightconcept/tscli/internal/core/manifest"
	"github.com/nightconcept/tscli/internal/core/workspace"
)

// Scripts registered by the installers.
var (
	ESLintScript = manifest.Script{
		Name:    "eslint",
		Command: "eslint --fix src --ext .ts",
		Comment: "Lint and auto-fix every .ts file under src with ESLint",
	}
	PrettierScript = manifest.Script{
		Name:    "prettier",
		Command: `prettier --write "src/**/*.ts"`,
		Comment: "Format every .ts file under src",
	}
	CommitScript = manifest.Script{
		Name:    "commit",
		Command: "cz",
		Comment: "Write a conventional commit message interactively",
	}
)

// InstallESLint installs ESLint with the TypeScript parser and plugin.
func InstallESLint(ctx context.Context, ws *workspace.Workspace) error {
	err := ws.Exec(ctx, ws.Settings.InstallDev("eslint", "@typescript-eslint/parser", "@typescript-eslint/eslint-plugin"))
	if err != nil {
		return err
	}
	if err := writeModule(ws, ESLintConfigFile, DefaultESLintConfig()); err != nil {
		return err
	}
	return registerScript(ws, ESLintScript)
}

// InstallPrettier installs Prettier.
func InstallPrettier(ctx context.Context, ws *workspace.Workspace) error {
	if err := ws.Exec(ctx, ws.Settings.InstallDev("prettier")); err != nil {
		return err
	}
	if err := writeModule(ws, PrettierConfigFile, DefaultPrettierConfig()); err != nil {
		return err
	}
	return registerScript(ws, PrettierScript)
}

// InstallCZ sets up commitizen with the conventional changelog adapter and
// commitlint to enforce it.
func InstallCZ(ctx context.Context, ws *workspace.Workspace) error {
	err := ws.ExecAll(ctx,
		ws.Settings.Exec("commitizen", "init", "cz-conventional-changelog", "--save", "--save-exact"),
		ws.Settings.InstallDev("@commitlint/cli", "@commitlint/config-conventional"),
	)
	if err != nil {
		return err
	}
	if err := writeModule(ws, CommitlintConfigFile, DefaultCommitlintConfig()); err != nil {
		return err
	}
	return registerScript(ws, CommitScript)
}

func writeModule(ws *workspace.Workspace, file string, v any) error {
	content, err := RenderModule(v)
	if err != nil {
		return err
	}
	ws.WriteConfig(file, content)
	return nil
}

func registerScript(ws *workspace.Workspace, s manifest.Script) error {
	return ws.UpdateManifest(func(m *manifest.Manifest) error {
		m.SetScript(s)
		return nil
	})
}
