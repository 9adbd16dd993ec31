package scaffold_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nightconcept/tscli/internal/core/config"
	"github.com/nightconcept/tscli/internal/core/feature"
	"github.com/nightconcept/tscli/internal/core/manifest"
	"github.com/nightconcept/tscli/internal/core/preflight"
	"github.com/nightconcept/tscli/internal/core/runner"
	"github.com/nightconcept/tscli/internal/core/scaffold"
)

func fakeNpmInit(dir string) error {
	content := `{"name": "` + filepath.Base(dir) + `", "version": "1.0.0", "description": "", "main": "index.js", "scripts": {"test": "echo \"Error: no test specified\" && exit 1"}, "license": "ISC"}`
	return os.WriteFile(filepath.Join(dir, manifest.FileName), []byte(content), 0644)
}

func fixedSelection(ids ...string) scaffold.Selector {
	return func(context.Context) ([]string, error) { return ids, nil }
}

func newOptions(t *testing.T, name string, sel scaffold.Selector) (scaffold.Options, *runner.Recorder, *bytes.Buffer) {
	t.Helper()
	color.NoColor = true
	rec := runner.NewRecorder().On("npm init -y", fakeNpmInit)
	var out bytes.Buffer
	return scaffold.Options{
		BaseDir:  t.TempDir(),
		Name:     name,
		Select:   sel,
		Runner:   rec,
		Settings: config.Default(),
		Out:      &out,
		ErrOut:   &out,
	}, rec, &out
}

func scriptKeys(m *manifest.Manifest) []string {
	keys := make([]string, 0, len(m.Scripts))
	for k := range m.Scripts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func TestRun_DemoWithoutFeatures(t *testing.T) {
	opts, rec, out := newOptions(t, "demo", fixedSelection())

	res, err := scaffold.Run(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(opts.BaseDir, "demo"), res.Root)

	m, err := manifest.Read(manifest.Path(res.Root))
	require.NoError(t, err)
	assert.Equal(t, "demo", m.Name)
	assert.Equal(t, "demo", m.Description)
	assert.Equal(t, []string{"build", "build:comment", "dev", "dev:comment", "test"}, scriptKeys(m))
	assert.Equal(t, "rm -rf lib && tsc --build", m.Scripts["build"])
	assert.Equal(t, map[string]string{"pre-commit": "lint-staged"}, m.Husky.Hooks)
	assert.Equal(t, map[string]manifest.Commands{"*.ts": {}}, m.LintStaged)

	assert.Equal(t, []string{
		"npm init -y",
		"npm i typescript -D",
		"npx tsc --init",
		"npm i @types/node -D",
		"npm i ts-node-dev -D",
		"npm i husky lint-staged -D",
	}, rec.Lines())
	assert.Contains(t, out.String(), "Successfully created project demo")
	assert.FileExists(t, filepath.Join(res.Root, "tsconfig.json"))
	assert.DirExists(t, filepath.Join(res.Root, ".git"))
}

func TestRun_AllFeatures(t *testing.T) {
	opts, _, _ := newOptions(t, "full", fixedSelection("Prettier", "CZ", "ESLint"))

	res, err := scaffold.Run(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, feature.Selection{feature.Prettier, feature.CZ, feature.ESLint}, res.Selection)

	m, err := manifest.Read(manifest.Path(res.Root))
	require.NoError(t, err)
	assert.Equal(t, []string{
		"build", "build:comment",
		"commit", "commit:comment",
		"dev", "dev:comment",
		"eslint", "eslint:comment",
		"prettier", "prettier:comment",
		"test",
	}, scriptKeys(m))
	assert.Equal(t, "npm run eslint && npm run prettier && rm -rf lib && tsc --build", m.Scripts["build"])
	assert.Equal(t, "commitlint -E HUSKY_GIT_PARAMS", m.Husky.Hooks["commit-msg"])
	assert.Equal(t, manifest.Commands{"npm run eslint", "npm run prettier"}, m.LintStaged["*.ts"])

	for _, f := range []string{".eslintrc.js", ".prettierrc.js", "commitlint.config.js", "src/index.ts"} {
		assert.FileExists(t, filepath.Join(res.Root, f))
	}
}

func TestRun_SubsetsRegisterEachPairOnce(t *testing.T) {
	subsets := [][]string{{}, {"ESLint"}, {"Prettier"}, {"CZ"}, {"ESLint", "CZ"}, {"CZ", "Prettier"}, {"Prettier", "ESLint"}}
	scripts := map[string]string{"ESLint": "eslint", "Prettier": "prettier", "CZ": "commit"}

	for _, subset := range subsets {
		opts, _, _ := newOptions(t, "p", fixedSelection(subset...))
		res, err := scaffold.Run(context.Background(), opts)
		require.NoError(t, err, subset)

		m, err := manifest.Read(manifest.Path(res.Root))
		require.NoError(t, err)
		keys := scriptKeys(m)
		for _, id := range subset {
			assert.Contains(t, keys, scripts[id])
			assert.Contains(t, keys, scripts[id]+":comment")
		}
		assert.Len(t, keys, 5+2*len(subset), subset)
	}
}

func TestRun_ExistingTarget(t *testing.T) {
	selected := false
	opts, rec, _ := newOptions(t, "x", func(context.Context) ([]string, error) {
		selected = true
		return nil, nil
	})
	existing := filepath.Join(opts.BaseDir, "x")
	require.NoError(t, os.Mkdir(existing, 0755))

	_, err := scaffold.Run(context.Background(), opts)
	require.Error(t, err)
	assert.ErrorIs(t, err, preflight.ErrTargetExists)
	assert.Contains(t, err.Error(), existing)
	assert.False(t, selected, "The prompt must not run when the target exists")
	assert.Empty(t, rec.Lines())

	entries, err := os.ReadDir(existing)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRun_UnknownFeature(t *testing.T) {
	opts, rec, _ := newOptions(t, "demo", fixedSelection("ESLint", "TSLint"))

	_, err := scaffold.Run(context.Background(), opts)
	require.Error(t, err)
	assert.ErrorIs(t, err, feature.ErrUnknownFeature)
	assert.Empty(t, rec.Lines())
	assert.NoDirExists(t, filepath.Join(opts.BaseDir, "demo"))
}

func TestRun_UnregisteredFeature(t *testing.T) {
	opts, rec, _ := newOptions(t, "demo", fixedSelection("CZ"))
	opts.Registry = feature.Registry{feature.ESLint: feature.InstallESLint}

	_, err := scaffold.Run(context.Background(), opts)
	require.ErrorIs(t, err, feature.ErrUnknownFeature)
	assert.Empty(t, rec.Lines())
}

func TestRun_SelectorError(t *testing.T) {
	boom := errors.New("interrupted")
	opts, _, _ := newOptions(t, "demo", func(context.Context) ([]string, error) { return nil, boom })

	_, err := scaffold.Run(context.Background(), opts)
	assert.ErrorIs(t, err, boom)
}

func TestRun_StrictModeStopsOnCommandFailure(t *testing.T) {
	opts, rec, _ := newOptions(t, "demo", fixedSelection("ESLint"))
	opts.Settings.Strict = true
	rec.On("npm i typescript -D", func(string) error { return errors.New("E404") })

	_, err := scaffold.Run(context.Background(), opts)
	require.Error(t, err)
	var cmdErr *runner.CommandError
	assert.True(t, errors.As(err, &cmdErr))
	assert.NotContains(t, rec.Lines(), "npx tsc --init")
}

func TestRun_LegacyModeIgnoresCommandFailure(t *testing.T) {
	opts, rec, out := newOptions(t, "demo", fixedSelection("ESLint"))
	opts.Verbose = true
	rec.On("npm i typescript -D", func(string) error { return errors.New("E404") })

	_, err := scaffold.Run(context.Background(), opts)
	require.NoError(t, err)
	assert.Contains(t, rec.Lines(), "npm i husky lint-staged -D")
	assert.Contains(t, out.String(), "E404")
}

func TestRun_CancelledMidRunStops(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	opts, rec, out := newOptions(t, "demo", fixedSelection("ESLint"))
	rec.On("npm init -y", func(dir string) error {
		cancel()
		return fakeNpmInit(dir)
	})

	res, err := scaffold.Run(ctx, opts)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, res)
	assert.Equal(t, []string{"npm init -y"}, rec.Lines())
	assert.NotContains(t, out.String(), "Successfully created project")

	m, err := manifest.Read(filepath.Join(opts.BaseDir, "demo", manifest.FileName))
	require.NoError(t, err)
	assert.NotContains(t, m.Scripts, "dev")
}

func TestRun_CancelledBeforeStartWritesNothing(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	opts, rec, _ := newOptions(t, "demo", fixedSelection())

	_, err := scaffold.Run(ctx, opts)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, rec.Lines())
	assert.NoDirExists(t, filepath.Join(opts.BaseDir, "demo"))
}
