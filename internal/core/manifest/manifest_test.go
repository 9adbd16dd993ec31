package manifest_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nightconcept/tscli/internal/core/manifest"
)

const npmInitOutput = `{
  "name": "demo",
  "version": "1.0.0",
  "description": "",
  "main": "index.js",
  "scripts": {
    "test": "echo \"Error: no test specified\" && exit 1"
  },
  "keywords": [],
  "author": "",
  "license": "ISC"
}
`

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := manifest.Path(dir)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644), "Failed to write package.json")
	return path
}

func TestRead_Valid(t *testing.T) {
	path := writeManifest(t, npmInitOutput)

	m, err := manifest.Read(path)
	require.NoError(t, err)

	assert.Equal(t, "demo", m.Name)
	assert.Equal(t, "", m.Description)
	assert.Equal(t, `echo "Error: no test specified" && exit 1`, m.Scripts["test"])
	assert.Nil(t, m.Husky)
	assert.Nil(t, m.LintStaged)

	version, ok := m.Extra("version")
	require.True(t, ok)
	assert.JSONEq(t, `"1.0.0"`, string(version))
}

func TestRead_NotFound(t *testing.T) {
	_, err := manifest.Read(filepath.Join(t.TempDir(), manifest.FileName))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
	assert.False(t, errors.Is(err, manifest.ErrMalformed))
}

func TestRead_InvalidJSON(t *testing.T) {
	path := writeManifest(t, `{"name": "demo",`)

	_, err := manifest.Read(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, manifest.ErrMalformed)

	var malformed *manifest.MalformedError
	require.True(t, errors.As(err, &malformed))
	assert.Equal(t, path, malformed.Path)
}

func TestRead_SchemaViolation(t *testing.T) {
	path := writeManifest(t, `{"name": "demo", "scripts": {"build": 42}}`)

	_, err := manifest.Read(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, manifest.ErrMalformed)

	var malformed *manifest.MalformedError
	require.True(t, errors.As(err, &malformed))
	require.NotEmpty(t, malformed.Issues)
	assert.Equal(t, "/scripts/build", malformed.Issues[0].Location)
	assert.Contains(t, err.Error(), "/scripts/build")
}

func TestRead_NotAnObject(t *testing.T) {
	path := writeManifest(t, `["demo"]`)

	_, err := manifest.Read(path)
	assert.ErrorIs(t, err, manifest.ErrMalformed)
}

func TestRead_LintStagedSingleString(t *testing.T) {
	path := writeManifest(t, `{"name": "demo", "lint-staged": {"*.md": "prettier --write"}}`)

	m, err := manifest.Read(path)
	require.NoError(t, err)
	assert.Equal(t, manifest.Commands{"prettier --write"}, m.LintStaged["*.md"])
}

func TestWrite_PreservesUnmanagedKeys(t *testing.T) {
	path := writeManifest(t, npmInitOutput)

	m, err := manifest.Read(path)
	require.NoError(t, err)
	m.SetScript(manifest.Script{Name: "build", Command: "rm -rf lib && tsc --build", Comment: "Build"})
	require.NoError(t, manifest.Write(path, m))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)

	assert.Contains(t, content, `"license": "ISC"`)
	assert.Contains(t, content, `"main": "index.js"`)
	assert.Contains(t, content, `"build": "rm -rf lib && tsc --build"`, "Shell operators should not be HTML-escaped")
	assert.Contains(t, content, "\n  \"scripts\": {\n    \"build\"", "Output should use two-space indentation")
	assert.Equal(t, byte('\n'), data[len(data)-1])

	again, err := manifest.Read(path)
	require.NoError(t, err)
	assert.Equal(t, "Build", again.Scripts["build:comment"])
	assert.Equal(t, m.Scripts, again.Scripts)
}

func TestWrite_FullReplacement(t *testing.T) {
	path := writeManifest(t, npmInitOutput)

	m := manifest.New()
	m.Name = "other"
	require.NoError(t, manifest.Write(path, m))

	again, err := manifest.Read(path)
	require.NoError(t, err)
	assert.Equal(t, "other", again.Name)
	_, ok := again.Extra("license")
	assert.False(t, ok)
	assert.NotNil(t, again.Scripts)
}

func TestSetScript_Overwrites(t *testing.T) {
	t.Parallel()
	m := manifest.New()
	m.SetScript(manifest.Script{Name: "dev", Command: "a", Comment: "first"})
	m.SetScript(manifest.Script{Name: "dev", Command: "b", Comment: "second"})

	assert.Equal(t, map[string]string{"dev": "b", "dev:comment": "second"}, m.Scripts)
}

func TestMergeHooks_KeepsExisting(t *testing.T) {
	t.Parallel()
	m := manifest.New()
	m.MergeHooks(map[string]string{"pre-push": "npm test", "pre-commit": "old"})
	m.MergeHooks(map[string]string{"pre-commit": "lint-staged", "commit-msg": "commitlint -E HUSKY_GIT_PARAMS"})

	assert.Equal(t, map[string]string{
		"pre-push":   "npm test",
		"pre-commit": "lint-staged",
		"commit-msg": "commitlint -E HUSKY_GIT_PARAMS",
	}, m.Husky.Hooks)
}

func TestMergeHooks_PreservesOtherHuskyKeys(t *testing.T) {
	path := writeManifest(t, `{"name": "demo", "husky": {"skipCI": true, "hooks": {"pre-push": "npm test"}}}`)

	require.NoError(t, manifest.Update(path, func(m *manifest.Manifest) error {
		m.MergeHooks(map[string]string{"pre-commit": "lint-staged"})
		return nil
	}))

	m, err := manifest.Read(path)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"pre-commit": "lint-staged", "pre-push": "npm test"}, m.Husky.Hooks)
	skip, ok := m.Husky.Extra("skipCI")
	require.True(t, ok, "skipCI should survive a rewrite")
	assert.JSONEq(t, `true`, string(skip))
}

func TestSetLintStaged_EmptyListIsWritten(t *testing.T) {
	path := writeManifest(t, `{"name": "demo", "lint-staged": {"*.md": ["prettier --write"]}}`)

	require.NoError(t, manifest.Update(path, func(m *manifest.Manifest) error {
		m.SetLintStaged("*.ts", nil)
		return nil
	}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"*.ts": []`)
	assert.Contains(t, string(data), `"*.md": [`)
}

func TestUpdate_PropagatesCallbackError(t *testing.T) {
	path := writeManifest(t, npmInitOutput)
	boom := errors.New("boom")

	err := manifest.Update(path, func(m *manifest.Manifest) error {
		m.Name = "changed"
		return boom
	})
	require.ErrorIs(t, err, boom)

	m, err := manifest.Read(path)
	require.NoError(t, err)
	assert.Equal(t, "demo", m.Name, "A failed update must not write")
}

func TestEncode(t *testing.T) {
	t.Parallel()
	out, err := manifest.Encode(map[string]any{"b": []string{"x"}, "a": "<&>"})
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"a\": \"<&>\",\n  \"b\": [\n    \"x\"\n  ]\n}\n", string(out))
}
