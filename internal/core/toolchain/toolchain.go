// Package toolchain lays down the TypeScript base every project gets,
// whatever features were selected.
package toolchain

import (
	"context"
	"fmt"
	"os"

	"github.com/nightconcept/tscli/internal/core/manifest"
	"github.com/nightconcept/tscli/internal/core/workspace"
)

const (
	SourceDir  = "src"
	EntryPoint = "src/index.ts"
)

// DevScript is the live-reload development script.
var DevScript = manifest.Script{
	Name:    "dev",
	Command: "ts-node-dev --respawn --transpile-only " + EntryPoint,
	Comment: "Start the development environment",
}

// Install runs the fixed toolchain sequence for project name in ws.Root.
func Install(ctx context.Context, ws *workspace.Workspace, name string) error {
	if err := InitProjectDir(ctx, ws); err != nil {
		return err
	}
	if err := PatchPackageInfo(ws, name); err != nil {
		return err
	}
	if err := InstallCompiler(ctx, ws); err != nil {
		return err
	}
	if err := InstallTypes(ctx, ws); err != nil {
		return err
	}
	if err := CreateEntryPoint(ws); err != nil {
		return err
	}
	return InstallDevRunner(ctx, ws)
}

// InitProjectDir creates the root and seeds package.json with "npm init -y".
func InitProjectDir(ctx context.Context, ws *workspace.Workspace) error {
	if err := os.Mkdir(ws.Root, 0755); err != nil {
		return fmt.Errorf("creating project directory: %w", err)
	}
	return ws.Exec(ctx, ws.Settings.Init())
}

// PatchPackageInfo sets both name and description to the project name.
func PatchPackageInfo(ws *workspace.Workspace, name string) error {
	return ws.UpdateManifest(func(m *manifest.Manifest) error {
		m.Name = name
		m.Description = name
		return nil
	})
}

// InstallCompiler installs typescript, lets tsc generate its config and then
// overwrites it with DefaultTSConfig.
func InstallCompiler(ctx context.Context, ws *workspace.Workspace) error {
	err := ws.ExecAll(ctx,
		ws.Settings.InstallDev("typescript"),
		ws.Settings.Exec("tsc", "--init"),
	)
	if err != nil {
		return err
	}
	return ws.WriteJSON(TSConfigFile, DefaultTSConfig())
}

// InstallTypes installs the Node.js type declarations.
func InstallTypes(ctx context.Context, ws *workspace.Workspace) error {
	return ws.Exec(ctx, ws.Settings.InstallDev("@types/node"))
}

// CreateEntryPoint creates src/ and an empty src/index.ts.
func CreateEntryPoint(ws *workspace.Workspace) error {
	if err := os.MkdirAll(ws.Path(SourceDir), 0755); err != nil {
		return fmt.Errorf("creating %s: %w", SourceDir, err)
	}
	f, err := os.OpenFile(ws.Path(EntryPoint), os.O_WRONLY|os.O_CREATE, 0644)
	if err != nil {
		return fmt.Errorf("creating %s: %w", EntryPoint, err)
	}
	return f.Close()
}

// InstallDevRunner installs ts-node-dev and registers the dev script.
func InstallDevRunner(ctx context.Context, ws *workspace.Workspace) error {
	if err := ws.Exec(ctx, ws.Settings.InstallDev("ts-node-dev")); err != nil {
		return err
	}
	return ws.UpdateManifest(func(m *manifest.Manifest) error {
		m.SetScript(DevScript)
		return nil
	})
}
