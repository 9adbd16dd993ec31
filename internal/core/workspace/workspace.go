// Package workspace carries the project root and the collaborators every
// scaffolding step needs. Steps take a *Workspace instead of relying on the
// process working directory.
package workspace

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fatih/color"

	"github.com/nightconcept/tscli/internal/core/config"
	"github.com/nightconcept/tscli/internal/core/manifest"
	"github.com/nightconcept/tscli/internal/core/runner"
)

// Workspace is the root of the project being created.
type Workspace struct {
	Root     string
	Runner   runner.Runner
	Settings *config.Settings
	Mode     runner.FailureMode
	Out      io.Writer
	ErrOut   io.Writer
	Verbose  bool
}

// New returns a Workspace rooted at root. Nil writers fall back to the
// process's stdout and stderr.
func New(root string, r runner.Runner, s *config.Settings, out, errOut io.Writer) *Workspace {
	if s == nil {
		s = config.Default()
	}
	if out == nil {
		out = os.Stdout
	}
	if errOut == nil {
		errOut = os.Stderr
	}
	return &Workspace{
		Root:     root,
		Runner:   r,
		Settings: s,
		Mode:     s.Mode(),
		Out:      out,
		ErrOut:   errOut,
	}
}

// Path joins rel onto the root.
func (w *Workspace) Path(rel ...string) string {
	return filepath.Join(append([]string{w.Root}, rel...)...)
}

// ManifestPath is the package.json of the project.
func (w *Workspace) ManifestPath() string {
	return manifest.Path(w.Root)
}

// UpdateManifest runs one read-modify-write cycle on package.json.
// Manifest errors are always fatal.
func (w *Workspace) UpdateManifest(fn func(*manifest.Manifest) error) error {
	return manifest.Update(w.ManifestPath(), fn)
}

// Exec runs cmd in the root. Its failure is filtered through Mode, except
// when ctx is done: cancellation always stops the run.
func (w *Workspace) Exec(ctx context.Context, cmd runner.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	w.Logf("> %s\n", cmd)
	err := w.Runner.Run(ctx, w.Root, cmd)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return w.Tolerate(cmd.String(), err)
}

// ExecAll runs cmds in order and stops at the first failure Mode propagates.
func (w *Workspace) ExecAll(ctx context.Context, cmds ...runner.Command) error {
	for _, cmd := range cmds {
		if err := w.Exec(ctx, cmd); err != nil {
			return err
		}
	}
	return nil
}

// Tolerate applies the failure policy to the outcome of an external step.
// Cancellation is never tolerated.
func (w *Workspace) Tolerate(step string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	if kept := w.Mode.Apply(err); kept != nil {
		return kept
	}
	if w.Verbose {
		_, _ = fmt.Fprintf(w.ErrOut, "%s %s: %v (continuing)\n", color.YellowString("Warning:"), step, err)
	}
	return nil
}

// Logf prints progress in verbose mode.
func (w *Workspace) Logf(format string, args ...any) {
	if w.Verbose {
		_, _ = fmt.Fprintf(w.Out, format, args...)
	}
}

// WriteJSON replaces rel with the indented JSON rendering of v.
// Failures are fatal.
func (w *Workspace) WriteJSON(rel string, v any) error {
	data, err := manifest.Encode(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", rel, err)
	}
	if err := os.WriteFile(w.Path(rel), data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", rel, err)
	}
	return nil
}

// WriteConfig writes a tool configuration file. It never fails: when the
// file cannot be written the content is printed so the user can add it by
// hand. It reports whether the file was written.
func (w *Workspace) WriteConfig(rel, content string) bool {
	if err := os.WriteFile(w.Path(rel), []byte(content), 0644); err != nil {
		red := color.New(color.FgRed).SprintFunc()
		_, _ = fmt.Fprintln(w.ErrOut, red(fmt.Sprintf("Failed to write %s file content: %v", rel, err)))
		_, _ = fmt.Fprintln(w.ErrOut, red(fmt.Sprintf("Please add the following content in %s", rel)))
		_, _ = fmt.Fprintln(w.ErrOut, red(content))
		return false
	}
	w.Logf("Wrote %s\n", rel)
	return true
}
