// Package runner executes external commands (package manager, compiler)
// for the scaffolding steps.
package runner

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// Command is a single external program invocation.
type Command struct {
	Name string
	Args []string
}

// NewCommand builds a Command from a program name and its arguments.
func NewCommand(name string, args ...string) Command {
	return Command{Name: name, Args: args}
}

// String renders the command the way a user would type it.
func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Name
	}
	return c.Name + " " + strings.Join(c.Args, " ")
}

// Runner runs a command in dir and blocks until it exits.
// Only pass/fail is reported; output goes straight to the terminal.
type Runner interface {
	Run(ctx context.Context, dir string, cmd Command) error
}

// Exec is the Runner backed by os/exec.
type Exec struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NewExec returns an Exec wired to the process's standard streams.
func NewExec() *Exec {
	return &Exec{Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr}
}

// Run implements Runner.
func (e *Exec) Run(ctx context.Context, dir string, cmd Command) error {
	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Dir = dir
	c.Stdin = e.Stdin
	c.Stdout = e.Stdout
	c.Stderr = e.Stderr
	if err := c.Run(); err != nil {
		return &CommandError{Command: cmd, Dir: dir, Err: err}
	}
	return nil
}

// CommandError reports a command that could not start or exited non-zero.
type CommandError struct {
	Command Command
	Dir     string
	Err     error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("command '%s' in %s failed: %v", e.Command, e.Dir, e.Err)
}

func (e *CommandError) Unwrap() error { return e.Err }
