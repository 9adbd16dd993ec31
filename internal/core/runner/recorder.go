package runner

import (
	"context"
	"sync"
)

// Call is one invocation seen by a Recorder.
type Call struct {
	Dir     string
	Command Command
}

// Recorder is a Runner that records calls instead of spawning processes.
// Handlers keyed by Command.String() can simulate a command's side effects
// or make it fail.
type Recorder struct {
	mu       sync.Mutex
	calls    []Call
	Handlers map[string]func(dir string) error
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{Handlers: make(map[string]func(dir string) error)}
}

// On registers fn to run whenever the command rendered as line is invoked.
func (r *Recorder) On(line string, fn func(dir string) error) *Recorder {
	r.Handlers[line] = fn
	return r
}

// Run implements Runner.
func (r *Recorder) Run(_ context.Context, dir string, cmd Command) error {
	r.mu.Lock()
	r.calls = append(r.calls, Call{Dir: dir, Command: cmd})
	fn := r.Handlers[cmd.String()]
	r.mu.Unlock()

	if fn == nil {
		return nil
	}
	if err := fn(dir); err != nil {
		return &CommandError{Command: cmd, Dir: dir, Err: err}
	}
	return nil
}

// Calls returns a copy of the recorded calls in invocation order.
func (r *Recorder) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Call, len(r.calls))
	copy(out, r.calls)
	return out
}

// Lines returns the recorded commands rendered as strings.
func (r *Recorder) Lines() []string {
	calls := r.Calls()
	lines := make([]string, 0, len(calls))
	for _, c := range calls {
		lines = append(lines, c.Command.String())
	}
	return lines
}
