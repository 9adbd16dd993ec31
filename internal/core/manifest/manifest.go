// Package manifest reads, validates and rewrites the package.json of the
// project being scaffolded.
package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// FileName is the manifest file name inside a project root.
const FileName = "package.json"

// CommentSuffix marks the human-readable companion of a script.
const CommentSuffix = ":comment"

// Manifest is package.json. Keys tscli does not manage are kept verbatim.
type Manifest struct {
	Name        string
	Description string
	Scripts     map[string]string
	Husky       *Husky
	LintStaged  map[string]Commands

	extra map[string]json.RawMessage
}

// Husky is the "husky" block. Keys other than "hooks" are kept verbatim.
type Husky struct {
	Hooks map[string]string

	extra map[string]json.RawMessage
}

// Extra returns the raw value of an unmanaged husky key.
func (h *Husky) Extra(key string) (json.RawMessage, bool) {
	v, ok := h.extra[key]
	return v, ok
}

func (h *Husky) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*h = Husky{extra: make(map[string]json.RawMessage, len(raw))}
	for key, value := range raw {
		if key != "hooks" {
			h.extra[key] = value
			continue
		}
		if err := json.Unmarshal(value, &h.Hooks); err != nil {
			return fmt.Errorf("field %q: %w", key, err)
		}
	}
	return nil
}

func (h *Husky) MarshalJSON() ([]byte, error) {
	doc := make(map[string]any, len(h.extra)+1)
	for key, value := range h.extra {
		doc[key] = value
	}
	if len(h.Hooks) > 0 {
		doc["hooks"] = h.Hooks
	}

	out, err := Encode(doc)
	if err != nil {
		return nil, err
	}
	return bytes.TrimRight(out, "\n"), nil
}

// Commands is a lint-staged entry. A single string is accepted on read.
type Commands []string

func (c *Commands) UnmarshalJSON(data []byte) error {
	var one string
	if err := json.Unmarshal(data, &one); err == nil {
		*c = Commands{one}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*c = many
	return nil
}

// Script is a script entry together with its comment.
type Script struct {
	Name    string
	Command string
	Comment string
}

// New returns an empty manifest.
func New() *Manifest {
	return &Manifest{
		Scripts: make(map[string]string),
		extra:   make(map[string]json.RawMessage),
	}
}

// Path returns the manifest path inside root.
func Path(root string) string {
	return filepath.Join(root, FileName)
}

// SetScript writes the script and its "<name>:comment" companion.
// An existing entry under the same name is replaced.
func (m *Manifest) SetScript(s Script) {
	if m.Scripts == nil {
		m.Scripts = make(map[string]string)
	}
	m.Scripts[s.Name] = s.Command
	m.Scripts[s.Name+CommentSuffix] = s.Comment
}

// MergeHooks adds hooks to husky.hooks. Colliding names are overwritten,
// every other hook is kept.
func (m *Manifest) MergeHooks(hooks map[string]string) {
	if m.Husky == nil {
		m.Husky = &Husky{}
	}
	if m.Husky.Hooks == nil {
		m.Husky.Hooks = make(map[string]string, len(hooks))
	}
	for name, cmd := range hooks {
		m.Husky.Hooks[name] = cmd
	}
}

// SetLintStaged sets the command list for one glob and keeps other globs.
func (m *Manifest) SetLintStaged(glob string, cmds []string) {
	if m.LintStaged == nil {
		m.LintStaged = make(map[string]Commands)
	}
	list := make(Commands, len(cmds))
	copy(list, cmds)
	m.LintStaged[glob] = list
}

// Extra returns the raw value of an unmanaged top-level key.
func (m *Manifest) Extra(key string) (json.RawMessage, bool) {
	v, ok := m.extra[key]
	return v, ok
}

func (m *Manifest) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*m = *New()
	for key, value := range raw {
		var err error
		switch key {
		case "name":
			err = json.Unmarshal(value, &m.Name)
		case "description":
			err = json.Unmarshal(value, &m.Description)
		case "scripts":
			err = json.Unmarshal(value, &m.Scripts)
		case "husky":
			m.Husky = &Husky{}
			err = json.Unmarshal(value, m.Husky)
		case "lint-staged":
			err = json.Unmarshal(value, &m.LintStaged)
		default:
			m.extra[key] = value
		}
		if err != nil {
			return fmt.Errorf("field %q: %w", key, err)
		}
	}
	if m.Scripts == nil {
		m.Scripts = make(map[string]string)
	}
	return nil
}

func (m *Manifest) MarshalJSON() ([]byte, error) {
	doc := make(map[string]any, len(m.extra)+5)
	for key, value := range m.extra {
		doc[key] = value
	}
	doc["name"] = m.Name
	doc["description"] = m.Description
	scripts := m.Scripts
	if scripts == nil {
		scripts = map[string]string{}
	}
	doc["scripts"] = scripts
	if m.Husky != nil {
		doc["husky"] = m.Husky
	}
	if m.LintStaged != nil {
		staged := make(map[string][]string, len(m.LintStaged))
		for glob, cmds := range m.LintStaged {
			if cmds == nil {
				cmds = Commands{}
			}
			staged[glob] = cmds
		}
		doc["lint-staged"] = staged
	}

	out, err := Encode(doc)
	if err != nil {
		return nil, err
	}
	return bytes.TrimRight(out, "\n"), nil
}

// Encode renders v as two-space indented JSON with a trailing newline.
// HTML characters are left alone so shell commands like "a && b" stay readable.
func Encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Read parses and validates the manifest at path. Content that is not JSON,
// or JSON that does not match the manifest schema, yields a *MalformedError.
func Read(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	issues, err := validate(data)
	if err != nil {
		return nil, &MalformedError{Path: path, Err: err}
	}
	if len(issues) > 0 {
		return nil, &MalformedError{Path: path, Issues: issues}
	}

	m := New()
	if err := json.Unmarshal(data, m); err != nil {
		return nil, &MalformedError{Path: path, Err: err}
	}
	return m, nil
}

// Write replaces the file at path with the rendered manifest.
func Write(path string, m *Manifest) error {
	data, err := Encode(m)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return os.WriteFile(path, data, 0644)
}

// Update runs one read-modify-write cycle on the manifest at path.
func Update(path string, fn func(*Manifest) error) error {
	m, err := Read(path)
	if err != nil {
		return err
	}
	if err := fn(m); err != nil {
		return err
	}
	return Write(path, m)
}
