// Package feature holds the optional developer-experience features a
// project can opt into and the registry that installs them.
//
// Adding a feature takes three edits in this package: a Feature constant,
// an entry in Vocabulary, and an installer in DefaultRegistry.
package feature

import (
	"errors"
	"fmt"
)

// Feature identifies an optional feature. Values are matched exactly.
type Feature string

const (
	ESLint   Feature = "ESLint"
	Prettier Feature = "Prettier"
	CZ       Feature = "CZ"
)

// Vocabulary is the closed, ordered set of features offered to the user.
var Vocabulary = []Feature{ESLint, Prettier, CZ}

var descriptions = map[Feature]string{
	ESLint:   "Lint TypeScript sources with ESLint",
	Prettier: "Format TypeScript sources with Prettier",
	CZ:       "Conventional commits with commitizen and commitlint",
}

// Description is the one-line summary shown by the selection prompt.
func (f Feature) Description() string {
	return descriptions[f]
}

// Valid reports whether f belongs to Vocabulary.
func (f Feature) Valid() bool {
	for _, v := range Vocabulary {
		if v == f {
			return true
		}
	}
	return false
}

// ErrUnknownFeature is matched by every *UnknownFeatureError.
var ErrUnknownFeature = errors.New("unknown feature")

// UnknownFeatureError names an identifier outside the vocabulary or
// without a registered installer.
type UnknownFeatureError struct {
	ID string
}

func (e *UnknownFeatureError) Error() string {
	return fmt.Sprintf("%s %q (available: %v)", ErrUnknownFeature, e.ID, Vocabulary)
}

func (e *UnknownFeatureError) Is(target error) bool { return target == ErrUnknownFeature }

// Parse maps an identifier onto a Feature.
func Parse(id string) (Feature, error) {
	f := Feature(id)
	if !f.Valid() {
		return "", &UnknownFeatureError{ID: id}
	}
	return f, nil
}

// Selection is an ordered set of features.
type Selection []Feature

// ParseSelection parses ids in order. Repeated ids keep their first position.
func ParseSelection(ids []string) (Selection, error) {
	sel := make(Selection, 0, len(ids))
	for _, id := range ids {
		f, err := Parse(id)
		if err != nil {
			return nil, err
		}
		if !sel.Has(f) {
			sel = append(sel, f)
		}
	}
	return sel, nil
}

// Has reports whether f was selected.
func (s Selection) Has(f Feature) bool {
	for _, x := range s {
		if x == f {
			return true
		}
	}
	return false
}

// Strings returns the identifiers in selection order.
func (s Selection) Strings() []string {
	out := make([]string, len(s))
	for i, f := range s {
		out[i] = string(f)
	}
	return out
}
