package queryobject

import (
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

var (
	identifier      = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
	qualifiedColumn = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)
)

// Validate checks that every name in the tree is a plain SQL identifier and
// that aliases are unique. Virtual expressions are not checked.
func Validate(schema TableSpec) error {
	return validate(schema, true, map[string]bool{})
}

func validate(t TableSpec, root bool, seen map[string]bool) error {
	alias := t.Alias()

	names := []string{t.Table, alias}
	if t.LocalKey != "" {
		names = append(names, t.LocalKey)
	}
	if t.TargetKey != "" {
		names = append(names, t.TargetKey)
	}
	if !root && t.Virtual != nil {
		names = append(names, t.Virtual.Field)
	}
	names = append(names, t.columns(root)...)

	for _, name := range names {
		if !identifier.MatchString(name) {
			return errors.Wrapf(ErrSchema, "table %q: %q is not a valid identifier", alias, name)
		}
	}

	if t.Where != nil && !qualifiedColumn.MatchString(t.Where.Column) {
		return errors.Wrapf(ErrSchema, "table %q: filter column %q is not a valid identifier", alias, t.Where.Column)
	}

	key := strings.ToLower(alias)
	if seen[key] {
		return errors.Wrapf(ErrSchema, "alias %q is used more than once", alias)
	}
	seen[key] = true

	for _, include := range t.Includes {
		if err := validate(include, false, seen); err != nil {
			return err
		}
	}

	return nil
}
