// Package queryobject compiles a declarative tree of joined tables into one
// parameterized SELECT and reshapes the flat result rows into nested objects.
//
// A tree looks like
//
//	queryobject.TableSpec{
//		Table:  "users",
//		As:     "u",
//		Select: "id,email",
//		Includes: []queryobject.TableSpec{
//			{Table: "photos", As: "p", Select: "filename", LocalKey: "user_id", TargetKey: "id"},
//		},
//	}
//
// and compiles to
//
//	SELECT u.id,u.email,p.filename AS "p.filename" FROM users as u
//	LEFT JOIN (SELECT p.filename FROM photos as p) AS p ON u.id=p.user_id
//
// Filter values are always passed as parameters. Table, column and alias names
// are written into the SQL text, so trees must come from application code.
package queryobject

import (
	"strings"

	"github.com/pkg/errors"
)

// ErrSchema is returned for trees that cannot be compiled. It always points
// at a programming error in the code that built the tree.
var ErrSchema = errors.New("invalid query schema")

type Virtual struct {
	Field   string `json:"field"`
	Execute string `json:"execute"`
}

type TableSpec struct {
	Table     string      `json:"table"`
	As        string      `json:"as,omitempty"`
	Select    string      `json:"select"`
	Virtual   *Virtual    `json:"virtual,omitempty"`
	Where     *Filter     `json:"where,omitempty"`
	LocalKey  string      `json:"localKey,omitempty"`
	TargetKey string      `json:"targetKey,omitempty"`
	Includes  []TableSpec `json:"includes,omitempty"`
}

// Alias is the name the table is referenced by in the compiled query.
func (t TableSpec) Alias() string {
	if t.As != "" {
		return t.As
	}

	return t.Table
}

func (t TableSpec) from() string {
	if t.As == "" {
		return t.Table
	}

	return t.Table + " as " + t.As
}

// columns splits Select. The root is projected as written. An include leaves
// its virtual field out, it is computed in the join subquery.
func (t TableSpec) columns(root bool) []string {
	var cols []string
	for _, col := range strings.Split(t.Select, ",") {
		col = strings.TrimSpace(col)
		if col == "" {
			continue
		}
		if !root && t.Virtual != nil && col == t.Virtual.Field {
			continue
		}
		cols = append(cols, col)
	}

	return cols
}

// outputs is what an include exposes to the outer query.
func (t TableSpec) outputs() map[string]bool {
	out := map[string]bool{}
	for _, col := range t.columns(false) {
		out[col] = true
	}
	if t.Virtual != nil {
		out[t.Virtual.Field] = true
	}

	return out
}

// check reports structural problems the compiler cannot work around,
// regardless of whether identifiers are trusted.
func (t TableSpec) check(root bool) error {
	alias := t.Alias()

	if t.Table == "" {
		return errors.Wrapf(ErrSchema, "node %q: table is required", alias)
	}

	if len(t.columns(root)) == 0 && (root || t.Virtual == nil) {
		return errors.Wrapf(ErrSchema, "table %q: select is empty", alias)
	}

	// the root never evaluates its virtual column
	if !root && t.Virtual != nil && (t.Virtual.Field == "" || t.Virtual.Execute == "") {
		return errors.Wrapf(ErrSchema, "table %q: virtual column needs field and execute", alias)
	}

	if !root && (t.LocalKey == "" || t.TargetKey == "") {
		return errors.Wrapf(ErrSchema, "table %q: localKey and targetKey are required on includes", alias)
	}

	if t.Where != nil {
		if _, err := t.Where.render(alias); err != nil {
			return errors.Wrapf(err, "table %q", alias)
		}

		// an include is joined as a subquery, only its projected columns are visible
		if !root && !strings.ContainsAny(t.Where.Column, ".(") && !t.outputs()[t.Where.Column] {
			return errors.Wrapf(ErrSchema, "table %q: filter column %q is not selected", alias, t.Where.Column)
		}
	}

	for _, include := range t.Includes {
		if err := include.check(false); err != nil {
			return err
		}
	}

	return nil
}
