package queryobject

import (
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
)

// Result is a compiled query. The Nth placeholder in SQL takes Params[N].
type Result struct {
	SQL    string
	Params []any
}

type Compiler struct {
	placeholder squirrel.PlaceholderFormat
	trusted     bool
}

type Option func(*Compiler)

// WithPlaceholder sets the placeholder style, squirrel.Question by default.
// Use squirrel.Dollar for Postgres.
func WithPlaceholder(format squirrel.PlaceholderFormat) Option {
	return func(c *Compiler) {
		c.placeholder = format
	}
}

// WithTrustedIdentifiers skips identifier validation.
func WithTrustedIdentifiers() Option {
	return func(c *Compiler) {
		c.trusted = true
	}
}

func NewCompiler(opts ...Option) *Compiler {
	c := &Compiler{placeholder: squirrel.Question}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Compile is a shortcut for NewCompiler(opts...).Compile.
func Compile(schema TableSpec, whereParameters map[string]any, opts ...Option) (Result, error) {
	return NewCompiler(opts...).Compile(schema, whereParameters)
}

// Compile builds one SELECT for the whole tree. Every include becomes a
// LEFT JOIN subquery anchored on its parent, every filter becomes one AND-ed
// predicate, and the parameters follow the order of the placeholders.
func (c *Compiler) Compile(schema TableSpec, whereParameters map[string]any) (Result, error) {
	query, params, err := c.Build(schema, whereParameters)
	if err != nil {
		return Result{}, err
	}

	if c.placeholder == squirrel.Question {
		// squirrel keeps ?? escapes as they are in this format
		query = strings.ReplaceAll(query, "??", "?")
	} else if query, err = c.placeholder.ReplacePlaceholders(query); err != nil {
		return Result{}, errors.Wrap(err, "replace placeholders")
	}

	return Result{SQL: query, Params: params}, nil
}

// Build returns the tree the way squirrel's Sqlizer does: ? for every
// parameter and ?? for a literal question mark in a virtual expression.
// The result can be embedded in a larger statement that replaces the
// placeholders once.
func (c *Compiler) Build(schema TableSpec, whereParameters map[string]any) (string, []any, error) {
	if err := schema.check(true); err != nil {
		return "", nil, err
	}

	if !c.trusted {
		if err := Validate(schema); err != nil {
			return "", nil, err
		}
	}

	var (
		alias   = schema.Alias()
		selects = make([]string, 0, 8)
	)

	for _, col := range schema.columns(true) {
		selects = append(selects, alias+"."+col)
	}
	selects = append(selects, includeColumns(schema.Includes, "")...)

	query := "SELECT " + strings.Join(selects, ",") + " FROM " + schema.from()
	for _, join := range includeJoins(schema.Includes, alias) {
		query += " " + join
	}

	predicates, names := collectFilters(schema)
	if len(predicates) > 0 {
		query += " WHERE " + strings.Join(predicates, " AND ")
	}

	params := make([]any, 0, len(names))
	for _, name := range names {
		params = append(params, whereParameters[name])
	}

	return query, params, nil
}

func escapeQuestionMarks(expr string) string {
	return strings.ReplaceAll(expr, "?", "??")
}

// includeColumns projects include columns under their dot path, which leaves
// out the root and chains every alias below it.
func includeColumns(includes []TableSpec, path string) []string {
	var out []string
	for _, include := range includes {
		alias := include.Alias()
		prefix := alias
		if path != "" {
			prefix = path + "." + alias
		}

		for _, col := range include.columns(false) {
			out = append(out, fmt.Sprintf(`%s.%s AS "%s.%s"`, alias, col, prefix, col))
		}
		if include.Virtual != nil {
			field := include.Virtual.Field
			out = append(out, fmt.Sprintf(`%s.%s AS "%s.%s"`, alias, field, prefix, field))
		}

		out = append(out, includeColumns(include.Includes, prefix)...)
	}

	return out
}

// includeJoins emits the joins depth first. anchor is the alias of the node
// the includes hang from.
func includeJoins(includes []TableSpec, anchor string) []string {
	var out []string
	for _, include := range includes {
		alias := include.Alias()

		inner := make([]string, 0, 4)
		for _, col := range include.columns(false) {
			inner = append(inner, alias+"."+col)
		}
		if include.Virtual != nil {
			inner = append(inner, escapeQuestionMarks(include.Virtual.Execute)+" AS "+include.Virtual.Field)
		}

		out = append(out, fmt.Sprintf("LEFT JOIN (SELECT %s FROM %s) AS %s ON %s.%s=%s.%s",
			strings.Join(inner, ","),
			include.from(),
			alias,
			anchor, include.TargetKey,
			alias, include.LocalKey,
		))

		out = append(out, includeJoins(include.Includes, alias)...)
	}

	return out
}

// collectFilters walks root first, then includes depth first.
func collectFilters(schema TableSpec) (predicates, names []string) {
	if schema.Where != nil {
		// check already rendered every filter once
		predicate, _ := schema.Where.render(schema.Alias())
		predicates = append(predicates, predicate)
		names = append(names, schema.Where.Param)
	}

	for _, include := range schema.Includes {
		p, n := collectFilters(include)
		predicates = append(predicates, p...)
		names = append(names, n...)
	}

	return predicates, names
}
