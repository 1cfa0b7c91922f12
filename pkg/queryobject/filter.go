package queryobject

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

// Filter is a single-parameter predicate on one node of the tree:
// Column Operator ?, where the value is taken from the parameter named Param.
type Filter struct {
	Column   string `json:"column"`
	Operator string `json:"operator,omitempty"`
	Param    string `json:"param"`
}

var operators = map[string]string{
	"=":     "%s = ?",
	"!=":    "%s != ?",
	"<>":    "%s <> ?",
	"<":     "%s < ?",
	"<=":    "%s <= ?",
	">":     "%s > ?",
	">=":    "%s >= ?",
	"~*":    "%s ~* ?",
	"LIKE":  "%s LIKE ?",
	"ILIKE": "%s ILIKE ?",
	"ANY":   "%s = ANY(?)",
}

var filterExpr = regexp.MustCompile(`^\s*([A-Za-z_][A-Za-z0-9_.]*)\s*(=|!=|<>|<=|>=|<|>|~\*|(?i:ilike|like))\s*:([A-Za-z_][A-Za-z0-9_]*)\s*$`)

var paramToken = regexp.MustCompile(`:[A-Za-z_][A-Za-z0-9_]*`)

// ParseFilter reads the "column op :param" form, e.g. "status = :status".
func ParseFilter(expr string) (*Filter, error) {
	if n := len(paramToken.FindAllString(expr, -1)); n != 1 {
		return nil, errors.Wrapf(ErrSchema, "filter %q: expected one :param token, found %d", expr, n)
	}

	match := filterExpr.FindStringSubmatch(expr)
	if match == nil {
		return nil, errors.Wrapf(ErrSchema, "filter %q: expected \"column op :param\"", expr)
	}

	return &Filter{
		Column:   match[1],
		Operator: strings.ToUpper(match[2]),
		Param:    match[3],
	}, nil
}

// UnmarshalJSON accepts both the object form and the "column op :param" string.
func (f *Filter) UnmarshalJSON(data []byte) error {
	var expr string
	if err := json.Unmarshal(data, &expr); err == nil {
		parsed, err := ParseFilter(expr)
		if err != nil {
			return err
		}
		*f = *parsed
		return nil
	}

	type plain Filter
	return json.Unmarshal(data, (*plain)(f))
}

func (f Filter) operator() string {
	if f.Operator == "" {
		return "="
	}

	return strings.ToUpper(f.Operator)
}

// render writes the predicate with the column qualified by alias.
func (f Filter) render(alias string) (string, error) {
	if f.Column == "" || f.Param == "" {
		return "", errors.Wrap(ErrSchema, "filter needs column and param")
	}

	template, ok := operators[f.operator()]
	if !ok {
		return "", errors.Wrapf(ErrSchema, "filter on %q: unsupported operator %q", f.Column, f.Operator)
	}

	column := escapeQuestionMarks(f.Column)
	if !strings.ContainsAny(column, ".(") {
		column = alias + "." + column
	}

	return fmt.Sprintf(template, column), nil
}
