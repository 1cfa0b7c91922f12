package postgres

import (
	"context"
	"strings"

	"ucode/ucode_go_task_service/pkg/helper"
	"ucode/ucode_go_task_service/pkg/queryobject"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
	"github.com/spf13/cast"
)

const totalCountColumn = "total_count"

// Querier is satisfied by the traced pool, pgxpool.Pool and pgx.Tx.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// QueryAsObject compiles the tree, runs it and returns one nested object per row.
func QueryAsObject(ctx context.Context, db Querier, schema queryobject.TableSpec, whereParameters map[string]any) ([]map[string]any, error) {
	res, err := queryobject.Compile(schema, whereParameters, queryobject.WithPlaceholder(squirrel.Dollar))
	if err != nil {
		return nil, err
	}

	rows, err := db.Query(ctx, res.SQL, res.Params...)
	if err != nil {
		return nil, errors.Wrap(err, "error while querying object")
	}

	flat, err := helper.RowsToMaps(rows)
	if err != nil {
		return nil, err
	}

	return queryobject.Nest(flat), nil
}

// ObjectQuery pages a compiled tree. The tree becomes a subquery aliased q, so
// Where and OrderBy refer to its output columns through outputColumn.
// Columns are extra top-level expressions computed over q.
type ObjectQuery struct {
	Schema          queryobject.TableSpec
	WhereParameters map[string]any
	Columns         []string
	Where           squirrel.Sqlizer
	OrderBy         []string
	Limit           int
	Offset          int
}

// outputColumn references a column of the wrapped tree, "p.name" -> q."p.name".
func outputColumn(path string) string {
	if strings.Contains(path, ".") {
		return `q."` + path + `"`
	}

	return "q." + path
}

func (o ObjectQuery) toSql() (string, []any, error) {
	inner, innerArgs, err := queryobject.NewCompiler().Build(o.Schema, o.WhereParameters)
	if err != nil {
		return "", nil, err
	}

	sb := squirrel.Select("COUNT(*) OVER() AS "+totalCountColumn, "q.*").
		Columns(o.Columns...).
		From("(" + inner + ") AS q").
		OrderBy(o.OrderBy...)

	if o.Where != nil {
		sb = sb.Where(o.Where)
	}
	if o.Limit > 0 {
		sb = sb.Limit(uint64(o.Limit))
	}
	if o.Offset > 0 {
		sb = sb.Offset(uint64(o.Offset))
	}

	outer, args, err := sb.ToSql()
	if err != nil {
		return "", nil, errors.Wrap(err, "error while building object query")
	}

	query, err := squirrel.Dollar.ReplacePlaceholders(outer)
	if err != nil {
		return "", nil, errors.Wrap(err, "error while replacing placeholders")
	}

	return query, append(innerArgs, args...), nil
}

// queryObjectList runs an ObjectQuery and returns the nested rows plus the
// number of rows matching before paging.
func queryObjectList(ctx context.Context, db Querier, o ObjectQuery) ([]map[string]any, int, error) {
	query, args, err := o.toSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, errors.Wrap(err, "error while querying object list")
	}

	flat, err := helper.RowsToMaps(rows)
	if err != nil {
		return nil, 0, err
	}

	count := 0
	for _, row := range flat {
		count = cast.ToInt(row[totalCountColumn])
		delete(row, totalCountColumn)
	}

	return queryobject.Nest(flat), count, nil
}
