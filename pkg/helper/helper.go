package helper

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
	"github.com/spf13/cast"
)

// RowsToMaps reads every row into a map keyed by column name. Column names may
// contain dots, they are kept as is.
func RowsToMaps(rows pgx.Rows) ([]map[string]any, error) {
	defer rows.Close()

	columns := make([]string, len(rows.FieldDescriptions()))
	for i, fd := range rows.FieldDescriptions() {
		columns[i] = string(fd.Name)
	}

	results := []map[string]any{}
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, errors.Wrap(err, "error while reading row values")
		}

		row := make(map[string]any, len(columns))
		for i, column := range columns {
			row[column] = ConvertValue(values[i])
		}

		results = append(results, row)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "error while iterating rows")
	}

	return results, nil
}

// ConvertValue turns driver values into something encoding/json renders well.
func ConvertValue(value any) any {
	switch v := value.(type) {
	case [16]byte:
		return uuid.UUID(v).String()
	case []any:
		out := make([]any, 0, len(v))
		for _, item := range v {
			out = append(out, ConvertValue(item))
		}
		return out
	default:
		return v
	}
}

func MarshalToStruct(data any, resp any) error {
	js, err := json.Marshal(data)
	if err != nil {
		return err
	}

	err = json.Unmarshal(js, resp)
	if err != nil {
		return err
	}

	return nil
}

// Pagination clamps limit and offset coming from the query string.
func Pagination(limit, offset any, defaultLimit, maxLimit int) (int, int) {
	l := cast.ToInt(limit)
	if l <= 0 {
		l = defaultLimit
	}
	if maxLimit > 0 && l > maxLimit {
		l = maxLimit
	}

	o := cast.ToInt(offset)
	if o < 0 {
		o = 0
	}

	return l, o
}
