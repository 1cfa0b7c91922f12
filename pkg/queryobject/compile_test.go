package queryobject_test

import (
	"encoding/json"
	"strings"
	"testing"

	"ucode/ucode_go_task_service/pkg/queryobject"

	"github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustFilter(t *testing.T, expr string) *queryobject.Filter {
	f, err := queryobject.ParseFilter(expr)
	require.NoError(t, err)
	return f
}

func TestCompile_RootOnly(t *testing.T) {
	res, err := queryobject.Compile(queryobject.TableSpec{
		Table:    "users",
		Select:   "id,email",
		Includes: []queryobject.TableSpec{},
	}, map[string]any{})
	require.NoError(t, err)

	assert.Equal(t, "SELECT users.id,users.email FROM users", res.SQL)
	assert.Empty(t, res.Params)
}

func TestCompile_SingleInclude(t *testing.T) {
	schema := queryobject.TableSpec{
		Table:  "users",
		As:     "u",
		Select: "id,email",
		Includes: []queryobject.TableSpec{
			{Table: "photos", As: "p", Select: "filename", LocalKey: "user_id", TargetKey: "id"},
		},
	}

	res, err := queryobject.Compile(schema, map[string]any{})
	require.NoError(t, err)

	assert.Equal(t,
		`SELECT u.id,u.email,p.filename AS "p.filename" FROM users as u LEFT JOIN (SELECT p.filename FROM photos as p) AS p ON u.id=p.user_id`,
		res.SQL,
	)
	assert.Empty(t, res.Params)
}

func TestCompile_NestedIncludes(t *testing.T) {
	schema := queryobject.TableSpec{
		Table:  "tasks",
		As:     "t",
		Select: "id, title",
		Includes: []queryobject.TableSpec{
			{
				Table:     "projects",
				As:        "p",
				Select:    "id,name,group_id",
				LocalKey:  "id",
				TargetKey: "project_id",
				Includes: []queryobject.TableSpec{
					{Table: "groups", As: "g", Select: "id,name", LocalKey: "id", TargetKey: "group_id"},
				},
			},
			{Table: "steps", As: "s", Select: "title,task_id", LocalKey: "task_id", TargetKey: "id"},
		},
	}

	res, err := queryobject.Compile(schema, nil)
	require.NoError(t, err)

	assert.Equal(t, strings.Join([]string{
		`SELECT t.id,t.title,p.id AS "p.id",p.name AS "p.name",p.group_id AS "p.group_id",g.id AS "p.g.id",g.name AS "p.g.name",s.title AS "s.title",s.task_id AS "s.task_id"`,
		`FROM tasks as t`,
		`LEFT JOIN (SELECT p.id,p.name,p.group_id FROM projects as p) AS p ON t.project_id=p.id`,
		`LEFT JOIN (SELECT g.id,g.name FROM groups as g) AS g ON p.group_id=g.id`,
		`LEFT JOIN (SELECT s.title,s.task_id FROM steps as s) AS s ON t.id=s.task_id`,
	}, " "), res.SQL)

	assert.Equal(t, 3, strings.Count(res.SQL, "LEFT JOIN"))
}

func TestCompile_VirtualColumn(t *testing.T) {
	schema := queryobject.TableSpec{
		Table:  "tasks",
		As:     "t",
		Select: "id",
		Includes: []queryobject.TableSpec{
			{
				Table:     "users",
				As:        "a",
				Select:    "id,full_name",
				Virtual:   &queryobject.Virtual{Field: "full_name", Execute: "a.first_name || ' ' || a.last_name"},
				LocalKey:  "id",
				TargetKey: "assignee_id",
			},
		},
	}

	res, err := queryobject.Compile(schema, nil)
	require.NoError(t, err)

	assert.Equal(t,
		`SELECT t.id,a.id AS "a.id",a.full_name AS "a.full_name" FROM tasks as t LEFT JOIN (SELECT a.id,a.first_name || ' ' || a.last_name AS full_name FROM users as a) AS a ON t.assignee_id=a.id`,
		res.SQL,
	)
}

func TestCompile_RootVirtualIgnored(t *testing.T) {
	res, err := queryobject.Compile(queryobject.TableSpec{
		Table:   "users",
		As:      "u",
		Select:  "id,name",
		Virtual: &queryobject.Virtual{Field: "name", Execute: "upper(u.first)"},
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, "SELECT u.id,u.name FROM users as u", res.SQL)
}

func TestCompile_LiteralQuestionMark(t *testing.T) {
	schema := queryobject.TableSpec{
		Table:  "users",
		As:     "u",
		Select: "id",
		Where:  &queryobject.Filter{Column: "id", Param: "id"},
		Includes: []queryobject.TableSpec{
			{
				Table:     "profiles",
				As:        "p",
				Select:    "user_id,has_bio",
				Virtual:   &queryobject.Virtual{Field: "has_bio", Execute: "p.data ? 'bio'"},
				LocalKey:  "user_id",
				TargetKey: "id",
			},
		},
	}
	params := map[string]any{"id": 7}

	res, err := queryobject.Compile(schema, params, queryobject.WithPlaceholder(squirrel.Dollar))
	require.NoError(t, err)

	assert.Contains(t, res.SQL, "(SELECT p.user_id,p.data ? 'bio' AS has_bio FROM profiles as p)")
	assert.True(t, strings.HasSuffix(res.SQL, " WHERE u.id = $1"), res.SQL)
	assert.NotContains(t, res.SQL, "$2")
	assert.Equal(t, []any{7}, res.Params)

	res, err = queryobject.Compile(schema, params)
	require.NoError(t, err)
	assert.Contains(t, res.SQL, "p.data ? 'bio' AS has_bio")
	assert.NotContains(t, res.SQL, "??")

	sql, args, err := queryobject.NewCompiler().Build(schema, params)
	require.NoError(t, err)
	assert.Contains(t, sql, "p.data ?? 'bio' AS has_bio")
	assert.Equal(t, []any{7}, args)
}

func TestCompile_ParameterOrder(t *testing.T) {
	schema := queryobject.TableSpec{
		Table:  "users",
		As:     "u",
		Select: "id",
		Where:  mustFilter(t, "status = :status"),
		Includes: []queryobject.TableSpec{
			{
				Table:     "photos",
				As:        "p",
				Select:    "filename,type,user_id",
				Where:     mustFilter(t, "type = :type"),
				LocalKey:  "user_id",
				TargetKey: "id",
			},
		},
	}
	params := map[string]any{"type": "avatar", "status": "active", "unused": 1}

	res, err := queryobject.Compile(schema, params)
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(res.SQL, " WHERE u.status = ? AND p.type = ?"), res.SQL)
	assert.Equal(t, []any{"active", "avatar"}, res.Params)
	assert.NotContains(t, res.SQL, "active")
	assert.NotContains(t, res.SQL, "avatar")

	res, err = queryobject.Compile(schema, params, queryobject.WithPlaceholder(squirrel.Dollar))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(res.SQL, " WHERE u.status = $1 AND p.type = $2"), res.SQL)
}

func TestCompile_SingleFilter(t *testing.T) {
	testCases := []struct {
		name   string
		filter queryobject.Filter
		want   string
	}{
		{name: "default operator", filter: queryobject.Filter{Column: "status", Param: "x"}, want: " WHERE t.status = ?"},
		{name: "ilike", filter: queryobject.Filter{Column: "title", Operator: "ilike", Param: "x"}, want: " WHERE t.title ILIKE ?"},
		{name: "any", filter: queryobject.Filter{Column: "id", Operator: "ANY", Param: "x"}, want: " WHERE t.id = ANY(?)"},
		{name: "qualified column", filter: queryobject.Filter{Column: "t.created_at", Operator: ">=", Param: "x"}, want: " WHERE t.created_at >= ?"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			filter := tc.filter
			res, err := queryobject.Compile(queryobject.TableSpec{
				Table:  "tasks",
				As:     "t",
				Select: "id",
				Where:  &filter,
			}, map[string]any{"x": 42})
			require.NoError(t, err)

			assert.True(t, strings.HasSuffix(res.SQL, tc.want), res.SQL)
			assert.Equal(t, []any{42}, res.Params)
		})
	}
}

func TestCompile_MissingParameterIsNil(t *testing.T) {
	res, err := queryobject.Compile(queryobject.TableSpec{
		Table:  "tasks",
		Select: "id",
		Where:  &queryobject.Filter{Column: "status", Param: "status"},
	}, map[string]any{})
	require.NoError(t, err)

	assert.Equal(t, []any{nil}, res.Params)
}

func TestCompile_Deterministic(t *testing.T) {
	schema := queryobject.TableSpec{
		Table:  "tasks",
		As:     "t",
		Select: "id,title",
		Where:  &queryobject.Filter{Column: "project_id", Param: "project_id"},
		Includes: []queryobject.TableSpec{
			{Table: "steps", As: "s", Select: "id,task_id", LocalKey: "task_id", TargetKey: "id"},
		},
	}
	params := map[string]any{"project_id": "p1"}

	first, err := queryobject.Compile(schema, params)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		next, err := queryobject.Compile(schema, params)
		require.NoError(t, err)
		assert.Equal(t, first, next)
	}
}

func TestCompile_SchemaErrors(t *testing.T) {
	testCases := []struct {
		name   string
		schema queryobject.TableSpec
	}{
		{
			name:   "empty select",
			schema: queryobject.TableSpec{Table: "users"},
		},
		{
			name:   "empty table",
			schema: queryobject.TableSpec{Select: "id"},
		},
		{
			name: "include without keys",
			schema: queryobject.TableSpec{
				Table:    "users",
				Select:   "id",
				Includes: []queryobject.TableSpec{{Table: "photos", Select: "id"}},
			},
		},
		{
			name: "include without select",
			schema: queryobject.TableSpec{
				Table:    "users",
				Select:   "id",
				Includes: []queryobject.TableSpec{{Table: "photos", LocalKey: "user_id", TargetKey: "id"}},
			},
		},
		{
			name: "unsupported operator",
			schema: queryobject.TableSpec{
				Table:  "users",
				Select: "id",
				Where:  &queryobject.Filter{Column: "id", Operator: "BETWEEN", Param: "id"},
			},
		},
		{
			name: "filter without param",
			schema: queryobject.TableSpec{
				Table:  "users",
				Select: "id",
				Where:  &queryobject.Filter{Column: "id"},
			},
		},
		{
			name: "include filter on a column it does not select",
			schema: queryobject.TableSpec{
				Table:  "users",
				Select: "id",
				Includes: []queryobject.TableSpec{
					{
						Table:     "photos",
						Select:    "filename,user_id",
						Where:     &queryobject.Filter{Column: "type", Param: "type"},
						LocalKey:  "user_id",
						TargetKey: "id",
					},
				},
			},
		},
		{
			name:   "column is not an identifier",
			schema: queryobject.TableSpec{Table: "users", Select: "id; DROP TABLE users"},
		},
		{
			name: "duplicate alias",
			schema: queryobject.TableSpec{
				Table:  "users",
				As:     "u",
				Select: "id",
				Includes: []queryobject.TableSpec{
					{Table: "photos", As: "u", Select: "id", LocalKey: "user_id", TargetKey: "id"},
				},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := queryobject.Compile(tc.schema, nil)
			assert.ErrorIs(t, err, queryobject.ErrSchema)
		})
	}
}

func TestCompile_IncludeFilterColumns(t *testing.T) {
	testCases := []struct {
		name   string
		filter queryobject.Filter
		want   string
	}{
		{name: "selected column", filter: queryobject.Filter{Column: "type", Param: "x"}, want: " WHERE p.type = ?"},
		{name: "virtual field", filter: queryobject.Filter{Column: "kind", Param: "x"}, want: " WHERE p.kind = ?"},
		{name: "qualified column", filter: queryobject.Filter{Column: "p.user_id", Param: "x"}, want: " WHERE p.user_id = ?"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			filter := tc.filter
			res, err := queryobject.Compile(queryobject.TableSpec{
				Table:  "users",
				As:     "u",
				Select: "id",
				Includes: []queryobject.TableSpec{
					{
						Table:     "photos",
						As:        "p",
						Select:    "type,user_id",
						Virtual:   &queryobject.Virtual{Field: "kind", Execute: "lower(p.type)"},
						Where:     &filter,
						LocalKey:  "user_id",
						TargetKey: "id",
					},
				},
			}, map[string]any{"x": "avatar"})
			require.NoError(t, err)

			assert.True(t, strings.HasSuffix(res.SQL, tc.want), res.SQL)
		})
	}
}

func TestCompile_TrustedIdentifiers(t *testing.T) {
	res, err := queryobject.Compile(queryobject.TableSpec{
		Table:  "users",
		Select: `"Email"`,
	}, nil, queryobject.WithTrustedIdentifiers())
	require.NoError(t, err)

	assert.Equal(t, `SELECT users."Email" FROM users`, res.SQL)
}

func TestTableSpec_UnmarshalLegacyWhere(t *testing.T) {
	data := []byte(`{
		"table": "users",
		"as": "u",
		"select": "id,email",
		"where": "status = :status",
		"includes": [
			{"table": "photos", "as": "p", "select": "filename,type", "localKey": "user_id", "targetKey": "id",
			 "where": {"column": "type", "param": "type"}}
		]
	}`)

	var schema queryobject.TableSpec
	require.NoError(t, json.Unmarshal(data, &schema))

	require.NotNil(t, schema.Where)
	assert.Equal(t, queryobject.Filter{Column: "status", Operator: "=", Param: "status"}, *schema.Where)
	require.Len(t, schema.Includes, 1)
	assert.Equal(t, queryobject.Filter{Column: "type", Param: "type"}, *schema.Includes[0].Where)

	res, err := queryobject.Compile(schema, map[string]any{"status": "active", "type": "avatar"})
	require.NoError(t, err)
	assert.Equal(t, []any{"active", "avatar"}, res.Params)
}
