package queryobject_test

import (
	"encoding/json"
	"testing"

	"ucode/ucode_go_task_service/pkg/queryobject"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFilter(t *testing.T) {
	testCases := []struct {
		expr string
		want queryobject.Filter
	}{
		{expr: "status = :status", want: queryobject.Filter{Column: "status", Operator: "=", Param: "status"}},
		{expr: "  p.type=:photoType ", want: queryobject.Filter{Column: "p.type", Operator: "=", Param: "photoType"}},
		{expr: "title ilike :q", want: queryobject.Filter{Column: "title", Operator: "ILIKE", Param: "q"}},
		{expr: "due_at <= :before", want: queryobject.Filter{Column: "due_at", Operator: "<=", Param: "before"}},
		{expr: "name ~* :search", want: queryobject.Filter{Column: "name", Operator: "~*", Param: "search"}},
	}

	for _, tc := range testCases {
		t.Run(tc.expr, func(t *testing.T) {
			got, err := queryobject.ParseFilter(tc.expr)
			require.NoError(t, err)
			assert.Equal(t, tc.want, *got)
		})
	}
}

func TestParseFilter_Malformed(t *testing.T) {
	for _, expr := range []string{
		"status = 'active'",
		"status = :a AND type = :b",
		":status",
		"status BETWEEN :a",
		"",
	} {
		t.Run(expr, func(t *testing.T) {
			_, err := queryobject.ParseFilter(expr)
			assert.ErrorIs(t, err, queryobject.ErrSchema)
		})
	}
}

func TestFilter_UnmarshalMalformedString(t *testing.T) {
	var f queryobject.Filter
	err := json.Unmarshal([]byte(`"status = active"`), &f)
	assert.ErrorIs(t, err, queryobject.ErrSchema)
}
