package jaeger

import (
	"context"
	"testing"

	"github.com/opentracing/opentracing-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitTracer_Disabled(t *testing.T) {
	closer, err := InitTracer("task_service", "")
	require.NoError(t, err)
	assert.NoError(t, closer.Close())
	assert.IsType(t, opentracing.NoopTracer{}, opentracing.GlobalTracer())
}

func TestStartSpanFromContext(t *testing.T) {
	span, ctx := StartSpanFromContext(context.Background(), "task.Create", map[string]string{"title": "x"})
	defer span.Finish()

	assert.NotNil(t, span)
	assert.Equal(t, span, opentracing.SpanFromContext(ctx))
}
