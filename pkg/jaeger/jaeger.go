package jaeger

import (
	"context"
	"io"

	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"
	jaegerclient "github.com/uber/jaeger-client-go"
	jaegercfg "github.com/uber/jaeger-client-go/config"
)

func StartSpanFromContext(ctx context.Context, spanName string, req any) (opentracing.Span, context.Context) {
	dbSpan, ctx := opentracing.StartSpanFromContext(ctx, spanName)

	dbSpan.SetTag("request", req)
	dbSpan.LogKV("event", "request", "value", req)
	return dbSpan, ctx
}

// InitTracer installs a jaeger tracer reporting to the agent at hostPort as the
// global tracer. With an empty hostPort spans stay on the noop tracer.
func InitTracer(serviceName, hostPort string) (io.Closer, error) {
	if hostPort == "" {
		return noopCloser{}, nil
	}

	cfg := jaegercfg.Configuration{
		ServiceName: serviceName,
		Sampler: &jaegercfg.SamplerConfig{
			Type:  jaegerclient.SamplerTypeConst,
			Param: 1,
		},
		Reporter: &jaegercfg.ReporterConfig{
			LocalAgentHostPort: hostPort,
		},
	}

	tracer, closer, err := cfg.NewTracer()
	if err != nil {
		return nil, errors.Wrap(err, "jaeger NewTracer")
	}

	opentracing.SetGlobalTracer(tracer)

	return closer, nil
}

type noopCloser struct{}

func (noopCloser) Close() error { return nil }
