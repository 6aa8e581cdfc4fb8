package api

import (
	"io"

	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
	"github.com/opentracing/opentracing-go/log"
	jaegercfg "github.com/uber/jaeger-client-go/config"
	jprom "github.com/uber/jaeger-lib/metrics/prometheus"
)

func GetSpanName(prefix, funcName string) string {
	return prefix + ":" + funcName
}

func FinishSpan(span opentracing.Span) {
	span.Finish()
}

func FinishSpanWithError(span opentracing.Span, err error) {
	if err != nil {
		ext.Error.Set(span, true)
		span.LogFields(log.Error(err))
	}
	FinishSpan(span)
}

// InitTracing sets up a jaeger tracer configured by JAEGER_* envvars as the global tracer; close the returned closer on shutdown
func InitTracing(app string) (io.Closer, error) {
	cfg, err := jaegercfg.FromEnv()
	if err != nil {
		return nil, err
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = app
	}

	tracer, closer, err := cfg.NewTracer(jaegercfg.Metrics(jprom.New()))
	if err != nil {
		return nil, err
	}

	opentracing.SetGlobalTracer(tracer)

	return closer, nil
}
