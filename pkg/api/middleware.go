package api

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
	"github.com/rs/zerolog/log"
)

func isHealthCheck(path string) bool {
	return path == "/liveness" || path == "/readiness"
}

// ZeroLogMiddleware logs gin requests via zerolog
func ZeroLogMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {

		path := c.Request.URL.Path
		if isHealthCheck(path) {
			// don't log these requests, only execute them
			c.Next()
			return
		}

		start := time.Now()

		c.Next()

		latency := time.Since(start)
		clientIP := c.ClientIP()
		method := c.Request.Method
		statusCode := c.Writer.Status()

		if raw := c.Request.URL.RawQuery; raw != "" {
			path = path + "?" + raw
		}

		event := log.Debug()
		if statusCode >= 500 {
			event = log.Warn()
		}

		event.
			Int("statusCode", statusCode).
			Dur("latencyMs", latency).
			Str("clientIP", clientIP).
			Str("path", path).
			Msgf("[GIN] %3d %13v %15s %-7s %s", statusCode, latency, clientIP, method, path)
	}
}

// OpenTracingMiddleware creates a span for each request
func OpenTracingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {

		if isHealthCheck(c.Request.URL.Path) {
			c.Next()
			return
		}

		// retrieve span context from upstream caller if available
		tracingCtx, err := opentracing.GlobalTracer().Extract(opentracing.HTTPHeaders, opentracing.HTTPHeadersCarrier(c.Request.Header))
		if err != nil && err != opentracing.ErrSpanContextNotFound {
			log.Warn().Err(err).Msgf("Failed extracting trace context from http headers for %v %v", c.Request.Method, c.Request.URL.Path)
		}

		// route template, not the raw path; test names are unbounded
		operation := c.FullPath()
		if operation == "" {
			operation = c.Request.URL.Path
		}

		span := opentracing.StartSpan(fmt.Sprintf("%v %v", c.Request.Method, operation), ext.RPCServerOption(tracingCtx))
		defer span.Finish()

		ext.SpanKindRPCServer.Set(span)
		ext.HTTPMethod.Set(span, c.Request.Method)
		ext.HTTPUrl.Set(span, c.Request.URL.String())

		c.Request = c.Request.WithContext(opentracing.ContextWithSpan(c.Request.Context(), span))

		c.Next()

		ext.HTTPStatusCode.Set(span, uint16(c.Writer.Status()))
	}
}
