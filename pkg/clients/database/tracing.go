package database

import (
	"context"

	"github.com/estafette/estafette-ci-scheduler/pkg/api"
	"github.com/opentracing/opentracing-go"
)

// NewTracingClient returns a new instance of a tracing Client.
func NewTracingClient(c Client) Client {
	return &tracingClient{c, "cockroachdb"}
}

type tracingClient struct {
	Client Client
	prefix string
}

func (c *tracingClient) Connect(ctx context.Context) (err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(c.prefix, "Connect"))
	defer func() { api.FinishSpanWithError(span, err) }()

	return c.Client.Connect(ctx)
}

func (c *tracingClient) ConnectWithDriverAndSource(ctx context.Context, driverName string, dataSourceName string) (err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(c.prefix, "ConnectWithDriverAndSource"))
	defer func() { api.FinishSpanWithError(span, err) }()

	return c.Client.ConnectWithDriverAndSource(ctx, driverName, dataSourceName)
}

func (c *tracingClient) AwaitDatabaseReadiness(ctx context.Context) (err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(c.prefix, "AwaitDatabaseReadiness"))
	defer func() { api.FinishSpanWithError(span, err) }()

	return c.Client.AwaitDatabaseReadiness(ctx)
}

func (c *tracingClient) MigrateSchema(ctx context.Context) (err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(c.prefix, "MigrateSchema"))
	defer func() { api.FinishSpanWithError(span, err) }()

	return c.Client.MigrateSchema(ctx)
}

func (c *tracingClient) UpsertTestRuntime(ctx context.Context, testName string, runtimeSeconds float64, alpha float64) (err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(c.prefix, "UpsertTestRuntime"))
	defer func() { api.FinishSpanWithError(span, err) }()

	return c.Client.UpsertTestRuntime(ctx, testName, runtimeSeconds, alpha)
}

func (c *tracingClient) GetTestCost(ctx context.Context, testName string) (testCost *TestCost, err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(c.prefix, "GetTestCost"))
	defer func() { api.FinishSpanWithError(span, err) }()

	return c.Client.GetTestCost(ctx, testName)
}

func (c *tracingClient) GetTestCosts(ctx context.Context, testNames []string) (testCosts map[string]*TestCost, err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(c.prefix, "GetTestCosts"))
	defer func() { api.FinishSpanWithError(span, err) }()

	return c.Client.GetTestCosts(ctx, testNames)
}

func (c *tracingClient) GetSchedule(ctx context.Context, testRunID string, shardCount int) (schedule *Schedule, err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(c.prefix, "GetSchedule"))
	defer func() { api.FinishSpanWithError(span, err) }()

	return c.Client.GetSchedule(ctx, testRunID, shardCount)
}

func (c *tracingClient) InsertScheduleIfAbsent(ctx context.Context, schedule Schedule) (storedSchedule *Schedule, inserted bool, err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(c.prefix, "InsertScheduleIfAbsent"))
	defer func() { api.FinishSpanWithError(span, err) }()

	return c.Client.InsertScheduleIfAbsent(ctx, schedule)
}
