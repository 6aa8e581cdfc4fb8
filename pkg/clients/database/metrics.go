package database

import (
	"context"
	"time"

	"github.com/estafette/estafette-ci-scheduler/pkg/api"
	"github.com/go-kit/kit/metrics"
)

// NewMetricsClient returns a new instance of a metrics Client.
func NewMetricsClient(c Client, requestCount metrics.Counter, requestLatency metrics.Histogram) Client {
	return &metricsClient{c, requestCount, requestLatency}
}

type metricsClient struct {
	Client         Client
	requestCount   metrics.Counter
	requestLatency metrics.Histogram
}

func (c *metricsClient) Connect(ctx context.Context) (err error) {
	defer func(begin time.Time) { api.UpdateMetrics(c.requestCount, c.requestLatency, "Connect", begin) }(time.Now())

	return c.Client.Connect(ctx)
}

func (c *metricsClient) ConnectWithDriverAndSource(ctx context.Context, driverName string, dataSourceName string) (err error) {
	defer func(begin time.Time) {
		api.UpdateMetrics(c.requestCount, c.requestLatency, "ConnectWithDriverAndSource", begin)
	}(time.Now())

	return c.Client.ConnectWithDriverAndSource(ctx, driverName, dataSourceName)
}

func (c *metricsClient) AwaitDatabaseReadiness(ctx context.Context) (err error) {
	defer func(begin time.Time) {
		api.UpdateMetrics(c.requestCount, c.requestLatency, "AwaitDatabaseReadiness", begin)
	}(time.Now())

	return c.Client.AwaitDatabaseReadiness(ctx)
}

func (c *metricsClient) MigrateSchema(ctx context.Context) (err error) {
	defer func(begin time.Time) { api.UpdateMetrics(c.requestCount, c.requestLatency, "MigrateSchema", begin) }(time.Now())

	return c.Client.MigrateSchema(ctx)
}

func (c *metricsClient) UpsertTestRuntime(ctx context.Context, testName string, runtimeSeconds float64, alpha float64) (err error) {
	defer func(begin time.Time) {
		api.UpdateMetrics(c.requestCount, c.requestLatency, "UpsertTestRuntime", begin)
	}(time.Now())

	return c.Client.UpsertTestRuntime(ctx, testName, runtimeSeconds, alpha)
}

func (c *metricsClient) GetTestCost(ctx context.Context, testName string) (testCost *TestCost, err error) {
	defer func(begin time.Time) { api.UpdateMetrics(c.requestCount, c.requestLatency, "GetTestCost", begin) }(time.Now())

	return c.Client.GetTestCost(ctx, testName)
}

func (c *metricsClient) GetTestCosts(ctx context.Context, testNames []string) (testCosts map[string]*TestCost, err error) {
	defer func(begin time.Time) { api.UpdateMetrics(c.requestCount, c.requestLatency, "GetTestCosts", begin) }(time.Now())

	return c.Client.GetTestCosts(ctx, testNames)
}

func (c *metricsClient) GetSchedule(ctx context.Context, testRunID string, shardCount int) (schedule *Schedule, err error) {
	defer func(begin time.Time) { api.UpdateMetrics(c.requestCount, c.requestLatency, "GetSchedule", begin) }(time.Now())

	return c.Client.GetSchedule(ctx, testRunID, shardCount)
}

func (c *metricsClient) InsertScheduleIfAbsent(ctx context.Context, schedule Schedule) (storedSchedule *Schedule, inserted bool, err error) {
	defer func(begin time.Time) {
		api.UpdateMetrics(c.requestCount, c.requestLatency, "InsertScheduleIfAbsent", begin)
	}(time.Now())

	return c.Client.InsertScheduleIfAbsent(ctx, schedule)
}
