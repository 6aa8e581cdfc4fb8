package database

import (
	"context"

	"github.com/estafette/estafette-ci-scheduler/pkg/api"
)

// NewLoggingClient returns a new instance of a logging Client.
func NewLoggingClient(c Client) Client {
	return &loggingClient{c, "cockroachdb"}
}

type loggingClient struct {
	Client Client
	prefix string
}

func (c *loggingClient) Connect(ctx context.Context) (err error) {
	defer func() { api.HandleLogError(c.prefix, "Client", "Connect", err) }()

	return c.Client.Connect(ctx)
}

func (c *loggingClient) ConnectWithDriverAndSource(ctx context.Context, driverName string, dataSourceName string) (err error) {
	defer func() { api.HandleLogError(c.prefix, "Client", "ConnectWithDriverAndSource", err) }()

	return c.Client.ConnectWithDriverAndSource(ctx, driverName, dataSourceName)
}

func (c *loggingClient) AwaitDatabaseReadiness(ctx context.Context) (err error) {
	defer func() { api.HandleLogError(c.prefix, "Client", "AwaitDatabaseReadiness", err) }()

	return c.Client.AwaitDatabaseReadiness(ctx)
}

func (c *loggingClient) MigrateSchema(ctx context.Context) (err error) {
	defer func() { api.HandleLogError(c.prefix, "Client", "MigrateSchema", err) }()

	return c.Client.MigrateSchema(ctx)
}

func (c *loggingClient) UpsertTestRuntime(ctx context.Context, testName string, runtimeSeconds float64, alpha float64) (err error) {
	defer func() { api.HandleLogError(c.prefix, "Client", "UpsertTestRuntime", err) }()

	return c.Client.UpsertTestRuntime(ctx, testName, runtimeSeconds, alpha)
}

func (c *loggingClient) GetTestCost(ctx context.Context, testName string) (testCost *TestCost, err error) {
	defer func() { api.HandleLogError(c.prefix, "Client", "GetTestCost", err, ErrTestCostNotFound) }()

	return c.Client.GetTestCost(ctx, testName)
}

func (c *loggingClient) GetTestCosts(ctx context.Context, testNames []string) (testCosts map[string]*TestCost, err error) {
	defer func() { api.HandleLogError(c.prefix, "Client", "GetTestCosts", err) }()

	return c.Client.GetTestCosts(ctx, testNames)
}

func (c *loggingClient) GetSchedule(ctx context.Context, testRunID string, shardCount int) (schedule *Schedule, err error) {
	defer func() { api.HandleLogError(c.prefix, "Client", "GetSchedule", err, ErrScheduleNotFound) }()

	return c.Client.GetSchedule(ctx, testRunID, shardCount)
}

func (c *loggingClient) InsertScheduleIfAbsent(ctx context.Context, schedule Schedule) (storedSchedule *Schedule, inserted bool, err error) {
	defer func() { api.HandleLogError(c.prefix, "Client", "InsertScheduleIfAbsent", err) }()

	return c.Client.InsertScheduleIfAbsent(ctx, schedule)
}
