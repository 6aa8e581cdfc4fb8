package scheduler

import (
	"context"
	"time"

	"github.com/estafette/estafette-ci-scheduler/pkg/api"
	"github.com/estafette/estafette-ci-scheduler/pkg/clients/database"
	"github.com/go-kit/kit/metrics"
)

// NewMetricsService returns a new instance of a metrics Service.
func NewMetricsService(s Service, requestCount metrics.Counter, requestLatency metrics.Histogram) Service {
	return &metricsService{s, requestCount, requestLatency}
}

type metricsService struct {
	Service        Service
	requestCount   metrics.Counter
	requestLatency metrics.Histogram
}

func (s *metricsService) RecordRuntime(ctx context.Context, testName string, runtimeSeconds float64) (err error) {
	defer func(begin time.Time) { api.UpdateMetrics(s.requestCount, s.requestLatency, "RecordRuntime", begin) }(time.Now())

	return s.Service.RecordRuntime(ctx, testName, runtimeSeconds)
}

func (s *metricsService) GetTestCost(ctx context.Context, testName string) (testCost *database.TestCost, err error) {
	defer func(begin time.Time) { api.UpdateMetrics(s.requestCount, s.requestLatency, "GetTestCost", begin) }(time.Now())

	return s.Service.GetTestCost(ctx, testName)
}

func (s *metricsService) GetSchedule(ctx context.Context, testRunID string, shardCount int, testNames []string) (schedule *database.Schedule, err error) {
	defer func(begin time.Time) { api.UpdateMetrics(s.requestCount, s.requestLatency, "GetSchedule", begin) }(time.Now())

	return s.Service.GetSchedule(ctx, testRunID, shardCount, testNames)
}

func (s *metricsService) GetStoredSchedule(ctx context.Context, testRunID string, shardCount int) (schedule *database.Schedule, err error) {
	defer func(begin time.Time) {
		api.UpdateMetrics(s.requestCount, s.requestLatency, "GetStoredSchedule", begin)
	}(time.Now())

	return s.Service.GetStoredSchedule(ctx, testRunID, shardCount)
}

func (s *metricsService) GetShard(ctx context.Context, testRunID string, shardCount int, shardIndex int, testNames []string) (tests []string, err error) {
	defer func(begin time.Time) { api.UpdateMetrics(s.requestCount, s.requestLatency, "GetShard", begin) }(time.Now())

	return s.Service.GetShard(ctx, testRunID, shardCount, shardIndex, testNames)
}
