package scheduler

import (
	"context"

	"github.com/estafette/estafette-ci-scheduler/pkg/api"
	"github.com/estafette/estafette-ci-scheduler/pkg/clients/database"
	"github.com/opentracing/opentracing-go"
)

// NewTracingService returns a new instance of a tracing Service.
func NewTracingService(s Service) Service {
	return &tracingService{s, "scheduler"}
}

type tracingService struct {
	Service Service
	prefix  string
}

func (s *tracingService) RecordRuntime(ctx context.Context, testName string, runtimeSeconds float64) (err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(s.prefix, "RecordRuntime"))
	defer func() { api.FinishSpanWithError(span, err) }()

	return s.Service.RecordRuntime(ctx, testName, runtimeSeconds)
}

func (s *tracingService) GetTestCost(ctx context.Context, testName string) (testCost *database.TestCost, err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(s.prefix, "GetTestCost"))
	defer func() { api.FinishSpanWithError(span, err) }()

	return s.Service.GetTestCost(ctx, testName)
}

func (s *tracingService) GetSchedule(ctx context.Context, testRunID string, shardCount int, testNames []string) (schedule *database.Schedule, err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(s.prefix, "GetSchedule"))
	defer func() { api.FinishSpanWithError(span, err) }()

	return s.Service.GetSchedule(ctx, testRunID, shardCount, testNames)
}

func (s *tracingService) GetStoredSchedule(ctx context.Context, testRunID string, shardCount int) (schedule *database.Schedule, err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(s.prefix, "GetStoredSchedule"))
	defer func() { api.FinishSpanWithError(span, err) }()

	return s.Service.GetStoredSchedule(ctx, testRunID, shardCount)
}

func (s *tracingService) GetShard(ctx context.Context, testRunID string, shardCount int, shardIndex int, testNames []string) (tests []string, err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(s.prefix, "GetShard"))
	defer func() { api.FinishSpanWithError(span, err) }()

	return s.Service.GetShard(ctx, testRunID, shardCount, shardIndex, testNames)
}
