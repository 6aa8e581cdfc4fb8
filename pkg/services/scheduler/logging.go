package scheduler

import (
	"context"

	"github.com/estafette/estafette-ci-scheduler/pkg/api"
	"github.com/estafette/estafette-ci-scheduler/pkg/clients/database"
)

// NewLoggingService returns a new instance of a logging Service.
func NewLoggingService(s Service) Service {
	return &loggingService{s, "scheduler"}
}

type loggingService struct {
	Service Service
	prefix  string
}

func (s *loggingService) RecordRuntime(ctx context.Context, testName string, runtimeSeconds float64) (err error) {
	defer func() { api.HandleLogError(s.prefix, "Service", "RecordRuntime", err, api.ErrInvalidArgument) }()

	return s.Service.RecordRuntime(ctx, testName, runtimeSeconds)
}

func (s *loggingService) GetTestCost(ctx context.Context, testName string) (testCost *database.TestCost, err error) {
	defer func() {
		api.HandleLogError(s.prefix, "Service", "GetTestCost", err, api.ErrInvalidArgument, api.ErrNotFound)
	}()

	return s.Service.GetTestCost(ctx, testName)
}

func (s *loggingService) GetSchedule(ctx context.Context, testRunID string, shardCount int, testNames []string) (schedule *database.Schedule, err error) {
	defer func() { api.HandleLogError(s.prefix, "Service", "GetSchedule", err, api.ErrInvalidArgument) }()

	return s.Service.GetSchedule(ctx, testRunID, shardCount, testNames)
}

func (s *loggingService) GetStoredSchedule(ctx context.Context, testRunID string, shardCount int) (schedule *database.Schedule, err error) {
	defer func() {
		api.HandleLogError(s.prefix, "Service", "GetStoredSchedule", err, api.ErrInvalidArgument, api.ErrNotFound)
	}()

	return s.Service.GetStoredSchedule(ctx, testRunID, shardCount)
}

func (s *loggingService) GetShard(ctx context.Context, testRunID string, shardCount int, shardIndex int, testNames []string) (tests []string, err error) {
	defer func() {
		api.HandleLogError(s.prefix, "Service", "GetShard", err, api.ErrInvalidArgument, api.ErrNotFound)
	}()

	return s.Service.GetShard(ctx, testRunID, shardCount, shardIndex, testNames)
}
