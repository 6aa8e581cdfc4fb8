package scheduler

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/estafette/estafette-ci-scheduler/pkg/api"
	"github.com/estafette/estafette-ci-scheduler/pkg/clients/database"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
)

// upper bound for computing and storing a schedule that isn't stored yet
const scheduleComputationTimeout = time.Minute

// Service records test runtimes and hands out balanced shards of a test run
//
//go:generate mockgen -package=scheduler -destination ./mock.go -source=service.go
type Service interface {
	RecordRuntime(ctx context.Context, testName string, runtimeSeconds float64) (err error)
	GetTestCost(ctx context.Context, testName string) (testCost *database.TestCost, err error)
	GetSchedule(ctx context.Context, testRunID string, shardCount int, testNames []string) (schedule *database.Schedule, err error)
	GetStoredSchedule(ctx context.Context, testRunID string, shardCount int) (schedule *database.Schedule, err error)
	GetShard(ctx context.Context, testRunID string, shardCount, shardIndex int, testNames []string) (tests []string, err error)
}

// NewService returns a scheduler.Service
func NewService(config *api.APIConfig, databaseClient database.Client) Service {
	return &service{
		config:         config,
		databaseClient: databaseClient,
	}
}

type service struct {
	config         *api.APIConfig
	databaseClient database.Client
	group          singleflight.Group
}

func (s *service) RecordRuntime(ctx context.Context, testName string, runtimeSeconds float64) (err error) {
	if testName == "" {
		return errors.Wrap(api.ErrInvalidArgument, "test name is empty")
	}
	if math.IsNaN(runtimeSeconds) || math.IsInf(runtimeSeconds, 0) || runtimeSeconds < 0 {
		return errors.Wrapf(api.ErrInvalidArgument, "runtime %v for test %v is not a non-negative number", runtimeSeconds, testName)
	}

	return s.databaseClient.UpsertTestRuntime(ctx, testName, runtimeSeconds, s.config.Scheduler.Alpha)
}

func (s *service) GetTestCost(ctx context.Context, testName string) (testCost *database.TestCost, err error) {
	if testName == "" {
		return nil, errors.Wrap(api.ErrInvalidArgument, "test name is empty")
	}

	return s.databaseClient.GetTestCost(ctx, testName)
}

// GetSchedule returns the stored schedule for the test run and shard count, or computes and stores one; once stored a
// schedule never changes, whatever test list later requests carry
func (s *service) GetSchedule(ctx context.Context, testRunID string, shardCount int, testNames []string) (schedule *database.Schedule, err error) {
	if shardCount < 1 {
		return nil, errors.Wrapf(api.ErrInvalidArgument, "shard count %v is less than 1", shardCount)
	}

	schedule, err = s.databaseClient.GetSchedule(ctx, testRunID, shardCount)
	if err == nil {
		return schedule, nil
	}
	if !errors.Is(err, api.ErrNotFound) {
		return nil, err
	}

	// concurrent misses for the same key in this process share one computation; across processes the insert decides
	key := fmt.Sprintf("%v/%v", testRunID, shardCount)
	resultChannel := s.group.DoChan(key, func() (interface{}, error) {
		// shared by every caller of the flight, so it mustn't end when the first caller goes away
		computeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), scheduleComputationTimeout)
		defer cancel()

		return s.computeSchedule(computeCtx, testRunID, shardCount, testNames)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case result := <-resultChannel:
		if result.Err != nil {
			return nil, result.Err
		}
		return result.Val.(*database.Schedule), nil
	}
}

func (s *service) computeSchedule(ctx context.Context, testRunID string, shardCount int, testNames []string) (*database.Schedule, error) {

	uniqueTestNames := dedupe(testNames)

	testCosts, err := s.databaseClient.GetTestCosts(ctx, uniqueTestNames)
	if err != nil {
		return nil, err
	}

	weightedTests := make([]WeightedTest, 0, len(uniqueTestNames))
	for _, name := range uniqueTestNames {
		weightedTests = append(weightedTests, WeightedTest{
			Name: name,
			Cost: Cost(name, testCosts[name], s.config.Scheduler.ColdStartCost),
		})
	}

	shards, err := Partition(weightedTests, shardCount)
	if err != nil {
		return nil, err
	}

	schedule, inserted, err := s.databaseClient.InsertScheduleIfAbsent(ctx, database.Schedule{
		TestRunID:  testRunID,
		ShardCount: shardCount,
		Shards:     shards,
	})
	if err != nil {
		return nil, err
	}

	if inserted {
		log.Info().Msgf("Stored schedule for test run %v with %v tests over %v shards", testRunID, len(uniqueTestNames), shardCount)
	} else {
		log.Debug().Msgf("Schedule for test run %v with %v shards was stored concurrently, using that one", testRunID, shardCount)
	}

	return schedule, nil
}

func (s *service) GetStoredSchedule(ctx context.Context, testRunID string, shardCount int) (schedule *database.Schedule, err error) {
	if shardCount < 1 {
		return nil, errors.Wrapf(api.ErrInvalidArgument, "shard count %v is less than 1", shardCount)
	}

	return s.databaseClient.GetSchedule(ctx, testRunID, shardCount)
}

func (s *service) GetShard(ctx context.Context, testRunID string, shardCount, shardIndex int, testNames []string) (tests []string, err error) {
	if shardCount < 1 {
		return nil, errors.Wrapf(api.ErrInvalidArgument, "shard count %v is less than 1", shardCount)
	}
	if shardIndex < 0 {
		return nil, errors.Wrapf(api.ErrInvalidArgument, "shard index %v is negative", shardIndex)
	}
	if shardIndex >= shardCount {
		return nil, errors.Wrapf(api.ErrNotFound, "shard index %v is out of range for %v shards", shardIndex, shardCount)
	}

	schedule, err := s.GetSchedule(ctx, testRunID, shardCount, testNames)
	if err != nil {
		return nil, err
	}

	tests, ok := schedule.Shards[shardIndex]
	if !ok {
		return nil, errors.Wrapf(api.ErrNotFound, "shard %v is missing from schedule %v-%v", shardIndex, testRunID, shardCount)
	}
	if tests == nil {
		tests = []string{}
	}

	return tests, nil
}

// dedupe keeps the first occurrence of every name
func dedupe(names []string) []string {
	seen := make(map[string]bool, len(names))
	unique := make([]string, 0, len(names))
	for _, n := range names {
		if seen[n] {
			continue
		}
		seen[n] = true
		unique = append(unique, n)
	}

	return unique
}
