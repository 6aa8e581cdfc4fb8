package pool

import "context"

// Config for a worker pool
type Config[J, R any] struct {
	// Size is the number of workers
	Size int
	// MaxRetry is the number of extra attempts for each failed job
	MaxRetry int
	// JobQueueLimit for the jobs channel, SendJobs blocks while it's full
	JobQueueLimit int
	// ResultQueueLimit for the results channel, workers block while it's full
	ResultQueueLimit int
	// HandlePanic turns a panicking job into a JobError instead of crashing the process
	HandlePanic bool
	// Worker of the pool
	Worker func(context.Context, J) (R, error)
}

// DefaultConfig returns a new Config[J, R] with JobQueueLimit and ResultQueueLimit equal to 100 * size
func DefaultConfig[J, R any](size int, worker func(ctx context.Context, job J) (R, error)) *Config[J, R] {
	return &Config[J, R]{
		Size:             size,
		JobQueueLimit:    100 * size,
		ResultQueueLimit: 100 * size,
		MaxRetry:         0,
		HandlePanic:      true,
		Worker:           worker,
	}
}

// NewConfig returns a new Config[J, R]
func NewConfig[J, R any](size, jobQueueLimit, resultQueueLimit, maxRetry int, handlePanic bool, worker func(ctx context.Context, job J) (R, error)) *Config[J, R] {
	return &Config[J, R]{
		Size:             size,
		JobQueueLimit:    jobQueueLimit,
		ResultQueueLimit: resultQueueLimit,
		MaxRetry:         maxRetry,
		HandlePanic:      handlePanic,
		Worker:           worker,
	}
}
