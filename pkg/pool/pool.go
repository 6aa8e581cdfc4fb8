package pool

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
)

// Pool to manage, interact with worker pool
type Pool[J, R any] interface {
	// SendJobs to job queue
	SendJobs(jobs ...J)
	// Close closes the job queue and returns the results channel, which is closed once all jobs are done
	Close() <-chan R
	// Errors returns the jobs that failed after all their retries; it waits for all workers to finish,
	// so call it after Close and after draining the results channel
	Errors() []JobError
}

// JobError holds a job that failed with the error of its final attempt
type JobError struct {
	Job any
	Err error
}

func (e JobError) Error() string {
	return fmt.Sprintf("job %v failed: %v", e.Job, e.Err)
}

func (e JobError) Unwrap() error {
	return e.Err
}

type singleStagePool[J, R any] struct {
	*Config[J, R]
	wg      sync.WaitGroup
	mutex   sync.Mutex
	jobs    chan J
	results chan R
	done    chan struct{}
	errors  []JobError
}

// NewPool creates new instance of worker pool and starts workers
func NewPool[J, R any](ctx context.Context, config *Config[J, R]) (Pool[J, R], error) {
	if config == nil {
		return nil, errors.New("expected pool config to be not nil")
	}
	p := &singleStagePool[J, R]{
		Config: config,
	}
	if err := p.validate(); err != nil {
		return nil, err
	}
	p.startPool(ctx, make(chan J, p.JobQueueLimit), make(chan R, p.ResultQueueLimit))
	return p, nil
}

func (p *singleStagePool[J, R]) validate() error {
	if p.Size <= 0 {
		return errors.New("expected pool size to be more than 0")
	}
	if p.JobQueueLimit <= 0 {
		return errors.New("expected JobQueueLimit to be more than 0")
	}
	if p.ResultQueueLimit <= 0 {
		return errors.New("expected ResultQueueLimit to be more than 0")
	}
	if p.MaxRetry < 0 {
		return errors.New("expected MaxRetry to be 0 or more")
	}
	if p.Worker == nil {
		return fmt.Errorf("expected worker func to be not nil")
	}
	return nil
}

func (p *singleStagePool[J, R]) startPool(ctx context.Context, jobs chan J, results chan R) {
	p.jobs = jobs
	p.results = results
	p.done = make(chan struct{})

	p.wg.Add(p.Size)
	for index := 0; index < p.Size; index++ {
		go p.startWorker(ctx)
	}

	go func() {
		p.wg.Wait()
		close(p.results)
		close(p.done)
	}()
}

func (p *singleStagePool[J, R]) startWorker(ctx context.Context) {
	defer p.wg.Done()

	for job := range p.jobs {
		// drain remaining jobs as failures once the context is cancelled
		if ctx.Err() != nil {
			p.addError(job, ctx.Err())
			continue
		}

		var result R
		var err error
		for attempt := 0; attempt <= p.MaxRetry; attempt++ {
			result, err = p.runJob(ctx, job)
			if err == nil || ctx.Err() != nil {
				break
			}
		}

		if err != nil {
			p.addError(job, err)
			continue
		}
		p.results <- result
	}
}

func (p *singleStagePool[J, R]) runJob(ctx context.Context, job J) (result R, err error) {
	if p.HandlePanic {
		defer func() {
			if r := recover(); r != nil {
				log.Error().Msgf("Recovered from panic in pool worker: %+v", r)
				err = fmt.Errorf("panic in worker: %v", r)
			}
		}()
	}
	return p.Worker(ctx, job)
}

func (p *singleStagePool[J, R]) addError(job J, err error) {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	p.errors = append(p.errors, JobError{
		Job: job,
		Err: err,
	})
}

func (p *singleStagePool[J, R]) SendJobs(jobs ...J) {
	for _, job := range jobs {
		p.jobs <- job
	}
}

func (p *singleStagePool[J, R]) Close() <-chan R {
	close(p.jobs)
	return p.results
}

func (p *singleStagePool[J, R]) Errors() []JobError {
	<-p.done
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return append([]JobError(nil), p.errors...)
}
