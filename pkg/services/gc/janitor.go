package gc

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// Janitor runs garbage collection on an interval, so cleanup doesn't depend on an external trigger
type Janitor struct {
	service  Service
	interval time.Duration
}

// NewJanitor returns a Janitor for the service
func NewJanitor(service Service, interval time.Duration) *Janitor {
	return &Janitor{
		service:  service,
		interval: interval,
	}
}

// Run garbage collects immediately and then on every tick until ctx is done
func (j *Janitor) Run(ctx context.Context) {

	log.Info().Msgf("Starting garbage collection every %v", j.interval)

	j.run(ctx)

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("Stopping garbage collection")
			return

		case <-ticker.C:
			j.run(ctx)
		}
	}
}

func (j *Janitor) run(ctx context.Context) {
	results, err := j.service.GarbageCollect(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Garbage collection failed")
		return
	}

	for _, r := range results {
		event := log.Info()
		if r.Err != nil || len(r.FailedInstances) > 0 || len(r.FailedFirewalls) > 0 {
			event = log.Warn().Err(r.Err)
		}
		event.
			Str("project", r.Project).
			Int("deletedInstances", len(r.DeletedInstances)).
			Int("failedInstances", len(r.FailedInstances)).
			Int("deletedFirewalls", len(r.DeletedFirewalls)).
			Int("failedFirewalls", len(r.FailedFirewalls)).
			Msgf("Garbage collected %v/%v", r.Repository, r.Project)
	}
}
