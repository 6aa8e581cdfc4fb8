package gc

import (
	"context"
	"time"

	"github.com/estafette/estafette-ci-scheduler/pkg/api"
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

func (s *metricsService) GarbageCollect(ctx context.Context) (results []ProjectResult, err error) {
	defer func(begin time.Time) {
		api.UpdateMetrics(s.requestCount, s.requestLatency, "GarbageCollect", begin)
	}(time.Now())

	return s.Service.GarbageCollect(ctx)
}

func (s *metricsService) GarbageCollectProject(ctx context.Context, project api.GCProjectConfig) (result ProjectResult, err error) {
	defer func(begin time.Time) {
		api.UpdateMetrics(s.requestCount, s.requestLatency, "GarbageCollectProject", begin)
	}(time.Now())

	return s.Service.GarbageCollectProject(ctx, project)
}

func (s *metricsService) SetProjects(projects []*api.GCProjectConfig) {
	s.Service.SetProjects(projects)
}
