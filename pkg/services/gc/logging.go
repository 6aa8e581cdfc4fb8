package gc

import (
	"context"

	"github.com/estafette/estafette-ci-scheduler/pkg/api"
)

// NewLoggingService returns a new instance of a logging Service.
func NewLoggingService(s Service) Service {
	return &loggingService{s, "gc"}
}

type loggingService struct {
	Service Service
	prefix  string
}

func (s *loggingService) GarbageCollect(ctx context.Context) (results []ProjectResult, err error) {
	defer func() { api.HandleLogError(s.prefix, "Service", "GarbageCollect", err) }()

	return s.Service.GarbageCollect(ctx)
}

func (s *loggingService) GarbageCollectProject(ctx context.Context, project api.GCProjectConfig) (result ProjectResult, err error) {
	defer func() { api.HandleLogError(s.prefix, "Service", "GarbageCollectProject", err) }()

	return s.Service.GarbageCollectProject(ctx, project)
}

func (s *loggingService) SetProjects(projects []*api.GCProjectConfig) {
	s.Service.SetProjects(projects)
}
