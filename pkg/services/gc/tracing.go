package gc

import (
	"context"

	"github.com/estafette/estafette-ci-scheduler/pkg/api"
	"github.com/opentracing/opentracing-go"
)

// NewTracingService returns a new instance of a tracing Service.
func NewTracingService(s Service) Service {
	return &tracingService{s, "gc"}
}

type tracingService struct {
	Service Service
	prefix  string
}

func (s *tracingService) GarbageCollect(ctx context.Context) (results []ProjectResult, err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(s.prefix, "GarbageCollect"))
	defer func() { api.FinishSpanWithError(span, err) }()

	return s.Service.GarbageCollect(ctx)
}

func (s *tracingService) GarbageCollectProject(ctx context.Context, project api.GCProjectConfig) (result ProjectResult, err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(s.prefix, "GarbageCollectProject"))
	defer func() { api.FinishSpanWithError(span, err) }()

	return s.Service.GarbageCollectProject(ctx, project)
}

func (s *tracingService) SetProjects(projects []*api.GCProjectConfig) {
	s.Service.SetProjects(projects)
}
