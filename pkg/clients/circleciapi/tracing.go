package circleciapi

import (
	"context"

	"github.com/estafette/estafette-ci-scheduler/pkg/api"
	"github.com/opentracing/opentracing-go"
)

// NewTracingClient returns a new instance of a tracing Client.
func NewTracingClient(c Client) Client {
	return &tracingClient{c, "circleciapi"}
}

type tracingClient struct {
	Client Client
	prefix string
}

func (c *tracingClient) GetRecentBuilds(ctx context.Context, repository string) (builds []BuildSummary, err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(c.prefix, "GetRecentBuilds"))
	defer func() { api.FinishSpanWithError(span, err) }()

	return c.Client.GetRecentBuilds(ctx, repository)
}

func (c *tracingClient) GetRunningBuilds(ctx context.Context, repository string) (runningBuilds RunningBuilds, err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(c.prefix, "GetRunningBuilds"))
	defer func() { api.FinishSpanWithError(span, err) }()

	return c.Client.GetRunningBuilds(ctx, repository)
}
