package circleciapi

import (
	"context"

	"github.com/estafette/estafette-ci-scheduler/pkg/api"
)

// NewLoggingClient returns a new instance of a logging Client.
func NewLoggingClient(c Client) Client {
	return &loggingClient{c, "circleciapi"}
}

type loggingClient struct {
	Client Client
	prefix string
}

func (c *loggingClient) GetRecentBuilds(ctx context.Context, repository string) (builds []BuildSummary, err error) {
	defer func() { api.HandleLogError(c.prefix, "Client", "GetRecentBuilds", err) }()

	return c.Client.GetRecentBuilds(ctx, repository)
}

func (c *loggingClient) GetRunningBuilds(ctx context.Context, repository string) (runningBuilds RunningBuilds, err error) {
	defer func() { api.HandleLogError(c.prefix, "Client", "GetRunningBuilds", err) }()

	return c.Client.GetRunningBuilds(ctx, repository)
}
