package circleciapi

import (
	"context"
	"time"

	"github.com/estafette/estafette-ci-scheduler/pkg/api"
	"github.com/go-kit/kit/metrics"
)

// NewMetricsClient returns a new instance of a metrics Client.
func NewMetricsClient(c Client, requestCount metrics.Counter, requestLatency metrics.Histogram) Client {
	return &metricsClient{c, requestCount, requestLatency}
}

type metricsClient struct {
	Client         Client
	requestCount   metrics.Counter
	requestLatency metrics.Histogram
}

func (c *metricsClient) GetRecentBuilds(ctx context.Context, repository string) (builds []BuildSummary, err error) {
	defer func(begin time.Time) {
		api.UpdateMetrics(c.requestCount, c.requestLatency, "GetRecentBuilds", begin)
	}(time.Now())

	return c.Client.GetRecentBuilds(ctx, repository)
}

func (c *metricsClient) GetRunningBuilds(ctx context.Context, repository string) (runningBuilds RunningBuilds, err error) {
	defer func(begin time.Time) {
		api.UpdateMetrics(c.requestCount, c.requestLatency, "GetRunningBuilds", begin)
	}(time.Now())

	return c.Client.GetRunningBuilds(ctx, repository)
}
