package computeapi

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

func (c *metricsClient) ListInstances(ctx context.Context, project string, zone string) (instances []Instance, err error) {
	defer func(begin time.Time) { api.UpdateMetrics(c.requestCount, c.requestLatency, "ListInstances", begin) }(time.Now())

	return c.Client.ListInstances(ctx, project, zone)
}

func (c *metricsClient) DeleteInstance(ctx context.Context, project string, zone string, name string) (err error) {
	defer func(begin time.Time) {
		api.UpdateMetrics(c.requestCount, c.requestLatency, "DeleteInstance", begin)
	}(time.Now())

	return c.Client.DeleteInstance(ctx, project, zone, name)
}

func (c *metricsClient) ListFirewalls(ctx context.Context, project string) (firewalls []Firewall, err error) {
	defer func(begin time.Time) { api.UpdateMetrics(c.requestCount, c.requestLatency, "ListFirewalls", begin) }(time.Now())

	return c.Client.ListFirewalls(ctx, project)
}

func (c *metricsClient) DeleteFirewall(ctx context.Context, project string, name string) (err error) {
	defer func(begin time.Time) {
		api.UpdateMetrics(c.requestCount, c.requestLatency, "DeleteFirewall", begin)
	}(time.Now())

	return c.Client.DeleteFirewall(ctx, project, name)
}
