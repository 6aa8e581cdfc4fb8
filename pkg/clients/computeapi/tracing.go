package computeapi

import (
	"context"

	"github.com/estafette/estafette-ci-scheduler/pkg/api"
	"github.com/opentracing/opentracing-go"
)

// NewTracingClient returns a new instance of a tracing Client.
func NewTracingClient(c Client) Client {
	return &tracingClient{c, "computeapi"}
}

type tracingClient struct {
	Client Client
	prefix string
}

func (c *tracingClient) ListInstances(ctx context.Context, project string, zone string) (instances []Instance, err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(c.prefix, "ListInstances"))
	defer func() { api.FinishSpanWithError(span, err) }()

	return c.Client.ListInstances(ctx, project, zone)
}

func (c *tracingClient) DeleteInstance(ctx context.Context, project string, zone string, name string) (err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(c.prefix, "DeleteInstance"))
	defer func() { api.FinishSpanWithError(span, err) }()

	return c.Client.DeleteInstance(ctx, project, zone, name)
}

func (c *tracingClient) ListFirewalls(ctx context.Context, project string) (firewalls []Firewall, err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(c.prefix, "ListFirewalls"))
	defer func() { api.FinishSpanWithError(span, err) }()

	return c.Client.ListFirewalls(ctx, project)
}

func (c *tracingClient) DeleteFirewall(ctx context.Context, project string, name string) (err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(c.prefix, "DeleteFirewall"))
	defer func() { api.FinishSpanWithError(span, err) }()

	return c.Client.DeleteFirewall(ctx, project, name)
}
