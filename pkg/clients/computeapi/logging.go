package computeapi

import (
	"context"

	"github.com/estafette/estafette-ci-scheduler/pkg/api"
)

// NewLoggingClient returns a new instance of a logging Client.
func NewLoggingClient(c Client) Client {
	return &loggingClient{c, "computeapi"}
}

type loggingClient struct {
	Client Client
	prefix string
}

func (c *loggingClient) ListInstances(ctx context.Context, project string, zone string) (instances []Instance, err error) {
	defer func() { api.HandleLogError(c.prefix, "Client", "ListInstances", err) }()

	return c.Client.ListInstances(ctx, project, zone)
}

func (c *loggingClient) DeleteInstance(ctx context.Context, project string, zone string, name string) (err error) {
	defer func() { api.HandleLogError(c.prefix, "Client", "DeleteInstance", err) }()

	return c.Client.DeleteInstance(ctx, project, zone, name)
}

func (c *loggingClient) ListFirewalls(ctx context.Context, project string) (firewalls []Firewall, err error) {
	defer func() { api.HandleLogError(c.prefix, "Client", "ListFirewalls", err) }()

	return c.Client.ListFirewalls(ctx, project)
}

func (c *loggingClient) DeleteFirewall(ctx context.Context, project string, name string) (err error) {
	defer func() { api.HandleLogError(c.prefix, "Client", "DeleteFirewall", err) }()

	return c.Client.DeleteFirewall(ctx, project, name)
}
