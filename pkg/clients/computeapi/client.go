package computeapi

import (
	"context"
	"net/http"
	"path"

	"github.com/estafette/estafette-ci-scheduler/pkg/api"
	"github.com/pkg/errors"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/compute/v1"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// Client lists and deletes compute engine instances and firewall rules
//
//go:generate mockgen -package=computeapi -destination ./mock.go -source=client.go
type Client interface {
	ListInstances(ctx context.Context, project, zone string) (instances []Instance, err error)
	DeleteInstance(ctx context.Context, project, zone, name string) (err error)
	ListFirewalls(ctx context.Context, project string) (firewalls []Firewall, err error)
	DeleteFirewall(ctx context.Context, project, name string) (err error)
}

// NewComputeService creates a compute api service using the configured credentials file, or application default credentials otherwise
func NewComputeService(ctx context.Context, config *api.ComputeConfig) (*compute.Service, error) {
	if config.CredentialsFile != "" {
		return compute.NewService(ctx, option.WithCredentialsFile(config.CredentialsFile))
	}

	httpClient, err := google.DefaultClient(ctx, compute.ComputeScope)
	if err != nil {
		return nil, errors.Wrap(err, "creating google default client failed")
	}

	return compute.NewService(ctx, option.WithHTTPClient(httpClient))
}

// NewClient returns a new computeapi.Client
func NewClient(config *api.APIConfig, computeService *compute.Service) Client {
	if config == nil || config.Integrations == nil || config.Integrations.Compute == nil || !config.Integrations.Compute.Enable {
		return &client{
			enabled: false,
		}
	}

	return &client{
		enabled: true,
		service: computeService,
	}
}

type client struct {
	enabled bool
	service *compute.Service
}

func (c *client) ListInstances(ctx context.Context, project, zone string) (instances []Instance, err error) {
	instances = make([]Instance, 0)
	if !c.enabled {
		return
	}

	err = c.service.Instances.List(project, zone).Fields("items(name,zone,status,creationTimestamp)", "nextPageToken").Pages(ctx, func(page *compute.InstanceList) error {
		for _, i := range page.Items {
			instances = append(instances, Instance{
				Name:              i.Name,
				Zone:              path.Base(i.Zone),
				Status:            i.Status,
				CreationTimestamp: i.CreationTimestamp,
			})
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(api.ErrUpstreamUnavailable, "listing instances in %v/%v failed: %v", project, zone, err)
	}

	return instances, nil
}

// DeleteInstance starts deletion of an instance; an instance that's already gone counts as deleted
func (c *client) DeleteInstance(ctx context.Context, project, zone, name string) (err error) {
	if !c.enabled {
		return
	}

	_, err = c.service.Instances.Delete(project, zone, name).Context(ctx).Do()
	if isNotFound(err) {
		return nil
	}
	if err != nil {
		return errors.Wrapf(api.ErrUpstreamUnavailable, "deleting instance %v in %v/%v failed: %v", name, project, zone, err)
	}

	return nil
}

func (c *client) ListFirewalls(ctx context.Context, project string) (firewalls []Firewall, err error) {
	firewalls = make([]Firewall, 0)
	if !c.enabled {
		return
	}

	err = c.service.Firewalls.List(project).Fields("items(name,network,creationTimestamp)", "nextPageToken").Pages(ctx, func(page *compute.FirewallList) error {
		for _, f := range page.Items {
			firewalls = append(firewalls, Firewall{
				Name:              f.Name,
				Network:           path.Base(f.Network),
				CreationTimestamp: f.CreationTimestamp,
			})
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(api.ErrUpstreamUnavailable, "listing firewalls in %v failed: %v", project, err)
	}

	return firewalls, nil
}

// DeleteFirewall starts deletion of a firewall rule; a rule that's already gone counts as deleted
func (c *client) DeleteFirewall(ctx context.Context, project, name string) (err error) {
	if !c.enabled {
		return
	}

	_, err = c.service.Firewalls.Delete(project, name).Context(ctx).Do()
	if isNotFound(err) {
		return nil
	}
	if err != nil {
		return errors.Wrapf(api.ErrUpstreamUnavailable, "deleting firewall %v in %v failed: %v", name, project, err)
	}

	return nil
}

func isNotFound(err error) bool {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code == http.StatusNotFound
	}
	return false
}
