package circleciapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/estafette/estafette-ci-scheduler/pkg/api"
	"github.com/opentracing-contrib/go-stdlib/nethttp"
	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"
	"github.com/sethgrid/pester"
)

// Client retrieves build status from the CircleCI v1 api
//
//go:generate mockgen -package=circleciapi -destination ./mock.go -source=client.go
type Client interface {
	GetRecentBuilds(ctx context.Context, repository string) (builds []BuildSummary, err error)
	GetRunningBuilds(ctx context.Context, repository string) (runningBuilds RunningBuilds, err error)
}

// NewClient returns a new circleciapi.Client
func NewClient(config *api.CircleCIConfig) Client {
	return &client{
		config: config,
	}
}

type client struct {
	config *api.CircleCIConfig
}

// GetRecentBuilds returns the most recent builds of a repository, in owner/name form
func (c *client) GetRecentBuilds(ctx context.Context, repository string) (builds []BuildSummary, err error) {

	if strings.Count(repository, "/") != 1 {
		return nil, errors.Wrapf(api.ErrInvalidArgument, "repository %v is not in owner/name form", repository)
	}

	requestURL := fmt.Sprintf("%v/project/%v", strings.TrimSuffix(c.config.APIURL, "/"), repository)

	body, err := c.getRequest(ctx, requestURL)
	if err != nil {
		return nil, errors.Wrapf(err, "retrieving builds for repository %v failed", repository)
	}

	// unmarshal json body
	err = json.Unmarshal(body, &builds)
	if err != nil {
		return nil, errors.Wrapf(api.ErrUpstreamUnavailable, "unmarshalling builds for repository %v failed: %v", repository, err)
	}

	return builds, nil
}

// GetRunningBuilds returns the build numbers of the recent builds that have no stop time
func (c *client) GetRunningBuilds(ctx context.Context, repository string) (runningBuilds RunningBuilds, err error) {

	builds, err := c.GetRecentBuilds(ctx, repository)
	if err != nil {
		return nil, err
	}

	runningBuilds = RunningBuilds{}
	for _, b := range builds {
		if b.IsRunning() {
			runningBuilds[b.BuildNum] = true
		}
	}

	return runningBuilds, nil
}

func (c *client) getRequest(ctx context.Context, requestURL string) (body []byte, err error) {

	// create client, in order to add headers
	client := pester.NewExtendedClient(&http.Client{Transport: &nethttp.Transport{}})
	client.MaxRetries = 3
	client.Backoff = pester.ExponentialJitterBackoff
	client.KeepLog = true
	client.Timeout = c.config.Timeout

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, err
	}

	span := opentracing.SpanFromContext(ctx)
	var ht *nethttp.Tracer
	if span != nil {
		// collect additional information on setting up connections
		request, ht = nethttp.TraceRequest(span.Tracer(), request)
	}

	// add headers
	request.Header.Add("Accept", "application/json")
	if c.config.Token != "" {
		request.Header.Add("Circle-Token", c.config.Token)
	}

	// perform actual request
	response, err := client.Do(request)
	if err != nil {
		return nil, errors.Wrap(api.ErrUpstreamUnavailable, err.Error())
	}
	defer response.Body.Close()
	if ht != nil {
		ht.Finish()
	}

	body, err = io.ReadAll(response.Body)
	if err != nil {
		return nil, errors.Wrap(api.ErrUpstreamUnavailable, err.Error())
	}

	if response.StatusCode != http.StatusOK {
		return nil, errors.Wrapf(api.ErrUpstreamUnavailable, "circleci responded with status code %v: %v", response.StatusCode, string(body))
	}

	return body, nil
}
