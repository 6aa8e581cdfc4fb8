package gc

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/estafette/estafette-ci-scheduler/pkg/api"
	"github.com/estafette/estafette-ci-scheduler/pkg/clients/circleciapi"
	"github.com/estafette/estafette-ci-scheduler/pkg/clients/computeapi"
	"github.com/estafette/estafette-ci-scheduler/pkg/pool"
	"github.com/go-kit/kit/metrics"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Service deletes compute instances and firewall rules whose build has finished
//
//go:generate mockgen -package=gc -destination ./mock.go -source=service.go
type Service interface {
	GarbageCollect(ctx context.Context) (results []ProjectResult, err error)
	GarbageCollectProject(ctx context.Context, project api.GCProjectConfig) (result ProjectResult, err error)
	SetProjects(projects []*api.GCProjectConfig)
}

// NewService returns a gc.Service
func NewService(config *api.GCConfig, circleciapiClient circleciapi.Client, computeapiClient computeapi.Client, resourceCounter metrics.Counter) Service {
	s := &service{
		config:            config,
		circleciapiClient: circleciapiClient,
		computeapiClient:  computeapiClient,
		resourceCounter:   resourceCounter,
	}
	s.SetProjects(config.Projects)

	return s
}

type service struct {
	config            *api.GCConfig
	circleciapiClient circleciapi.Client
	computeapiClient  computeapi.Client
	resourceCounter   metrics.Counter

	projectsMutex sync.RWMutex
	projects      []api.GCProjectConfig
}

// GarbageCollect runs a pass over every configured project; projects are independent, the failure of one doesn't stop the others
func (s *service) GarbageCollect(ctx context.Context) (results []ProjectResult, err error) {

	projects := s.getProjects()
	if len(projects) == 0 {
		return []ProjectResult{}, nil
	}

	worker := func(ctx context.Context, project api.GCProjectConfig) (ProjectResult, error) {
		projectCtx, cancel := context.WithTimeout(ctx, s.config.Timeout)
		defer cancel()

		result, err := s.GarbageCollectProject(projectCtx, project)
		if err != nil {
			log.Warn().Err(err).Msgf("Garbage collection for %v aborted", project.String())
		}

		// failures travel inside the result so the project's partial outcome isn't lost
		return result, nil
	}

	// queues hold every project, so sending all jobs before draining the results never blocks
	p, err := pool.NewPool(ctx, pool.NewConfig(s.config.Parallelism, len(projects), len(projects), 0, true, worker))
	if err != nil {
		return nil, errors.Wrap(err, "creating garbage collection pool failed")
	}

	p.SendJobs(projects...)

	results = make([]ProjectResult, 0, len(projects))
	for result := range p.Close() {
		results = append(results, result)
	}
	for _, jobErr := range p.Errors() {
		project, _ := jobErr.Job.(api.GCProjectConfig)
		results = append(results, ProjectResult{
			Repository: project.Repository,
			Project:    project.Project,
			Zone:       project.Zone,
			Error:      jobErr.Err.Error(),
			Err:        jobErr.Err,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Project != results[j].Project {
			return results[i].Project < results[j].Project
		}
		return results[i].Repository < results[j].Repository
	})

	return results, nil
}

// GarbageCollectProject deletes the instances, and if enabled the firewall rules, of builds that aren't running anymore;
// if the running builds can't be retrieved nothing is deleted
func (s *service) GarbageCollectProject(ctx context.Context, project api.GCProjectConfig) (result ProjectResult, err error) {

	result = ProjectResult{
		Repository: project.Repository,
		Project:    project.Project,
		Zone:       project.Zone,
		DryRun:     s.config.DryRun,
	}
	defer func() {
		if err != nil {
			result.Err = err
			result.Error = err.Error()
		}
	}()

	log.Info().Msgf("Garbage collecting %v", project.String())

	runningBuilds, err := s.circleciapiClient.GetRunningBuilds(ctx, project.Repository)
	if err != nil {
		return result, errors.Wrapf(withUpstream(err), "retrieving running builds for %v failed", project.Repository)
	}
	result.RunningBuilds = sortedBuilds(runningBuilds)
	log.Debug().Ints("runningBuilds", result.RunningBuilds).Msgf("Running builds for %v", project.Repository)

	instances, err := s.computeapiClient.ListInstances(ctx, project.Project, project.Zone)
	if err != nil {
		return result, errors.Wrapf(withUpstream(err), "listing instances in %v/%v failed", project.Project, project.Zone)
	}

	// instances are grouped by build, so all hosts of a finished build go together
	instancesByBuild := map[int][]string{}
	for _, i := range instances {
		resourceName, ok := MatchFirst(InstancePatterns, i.Name)
		if !ok {
			continue
		}
		instancesByBuild[resourceName.BuildID] = append(instancesByBuild[resourceName.BuildID], i.Name)
	}

	builds := make([]int, 0, len(instancesByBuild))
	for build := range instancesByBuild {
		builds = append(builds, build)
	}
	sort.Ints(builds)

	for _, build := range builds {
		if runningBuilds[build] {
			continue
		}
		for _, name := range instancesByBuild[build] {
			if s.delete(ctx, project, "instance", name, func(ctx context.Context) error {
				return s.computeapiClient.DeleteInstance(ctx, project.Project, project.Zone, name)
			}) {
				result.DeletedInstances = append(result.DeletedInstances, name)
			} else {
				result.FailedInstances = append(result.FailedInstances, name)
			}
		}
	}

	if !project.GCFirewalls {
		return result, nil
	}

	// a failed firewall listing only aborts the firewall half, instances are already handled
	firewalls, err := s.computeapiClient.ListFirewalls(ctx, project.Project)
	if err != nil {
		return result, errors.Wrapf(withUpstream(err), "listing firewalls in %v failed", project.Project)
	}

	for _, f := range firewalls {
		resourceName, ok := MatchFirst(FirewallPatterns, f.Name)
		if !ok || runningBuilds[resourceName.BuildID] {
			continue
		}
		name := f.Name
		if s.delete(ctx, project, "firewall", name, func(ctx context.Context) error {
			return s.computeapiClient.DeleteFirewall(ctx, project.Project, name)
		}) {
			result.DeletedFirewalls = append(result.DeletedFirewalls, name)
		} else {
			result.FailedFirewalls = append(result.FailedFirewalls, name)
		}
	}

	return result, nil
}

// delete runs a single deletion and reports whether it succeeded; a failure is logged and counted, never returned
func (s *service) delete(ctx context.Context, project api.GCProjectConfig, kind, name string, deleteFunc func(ctx context.Context) error) bool {
	if s.config.DryRun {
		log.Info().Msgf("Dry run, not deleting %v %v in %v", kind, name, project.Project)
		s.countResource(project, kind, "dry_run")
		return true
	}

	log.Info().Msgf("Deleting %v %v in %v", kind, name, project.Project)
	if err := deleteFunc(ctx); err != nil {
		log.Warn().Err(err).Msgf("Failed deleting %v %v in %v", kind, name, project.Project)
		s.countResource(project, kind, "failed")
		return false
	}

	s.countResource(project, kind, "deleted")
	return true
}

func (s *service) countResource(project api.GCProjectConfig, kind, outcome string) {
	if s.resourceCounter == nil {
		return
	}
	s.resourceCounter.With("project", project.Project, "kind", kind, "outcome", outcome).Add(1)
}

// SetProjects replaces the projects to garbage collect, used when the configuration is reloaded
func (s *service) SetProjects(projects []*api.GCProjectConfig) {
	copied := make([]api.GCProjectConfig, 0, len(projects))
	for _, p := range projects {
		if p != nil {
			copied = append(copied, *p)
		}
	}

	s.projectsMutex.Lock()
	defer s.projectsMutex.Unlock()
	s.projects = copied
}

func (s *service) getProjects() []api.GCProjectConfig {
	s.projectsMutex.RLock()
	defer s.projectsMutex.RUnlock()
	return append([]api.GCProjectConfig(nil), s.projects...)
}

func sortedBuilds(runningBuilds circleciapi.RunningBuilds) []int {
	builds := make([]int, 0, len(runningBuilds))
	for build, running := range runningBuilds {
		if running {
			builds = append(builds, build)
		}
	}
	sort.Ints(builds)
	return builds
}

// withUpstream marks an error as an upstream failure unless it already is one
func withUpstream(err error) error {
	if err == nil || errors.Is(err, api.ErrUpstreamUnavailable) {
		return err
	}
	return fmt.Errorf("%w: %v", api.ErrUpstreamUnavailable, err)
}
