package gc

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/estafette/estafette-ci-scheduler/pkg/api"
	"github.com/estafette/estafette-ci-scheduler/pkg/clients/circleciapi"
	"github.com/estafette/estafette-ci-scheduler/pkg/clients/computeapi"
	"github.com/go-kit/kit/metrics/discard"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
)

var (
	weaveProject = api.GCProjectConfig{Repository: "weaveworks/weave", Project: "weave-net-tests", Zone: "us-central1-a", GCFirewalls: true}
	scopeProject = api.GCProjectConfig{Repository: "weaveworks/scope", Project: "scope-integration-tests", Zone: "us-central1-a", GCFirewalls: false}
)

func TestGarbageCollectProject(t *testing.T) {
	t.Run("DeletesOnlyInstancesOfFinishedBuilds", func(t *testing.T) {

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		circleciapiClient := circleciapi.NewMockClient(ctrl)
		circleciapiClient.EXPECT().GetRunningBuilds(gomock.Any(), "weaveworks/scope").Return(circleciapi.RunningBuilds{99: true}, nil).Times(1)

		computeapiClient := computeapi.NewMockClient(ctrl)
		computeapiClient.
			EXPECT().
			ListInstances(gomock.Any(), "scope-integration-tests", "us-central1-a").
			Return(instances("host1-55-0", "host2-55-1", "host3-99-0"), nil).
			Times(1)
		computeapiClient.EXPECT().DeleteInstance(gomock.Any(), "scope-integration-tests", "us-central1-a", "host1-55-0").Return(nil).Times(1)
		computeapiClient.EXPECT().DeleteInstance(gomock.Any(), "scope-integration-tests", "us-central1-a", "host2-55-1").Return(nil).Times(1)
		computeapiClient.EXPECT().DeleteInstance(gomock.Any(), gomock.Any(), gomock.Any(), "host3-99-0").Times(0)
		computeapiClient.EXPECT().ListFirewalls(gomock.Any(), gomock.Any()).Times(0)

		service := NewService(getConfig(), circleciapiClient, computeapiClient, discard.NewCounter())

		// act
		result, err := service.GarbageCollectProject(context.Background(), scopeProject)

		assert.Nil(t, err)
		assert.Equal(t, []string{"host1-55-0", "host2-55-1"}, result.DeletedInstances)
		assert.Equal(t, 0, len(result.FailedInstances))
		assert.Equal(t, []int{99}, result.RunningBuilds)
	})

	t.Run("DeletesNothingIfRunningBuildsCannotBeRetrieved", func(t *testing.T) {

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		circleciapiClient := circleciapi.NewMockClient(ctrl)
		circleciapiClient.EXPECT().GetRunningBuilds(gomock.Any(), "weaveworks/scope").Return(nil, errors.New("timeout")).Times(1)

		computeapiClient := computeapi.NewMockClient(ctrl)
		computeapiClient.EXPECT().ListInstances(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
		computeapiClient.EXPECT().DeleteInstance(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
		computeapiClient.EXPECT().ListFirewalls(gomock.Any(), gomock.Any()).Times(0)
		computeapiClient.EXPECT().DeleteFirewall(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		service := NewService(getConfig(), circleciapiClient, computeapiClient, discard.NewCounter())

		// act
		result, err := service.GarbageCollectProject(context.Background(), scopeProject)

		assert.NotNil(t, err)
		assert.True(t, errors.Is(err, api.ErrUpstreamUnavailable))
		assert.Equal(t, 0, len(result.DeletedInstances))
		assert.NotEmpty(t, result.Error)
	})

	t.Run("ContinuesDeletingAfterAFailedDelete", func(t *testing.T) {

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		circleciapiClient := circleciapi.NewMockClient(ctrl)
		circleciapiClient.EXPECT().GetRunningBuilds(gomock.Any(), gomock.Any()).Return(circleciapi.RunningBuilds{}, nil).Times(1)

		computeapiClient := computeapi.NewMockClient(ctrl)
		computeapiClient.EXPECT().ListInstances(gomock.Any(), gomock.Any(), gomock.Any()).Return(instances("host1-55-0", "host2-55-1", "test-56-0-1"), nil).Times(1)
		computeapiClient.EXPECT().DeleteInstance(gomock.Any(), gomock.Any(), gomock.Any(), "host1-55-0").Return(errors.New("quota exceeded")).Times(1)
		computeapiClient.EXPECT().DeleteInstance(gomock.Any(), gomock.Any(), gomock.Any(), "host2-55-1").Return(nil).Times(1)
		computeapiClient.EXPECT().DeleteInstance(gomock.Any(), gomock.Any(), gomock.Any(), "test-56-0-1").Return(nil).Times(1)

		service := NewService(getConfig(), circleciapiClient, computeapiClient, discard.NewCounter())

		// act
		result, err := service.GarbageCollectProject(context.Background(), scopeProject)

		assert.Nil(t, err)
		assert.Equal(t, []string{"host2-55-1", "test-56-0-1"}, result.DeletedInstances)
		assert.Equal(t, []string{"host1-55-0"}, result.FailedInstances)
	})

	t.Run("IgnoresInstancesWithUnrecognizedNames", func(t *testing.T) {

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		circleciapiClient := circleciapi.NewMockClient(ctrl)
		circleciapiClient.EXPECT().GetRunningBuilds(gomock.Any(), gomock.Any()).Return(circleciapi.RunningBuilds{}, nil).Times(1)

		computeapiClient := computeapi.NewMockClient(ctrl)
		computeapiClient.EXPECT().ListInstances(gomock.Any(), gomock.Any(), gomock.Any()).Return(instances("gke-ci-pool-1a2b", "bastion", "host1-55"), nil).Times(1)
		computeapiClient.EXPECT().DeleteInstance(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		service := NewService(getConfig(), circleciapiClient, computeapiClient, discard.NewCounter())

		// act
		result, err := service.GarbageCollectProject(context.Background(), scopeProject)

		assert.Nil(t, err)
		assert.Equal(t, 0, len(result.DeletedInstances))
	})

	t.Run("DeletesFirewallsOfFinishedBuildsIfEnabled", func(t *testing.T) {

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		circleciapiClient := circleciapi.NewMockClient(ctrl)
		circleciapiClient.EXPECT().GetRunningBuilds(gomock.Any(), "weaveworks/weave").Return(circleciapi.RunningBuilds{99: true}, nil).Times(1)

		computeapiClient := computeapi.NewMockClient(ctrl)
		computeapiClient.EXPECT().ListInstances(gomock.Any(), "weave-net-tests", "us-central1-a").Return(instances(), nil).Times(1)
		computeapiClient.
			EXPECT().
			ListFirewalls(gomock.Any(), "weave-net-tests").
			Return(firewalls("default-allow-docker-55-0", "default-55-0-allow-weave-dns", "default-allow-ssh", "default-allow-docker-99-1"), nil).
			Times(1)
		computeapiClient.EXPECT().DeleteFirewall(gomock.Any(), "weave-net-tests", "default-allow-docker-55-0").Return(nil).Times(1)
		computeapiClient.EXPECT().DeleteFirewall(gomock.Any(), "weave-net-tests", "default-55-0-allow-weave-dns").Return(nil).Times(1)
		computeapiClient.EXPECT().DeleteFirewall(gomock.Any(), gomock.Any(), "default-allow-ssh").Times(0)
		computeapiClient.EXPECT().DeleteFirewall(gomock.Any(), gomock.Any(), "default-allow-docker-99-1").Times(0)

		service := NewService(getConfig(), circleciapiClient, computeapiClient, discard.NewCounter())

		// act
		result, err := service.GarbageCollectProject(context.Background(), weaveProject)

		assert.Nil(t, err)
		assert.Equal(t, []string{"default-allow-docker-55-0", "default-55-0-allow-weave-dns"}, result.DeletedFirewalls)
	})

	t.Run("DeletesInstancesEvenIfFirewallListingFails", func(t *testing.T) {

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		circleciapiClient := circleciapi.NewMockClient(ctrl)
		circleciapiClient.EXPECT().GetRunningBuilds(gomock.Any(), "weaveworks/weave").Return(circleciapi.RunningBuilds{99: true}, nil).Times(1)

		computeapiClient := computeapi.NewMockClient(ctrl)
		computeapiClient.EXPECT().ListInstances(gomock.Any(), "weave-net-tests", "us-central1-a").Return(instances("host1-55-0", "host3-99-0"), nil).Times(1)
		computeapiClient.EXPECT().DeleteInstance(gomock.Any(), "weave-net-tests", "us-central1-a", "host1-55-0").Return(nil).Times(1)
		computeapiClient.EXPECT().DeleteInstance(gomock.Any(), gomock.Any(), gomock.Any(), "host3-99-0").Times(0)
		computeapiClient.EXPECT().ListFirewalls(gomock.Any(), "weave-net-tests").Return(nil, errors.New("permission denied on firewalls.list")).Times(1)
		computeapiClient.EXPECT().DeleteFirewall(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		service := NewService(getConfig(), circleciapiClient, computeapiClient, discard.NewCounter())

		// act
		result, err := service.GarbageCollectProject(context.Background(), weaveProject)

		assert.True(t, errors.Is(err, api.ErrUpstreamUnavailable))
		assert.True(t, errors.Is(result.Err, api.ErrUpstreamUnavailable))
		assert.Equal(t, []string{"host1-55-0"}, result.DeletedInstances)
		assert.Equal(t, 0, len(result.DeletedFirewalls))
	})

	t.Run("DeletesNothingIfInstanceListingFails", func(t *testing.T) {

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		circleciapiClient := circleciapi.NewMockClient(ctrl)
		circleciapiClient.EXPECT().GetRunningBuilds(gomock.Any(), gomock.Any()).Return(circleciapi.RunningBuilds{}, nil).Times(1)

		computeapiClient := computeapi.NewMockClient(ctrl)
		computeapiClient.EXPECT().ListInstances(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("forbidden")).Times(1)
		computeapiClient.EXPECT().ListFirewalls(gomock.Any(), gomock.Any()).Times(0)
		computeapiClient.EXPECT().DeleteInstance(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
		computeapiClient.EXPECT().DeleteFirewall(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		service := NewService(getConfig(), circleciapiClient, computeapiClient, discard.NewCounter())

		// act
		_, err := service.GarbageCollectProject(context.Background(), weaveProject)

		assert.True(t, errors.Is(err, api.ErrUpstreamUnavailable))
	})

	t.Run("OnlyReportsResourcesInDryRun", func(t *testing.T) {

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		circleciapiClient := circleciapi.NewMockClient(ctrl)
		circleciapiClient.EXPECT().GetRunningBuilds(gomock.Any(), gomock.Any()).Return(circleciapi.RunningBuilds{}, nil).Times(1)

		computeapiClient := computeapi.NewMockClient(ctrl)
		computeapiClient.EXPECT().ListInstances(gomock.Any(), gomock.Any(), gomock.Any()).Return(instances("host1-55-0"), nil).Times(1)
		computeapiClient.EXPECT().ListFirewalls(gomock.Any(), gomock.Any()).Return(firewalls("default-allow-docker-55-0"), nil).Times(1)
		computeapiClient.EXPECT().DeleteInstance(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
		computeapiClient.EXPECT().DeleteFirewall(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		config := getConfig()
		config.DryRun = true
		service := NewService(config, circleciapiClient, computeapiClient, discard.NewCounter())

		// act
		result, err := service.GarbageCollectProject(context.Background(), weaveProject)

		assert.Nil(t, err)
		assert.True(t, result.DryRun)
		assert.Equal(t, []string{"host1-55-0"}, result.DeletedInstances)
		assert.Equal(t, []string{"default-allow-docker-55-0"}, result.DeletedFirewalls)
	})

	t.Run("DeletesNothingOnSecondPassWithoutStateChange", func(t *testing.T) {

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		circleciapiClient := circleciapi.NewMockClient(ctrl)
		circleciapiClient.EXPECT().GetRunningBuilds(gomock.Any(), gomock.Any()).Return(circleciapi.RunningBuilds{99: true}, nil).Times(2)

		fleet := newFakeFleet(
			[]string{"host1-55-0", "host2-55-1", "host3-99-0", "bastion"},
			[]string{"default-allow-docker-55-0", "default-allow-docker-99-0", "default-allow-ssh"},
		)

		service := NewService(getConfig(), circleciapiClient, fleet, discard.NewCounter())

		first, err := service.GarbageCollectProject(context.Background(), weaveProject)
		assert.Nil(t, err)
		assert.Equal(t, 2, len(first.DeletedInstances))
		assert.Equal(t, 1, len(first.DeletedFirewalls))

		// act
		second, err := service.GarbageCollectProject(context.Background(), weaveProject)

		assert.Nil(t, err)
		assert.Equal(t, 0, len(second.DeletedInstances))
		assert.Equal(t, 0, len(second.DeletedFirewalls))
		assert.Equal(t, []string{"bastion", "host3-99-0"}, fleet.instanceNames())
		assert.Equal(t, []string{"default-allow-docker-99-0", "default-allow-ssh"}, fleet.firewallNames())
	})
}

func TestGarbageCollect(t *testing.T) {
	t.Run("ReconcilesOtherProjectsIfOneFails", func(t *testing.T) {

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		circleciapiClient := circleciapi.NewMockClient(ctrl)
		circleciapiClient.EXPECT().GetRunningBuilds(gomock.Any(), "weaveworks/weave").Return(nil, errors.New("circleci is down")).Times(1)
		circleciapiClient.EXPECT().GetRunningBuilds(gomock.Any(), "weaveworks/scope").Return(circleciapi.RunningBuilds{}, nil).Times(1)

		computeapiClient := computeapi.NewMockClient(ctrl)
		computeapiClient.EXPECT().ListInstances(gomock.Any(), "scope-integration-tests", "us-central1-a").Return(instances("host1-12-0"), nil).Times(1)
		computeapiClient.EXPECT().DeleteInstance(gomock.Any(), "scope-integration-tests", "us-central1-a", "host1-12-0").Return(nil).Times(1)
		computeapiClient.EXPECT().ListInstances(gomock.Any(), "weave-net-tests", gomock.Any()).Times(0)

		config := getConfig()
		config.Projects = []*api.GCProjectConfig{&weaveProject, &scopeProject}
		service := NewService(config, circleciapiClient, computeapiClient, discard.NewCounter())

		// act
		results, err := service.GarbageCollect(context.Background())

		assert.Nil(t, err)
		if assert.Equal(t, 2, len(results)) {
			assert.Equal(t, "scope-integration-tests", results[0].Project)
			assert.Nil(t, results[0].Err)
			assert.Equal(t, []string{"host1-12-0"}, results[0].DeletedInstances)
			assert.Equal(t, "weave-net-tests", results[1].Project)
			assert.True(t, errors.Is(results[1].Err, api.ErrUpstreamUnavailable))
		}
	})

	t.Run("ReconcilesMoreProjectsThanTheDefaultQueuesHold", func(t *testing.T) {

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		circleciapiClient := circleciapi.NewMockClient(ctrl)
		circleciapiClient.EXPECT().GetRunningBuilds(gomock.Any(), gomock.Any()).Return(nil, errors.New("circleci is down")).Times(250)

		computeapiClient := computeapi.NewMockClient(ctrl)

		config := getConfig()
		config.Parallelism = 1
		for i := 0; i < 250; i++ {
			config.Projects = append(config.Projects, &api.GCProjectConfig{Repository: fmt.Sprintf("weaveworks/repo-%03d", i), Project: fmt.Sprintf("project-%03d", i), Zone: "us-central1-a"})
		}
		service := NewService(config, circleciapiClient, computeapiClient, discard.NewCounter())

		done := make(chan []ProjectResult, 1)

		// act
		go func() {
			results, _ := service.GarbageCollect(context.Background())
			done <- results
		}()

		select {
		case results := <-done:
			assert.Equal(t, 250, len(results))
		case <-time.After(10 * time.Second):
			t.Fatal("garbage collection didn't finish for 250 projects")
		}
	})

	t.Run("ReturnsEmptyResultsWithoutProjects", func(t *testing.T) {

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		circleciapiClient := circleciapi.NewMockClient(ctrl)
		computeapiClient := computeapi.NewMockClient(ctrl)

		service := NewService(getConfig(), circleciapiClient, computeapiClient, discard.NewCounter())

		// act
		results, err := service.GarbageCollect(context.Background())

		assert.Nil(t, err)
		assert.Equal(t, 0, len(results))
	})

	t.Run("UsesProjectsSetAfterConstruction", func(t *testing.T) {

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		circleciapiClient := circleciapi.NewMockClient(ctrl)
		circleciapiClient.EXPECT().GetRunningBuilds(gomock.Any(), "weaveworks/scope").Return(circleciapi.RunningBuilds{}, nil).Times(1)

		computeapiClient := computeapi.NewMockClient(ctrl)
		computeapiClient.EXPECT().ListInstances(gomock.Any(), "scope-integration-tests", "us-central1-a").Return(instances(), nil).Times(1)

		config := getConfig()
		config.Projects = []*api.GCProjectConfig{&weaveProject}
		service := NewService(config, circleciapiClient, computeapiClient, discard.NewCounter())

		// act
		service.SetProjects([]*api.GCProjectConfig{&scopeProject})
		results, err := service.GarbageCollect(context.Background())

		assert.Nil(t, err)
		if assert.Equal(t, 1, len(results)) {
			assert.Equal(t, "scope-integration-tests", results[0].Project)
		}
	})
}

func getConfig() *api.GCConfig {
	config := &api.GCConfig{}
	config.SetDefaults()
	config.Timeout = time.Minute
	return config
}

func instances(names ...string) []computeapi.Instance {
	instances := make([]computeapi.Instance, 0, len(names))
	for _, n := range names {
		instances = append(instances, computeapi.Instance{Name: n, Zone: "us-central1-a", Status: "RUNNING"})
	}
	return instances
}

func firewalls(names ...string) []computeapi.Firewall {
	firewalls := make([]computeapi.Firewall, 0, len(names))
	for _, n := range names {
		firewalls = append(firewalls, computeapi.Firewall{Name: n, Network: "default"})
	}
	return firewalls
}

// fakeFleet is a computeapi.Client whose deletions remove resources from later listings
type fakeFleet struct {
	mutex     sync.Mutex
	instances map[string]bool
	firewalls map[string]bool
}

func newFakeFleet(instanceNames, firewallNames []string) *fakeFleet {
	f := &fakeFleet{instances: map[string]bool{}, firewalls: map[string]bool{}}
	for _, n := range instanceNames {
		f.instances[n] = true
	}
	for _, n := range firewallNames {
		f.firewalls[n] = true
	}
	return f
}

func (f *fakeFleet) ListInstances(ctx context.Context, project, zone string) ([]computeapi.Instance, error) {
	return instances(f.instanceNames()...), nil
}

func (f *fakeFleet) DeleteInstance(ctx context.Context, project, zone, name string) error {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	delete(f.instances, name)
	return nil
}

func (f *fakeFleet) ListFirewalls(ctx context.Context, project string) ([]computeapi.Firewall, error) {
	return firewalls(f.firewallNames()...), nil
}

func (f *fakeFleet) DeleteFirewall(ctx context.Context, project, name string) error {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	delete(f.firewalls, name)
	return nil
}

func (f *fakeFleet) instanceNames() []string {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	return sortedKeys(f.instances)
}

func (f *fakeFleet) firewallNames() []string {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	return sortedKeys(f.firewalls)
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
