package gc

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
)

func TestJanitorRun(t *testing.T) {
	t.Run("GarbageCollectsImmediately", func(t *testing.T) {

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		service := NewMockService(ctrl)
		service.
			EXPECT().
			GarbageCollect(gomock.Any()).
			DoAndReturn(func(ctx context.Context) ([]ProjectResult, error) {
				cancel()
				return []ProjectResult{{Repository: "weaveworks/scope", Project: "scope-integration-tests", DeletedInstances: []string{"host1-55-0"}}}, nil
			}).
			Times(1)

		janitor := NewJanitor(service, time.Hour)
		done := make(chan struct{})

		// act
		go func() {
			janitor.Run(ctx)
			close(done)
		}()

		select {
		case <-done:
		case <-time.After(5 * time.Second):
			t.Fatal("janitor didn't stop after its context was cancelled")
		}
	})

	t.Run("KeepsRunningAfterAFailedPass", func(t *testing.T) {

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		calls := 0
		service := NewMockService(ctrl)
		service.
			EXPECT().
			GarbageCollect(gomock.Any()).
			DoAndReturn(func(ctx context.Context) ([]ProjectResult, error) {
				calls++
				if calls >= 3 {
					cancel()
				}
				return nil, errors.New("pool failed")
			}).
			MinTimes(3)

		janitor := NewJanitor(service, 10*time.Millisecond)

		// act
		janitor.Run(ctx)

		assert.GreaterOrEqual(t, calls, 3)
	})
}
