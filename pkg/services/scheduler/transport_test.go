package scheduler

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/estafette/estafette-ci-scheduler/pkg/api"
	"github.com/estafette/estafette-ci-scheduler/pkg/clients/database"
	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestRecordRuntimeHandler(t *testing.T) {
	t.Run("ReturnsNoContentForTestNameWithSlashes", func(t *testing.T) {

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service := NewMockService(ctrl)
		service.EXPECT().RecordRuntime(gomock.Any(), "integration/sub/100_cross_hosts_test.sh", 42.5).Return(nil).Times(1)

		router := getRouter(service)
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodPost, "/record/integration/sub/100_cross_hosts_test.sh/42.5", nil)

		// act
		router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusNoContent, recorder.Code)
	})

	t.Run("ReturnsBadRequestForMalformedRuntime", func(t *testing.T) {

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service := NewMockService(ctrl)
		service.EXPECT().RecordRuntime(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		router := getRouter(service)
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodPost, "/record/a_test.sh/fast", nil)

		// act
		router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("ReturnsBadRequestForMissingTestName", func(t *testing.T) {

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service := NewMockService(ctrl)
		service.EXPECT().RecordRuntime(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		router := getRouter(service)
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodPost, "/record/12", nil)

		// act
		router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("ReturnsBadRequestIfServiceRejectsRuntime", func(t *testing.T) {

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service := NewMockService(ctrl)
		service.EXPECT().RecordRuntime(gomock.Any(), "a_test.sh", -3.0).Return(pkgerrors.Wrap(api.ErrInvalidArgument, "negative")).Times(1)

		router := getRouter(service)
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodPost, "/record/a_test.sh/-3", nil)

		// act
		router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("ReturnsInternalServerErrorIfStoreFails", func(t *testing.T) {

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service := NewMockService(ctrl)
		service.EXPECT().RecordRuntime(gomock.Any(), "a_test.sh", 3.0).Return(errors.New("connection refused")).Times(1)

		router := getRouter(service)
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodPost, "/record/a_test.sh/3", nil)

		// act
		router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusInternalServerError, recorder.Code)
		body, err := io.ReadAll(recorder.Body)
		assert.Nil(t, err)
		assert.False(t, strings.Contains(string(body), "connection refused"))
	})
}

func TestGetShardHandler(t *testing.T) {
	t.Run("ReturnsTestsOfShard", func(t *testing.T) {

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service := NewMockService(ctrl)
		service.
			EXPECT().
			GetShard(gomock.Any(), "circle-1234", 3, 1, []string{"a_test.sh", "b_test.sh"}).
			Return([]string{"b_test.sh"}, nil).
			Times(1)

		router := getRouter(service)
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodPost, "/schedule/circle-1234/3/1", strings.NewReader(`{"tests": ["a_test.sh", "b_test.sh"]}`))

		// act
		router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.JSONEq(t, `{"tests": ["b_test.sh"]}`, recorder.Body.String())
	})

	t.Run("ReturnsEmptyListAsJSONArray", func(t *testing.T) {

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service := NewMockService(ctrl)
		service.EXPECT().GetShard(gomock.Any(), "circle-1234", 3, 2, gomock.Any()).Return([]string{}, nil).Times(1)

		router := getRouter(service)
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodPost, "/schedule/circle-1234/3/2", strings.NewReader(`{"tests": ["a_test.sh"]}`))

		// act
		router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.JSONEq(t, `{"tests": []}`, recorder.Body.String())
	})

	t.Run("ReturnsBadRequestForNonNumericShardCount", func(t *testing.T) {

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service := NewMockService(ctrl)
		service.EXPECT().GetShard(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		router := getRouter(service)
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodPost, "/schedule/circle-1234/three/1", strings.NewReader(`{"tests": []}`))

		// act
		router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("ReturnsBadRequestForMalformedBody", func(t *testing.T) {

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service := NewMockService(ctrl)
		service.EXPECT().GetShard(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		router := getRouter(service)
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodPost, "/schedule/circle-1234/3/1", strings.NewReader(`tests: a_test.sh`))

		// act
		router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("ReturnsNotFoundForShardOutOfRange", func(t *testing.T) {

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service := NewMockService(ctrl)
		service.
			EXPECT().
			GetShard(gomock.Any(), "circle-1234", 3, 5, gomock.Any()).
			Return(nil, pkgerrors.Wrap(api.ErrNotFound, "shard index 5 is out of range for 3 shards")).
			Times(1)

		router := getRouter(service)
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodPost, "/schedule/circle-1234/3/5", strings.NewReader(`{"tests": ["a_test.sh"]}`))

		// act
		router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})
}

func TestGetTestCostHandler(t *testing.T) {
	t.Run("ReturnsCostWithParallelism", func(t *testing.T) {

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service := NewMockService(ctrl)
		service.
			EXPECT().
			GetTestCost(gomock.Any(), "integration/foo_4_test.sh").
			Return(&database.TestCost{TestName: "integration/foo_4_test.sh", EWMARuntime: 2.5, RunCount: 7}, nil).
			Times(1)

		router := getRouter(service)
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/api/tests/integration/foo_4_test.sh", nil)

		// act
		router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.JSONEq(t, `{"testName": "integration/foo_4_test.sh", "ewmaRuntime": 2.5, "runCount": 7, "parallelism": 4, "cost": 10}`, recorder.Body.String())
	})

	t.Run("ReturnsNotFoundForUnknownTest", func(t *testing.T) {

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service := NewMockService(ctrl)
		service.EXPECT().GetTestCost(gomock.Any(), "unknown_test.sh").Return(nil, database.ErrTestCostNotFound).Times(1)

		router := getRouter(service)
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/api/tests/unknown_test.sh", nil)

		// act
		router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})
}

func TestGetStoredScheduleHandler(t *testing.T) {
	t.Run("ReturnsAllShards", func(t *testing.T) {

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service := NewMockService(ctrl)
		service.
			EXPECT().
			GetStoredSchedule(gomock.Any(), "circle-1234", 2).
			Return(&database.Schedule{TestRunID: "circle-1234", ShardCount: 2, Shards: map[int][]string{0: {"a_test.sh"}, 1: {}}}, nil).
			Times(1)

		router := getRouter(service)
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/api/schedules/circle-1234/2", nil)

		// act
		router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.JSONEq(t, `{"testRunID": "circle-1234", "shardCount": 2, "shards": {"0": ["a_test.sh"], "1": []}}`, recorder.Body.String())
	})

	t.Run("ReturnsNotFoundForUnknownSchedule", func(t *testing.T) {

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service := NewMockService(ctrl)
		service.EXPECT().GetStoredSchedule(gomock.Any(), "circle-0", 2).Return(nil, database.ErrScheduleNotFound).Times(1)

		router := getRouter(service)
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/api/schedules/circle-0/2", nil)

		// act
		router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})
}

func getRouter(service Service) *gin.Engine {
	gin.SetMode(gin.TestMode)

	handler := NewHandler(service)

	router := gin.New()
	router.POST("/record/*testNameAndRuntime", handler.RecordRuntime)
	router.POST("/schedule/:testRun/:shardCount/:shard", handler.GetShard)
	router.GET("/api/tests/*testName", handler.GetTestCost)
	router.GET("/api/schedules/:testRun/:shardCount", handler.GetStoredSchedule)

	return router
}
