package scheduler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/estafette/estafette-ci-scheduler/pkg/api"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// NewHandler returns a new scheduler.Handler
func NewHandler(service Service) Handler {
	return Handler{
		service: service,
	}
}

type Handler struct {
	service Service
}

// RecordRuntime handles /record/<test name>/<runtime>, the test name itself can contain slashes
func (h *Handler) RecordRuntime(c *gin.Context) {

	testName, runtimeSeconds, err := parseRecordPath(c.Param("testNameAndRuntime"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	err = h.service.RecordRuntime(c.Request.Context(), testName, runtimeSeconds)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) GetShard(c *gin.Context) {

	testRunID := c.Param("testRun")

	shardCount, err := strconv.Atoi(c.Param("shardCount"))
	if err != nil {
		respondWithError(c, errors.Wrapf(api.ErrInvalidArgument, "shard count %v is not an integer", c.Param("shardCount")))
		return
	}

	shardIndex, err := strconv.Atoi(c.Param("shard"))
	if err != nil {
		respondWithError(c, errors.Wrapf(api.ErrInvalidArgument, "shard %v is not an integer", c.Param("shard")))
		return
	}

	var request ScheduleRequest
	err = c.ShouldBindJSON(&request)
	if err != nil {
		respondWithError(c, errors.Wrapf(api.ErrInvalidArgument, "request body is not valid json: %v", err))
		return
	}

	tests, err := h.service.GetShard(c.Request.Context(), testRunID, shardCount, shardIndex, request.Tests)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, ScheduleResponse{Tests: tests})
}

func (h *Handler) GetTestCost(c *gin.Context) {

	testName := strings.TrimPrefix(c.Param("testName"), "/")

	testCost, err := h.service.GetTestCost(c.Request.Context(), testName)
	if err != nil {
		respondWithError(c, err)
		return
	}

	parallelism := Parallelism(testCost.TestName)

	c.JSON(http.StatusOK, TestCostResponse{
		TestName:    testCost.TestName,
		EWMARuntime: testCost.EWMARuntime,
		RunCount:    testCost.RunCount,
		Parallelism: parallelism,
		Cost:        float64(parallelism) * testCost.EWMARuntime,
	})
}

func (h *Handler) GetStoredSchedule(c *gin.Context) {

	testRunID := c.Param("testRun")

	shardCount, err := strconv.Atoi(c.Param("shardCount"))
	if err != nil {
		respondWithError(c, errors.Wrapf(api.ErrInvalidArgument, "shard count %v is not an integer", c.Param("shardCount")))
		return
	}

	schedule, err := h.service.GetStoredSchedule(c.Request.Context(), testRunID, shardCount)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, ScheduleListResponse{
		TestRunID:  schedule.TestRunID,
		ShardCount: schedule.ShardCount,
		Shards:     schedule.Shards,
	})
}

// parseRecordPath splits /<test name>/<runtime> on its last slash
func parseRecordPath(path string) (testName string, runtimeSeconds float64, err error) {
	path = strings.TrimPrefix(path, "/")

	separator := strings.LastIndex(path, "/")
	if separator < 0 {
		return "", 0, errors.Wrapf(api.ErrInvalidArgument, "path %v doesn't have the form <test name>/<runtime>", path)
	}

	testName = path[:separator]
	if testName == "" {
		return "", 0, errors.Wrap(api.ErrInvalidArgument, "test name is empty")
	}

	runtimeSeconds, err = strconv.ParseFloat(path[separator+1:], 64)
	if err != nil {
		return "", 0, errors.Wrapf(api.ErrInvalidArgument, "runtime %v is not a number", path[separator+1:])
	}

	return testName, runtimeSeconds, nil
}

func respondWithError(c *gin.Context, err error) {
	statusCode := api.StatusCodeFromError(err)
	if statusCode >= http.StatusInternalServerError {
		log.Error().Err(err).Msgf("Failed handling %v %v", c.Request.Method, c.FullPath())
		c.JSON(statusCode, gin.H{"code": http.StatusText(statusCode)})
		return
	}

	c.JSON(statusCode, gin.H{"code": http.StatusText(statusCode), "message": err.Error()})
}
