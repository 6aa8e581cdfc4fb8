package api

import (
	"errors"
	"net/http"
)

var (
	// ErrInvalidArgument is returned for malformed shard counts, shard indexes, runtimes or test names
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotFound is returned when a schedule, shard or test cost doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrUpstreamUnavailable is returned when the ci api or the cloud api can't be reached or responds with an error
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
)

// StatusCodeFromError maps an error onto the http status code to respond with
func StatusCodeFromError(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrUpstreamUnavailable):
		return http.StatusBadGateway
	}

	return http.StatusInternalServerError
}
