package scheduler

import (
	"regexp"
	"strconv"

	"github.com/estafette/estafette-ci-scheduler/pkg/clients/database"
)

// a trailing _<N>_test.sh marks a test that occupies N hosts
var parallelismRegex = regexp.MustCompile(`(\d+)_test\.sh$`)

// Parallelism returns the number of hosts a test occupies as encoded in its name, 1 if it doesn't carry one
func Parallelism(testName string) int {
	matches := parallelismRegex.FindStringSubmatch(testName)
	if len(matches) != 2 {
		return 1
	}

	parallelism, err := strconv.Atoi(matches[1])
	if err != nil || parallelism < 1 {
		return 1
	}

	return parallelism
}

// Cost returns the expected cost of running a test; tests without history get the cold start cost
func Cost(testName string, testCost *database.TestCost, coldStartCost float64) float64 {
	if testCost == nil {
		return coldStartCost
	}

	return float64(Parallelism(testName)) * testCost.EWMARuntime
}
