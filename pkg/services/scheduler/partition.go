package scheduler

import (
	"sort"

	"github.com/estafette/estafette-ci-scheduler/pkg/api"
	"github.com/pkg/errors"
)

// WeightedTest is a test name with its expected cost
type WeightedTest struct {
	Name string
	Cost float64
}

// Partition spreads tests over shardCount shards using the longest-processing-time-first heuristic: tests are
// taken by descending cost (ties keep input order) and each goes to the shard with the lowest running total
// (ties go to the lowest index). The result isn't optimal, balanced multiway partitioning is NP-hard, but no
// two shard totals differ by more than the largest single cost.
//
// Every shard index from 0 to shardCount-1 is present in the result, possibly with an empty list.
func Partition(tests []WeightedTest, shardCount int) (shards map[int][]string, err error) {
	if shardCount < 1 {
		return nil, errors.Wrapf(api.ErrInvalidArgument, "shard count %v is less than 1", shardCount)
	}

	sorted := make([]WeightedTest, len(tests))
	copy(sorted, tests)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Cost > sorted[j].Cost
	})

	shards = make(map[int][]string, shardCount)
	totals := make([]float64, shardCount)
	for i := 0; i < shardCount; i++ {
		shards[i] = []string{}
	}

	for _, t := range sorted {
		shortest := 0
		for i := 1; i < shardCount; i++ {
			if totals[i] < totals[shortest] {
				shortest = i
			}
		}

		shards[shortest] = append(shards[shortest], t.Name)
		totals[shortest] += t.Cost
	}

	return shards, nil
}
