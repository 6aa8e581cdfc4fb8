package database

// TestCost holds the moving average runtime of a single test
type TestCost struct {
	TestName string
	// EWMARuntime is stored in column total_run_time; despite the name it's an exponentially weighted moving average in seconds
	EWMARuntime float64
	RunCount    int
}

// Schedule is the stored partition of a test run's tests over its shards
type Schedule struct {
	TestRunID  string
	ShardCount int
	Shards     map[int][]string
}
