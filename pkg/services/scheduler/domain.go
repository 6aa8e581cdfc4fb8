package scheduler

// ScheduleRequest is the body of a schedule request, listing all tests of the test run
type ScheduleRequest struct {
	Tests []string `json:"tests"`
}

// ScheduleResponse lists the tests one shard should run
type ScheduleResponse struct {
	Tests []string `json:"tests"`
}

// TestCostResponse exposes a test's stored runtime average together with its derived cost
type TestCostResponse struct {
	TestName    string  `json:"testName"`
	EWMARuntime float64 `json:"ewmaRuntime"`
	RunCount    int     `json:"runCount"`
	Parallelism int     `json:"parallelism"`
	Cost        float64 `json:"cost"`
}

// ScheduleListResponse exposes all shards of a stored schedule
type ScheduleListResponse struct {
	TestRunID  string           `json:"testRunID"`
	ShardCount int              `json:"shardCount"`
	Shards     map[int][]string `json:"shards"`
}
