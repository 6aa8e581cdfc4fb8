package circleciapi

// BuildSummary is the subset of a CircleCI v1 build summary needed to tell running builds from finished ones
type BuildSummary struct {
	BuildNum  int     `json:"build_num"`
	Status    string  `json:"status,omitempty"`
	StartTime *string `json:"start_time,omitempty"`
	StopTime  *string `json:"stop_time"`
}

// IsRunning returns true as long as CircleCI hasn't recorded a stop time for the build
func (b BuildSummary) IsRunning() bool {
	return b.StopTime == nil || *b.StopTime == ""
}

// RunningBuilds is the set of build numbers that are still active for a repository
type RunningBuilds map[int]bool
