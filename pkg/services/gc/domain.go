package gc

// ProjectResult summarizes one garbage collection pass over a project
type ProjectResult struct {
	Repository       string   `json:"repository"`
	Project          string   `json:"project"`
	Zone             string   `json:"zone"`
	RunningBuilds    []int    `json:"runningBuilds,omitempty"`
	DeletedInstances []string `json:"deletedInstances,omitempty"`
	FailedInstances  []string `json:"failedInstances,omitempty"`
	DeletedFirewalls []string `json:"deletedFirewalls,omitempty"`
	FailedFirewalls  []string `json:"failedFirewalls,omitempty"`
	DryRun           bool     `json:"dryRun,omitempty"`
	Error            string   `json:"error,omitempty"`
	Err              error    `json:"-"`
}
