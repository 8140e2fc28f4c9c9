package registry

// Status is the outcome of a batch operation for one plugin.
type Status string

// Batch outcomes.
const (
	StatusInstalled     Status = "installed"
	StatusUpdated       Status = "updated"
	StatusSkipped       Status = "skipped"
	StatusLoaded        Status = "loaded"
	StatusPlanned       Status = "planned"
	StatusFailed        Status = "failed"
	StatusNotRegistered Status = "not registered"
	StatusNotInstalled  Status = "not installed"
)

// Result describes what happened to one plugin during Sync or LoadAll.
type Result struct {
	Name   string
	Status Status
	// Path is the sourced initialization file for StatusLoaded.
	Path string
	Err  error
}

// OK reports whether the plugin ended in a non-failure state.
func (r Result) OK() bool {
	return r.Err == nil
}

// Failures returns the results that carry an error.
func Failures(results []Result) []Result {
	var failed []Result
	for _, res := range results {
		if !res.OK() {
			failed = append(failed, res)
		}
	}
	return failed
}
