package jobs

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Job lifecycle states, reported through the polled status endpoint.
const (
	StatePending  = "PENDING"
	StateProgress = "PROGRESS"
	StateSuccess  = "SUCCESS"
	StateFailure  = "FAILURE"
)

// Status is one observable snapshot of a job. Info carries the
// state-specific payload: a ProgressInfo while running, the scan result
// on success, a FailureInfo on failure.
type Status struct {
	JobID string `json:"task_id"`
	State string `json:"status"`
	Info  any    `json:"info"`
}

// ProgressInfo is the payload of a PROGRESS status.
type ProgressInfo struct {
	Step    string `json:"step"`
	Current int    `json:"current"`
	Total   int    `json:"total"`
}

// FailureInfo is the payload of a FAILURE status.
type FailureInfo struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

const (
	statusTTL   = 24 * time.Hour
	statusSweep = 1 * time.Hour
)

// StatusStore keeps the latest status per job in memory. Entries expire
// after a day so abandoned polls do not accumulate. Writes are
// last-write-wins, which matches the monotonic state machine of a job.
type StatusStore struct {
	cache *gocache.Cache
}

func NewStatusStore() *StatusStore {
	return &StatusStore{cache: gocache.New(statusTTL, statusSweep)}
}

func (s *StatusStore) Set(status Status) {
	s.cache.Set(status.JobID, status, gocache.DefaultExpiration)
}

// Delete drops a job that was never handed to the worker.
func (s *StatusStore) Delete(jobID string) {
	s.cache.Delete(jobID)
}

// Get returns the latest status for the job. Unknown ids report
// PENDING: a job that was just submitted may not have written its first
// status yet, and an expired one is indistinguishable from that.
func (s *StatusStore) Get(jobID string) Status {
	if v, ok := s.cache.Get(jobID); ok {
		return v.(Status)
	}
	return Status{JobID: jobID, State: StatePending}
}
