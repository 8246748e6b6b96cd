package jobs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusStoreLastWriteWins(t *testing.T) {
	store := NewStatusStore()

	store.Set(Status{JobID: "job1", State: StatePending})
	store.Set(Status{JobID: "job1", State: StateProgress, Info: ProgressInfo{Step: "songs", Current: 2, Total: 5}})

	got := store.Get("job1")
	assert.Equal(t, StateProgress, got.State)
	assert.Equal(t, ProgressInfo{Step: "songs", Current: 2, Total: 5}, got.Info)
}

func TestStatusStoreUnknownJobIsPending(t *testing.T) {
	store := NewStatusStore()

	got := store.Get("never-seen")
	assert.Equal(t, StatePending, got.State)
	assert.Equal(t, "never-seen", got.JobID)
	assert.Nil(t, got.Info)
}

func TestStatusStoreIsolatesJobs(t *testing.T) {
	store := NewStatusStore()

	store.Set(Status{JobID: "job1", State: StateSuccess})
	store.Set(Status{JobID: "job2", State: StateFailure})

	assert.Equal(t, StateSuccess, store.Get("job1").State)
	assert.Equal(t, StateFailure, store.Get("job2").State)
}
