package jobs

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/palgatox64/sonusitory/internal/scan"
)

// Orchestrator is the slice of the scanner the runner drives.
type Orchestrator interface {
	Run(ctx context.Context, userID string, mode scan.Mode, progress scan.ProgressFunc) (*scan.Result, error)
}

// ScanJob is one queued scan request.
type ScanJob struct {
	ID     string
	UserID string
	Mode   scan.Mode
}

const defaultQueueSize = 16

// Runner executes scan jobs one at a time off a bounded queue and
// publishes their lifecycle to the status store. One worker is enough:
// scans are long, API-throttled and per-user, so concurrency buys
// nothing but quota contention.
type Runner struct {
	orchestrator Orchestrator
	status       *StatusStore
	logger       *zap.Logger
	queue        chan ScanJob
}

func NewRunner(orchestrator Orchestrator, status *StatusStore, logger *zap.Logger) *Runner {
	return &Runner{
		orchestrator: orchestrator,
		status:       status,
		logger:       logger,
		queue:        make(chan ScanJob, defaultQueueSize),
	}
}

// Start launches the worker loop. It returns when ctx is canceled and
// the in-flight job, if any, has observed the cancellation.
func (r *Runner) Start(ctx context.Context) {
	r.logger.Info("scan runner started")
	for {
		select {
		case <-ctx.Done():
			r.logger.Info("scan runner stopped")
			return
		case job := <-r.queue:
			r.runJob(ctx, job)
		}
	}
}

// Submit queues a scan and returns its job id for polling. A full queue
// rejects the submission instead of blocking the caller.
func (r *Runner) Submit(userID string, mode scan.Mode) (string, error) {
	job := ScanJob{
		ID:     uuid.NewString(),
		UserID: userID,
		Mode:   mode,
	}
	// PENDING must land before the worker can start writing, or a fast
	// job could finish and then be stamped back to PENDING.
	r.status.Set(Status{JobID: job.ID, State: StatePending})
	select {
	case r.queue <- job:
	default:
		r.status.Delete(job.ID)
		return "", errors.New("scan queue is full, try again later")
	}
	r.logger.Info("scan queued",
		zap.String("jobId", job.ID),
		zap.String("userId", userID),
		zap.String("mode", string(mode)))
	return job.ID, nil
}

func (r *Runner) runJob(ctx context.Context, job ScanJob) {
	progress := func(step string, current, total int) {
		r.status.Set(Status{
			JobID: job.ID,
			State: StateProgress,
			Info:  ProgressInfo{Step: step, Current: current, Total: total},
		})
	}

	result, err := r.orchestrator.Run(ctx, job.UserID, job.Mode, progress)
	if err != nil {
		r.status.Set(Status{
			JobID: job.ID,
			State: StateFailure,
			Info:  failureInfo(err),
		})
		r.logger.Error("scan failed",
			zap.String("jobId", job.ID),
			zap.String("userId", job.UserID),
			zap.Error(err))
		return
	}

	r.status.Set(Status{JobID: job.ID, State: StateSuccess, Info: result})
	r.logger.Info("scan succeeded",
		zap.String("jobId", job.ID),
		zap.Int("songsCreated", result.SongsCreated),
		zap.Int("coversFound", result.CoversFound))
}

func failureInfo(err error) FailureInfo {
	var setupErr *scan.SetupError
	if errors.As(err, &setupErr) {
		return FailureInfo{Kind: string(setupErr.Kind), Message: setupErr.Error()}
	}
	if errors.Is(err, context.Canceled) {
		return FailureInfo{Kind: string(scan.ErrKindCanceled), Message: "scan canceled"}
	}
	return FailureInfo{Kind: "internal", Message: fmt.Sprintf("scan failed: %v", err)}
}
