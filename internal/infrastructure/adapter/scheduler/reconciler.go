package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/amirhossein-jamali/polaroid-studio/internal/domain/port/core"
	"github.com/amirhossein-jamali/polaroid-studio/internal/domain/port/usecase"
)

// DefaultSpec runs the reconciler once a minute
const DefaultSpec = "@every 1m"

// Reconciler periodically settles generations left in the processing state
type Reconciler struct {
	cron    *cron.Cron
	tasks   usecase.TaskUseCase
	logger  core.Logger
	spec    string
	timeout time.Duration

	mu      sync.Mutex
	entryID cron.EntryID
}

// NewReconciler creates a reconciler; timeout bounds one run
func NewReconciler(tasks usecase.TaskUseCase, spec string, timeout time.Duration, logger core.Logger) *Reconciler {
	if spec == "" {
		spec = DefaultSpec
	}
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}
	return &Reconciler{
		cron:    cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		tasks:   tasks,
		logger:  logger,
		spec:    spec,
		timeout: timeout,
	}
}

// Start schedules the job and starts the cron loop
func (r *Reconciler) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, err := r.cron.AddFunc(r.spec, r.runOnce)
	if err != nil {
		return err
	}
	r.entryID = id
	r.cron.Start()

	r.logger.Info("Reconciler started", map[string]any{"spec": r.spec})
	return nil
}

// Stop halts scheduling and waits for a running job, bounded by ctx
func (r *Reconciler) Stop(ctx context.Context) {
	r.mu.Lock()
	if r.entryID != 0 {
		r.cron.Remove(r.entryID)
		r.entryID = 0
	}
	r.mu.Unlock()

	stopped := r.cron.Stop()
	select {
	case <-stopped.Done():
		r.logger.Info("Reconciler stopped", nil)
	case <-ctx.Done():
		r.logger.Warn("Reconciler did not stop in time", map[string]any{"error": ctx.Err().Error()})
	}
}

func (r *Reconciler) runOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	report, err := r.tasks.Reconcile(ctx)
	if err != nil {
		r.logger.Error("Reconcile run failed", map[string]any{"error": err.Error()})
		return
	}
	if report.Checked == 0 {
		return
	}

	r.logger.Info("Reconcile run finished", map[string]any{
		"checked":   report.Checked,
		"completed": report.Completed,
		"failed":    report.Failed,
		"timed_out": report.TimedOut,
	})
}
