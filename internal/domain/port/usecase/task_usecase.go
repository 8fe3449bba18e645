package usecase

import (
	"context"

	"github.com/amirhossein-jamali/polaroid-studio/internal/domain/entity"
)

// ReconcileReport summarizes one reconciliation sweep
type ReconcileReport struct {
	Checked   int
	Completed int
	Failed    int
	TimedOut  int
}

// TaskUseCase tracks generations still running at the vendor
type TaskUseCase interface {
	// Query returns the caller's generation, refreshing it from the vendor while processing
	Query(ctx context.Context, principal *entity.Principal, publicID string) (*entity.Generation, error)

	// Reconcile refreshes processing records and times out stale ones
	Reconcile(ctx context.Context) (*ReconcileReport, error)
}
