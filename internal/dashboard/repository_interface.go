package dashboard

import (
	"context"
	"time"
)

// RepositoryInterface defines the contract for dashboard queries
type RepositoryInterface interface {
	CountActive(ctx context.Context, therapistID string, since time.Time) (Counts, error)
	IssueDistribution(ctx context.Context, therapistID string) ([]IssueCount, error)
}

var _ RepositoryInterface = (*Repository)(nil)
