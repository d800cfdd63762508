package dashboard

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// RecentWindow is how far back a client counts as recent.
const RecentWindow = 30 * 24 * time.Hour

// MetricsRecorder times dashboard queries.
type MetricsRecorder interface {
	RecordDashboardQuery(ctx context.Context, durationMs float64)
}

type Service struct {
	repo               RepositoryInterface
	metrics            MetricsRecorder
	defaultTherapistID string
	now                func() time.Time
}

func NewService(repo RepositoryInterface, metrics MetricsRecorder, defaultTherapistID string) *Service {
	return &Service{
		repo:               repo,
		metrics:            metrics,
		defaultTherapistID: defaultTherapistID,
		now:                time.Now,
	}
}

// ServiceInterface defines the contract for dashboard statistics
type ServiceInterface interface {
	Stats(ctx context.Context, therapistID string) (*Stats, error)
}

var _ ServiceInterface = (*Service)(nil)

func (s *Service) Stats(ctx context.Context, therapistID string) (*Stats, error) {
	start := time.Now()

	therapistID = strings.TrimSpace(therapistID)
	if therapistID == "" {
		therapistID = s.defaultTherapistID
	}

	counts, err := s.repo.CountActive(ctx, therapistID, s.now().Add(-RecentWindow))
	if err != nil {
		return nil, fmt.Errorf("failed to compute dashboard counts: %w", err)
	}

	distribution, err := s.repo.IssueDistribution(ctx, therapistID)
	if err != nil {
		return nil, fmt.Errorf("failed to compute speech issue distribution: %w", err)
	}

	if s.metrics != nil {
		s.metrics.RecordDashboardQuery(ctx, float64(time.Since(start).Milliseconds()))
	}

	return &Stats{
		TotalClients:             counts.Total,
		UrgentClients:            counts.Urgent,
		RecentClients:            counts.Recent,
		SpeechIssuesDistribution: distribution,
	}, nil
}
