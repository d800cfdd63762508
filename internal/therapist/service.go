package therapist

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/WailSalutem-Health-Care/speech-therapy-service/internal/messaging"
)

// MetricsRecorder counts therapist operations.
type MetricsRecorder interface {
	RecordTherapistOperation(ctx context.Context, operation string)
}

// ServiceInterface defines the contract for therapist signup
type ServiceInterface interface {
	Register(ctx context.Context, req SignupRequest) (*Therapist, error)
}

var _ ServiceInterface = (*Service)(nil)

type Service struct {
	repo       RepositoryInterface
	publisher  messaging.PublisherInterface
	metrics    MetricsRecorder
	logger     *zap.SugaredLogger
	bcryptCost int
}

func NewService(repo RepositoryInterface, publisher messaging.PublisherInterface, metrics MetricsRecorder, logger *zap.SugaredLogger, bcryptCost int) *Service {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		repo:       repo,
		publisher:  publisher,
		metrics:    metrics,
		logger:     logger,
		bcryptCost: bcryptCost,
	}
}

// Register validates the signup, stores a bcrypt hash of the password and
// announces the new therapist.
func (s *Service) Register(ctx context.Context, req SignupRequest) (*Therapist, error) {
	req = normalize(req)
	if err := validateSignup(req); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	created, err := s.repo.Create(ctx, Therapist{
		Name:         req.Name,
		Mobile:       req.Mobile,
		Email:        req.Email,
		PasswordHash: string(hash),
	})
	if err != nil {
		if errors.Is(err, ErrDuplicateEmail) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to register therapist: %w", err)
	}

	if s.metrics != nil {
		s.metrics.RecordTherapistOperation(ctx, "register")
	}

	if s.publisher != nil {
		event := messaging.TherapistRegisteredEvent{
			BaseEvent: messaging.NewBaseEvent(messaging.EventTherapistRegistered),
			Data: messaging.TherapistRegisteredData{
				TherapistID:  created.ID,
				Name:         created.Name,
				Email:        created.Email,
				RegisteredAt: time.Now().UTC(),
			},
		}
		if err := s.publisher.Publish(ctx, messaging.EventTherapistRegistered, event); err != nil {
			s.logger.Warnw("failed to publish therapist event", "therapist_id", created.ID, "error", err)
		}
	}

	return created, nil
}
