package client

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/WailSalutem-Health-Care/speech-therapy-service/internal/messaging"
	"github.com/WailSalutem-Health-Care/speech-therapy-service/internal/pagination"
)

// MetricsRecorder counts client operations.
type MetricsRecorder interface {
	RecordClientOperation(ctx context.Context, operation string)
}

type Service struct {
	repo               RepositoryInterface
	publisher          messaging.PublisherInterface
	metrics            MetricsRecorder
	logger             *zap.SugaredLogger
	defaultTherapistID string
}

func NewService(repo RepositoryInterface, publisher messaging.PublisherInterface, metrics MetricsRecorder, logger *zap.SugaredLogger, defaultTherapistID string) *Service {
	return &Service{
		repo:               repo,
		publisher:          publisher,
		metrics:            metrics,
		logger:             logger,
		defaultTherapistID: defaultTherapistID,
	}
}

// ListResult is one page of a tenant's clients. Pagination is nil when the
// caller asked for the full listing.
type ListResult struct {
	Clients    []Client
	Pagination *pagination.Meta
}

func (s *Service) tenant(therapistID string) string {
	if t := strings.TrimSpace(therapistID); t != "" {
		return t
	}
	return s.defaultTherapistID
}

func (s *Service) CreateClient(ctx context.Context, req CreateClientRequest) (*Client, error) {
	record := NormalizeCreate(req, s.defaultTherapistID)
	if err := ValidateNew(record); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, record)
	if err != nil {
		if errors.Is(err, ErrDuplicatePhone) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	s.record(ctx, "create")
	s.publish(ctx, messaging.EventClientCreated, created)
	return created, nil
}

func (s *Service) GetClient(ctx context.Context, id string) (*Client, error) {
	id, ok := canonicalID(id)
	if !ok {
		return nil, ErrClientNotFound
	}

	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrClientNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get client: %w", err)
	}
	return c, nil
}

// ListClients returns every record of the tenant, newest first. A non-nil
// params paginates the listing.
func (s *Service) ListClients(ctx context.Context, therapistID string, params *pagination.Params) (*ListResult, error) {
	limit, offset := 0, 0
	if params != nil {
		params.Normalize()
		limit, offset = params.Limit, params.Offset()
	}

	clients, total, err := s.repo.ListByTherapist(ctx, s.tenant(therapistID), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}

	result := &ListResult{Clients: clients}
	if params != nil {
		meta := params.Meta(total)
		result.Pagination = &meta
	}

	s.record(ctx, "list")
	return result, nil
}

func (s *Service) SearchClients(ctx context.Context, therapistID, q string) ([]Client, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, ErrSearchQueryRequired
	}

	clients, err := s.repo.Search(ctx, s.tenant(therapistID), q)
	if err != nil {
		return nil, fmt.Errorf("failed to search clients: %w", err)
	}

	s.record(ctx, "search")
	return clients, nil
}

func (s *Service) UpdateClient(ctx context.Context, id string, req UpdateClientRequest) (*Client, error) {
	id, ok := canonicalID(id)
	if !ok {
		return nil, ErrClientNotFound
	}

	req = NormalizeUpdate(req)
	if err := ValidateUpdate(req); err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, id, req)
	if err != nil {
		if errors.Is(err, ErrClientNotFound) || errors.Is(err, ErrDuplicatePhone) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update client: %w", err)
	}

	s.record(ctx, "update")
	s.publish(ctx, messaging.EventClientUpdated, updated)
	return updated, nil
}

func (s *Service) DeactivateClient(ctx context.Context, id string) (*Client, error) {
	id, ok := canonicalID(id)
	if !ok {
		return nil, ErrClientNotFound
	}

	c, err := s.repo.SoftDelete(ctx, id)
	if err != nil {
		if errors.Is(err, ErrClientNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to deactivate client: %w", err)
	}

	s.record(ctx, "deactivate")
	s.publish(ctx, messaging.EventClientDeactivated, c)
	return c, nil
}

// canonicalID rewrites any form uuid.Parse accepts (urn:uuid:, braces, no
// hyphens) to the hyphenated form Postgres expects.
func canonicalID(id string) (string, bool) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", false
	}
	return parsed.String(), true
}

func (s *Service) record(ctx context.Context, operation string) {
	if s.metrics != nil {
		s.metrics.RecordClientOperation(ctx, operation)
	}
}

// publish sends a client event. Broker failures are logged and never fail
// the request that caused them.
func (s *Service) publish(ctx context.Context, eventType string, c *Client) {
	if s.publisher == nil {
		return
	}

	event := messaging.ClientEvent{
		BaseEvent: messaging.NewBaseEvent(eventType),
		Data: messaging.ClientEventData{
			ClientID:     c.ID,
			TherapistID:  c.TherapistID,
			FirstName:    c.FirstName,
			LastName:     c.LastName,
			Urgency:      c.Urgency,
			Status:       c.Status,
			SpeechIssues: c.SpeechIssues,
			OccurredAt:   time.Now().UTC(),
		},
	}

	if err := s.publisher.Publish(ctx, eventType, event); err != nil {
		s.logger.Warnw("failed to publish client event", "event", eventType, "client_id", c.ID, "error", err)
	}
}
