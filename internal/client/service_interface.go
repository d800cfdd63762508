package client

import (
	"context"

	"github.com/WailSalutem-Health-Care/speech-therapy-service/internal/pagination"
)

// ServiceInterface defines the contract for client business logic
type ServiceInterface interface {
	CreateClient(ctx context.Context, req CreateClientRequest) (*Client, error)
	GetClient(ctx context.Context, id string) (*Client, error)
	ListClients(ctx context.Context, therapistID string, params *pagination.Params) (*ListResult, error)
	SearchClients(ctx context.Context, therapistID, q string) ([]Client, error)
	UpdateClient(ctx context.Context, id string, req UpdateClientRequest) (*Client, error)
	DeactivateClient(ctx context.Context, id string) (*Client, error)
}

// Ensure Service implements ServiceInterface
var _ ServiceInterface = (*Service)(nil)
