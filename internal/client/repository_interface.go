package client

import "context"

// RepositoryInterface defines the contract for client data access
type RepositoryInterface interface {
	Create(ctx context.Context, c Client) (*Client, error)
	GetByID(ctx context.Context, id string) (*Client, error)
	ListByTherapist(ctx context.Context, therapistID string, limit, offset int) ([]Client, int, error)
	Search(ctx context.Context, therapistID, q string) ([]Client, error)
	Update(ctx context.Context, id string, req UpdateClientRequest) (*Client, error)
	SoftDelete(ctx context.Context, id string) (*Client, error)
}

// Ensure Repository implements RepositoryInterface
var _ RepositoryInterface = (*Repository)(nil)
