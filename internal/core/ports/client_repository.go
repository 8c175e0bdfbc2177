package ports

import (
	"context"

	"github.com/cargoline/backoffice/internal/core/domain"
)

// ListClientsFilter carries the query parameters for listing clients.
type ListClientsFilter struct {
	Search string // optional: partial match on name or tax id
	Page   int
	Limit  int
}

// ClientRepository defines persistence operations for clients.
type ClientRepository interface {
	Create(ctx context.Context, c *domain.Client) error
	FindByID(ctx context.Context, id string) (*domain.Client, error)
	List(ctx context.Context, filter ListClientsFilter) ([]*domain.Client, int64, error)
}
