package ports

import (
	"context"

	"github.com/cargoline/backoffice/internal/core/domain"
)

// CreateClientInput carries the data needed to register a client.
type CreateClientInput struct {
	Name    string
	Email   string
	Phone   string
	Address string
	TaxID   string
}

// ListClientsResult is returned by ClientService.List.
type ListClientsResult struct {
	Items      []*domain.Client
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// ClientService defines use-case operations for clients.
type ClientService interface {
	Create(ctx context.Context, input CreateClientInput) (*domain.Client, error)
	Get(ctx context.Context, id string) (*domain.Client, error)
	List(ctx context.Context, filter ListClientsFilter) (*ListClientsResult, error)
}
