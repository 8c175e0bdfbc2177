package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/cargoline/backoffice/internal/core/domain"
	"github.com/cargoline/backoffice/internal/core/ports"
)

type ClientService struct {
	repo ports.ClientRepository
	log  zerolog.Logger
}

func NewClientService(repo ports.ClientRepository, log zerolog.Logger) *ClientService {
	return &ClientService{repo: repo, log: log}
}

// Create registers a new client.
func (s *ClientService) Create(ctx context.Context, in ports.CreateClientInput) (*domain.Client, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.NewValidationError("name", "is required")
	}

	now := time.Now().UTC()
	client := &domain.Client{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     strings.TrimSpace(in.Email),
		Phone:     strings.TrimSpace(in.Phone),
		Address:   strings.TrimSpace(in.Address),
		TaxID:     strings.TrimSpace(in.TaxID),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, client); err != nil {
		s.log.Error().Err(err).Msg("failed to create client")
		return nil, fmt.Errorf("create client: %w", err)
	}

	s.log.Info().Str("client_id", client.ID).Msg("client created")
	return client, nil
}

func (s *ClientService) Get(ctx context.Context, id string) (*domain.Client, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ClientService) List(ctx context.Context, f ports.ListClientsFilter) (*ports.ListClientsResult, error) {
	f.Page, f.Limit = normalizePage(f.Page, f.Limit)

	items, total, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	return &ports.ListClientsResult{
		Items:      items,
		Total:      total,
		Page:       f.Page,
		Limit:      f.Limit,
		TotalPages: totalPages(total, f.Limit),
	}, nil
}
