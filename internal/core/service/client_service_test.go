package service

import (
	"context"
	"errors"
	"testing"

	"github.com/cargoline/backoffice/internal/core/domain"
	"github.com/cargoline/backoffice/internal/core/ports"
)

func TestClientService_Create_Success(t *testing.T) {
	repo := newStubClientRepo()
	svc := NewClientService(repo, discardLogger)

	client, err := svc.Create(context.Background(), ports.CreateClientInput{
		Name:  "  Pacific Cargo Lines ",
		Email: "billing@pacificcargo.example",
		TaxID: "PCL850101AB1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if client.ID == "" || client.CreatedAt.IsZero() {
		t.Errorf("ID and CreatedAt must be set: %+v", client)
	}
	if client.Name != "Pacific Cargo Lines" {
		t.Errorf("expected trimmed name, got %q", client.Name)
	}
	if _, ok := repo.byID[client.ID]; !ok {
		t.Error("client was not persisted")
	}
}

func TestClientService_Create_NameRequired(t *testing.T) {
	svc := NewClientService(newStubClientRepo(), discardLogger)

	_, err := svc.Create(context.Background(), ports.CreateClientInput{Name: "   "})

	var ve *domain.ValidationError
	if !errors.As(err, &ve) || ve.Field != "name" {
		t.Fatalf("expected ValidationError(name), got %v", err)
	}
}

func TestClientService_Create_RepoError(t *testing.T) {
	repo := newStubClientRepo()
	repo.createErr = errors.New("db unavailable")
	svc := NewClientService(repo, discardLogger)

	if _, err := svc.Create(context.Background(), ports.CreateClientInput{Name: "Acme"}); err == nil {
		t.Fatal("expected error when repo fails, got nil")
	}
}

func TestClientService_Get_NotFound(t *testing.T) {
	svc := NewClientService(newStubClientRepo(), discardLogger)

	if _, err := svc.Get(context.Background(), "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestClientService_List_Paginates(t *testing.T) {
	svc := NewClientService(newStubClientRepo("a", "b", "c"), discardLogger)

	res, err := svc.List(context.Background(), ports.ListClientsFilter{Limit: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Page != 1 || res.Limit != 2 {
		t.Errorf("expected page=1 limit=2, got page=%d limit=%d", res.Page, res.Limit)
	}
	if len(res.Items) != 2 || res.Total != 3 || res.TotalPages != 2 {
		t.Errorf("unexpected page: items=%d total=%d pages=%d", len(res.Items), res.Total, res.TotalPages)
	}
}
