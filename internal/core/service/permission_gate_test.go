package service

import (
	"context"
	"errors"
	"testing"

	"github.com/cargoline/backoffice/internal/core/domain"
)

func newGateRoles() *stubRoleSource {
	return &stubRoleSource{roles: map[string]*domain.Role{
		"USER": {
			Name: "USER",
			Permissions: map[domain.Resource]domain.Permissions{
				domain.ResourceUsers:    {Read: true},
				domain.ResourceInvoices: {Read: true, Create: true},
			},
		},
		"ADMIN": {
			Name: "ADMIN",
			Permissions: map[domain.Resource]domain.Permissions{
				domain.ResourceUsers: {Create: true, Read: true, Update: true, Delete: true},
			},
		},
	}}
}

func TestPermissionGate_AllowsGrantedAction(t *testing.T) {
	gate := NewPermissionGate(newGateRoles(), "", discardLogger)

	if err := gate.CheckPermission(context.Background(), "USER", domain.ResourceInvoices, domain.ActionCreate); err != nil {
		t.Fatalf("expected allow, got %v", err)
	}
	if err := gate.CheckPermission(context.Background(), "ADMIN", domain.ResourceUsers, domain.ActionDelete); err != nil {
		t.Fatalf("expected allow, got %v", err)
	}
}

func TestPermissionGate_DeniesMissingFlag(t *testing.T) {
	recorder := newCountingRecorder()
	gate := NewPermissionGate(newGateRoles(), "", discardLogger).WithRecorder(recorder)

	err := gate.CheckPermission(context.Background(), "USER", domain.ResourceUsers, domain.ActionDelete)

	var pe *domain.PermissionDeniedError
	if !errors.As(err, &pe) {
		t.Fatalf("expected PermissionDeniedError, got %v", err)
	}
	if pe.Role != "USER" || pe.Resource != domain.ResourceUsers || pe.Action != domain.ActionDelete {
		t.Errorf("unexpected payload: %+v", pe)
	}
	if recorder.denied != 1 {
		t.Errorf("expected 1 denial recorded, got %d", recorder.denied)
	}
}

func TestPermissionGate_DeniesMissingResource(t *testing.T) {
	gate := NewPermissionGate(newGateRoles(), "", discardLogger)

	err := gate.CheckPermission(context.Background(), "USER", domain.ResourceQuotations, domain.ActionRead)

	if !errors.Is(err, domain.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}
}

func TestPermissionGate_DeniesUnknownRole(t *testing.T) {
	gate := NewPermissionGate(newGateRoles(), "", discardLogger)

	err := gate.CheckPermission(context.Background(), "AUDITOR", domain.ResourceInvoices, domain.ActionRead)

	if !errors.Is(err, domain.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}
}

func TestPermissionGate_EmptyRoleUsesDefault(t *testing.T) {
	roles := newGateRoles()
	gate := NewPermissionGate(roles, "", discardLogger)

	if err := gate.CheckPermission(context.Background(), "", domain.ResourceInvoices, domain.ActionRead); err != nil {
		t.Fatalf("expected allow via default role, got %v", err)
	}
	if len(roles.asked) != 1 || roles.asked[0] != domain.DefaultRole {
		t.Errorf("expected lookup of %q, got %v", domain.DefaultRole, roles.asked)
	}
}

func TestPermissionGate_ConfiguredDefaultRole(t *testing.T) {
	roles := newGateRoles()
	gate := NewPermissionGate(roles, "ADMIN", discardLogger)

	err := gate.CheckPermission(context.Background(), "", domain.ResourceInvoices, domain.ActionRead)

	if !errors.Is(err, domain.ErrPermissionDenied) {
		t.Fatalf("ADMIN has no invoice permissions, expected deny, got %v", err)
	}
}

func TestPermissionGate_DeniesUnknownResourceOrAction(t *testing.T) {
	roles := newGateRoles()
	gate := NewPermissionGate(roles, "", discardLogger)

	if err := gate.CheckPermission(context.Background(), "USER", domain.Resource("ledgers"), domain.ActionRead); !errors.Is(err, domain.ErrPermissionDenied) {
		t.Errorf("expected deny for unknown resource, got %v", err)
	}
	if err := gate.CheckPermission(context.Background(), "USER", domain.ResourceInvoices, domain.Action("approve")); !errors.Is(err, domain.ErrPermissionDenied) {
		t.Errorf("expected deny for unknown action, got %v", err)
	}
	if len(roles.asked) != 0 {
		t.Error("unknown names must be denied before any lookup")
	}
}

func TestPermissionGate_SourceErrorDenies(t *testing.T) {
	roles := newGateRoles()
	roles.err = errors.New("roles collection unavailable")
	gate := NewPermissionGate(roles, "", discardLogger)

	err := gate.CheckPermission(context.Background(), "USER", domain.ResourceInvoices, domain.ActionRead)

	if !errors.Is(err, domain.ErrPermissionDenied) {
		t.Fatalf("expected fail-closed deny, got %v", err)
	}
}
