package ports

import (
	"context"

	"github.com/cargoline/backoffice/internal/core/domain"
)

// RoleSource resolves a role name to its permission policy. A missing role
// yields domain.ErrRoleNotFound.
type RoleSource interface {
	GetRole(ctx context.Context, name string) (*domain.Role, error)
}

// RoleStore is a RoleSource that can also persist policies.
type RoleStore interface {
	RoleSource
	SaveRole(ctx context.Context, role *domain.Role) error
}

// PermissionGate decides whether a role may perform action on resource.
// A nil error means allow.
type PermissionGate interface {
	CheckPermission(ctx context.Context, role string, resource domain.Resource, action domain.Action) error
}
