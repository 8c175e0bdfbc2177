package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/cargoline/backoffice/internal/core/domain"
	"github.com/cargoline/backoffice/internal/core/ports"
)

// PermissionGate answers (role, resource, action) questions against a role
// source. Every failure path denies.
type PermissionGate struct {
	roles       ports.RoleSource
	defaultRole string
	recorder    Recorder
	log         zerolog.Logger
}

// NewPermissionGate returns a gate that evaluates requests without a role as
// defaultRole (domain.DefaultRole when empty).
func NewPermissionGate(roles ports.RoleSource, defaultRole string, log zerolog.Logger) *PermissionGate {
	if defaultRole == "" {
		defaultRole = domain.DefaultRole
	}
	return &PermissionGate{roles: roles, defaultRole: defaultRole, recorder: nopRecorder{}, log: log}
}

// WithRecorder sets the recorder notified on every denial.
func (g *PermissionGate) WithRecorder(r Recorder) *PermissionGate {
	g.recorder = r
	return g
}

// CheckPermission returns nil when role may perform action on resource and a
// *domain.PermissionDeniedError otherwise.
func (g *PermissionGate) CheckPermission(ctx context.Context, role string, resource domain.Resource, action domain.Action) error {
	if role == "" {
		role = g.defaultRole
	}
	deny := func() error {
		g.recorder.PermissionDenied(resource, action)
		return &domain.PermissionDeniedError{Role: role, Resource: resource, Action: action}
	}

	if !resource.Valid() || !action.Valid() {
		return deny()
	}

	policy, err := g.roles.GetRole(ctx, role)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			g.log.Error().Err(err).Str("role", role).Msg("role lookup failed, denying")
		}
		return deny()
	}
	if !policy.Allows(resource, action) {
		return deny()
	}
	return nil
}
