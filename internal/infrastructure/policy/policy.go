// Package policy loads role permission policies from YAML files.
//
// A policy file maps role names to resources and resources to action flags:
//
//	roles:
//	  USER:
//	    users: {read: true}
//	    invoices: {read: true, create: true}
//
// Unknown resources or actions fail the load with an error naming the key.
package policy

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/cargoline/backoffice/internal/core/domain"
)

type file struct {
	Roles map[string]map[string]map[string]bool `yaml:"roles"`
}

// StaticSource serves roles from memory. It implements ports.RoleSource.
type StaticSource struct {
	roles map[string]*domain.Role
}

// Parse decodes and validates a policy document.
func Parse(r io.Reader) (*StaticSource, error) {
	var f file
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("policy: empty document")
		}
		return nil, fmt.Errorf("policy: decode: %w", err)
	}
	if len(f.Roles) == 0 {
		return nil, fmt.Errorf("policy: no roles defined")
	}

	src := &StaticSource{roles: make(map[string]*domain.Role, len(f.Roles))}
	for name, perms := range f.Roles {
		role, err := domain.BuildRole(name, perms)
		if err != nil {
			return nil, fmt.Errorf("policy: %w", err)
		}
		src.roles[name] = role
	}
	return src, nil
}

// Load reads and validates the policy file at path.
func Load(path string) (*StaticSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("policy: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// GetRole returns the named role or domain.ErrRoleNotFound.
func (s *StaticSource) GetRole(_ context.Context, name string) (*domain.Role, error) {
	role, ok := s.roles[name]
	if !ok {
		return nil, domain.ErrRoleNotFound
	}
	return role, nil
}

// Roles returns every role sorted by name.
func (s *StaticSource) Roles() []*domain.Role {
	out := make([]*domain.Role, 0, len(s.roles))
	for _, r := range s.roles {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
