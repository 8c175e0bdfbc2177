package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cargoline/backoffice/internal/core/domain"
	"github.com/cargoline/backoffice/internal/core/ports"
)

const samplePolicy = `roles:
  ADMIN:
    invoices: {create: true, read: true, update: true, delete: true}
    clients: {create: true, read: true, update: true, delete: true}
  USER:
    invoices: {read: true}
`

type memRoleStore struct {
	mu    sync.Mutex
	saved map[string]*domain.Role
}

func (m *memRoleStore) GetRole(_ context.Context, name string) (*domain.Role, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.saved[name]
	if !ok {
		return nil, domain.ErrRoleNotFound
	}
	return r, nil
}

func (m *memRoleStore) SaveRole(_ context.Context, role *domain.Role) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saved[role.Name] = role
	return nil
}

func writePolicy(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "roles.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func execute(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd(app)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func storeApp(store *memRoleStore, opened *int) *App {
	return &App{
		OpenRoleStore: func(context.Context) (ports.RoleStore, func(), error) {
			*opened++
			return store, func() {}, nil
		},
	}
}

func TestRolesValidate_PrintsGrants(t *testing.T) {
	path := writePolicy(t, samplePolicy)

	out, err := execute(t, &App{}, "roles", "validate", path)
	require.NoError(t, err)

	assert.Contains(t, out, "ROLE")
	assert.Regexp(t, `ADMIN\s+clients\s+CRUD`, out)
	assert.Regexp(t, `USER\s+invoices\s+-R--`, out)
}

func TestRolesValidate_RejectsUnknownResource(t *testing.T) {
	path := writePolicy(t, "roles:\n  USER:\n    invoicez: {read: true}\n")

	_, err := execute(t, &App{}, "roles", "validate", path)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestRolesImport_SavesEveryRole(t *testing.T) {
	path := writePolicy(t, samplePolicy)
	store := &memRoleStore{saved: map[string]*domain.Role{}}
	opened := 0

	out, err := execute(t, storeApp(store, &opened), "roles", "import", path)
	require.NoError(t, err)

	assert.Equal(t, 1, opened)
	assert.Len(t, store.saved, 2)
	assert.Contains(t, out, "imported ADMIN")

	user, err := store.GetRole(context.Background(), "USER")
	require.NoError(t, err)
	assert.True(t, user.Allows(domain.ResourceInvoices, domain.ActionRead))
	assert.False(t, user.Allows(domain.ResourceInvoices, domain.ActionDelete))
}

func TestRolesImport_DryRunDoesNotConnect(t *testing.T) {
	path := writePolicy(t, samplePolicy)
	store := &memRoleStore{saved: map[string]*domain.Role{}}
	opened := 0

	out, err := execute(t, storeApp(store, &opened), "roles", "import", "--dry-run", path)
	require.NoError(t, err)

	assert.Zero(t, opened)
	assert.Empty(t, store.saved)
	assert.Contains(t, out, "2 roles valid")
}

func TestTotals_PrintsRoundedAmounts(t *testing.T) {
	out, err := execute(t, &App{}, "totals", "--tax", "16", "3x19.99", "1x10.50")
	require.NoError(t, err)

	assert.Regexp(t, `subtotal\s+70\.47`, out)
	assert.Regexp(t, `tax\s+11\.28`, out)
	assert.Regexp(t, `total\s+81\.75`, out)
}

func TestTotals_RejectsMalformedItem(t *testing.T) {
	_, err := execute(t, &App{}, "totals", "three-at-19.99")
	require.Error(t, err)
}
