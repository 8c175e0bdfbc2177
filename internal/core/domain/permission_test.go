package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRole_AllowsOnlyExplicitFlags(t *testing.T) {
	role, err := BuildRole("USER", map[string]map[string]bool{
		"users":    {"read": true},
		"invoices": {"read": true, "create": true, "delete": false},
	})
	require.NoError(t, err)

	assert.True(t, role.Allows(ResourceUsers, ActionRead))
	assert.False(t, role.Allows(ResourceUsers, ActionDelete))
	assert.True(t, role.Allows(ResourceInvoices, ActionCreate))
	assert.False(t, role.Allows(ResourceInvoices, ActionDelete))
	assert.False(t, role.Allows(ResourceQuotations, ActionRead))
	assert.False(t, role.Allows(Resource("ledgers"), ActionRead))
	assert.False(t, role.Allows(ResourceInvoices, Action("approve")))
}

func TestRole_NilDenies(t *testing.T) {
	var role *Role
	assert.False(t, role.Allows(ResourceInvoices, ActionRead))
}

func TestBuildRole_RejectsUnknownKeys(t *testing.T) {
	_, err := BuildRole("ADMIN", map[string]map[string]bool{"invoicez": {"read": true}})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "roles.ADMIN.invoicez", ve.Field)

	_, err = BuildRole("ADMIN", map[string]map[string]bool{"invoices": {"approve": true}})
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "roles.ADMIN.invoices.approve", ve.Field)

	_, err = BuildRole("", nil)
	assert.ErrorIs(t, err, ErrValidation)
}
