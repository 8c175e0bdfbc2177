package domain

import (
	"fmt"
	"sort"
)

// DefaultRole is evaluated when a caller presents no role.
const DefaultRole = "USER"

// Resource is a closed set of permission targets.
type Resource string

const (
	ResourceClients          Resource = "clients"
	ResourceBillsOfLading    Resource = "bills_of_lading"
	ResourceInvoices         Resource = "invoices"
	ResourceProformaInvoices Resource = "proforma_invoices"
	ResourceQuotations       Resource = "quotations"
	ResourceTransactions     Resource = "transactions"
	ResourceEmployees        Resource = "employees"
	ResourceRoles            Resource = "roles"
	ResourceDocuments        Resource = "documents"
	ResourceUsers            Resource = "users"
)

var resources = map[Resource]struct{}{
	ResourceClients:          {},
	ResourceBillsOfLading:    {},
	ResourceInvoices:         {},
	ResourceProformaInvoices: {},
	ResourceQuotations:       {},
	ResourceTransactions:     {},
	ResourceEmployees:        {},
	ResourceRoles:            {},
	ResourceDocuments:        {},
	ResourceUsers:            {},
}

// Valid reports whether r is a known resource.
func (r Resource) Valid() bool {
	_, ok := resources[r]
	return ok
}

// Action is one of the four CRUD verbs.
type Action string

const (
	ActionCreate Action = "create"
	ActionRead   Action = "read"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Valid reports whether a is a known action.
func (a Action) Valid() bool {
	switch a {
	case ActionCreate, ActionRead, ActionUpdate, ActionDelete:
		return true
	}
	return false
}

// Permissions holds the CRUD flags a role has on one resource.
type Permissions struct {
	Create bool `json:"create" bson:"create" yaml:"create"`
	Read   bool `json:"read"   bson:"read"   yaml:"read"`
	Update bool `json:"update" bson:"update" yaml:"update"`
	Delete bool `json:"delete" bson:"delete" yaml:"delete"`
}

// Allows reports whether the flag for a is set. Unknown actions are denied.
func (p Permissions) Allows(a Action) bool {
	switch a {
	case ActionCreate:
		return p.Create
	case ActionRead:
		return p.Read
	case ActionUpdate:
		return p.Update
	case ActionDelete:
		return p.Delete
	}
	return false
}

// Role is a named permission table.
type Role struct {
	Name        string
	Permissions map[Resource]Permissions
}

// Allows reports whether the role grants action on resource. A nil role,
// an unknown resource or a missing entry all deny.
func (r *Role) Allows(res Resource, a Action) bool {
	if r == nil || !res.Valid() || !a.Valid() {
		return false
	}
	p, ok := r.Permissions[res]
	if !ok {
		return false
	}
	return p.Allows(a)
}

// BuildRole converts an authored permission map into a typed Role, rejecting
// unknown resource or action keys so typos surface when policies are loaded.
func BuildRole(name string, raw map[string]map[string]bool) (*Role, error) {
	if name == "" {
		return nil, NewValidationError("role", "name must not be empty")
	}
	role := &Role{Name: name, Permissions: make(map[Resource]Permissions, len(raw))}

	for _, key := range sortedKeys(raw) {
		res := Resource(key)
		if !res.Valid() {
			return nil, NewValidationError(fmt.Sprintf("roles.%s.%s", name, key), "is not a known resource")
		}
		var p Permissions
		for action, allowed := range raw[key] {
			switch Action(action) {
			case ActionCreate:
				p.Create = allowed
			case ActionRead:
				p.Read = allowed
			case ActionUpdate:
				p.Update = allowed
			case ActionDelete:
				p.Delete = allowed
			default:
				return nil, NewValidationError(fmt.Sprintf("roles.%s.%s.%s", name, key, action), "is not a known action")
			}
		}
		role.Permissions[res] = p
	}
	return role, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
