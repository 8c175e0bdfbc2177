package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/cargoline/backoffice/internal/core/domain"
)

const collectionRoles = "roles"

// RoleRepository stores role policies keyed by role name. Policies are
// validated on every read so a hand-edited document with a misspelled
// resource is rejected instead of silently denying.
type RoleRepository struct {
	col *mongo.Collection
}

func NewRoleRepository(db *mongo.Database) *RoleRepository {
	return &RoleRepository{col: db.Collection(collectionRoles)}
}

type roleRecord struct {
	Name        string                     `bson:"_id"`
	Permissions map[string]map[string]bool `bson:"permissions"`
}

func (r *RoleRepository) GetRole(ctx context.Context, name string) (*domain.Role, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var rec roleRecord
	if err := r.col.FindOne(ctx, bson.M{"_id": name}).Decode(&rec); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRoleNotFound
		}
		return nil, fmt.Errorf("find role: %w", err)
	}
	return domain.BuildRole(rec.Name, rec.Permissions)
}

// SaveRole creates or replaces a role policy.
func (r *RoleRepository) SaveRole(ctx context.Context, role *domain.Role) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	rec := roleRecord{Name: role.Name, Permissions: make(map[string]map[string]bool, len(role.Permissions))}
	for res, p := range role.Permissions {
		rec.Permissions[string(res)] = map[string]bool{
			string(domain.ActionCreate): p.Create,
			string(domain.ActionRead):   p.Read,
			string(domain.ActionUpdate): p.Update,
			string(domain.ActionDelete): p.Delete,
		}
	}

	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": role.Name}, rec, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("save role %s: %w", role.Name, err)
	}
	return nil
}
