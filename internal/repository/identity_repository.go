package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/agrovivo/biocampo-api/internal/model"
)

// IdentityRepository reads the two disjoint identity stores: root entities
// (companies) and the delegated users that belong to one.
type IdentityRepository struct {
	db *gorm.DB
}

func NewIdentityRepository(db *gorm.DB) *IdentityRepository {
	return &IdentityRepository{db: db}
}

// GetRootEntity looks up a company account by id. Returns
// gorm.ErrRecordNotFound when no row exists; any other error means the
// lookup itself failed and must not be treated as "not found".
func (r *IdentityRepository) GetRootEntity(ctx context.Context, id uuid.UUID) (*model.ActingUser, error) {
	var row struct {
		ID          uuid.UUID
		CompanyName string
	}
	if err := r.db.WithContext(ctx).Raw(`
		SELECT id, company_name
		FROM root_entities
		WHERE id = ?
		LIMIT 1
	`, id).Scan(&row).Error; err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	return &model.ActingUser{
		ID:          row.ID,
		Kind:        model.UserKindRootEntity,
		EntityID:    row.ID,
		DisplayName: row.CompanyName,
		Role:        "root",
	}, nil
}

// GetDelegatedUser looks up a sub-user by id, including its entity link.
// EntityID stays nil when the link column is empty.
func (r *IdentityRepository) GetDelegatedUser(ctx context.Context, id uuid.UUID) (*model.DelegatedUser, error) {
	var row model.DelegatedUser
	if err := r.db.WithContext(ctx).Raw(`
		SELECT id, entity_id, full_name, role
		FROM portal_users
		WHERE id = ?
		LIMIT 1
	`, id).Scan(&row).Error; err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	return &row, nil
}
