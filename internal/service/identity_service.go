package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/agrovivo/biocampo-api/internal/model"
)

// IdentityStore reads the two disjoint identity stores.
type IdentityStore interface {
	GetRootEntity(ctx context.Context, id uuid.UUID) (*model.ActingUser, error)
	GetDelegatedUser(ctx context.Context, id uuid.UUID) (*model.DelegatedUser, error)
}

// IdentityResolver turns an opaque principal id into an acting user with an
// entity scope. The root-entity store is probed first and the delegated
// store only on a definitive not-found; any other failure from the first
// probe is a hard error, because falling through on an ambiguous failure
// could scope a write to the wrong entity.
type IdentityResolver struct {
	store IdentityStore
}

func NewIdentityResolver(store IdentityStore) *IdentityResolver {
	return &IdentityResolver{store: store}
}

func (r *IdentityResolver) Resolve(ctx context.Context, userID uuid.UUID) (model.ActingUser, error) {
	root, err := r.store.GetRootEntity(ctx, userID)
	if err == nil {
		return *root, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return model.ActingUser{}, fmt.Errorf("%w: root entity lookup: %v", ErrIdentityResolution, err)
	}

	delegated, err := r.store.GetDelegatedUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.ActingUser{}, fmt.Errorf("%w: unknown user %s", ErrIdentityResolution, userID)
		}
		return model.ActingUser{}, fmt.Errorf("%w: delegated user lookup: %v", ErrIdentityResolution, err)
	}

	if delegated.EntityID == nil || *delegated.EntityID == uuid.Nil {
		return model.ActingUser{}, fmt.Errorf("%w: user %s has no entity link", ErrIdentityResolution, userID)
	}

	kind := model.UserKindRegularUser
	if delegated.Role == "admin" {
		kind = model.UserKindDelegatedAdmin
	}
	return model.ActingUser{
		ID:          delegated.ID,
		Kind:        kind,
		EntityID:    *delegated.EntityID,
		DisplayName: delegated.FullName,
		Role:        delegated.Role,
	}, nil
}
