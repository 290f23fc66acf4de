package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrovivo/biocampo-api/internal/model"
)

func TestResolveRootEntity(t *testing.T) {
	resolver := NewIdentityResolver(testIdentityStore())

	acting, err := resolver.Resolve(context.Background(), entityOne)
	require.NoError(t, err)
	assert.Equal(t, model.UserKindRootEntity, acting.Kind)
	assert.Equal(t, entityOne, acting.EntityID, "root entity scopes to itself")
}

func TestResolveDelegatedUsers(t *testing.T) {
	resolver := NewIdentityResolver(testIdentityStore())

	acting, err := resolver.Resolve(context.Background(), adminOne)
	require.NoError(t, err)
	assert.Equal(t, model.UserKindDelegatedAdmin, acting.Kind)
	assert.Equal(t, entityOne, acting.EntityID)

	acting, err = resolver.Resolve(context.Background(), userTwo)
	require.NoError(t, err)
	assert.Equal(t, model.UserKindRegularUser, acting.Kind)
	assert.Equal(t, entityTwo, acting.EntityID)
}

func TestResolveUnknownUser(t *testing.T) {
	resolver := NewIdentityResolver(testIdentityStore())

	_, err := resolver.Resolve(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrIdentityResolution)
}

func TestResolveRootLookupErrorDoesNotFallThrough(t *testing.T) {
	store := testIdentityStore()
	store.rootErr = errors.New("connection reset")
	resolver := NewIdentityResolver(store)

	// adminOne exists in the delegated store, but an ambiguous failure on
	// the root probe must be fatal, never downgraded to "try the next
	// store".
	_, err := resolver.Resolve(context.Background(), adminOne)
	assert.ErrorIs(t, err, ErrIdentityResolution)
}

func TestResolveMissingEntityLink(t *testing.T) {
	store := testIdentityStore()
	orphan := uuid.New()
	store.delegated[orphan] = &model.DelegatedUser{ID: orphan, FullName: "Sin entidad", Role: "admin"}
	resolver := NewIdentityResolver(store)

	_, err := resolver.Resolve(context.Background(), orphan)
	assert.ErrorIs(t, err, ErrIdentityResolution)
}
