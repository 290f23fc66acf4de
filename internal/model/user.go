package model

import "github.com/google/uuid"

// Principal is the identity carried by an access token. It only proves who
// is calling; entity scope is resolved against the identity stores on every
// request (an entity link can change between requests).
type Principal struct {
	UserID uuid.UUID
	Name   string
}

type UserKind string

const (
	UserKindRootEntity     UserKind = "ROOT_ENTITY"
	UserKindDelegatedAdmin UserKind = "DELEGATED_ADMIN"
	UserKindRegularUser    UserKind = "REGULAR_USER"
)

// ActingUser is a principal resolved to its kind and entity scope. EntityID
// is the scoping key for every schedule, quote and order operation.
type ActingUser struct {
	ID          uuid.UUID
	Kind        UserKind
	EntityID    uuid.UUID
	DisplayName string
	Role        string
}

// DelegatedUser is a raw row from the delegated-user store, before its
// entity link has been validated.
type DelegatedUser struct {
	ID       uuid.UUID
	EntityID *uuid.UUID
	FullName string
	Role     string
}

// CanManageUsers reports whether the acting user may create or delete
// delegated users. Schedule read/write permissions are identical for
// delegated admins and regular users; only user management differs.
func (u ActingUser) CanManageUsers() bool {
	return u.Kind == UserKindRootEntity || u.Kind == UserKindDelegatedAdmin
}
