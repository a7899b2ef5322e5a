// Package provider models the owner of sellable services and bookings:
// exactly one Expert or exactly one Organization.
package provider

import (
	"errors"
	"fmt"
)

// Kind identifies which kind of account owns a resource.
type Kind string

const (
	KindExpert       Kind = "expert"
	KindOrganization Kind = "organization"
)

var (
	ErrNoOwner        = errors.New("owner must be an expert or an organization")
	ErrAmbiguousOwner = errors.New("owner cannot be both an expert and an organization")
	ErrNotProvider    = errors.New("account role cannot own services")
)

// Owner is Expert(id) | Organization(id). The zero value is not a valid owner.
type Owner struct {
	kind Kind
	id   string
}

func Expert(id string) Owner       { return Owner{kind: KindExpert, id: id} }
func Organization(id string) Owner { return Owner{kind: KindOrganization, id: id} }

// FromColumns rebuilds an owner from the two nullable foreign keys used in storage.
func FromColumns(expertID, organizationID *string) (Owner, error) {
	hasExpert := expertID != nil && *expertID != ""
	hasOrg := organizationID != nil && *organizationID != ""
	switch {
	case hasExpert && hasOrg:
		return Owner{}, ErrAmbiguousOwner
	case hasExpert:
		return Expert(*expertID), nil
	case hasOrg:
		return Organization(*organizationID), nil
	default:
		return Owner{}, ErrNoOwner
	}
}

// FromRole maps an authenticated account to the owner it acts as.
func FromRole(role, id string) (Owner, error) {
	switch Kind(role) {
	case KindExpert:
		return Expert(id), nil
	case KindOrganization:
		return Organization(id), nil
	default:
		return Owner{}, ErrNotProvider
	}
}

func (o Owner) Kind() Kind           { return o.kind }
func (o Owner) ID() string           { return o.id }
func (o Owner) IsZero() bool         { return o.kind == "" || o.id == "" }
func (o Owner) IsExpert() bool       { return o.kind == KindExpert }
func (o Owner) IsOrganization() bool { return o.kind == KindOrganization }

// Columns returns the (expert_id, organization_id) pair, exactly one of which is non-nil.
func (o Owner) Columns() (expertID, organizationID *string) {
	id := o.id
	switch o.kind {
	case KindExpert:
		return &id, nil
	case KindOrganization:
		return nil, &id
	}
	return nil, nil
}

// ColumnName is the storage column holding this owner's id.
func (o Owner) ColumnName() string {
	if o.kind == KindOrganization {
		return "organization_id"
	}
	return "expert_id"
}

// LockKey is a stable per-provider key for advisory locking.
func (o Owner) LockKey() string {
	return string(o.kind) + ":" + o.id
}

// Matches reports whether actorID is this provider.
func (o Owner) Matches(actorID string) bool {
	return !o.IsZero() && actorID != "" && o.id == actorID
}

func (o Owner) String() string {
	if o.IsZero() {
		return "owner(none)"
	}
	return fmt.Sprintf("%s(%s)", o.kind, o.id)
}
