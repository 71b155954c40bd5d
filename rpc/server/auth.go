package server

import (
	"github.com/tallykv/tallykv/lib/record"
	"github.com/tallykv/tallykv/lib/store"
)

// --------------------------------------------------------------------------
// Authorization
// --------------------------------------------------------------------------

// Authorizer decides whether a requester may modify a record. It guards the
// destructive operations (edit, delete); reads and votes are always allowed.
type Authorizer interface {
	// Authorize returns nil if the requester may modify rec, or a
	// RetCNotAuthorized error otherwise.
	Authorize(requester string, rec *record.Record) error
}

// AllowAll permits every modification. Used when ownership enforcement is
// disabled.
type AllowAll struct{}

func (AllowAll) Authorize(requester string, rec *record.Record) error {
	return nil
}

// OwnerOnly permits modifications only by the record's owner. Records
// without an owner remain modifiable by anyone.
type OwnerOnly struct{}

func (OwnerOnly) Authorize(requester string, rec *record.Record) error {
	if rec.Owner == "" || rec.Owner == requester {
		return nil
	}
	return store.NewError(store.RetCNotAuthorized,
		"requester %q is not the owner of poll id=%d", requester, rec.ID)
}
