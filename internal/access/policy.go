// Package access implements the per-operation authorization predicates of the
// platform. It is a pure policy layer: callers resolve publisher membership
// themselves and pass the result in, so every predicate is a deterministic
// function of its arguments and can be tested without a database.
package access

import (
	"errors"

	"newsdesk/internal/domain/entity"
)

// Capability enumerates the operations the policy gates.
type Capability string

const (
	CapRead    Capability = "read"
	CapWrite   Capability = "write"
	CapApprove Capability = "approve"
	CapDelete  Capability = "delete"
)

// Sentinel errors for authorization outcomes. The two cases are deliberately
// distinct: a missing or invalid credential is not the same failure as an
// authenticated caller lacking rights.
var (
	// ErrUnauthenticated indicates the request carried no valid identity.
	ErrUnauthenticated = errors.New("authentication required")

	// ErrPermissionDenied indicates an authenticated caller lacks the
	// capability for this operation.
	ErrPermissionDenied = errors.New("permission denied")
)

// Principal is the authenticated identity attached to a request.
type Principal struct {
	UserID   int64
	Username string
	Role     entity.Role
}

// CanView reports whether the article is visible to the principal.
// Approved articles are visible to everyone authenticated; drafts are visible
// only to their author and to editors. Callers surface a denied view as a
// not-found result so the existence of hidden content is never leaked.
func CanView(p Principal, a *entity.Article) bool {
	if a.Approved {
		return true
	}
	switch p.Role {
	case entity.RoleEditor:
		return true
	case entity.RoleJournalist:
		return p.UserID == a.AuthorID
	case entity.RoleReader:
		return false
	}
	return false
}

// Allows authorizes a mutating capability (write, approve, delete) against an
// article. editorAuthority must be true when the principal is an editor who
// administers the article's publisher; publisher-less articles fall under
// every editor's authority and callers pass true for them.
//
// The role switch is exhaustive over the closed Role set; an unknown role is
// always denied.
func Allows(p Principal, cap Capability, a *entity.Article, editorAuthority bool) error {
	if cap == CapRead {
		if CanView(p, a) {
			return nil
		}
		return ErrPermissionDenied
	}

	switch p.Role {
	case entity.RoleReader:
		return ErrPermissionDenied

	case entity.RoleJournalist:
		// Journalists never approve, and only touch their own drafts.
		if cap == CapApprove {
			return ErrPermissionDenied
		}
		if p.UserID != a.AuthorID {
			return ErrPermissionDenied
		}
		if a.Approved {
			return ErrPermissionDenied
		}
		return nil

	case entity.RoleEditor:
		if !editorAuthority {
			return ErrPermissionDenied
		}
		return nil
	}

	return ErrPermissionDenied
}

// CanSubscribe reports whether the principal may create subscriptions.
// Only readers subscribe; subscriptions are created and destroyed exclusively
// by the subscribing reader.
func CanSubscribe(p Principal) bool {
	return p.Role == entity.RoleReader
}
