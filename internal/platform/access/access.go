// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package access decides whether a caller may perform an operation on a resource.

# Rules

  - Reads are open to everyone, including anonymous callers.
  - Any other operation needs an authenticated [Principal].
  - Catalog resources (authors, books, genres) are written by ADMIN and above.
  - Comments are written by USER and above; changing or removing one also
    requires owning it, unless the caller holds ROOT.
  - Accounts are changed by their owner, or by ROOT.
  - Changing a role set is reserved to ROOT.

ROOT overrides ownership only. It never satisfies a plain role requirement.
*/
package access

import (
	"context"
	"strconv"

	"github.com/taibuivan/folio/internal/platform/apperr"
	"github.com/taibuivan/folio/internal/platform/ctxutil"
	"github.com/taibuivan/folio/internal/platform/sec"
)

// # Vocabulary

// Kind names a resource family.
type Kind string

const (
	KindAuthor  Kind = "author"
	KindBook    Kind = "book"
	KindGenre   Kind = "genre"
	KindComment Kind = "comment"
	KindUser    Kind = "user"
)

// Operation names what the caller wants to do.
type Operation string

const (
	OpRead        Operation = "read"
	OpCreate      Operation = "create"
	OpUpdate      Operation = "update"
	OpDelete      Operation = "delete"
	OpAssignRoles Operation = "assign_roles"
)

// Target identifies the resource an operation applies to.
// OwnerID is the owning user's id; zero when the kind has no owner or on create.
type Target struct {
	Kind    Kind
	OwnerID int64
}

// Principal is the authenticated caller.
type Principal struct {
	UserID   int64
	Username string
	Roles    sec.RoleSet
}

// FromClaims builds a principal from verified token claims. Nil claims give a nil principal.
func FromClaims(claims *sec.AuthClaims) *Principal {
	if claims == nil {
		return nil
	}
	return &Principal{UserID: claims.UserID, Username: claims.Username, Roles: claims.Roles}
}

// Owns reports whether the principal owns the target, directly or through ROOT.
func (p *Principal) Owns(ownerID int64) bool {
	if p == nil {
		return false
	}
	return p.Roles.Has(sec.RoleRoot) || (ownerID != 0 && p.UserID == ownerID)
}

// # Decision

// Authorize returns nil when p may perform op on t, otherwise an UNAUTHORIZED
// or FORBIDDEN [apperr.AppError]. It has no side effects.
func Authorize(p *Principal, op Operation, t Target) error {
	if op == OpRead {
		return nil
	}
	if p == nil {
		return apperr.Unauthorized("Authentication required")
	}

	if op == OpAssignRoles {
		if !p.Roles.Has(sec.RoleRoot) {
			return apperr.Forbidden("Only root may change roles")
		}
		return nil
	}

	switch t.Kind {
	case KindAuthor, KindBook, KindGenre:
		return RequireRole(p, sec.RoleAdmin)

	case KindComment:
		if err := RequireRole(p, sec.RoleUser); err != nil {
			return err
		}
		if op == OpCreate {
			return nil
		}
		if !p.Owns(t.OwnerID) {
			return apperr.Forbidden("You can only change your own comments")
		}
		return nil

	case KindUser:
		if op == OpCreate {
			return RequireRole(p, sec.RoleSuperAdmin)
		}
		if err := RequireRole(p, sec.RoleUser); err != nil {
			return err
		}
		if !p.Owns(t.OwnerID) {
			return apperr.Forbidden("You can only change your own account")
		}
		return nil
	}

	return apperr.Forbidden("Operation not permitted")
}

// RequireRole fails unless some role held by p meets role.
func RequireRole(p *Principal, role sec.Role) error {
	if p == nil {
		return apperr.Unauthorized("Authentication required")
	}
	if !p.Roles.AtLeast(role) {
		return apperr.Forbidden("Insufficient permissions")
	}
	return nil
}

// # Guard

// DecisionRecorder counts guard outcomes. [observability.Metrics] implements it.
type DecisionRecorder interface {
	RecordDecision(kind, operation, outcome string)
}

// Guard wraps [Authorize] with logging and metrics.
type Guard struct {
	recorder DecisionRecorder
}

// NewGuard creates a Guard. A nil recorder disables metrics.
func NewGuard(recorder DecisionRecorder) *Guard {
	return &Guard{recorder: recorder}
}

// Authorize evaluates the rules and records the outcome.
func (guard *Guard) Authorize(context context.Context, p *Principal, op Operation, t Target) error {
	err := Authorize(p, op, t)

	outcome := "allowed"
	if err != nil {
		outcome = "denied"
	}
	if guard != nil && guard.recorder != nil {
		guard.recorder.RecordDecision(string(t.Kind), string(op), outcome)
	}

	logger := ctxutil.GetLogger(context)
	if err != nil {
		logger.Debug("access_denied",
			"kind", t.Kind, "operation", op, "owner_id", t.OwnerID, "principal", principalID(p))
	} else {
		logger.Debug("access_granted", "kind", t.Kind, "operation", op, "principal", principalID(p))
	}
	return err
}

func principalID(p *Principal) string {
	if p == nil {
		return "anonymous"
	}
	return strconv.FormatInt(p.UserID, 10)
}
